package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/soloquiz/internal/grading"
	"github.com/abhisek/soloquiz/internal/router"
	"github.com/abhisek/soloquiz/internal/screen"
	"github.com/abhisek/soloquiz/internal/screens/results"
	"github.com/abhisek/soloquiz/internal/store"
	"github.com/abhisek/soloquiz/internal/subjective"
	"github.com/abhisek/soloquiz/internal/ui/layout"
	"github.com/abhisek/soloquiz/internal/ui/theme"
)

type attemptsLoadedMsg struct {
	Attempts []*store.AttemptRecord
	Err      error
}

type attemptDeletedMsg struct {
	AttemptID string
	Err       error
}

// HistoryScreen lists stored attempts, newest first, and opens the
// results screen for any of them.
type HistoryScreen struct {
	attempts store.AttemptRepo
	events   store.EventRepo
	grader   *subjective.Service

	records       []*store.AttemptRecord
	selected      int
	confirmDelete bool
	loaded        bool
	errMsg        string
	statusMsg     string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(attempts store.AttemptRepo, events store.EventRepo, grader *subjective.Service) *HistoryScreen {
	return &HistoryScreen{
		attempts: attempts,
		events:   events,
		grader:   grader,
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.loadCmd()
}

func (s *HistoryScreen) loadCmd() tea.Cmd {
	return func() tea.Msg {
		recs, err := s.attempts.List(context.Background(), "", 50)
		return attemptsLoadedMsg{Attempts: recs, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "Past Attempts"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirmDelete {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Review"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "D", Description: "Delete"},
		{Key: "Q", Description: "Quit"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Attempts
			if s.selected >= len(s.records) && s.selected > 0 {
				s.selected = len(s.records) - 1
			}
		}
		s.loaded = true
		return s, nil

	case attemptDeletedMsg:
		if msg.Err != nil {
			s.statusMsg = fmt.Sprintf("Delete failed: %v", msg.Err)
			return s, nil
		}
		s.statusMsg = "Deleted attempt " + shortID(msg.AttemptID)
		return s, s.loadCmd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmDelete {
		switch key {
		case "y", "Y":
			s.confirmDelete = false
			rec := s.records[s.selected]
			return s, func() tea.Msg {
				err := s.attempts.Delete(context.Background(), rec.AttemptID)
				return attemptDeletedMsg{AttemptID: rec.AttemptID, Err: err}
			}
		case "n", "N", "esc":
			s.confirmDelete = false
		}
		return s, nil
	}

	s.statusMsg = ""

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.records)-1 {
			s.selected++
		}
	case "enter":
		if len(s.records) == 0 {
			return s, nil
		}
		return s.openAttempt(s.records[s.selected])
	case "d", "D":
		if len(s.records) > 0 {
			s.confirmDelete = true
		}
	case "q", "Q", "esc":
		return s, tea.Quit
	}
	return s, nil
}

// openAttempt decodes the stored summary and pushes the results screen.
// The assessment document is not stored with the attempt, so the review
// cannot re-grade subjective responses; `soloquiz grade` covers that.
func (s *HistoryScreen) openAttempt(rec *store.AttemptRecord) (screen.Screen, tea.Cmd) {
	var summary grading.SubmissionSummary
	if err := json.Unmarshal(rec.Summary, &summary); err != nil {
		s.statusMsg = fmt.Sprintf("Cannot open attempt: %v", err)
		return s, nil
	}
	rs := results.New(nil, &summary, s.attempts, s.events, s.grader)
	rs.SetTitle(rec.Title)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: rs} }
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading attempts...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Run `soloquiz <assessment.json>` to take one.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		dateStr := rec.CompletedAt.Format("Jan 02, 2006 15:04")

		pendingStr := ""
		if rec.PendingCount > 0 {
			pendingStr = fmt.Sprintf("  %d pending", rec.PendingCount)
		}
		autoStr := ""
		if rec.AutoSubmitted {
			autoStr = "  (time expired)"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %s  %d questions  %.0f%%%s%s",
			prefix, shortID(rec.AttemptID), dateStr, truncate(rec.Title, 32),
			rec.QuestionCount, rec.Percentage, pendingStr, autoStr)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")
	}

	if s.confirmDelete {
		rec := s.records[s.selected]
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
				Render(fmt.Sprintf("Delete attempt %s? [Y/N]", shortID(rec.AttemptID)))))
		b.WriteString("\n")
	} else if s.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.statusMsg)))
		b.WriteString("\n")
	}

	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
