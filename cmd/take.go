package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/soloquiz/internal/app"
	"github.com/abhisek/soloquiz/internal/assessment"
	"github.com/abhisek/soloquiz/internal/llm"
	"github.com/abhisek/soloquiz/internal/screens/quiz"
	"github.com/abhisek/soloquiz/internal/store"
	"github.com/abhisek/soloquiz/internal/subjective"
	"github.com/spf13/cobra"
)

var takeCmd = &cobra.Command{
	Use:   "take <assessment.json>",
	Short: "Take a quiz from an assessment file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd, args[0])
	},
}

// runQuiz loads and validates the assessment, opens the store, wires the
// optional LLM grader, and launches the TUI. A missing store or provider
// degrades the run instead of failing it.
func runQuiz(cmd *cobra.Command, path string) error {
	a, err := loadAssessment(path)
	if err != nil {
		return err
	}

	var attempts store.AttemptRepo
	var events store.EventRepo

	dbPath, err := resolveDBPath(cmd)
	if err == nil {
		var st *store.Store
		st, err = store.Open(dbPath)
		if err == nil {
			defer st.Close()
			attempts = st.AttemptRepo()
			events = st.EventRepo()
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: store unavailable, attempt will not be saved: %v\n", err)
	}

	var grader *subjective.Service
	provider, err := llm.NewProviderFromEnv(cmd.Context(), events)
	if err != nil {
		if hasSubjective(a) {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Written responses will stay pending until graded with `soloquiz grade`.")
		}
	} else {
		grader = subjective.NewService(provider, subjective.DefaultConfig())
	}

	return app.Run(quiz.New(a, attempts, events, grader))
}

// loadAssessment reads, parses, and validates an assessment file. Issues
// are printed before the error return so the user sees every problem.
func loadAssessment(path string) (*assessment.Assessment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read assessment: %w", err)
	}

	a, issues := assessment.Parse(raw)
	if len(issues) > 0 {
		for _, issue := range issues {
			fmt.Fprintln(os.Stderr, issue)
		}
		return nil, fmt.Errorf("%s: %d validation issue(s)", path, len(issues))
	}
	return a, nil
}

func hasSubjective(a *assessment.Assessment) bool {
	for i := range a.Questions {
		if a.Questions[i].Kind == assessment.KindSubjective {
			return true
		}
	}
	return false
}
