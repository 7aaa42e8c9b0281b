package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/soloquiz/internal/assessment"
	"github.com/abhisek/soloquiz/internal/export"
	"github.com/abhisek/soloquiz/internal/grading"
	"github.com/abhisek/soloquiz/internal/store"
	"github.com/spf13/cobra"
)

var attemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "Browse and export stored attempts",
}

var attemptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored attempts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		file, _ := cmd.Flags().GetString("file")

		fingerprintKey := ""
		if file != "" {
			a, err := loadAssessment(file)
			if err != nil {
				return err
			}
			fingerprintKey = assessment.NewFingerprint(a).Key()
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		recs, err := st.AttemptRepo().List(context.Background(), fingerprintKey, limit)
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}

		if len(recs) == 0 {
			fmt.Println("No attempts stored yet.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-28s  %7s  %7s  %s\n",
			"ID", "Completed", "Assessment", "Score", "Pending", "Auto")
		fmt.Println(strings.Repeat("─", 110))
		for _, rec := range recs {
			auto := ""
			if rec.AutoSubmitted {
				auto = "✓"
			}
			title := rec.Title
			if len(title) > 28 {
				title = title[:28]
			}
			fmt.Printf("%-36s  %-19s  %-28s  %6.1f%%  %7d  %s\n",
				rec.AttemptID,
				rec.CompletedAt.Local().Format("2006-01-02 15:04:05"),
				title,
				rec.Percentage,
				rec.PendingCount,
				auto,
			)
		}
		return nil
	},
}

var attemptsShowCmd = &cobra.Command{
	Use:   "show <attempt-id>",
	Short: "Show one attempt's results and grading history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := context.Background()
		rec, summary, err := loadStoredAttempt(ctx, st, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Attempt:    %s\n", rec.AttemptID)
		fmt.Printf("Assessment: %s (%d questions)\n", rec.Title, rec.QuestionCount)
		fmt.Printf("Completed:  %s\n", rec.CompletedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Auto score: %s / %s (%.1f%%)\n",
			trimNumber(summary.DeterministicEarned), trimNumber(summary.DeterministicMax), summary.DeterministicPercentage)
		if summary.SubjectiveMax > 0 {
			fmt.Printf("Subjective: %s pts, %d pending\n",
				trimNumber(summary.SubjectiveMax), summary.PendingSubjectiveCount)
		}
		if rec.AutoSubmitted {
			fmt.Println("Note:       auto-submitted at the time limit")
		}

		fmt.Println()
		for i, r := range summary.Results {
			mark := "✗"
			switch r.Status {
			case grading.StatusCorrect:
				mark = "✓"
			case grading.StatusPartial:
				mark = "◐"
			case grading.StatusPending:
				mark = "…"
			}
			fmt.Printf("  %s %2d. [%s] %s (%s/%s)\n",
				mark, i+1, r.Kind, r.QuestionText, trimNumber(r.EarnedOrZero()), trimNumber(r.Max))
		}

		history, err := st.EventRepo().QueryGradingEvents(ctx, rec.AttemptID)
		if err != nil {
			return fmt.Errorf("query grading history: %w", err)
		}
		if len(history) > 0 {
			fmt.Println("\nGrading history:")
			for _, e := range history {
				line := fmt.Sprintf("  %s  %s %s",
					e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Action, e.QuestionID)
				if e.Action == "apply" {
					line += fmt.Sprintf(" → %s (%s pts, %s)", e.Verdict, trimNumber(e.Score), e.Source)
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

var attemptsExportCmd = &cobra.Command{
	Use:   "export <attempt-id>",
	Short: "Export one attempt as CSV or JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("output")

		if format != "csv" && format != "json" {
			return fmt.Errorf("unknown format %q: want csv or json", format)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		rec, summary, err := loadStoredAttempt(context.Background(), st, args[0])
		if err != nil {
			return err
		}

		var content string
		if format == "csv" {
			content, err = export.CSV(rec.Title, summary)
		} else {
			content, err = export.JSON(rec.Title, summary)
		}
		if err != nil {
			return fmt.Errorf("render export: %w", err)
		}

		if out == "" || out == "-" {
			fmt.Print(content)
			return nil
		}
		if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		fmt.Println("Wrote", out)
		return nil
	},
}

var attemptsDeleteCmd = &cobra.Command{
	Use:   "delete <attempt-id>",
	Short: "Delete one stored attempt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.AttemptRepo().Delete(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted", args[0])
		return nil
	},
}

// openStore opens the configured database.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// loadStoredAttempt fetches an attempt and decodes its summary.
func loadStoredAttempt(ctx context.Context, st *store.Store, attemptID string) (*store.AttemptRecord, *grading.SubmissionSummary, error) {
	rec, err := st.AttemptRepo().Get(ctx, attemptID)
	if err != nil {
		return nil, nil, fmt.Errorf("get attempt: %w", err)
	}
	if rec == nil {
		return nil, nil, fmt.Errorf("attempt %q not found", attemptID)
	}

	var summary grading.SubmissionSummary
	if err := json.Unmarshal(rec.Summary, &summary); err != nil {
		return nil, nil, fmt.Errorf("decode stored summary: %w", err)
	}
	return rec, &summary, nil
}

func trimNumber(v float64) string {
	out := fmt.Sprintf("%g", v)
	return out
}

func init() {
	attemptsListCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
	attemptsListCmd.Flags().StringP("file", "f", "", "Only list attempts of this assessment file")

	attemptsExportCmd.Flags().String("format", "csv", "Export format: csv or json")
	attemptsExportCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")

	attemptsCmd.AddCommand(attemptsListCmd)
	attemptsCmd.AddCommand(attemptsShowCmd)
	attemptsCmd.AddCommand(attemptsExportCmd)
	attemptsCmd.AddCommand(attemptsDeleteCmd)
}
