package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/soloquiz/internal/assessment"
	"github.com/abhisek/soloquiz/internal/grading"
	"github.com/abhisek/soloquiz/internal/llm"
	"github.com/abhisek/soloquiz/internal/store"
	"github.com/abhisek/soloquiz/internal/subjective"
	"github.com/spf13/cobra"
)

var gradeCmd = &cobra.Command{
	Use:   "grade <attempt-id>",
	Short: "Grade pending written responses of a stored attempt",
	Long: `Grade the subjective questions of a stored attempt.

By default every pending question is graded with the configured LLM provider;
this needs the original assessment file (--file) for the rubrics. Alternatively
apply a feedback JSON document to one question with --question and --feedback,
or return a graded question to pending with --question and --reset.`,
	Args: cobra.ExactArgs(1),
	RunE: runGrade,
}

func init() {
	gradeCmd.Flags().StringP("file", "f", "", "Assessment file the attempt was taken from (required for LLM grading)")
	gradeCmd.Flags().StringP("question", "q", "", "Grade only this question id")
	gradeCmd.Flags().String("feedback", "", "Apply a feedback JSON file instead of calling the LLM")
	gradeCmd.Flags().Bool("reset", false, "Return the question to pending")
}

func runGrade(cmd *cobra.Command, args []string) error {
	attemptID := args[0]
	file, _ := cmd.Flags().GetString("file")
	questionID, _ := cmd.Flags().GetString("question")
	feedbackPath, _ := cmd.Flags().GetString("feedback")
	reset, _ := cmd.Flags().GetBool("reset")

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	rec, summary, err := loadStoredAttempt(ctx, st, attemptID)
	if err != nil {
		return err
	}

	switch {
	case reset:
		if questionID == "" {
			return fmt.Errorf("--reset requires --question")
		}
		if err := summary.ResetSubjective(questionID); err != nil {
			return err
		}
		if err := persistSummary(ctx, st, rec, summary, questionID, "reset", "", 0, "user"); err != nil {
			return err
		}
		fmt.Printf("Question %s returned to pending.\n", questionID)
		return nil

	case feedbackPath != "":
		if questionID == "" {
			return fmt.Errorf("--feedback requires --question")
		}
		raw, err := os.ReadFile(feedbackPath)
		if err != nil {
			return fmt.Errorf("read feedback: %w", err)
		}
		fb, err := subjective.ParseFeedback(raw)
		if err != nil {
			return err
		}
		attachQuestions(summary, file)
		if err := summary.ApplyFeedback(questionID, *fb); err != nil {
			return err
		}
		if err := persistSummary(ctx, st, rec, summary, questionID, "apply", string(fb.Verdict), fb.Score, "file"); err != nil {
			return err
		}
		printGrade(summary, questionID)
		return nil

	default:
		return gradeWithLLM(ctx, cmd, st, rec, summary, file, questionID)
	}
}

// gradeWithLLM grades pending subjective questions using the configured
// provider. The assessment file is required: stored summaries carry the
// responses but not the rubrics.
func gradeWithLLM(ctx context.Context, cmd *cobra.Command, st *store.Store, rec *store.AttemptRecord, summary *grading.SubmissionSummary, file, questionID string) error {
	if file == "" {
		return fmt.Errorf("LLM grading needs the assessment file: pass --file")
	}
	a, err := loadAssessment(file)
	if err != nil {
		return err
	}
	if key := assessment.NewFingerprint(a).Key(); key != rec.FingerprintKey {
		fmt.Fprintf(os.Stderr, "warning: %s does not look like the assessment this attempt was taken from\n", file)
	}
	for _, r := range summary.Results {
		r.Question = a.Question(r.QuestionID)
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}
	grader := subjective.NewService(provider, subjective.DefaultConfig())

	targets := summary.PendingSubjective()
	if questionID != "" {
		r := summary.Result(questionID)
		if r == nil {
			return fmt.Errorf("no result for question %q", questionID)
		}
		if !r.Pending() {
			return fmt.Errorf("question %q is not pending", questionID)
		}
		targets = []*grading.QuestionResult{r}
	}
	if len(targets) == 0 {
		fmt.Println("Nothing pending to grade.")
		return nil
	}

	for _, r := range targets {
		q := r.Question
		if q == nil {
			fmt.Fprintf(os.Stderr, "warning: question %s not found in %s, skipping\n", r.QuestionID, file)
			continue
		}

		fmt.Printf("Grading %s...\n", r.QuestionID)
		fb, err := grader.Grade(ctx, subjective.GradingInput{
			AssessmentTitle: a.Meta.Title,
			QuestionNumber:  resultNumber(summary, r.QuestionID),
			TotalQuestions:  len(summary.Results),
			Question:        q,
			UserAnswer:      r.UserAnswer,
		})
		if err != nil {
			return err
		}

		if err := summary.ApplyFeedback(r.QuestionID, *fb); err != nil {
			return err
		}
		if r.Evaluation != nil {
			r.Evaluation.EvaluatorModel = grader.ModelID()
		}
		if err := persistSummary(ctx, st, rec, summary, r.QuestionID, "apply", string(fb.Verdict), fb.Score, "llm"); err != nil {
			return err
		}
		printGrade(summary, r.QuestionID)
	}

	if summary.PendingSubjectiveCount == 0 {
		fmt.Println("All questions graded.")
	}
	return nil
}

// attachQuestions optionally links results to the assessment document so
// rubric titles can be validated during apply.
func attachQuestions(summary *grading.SubmissionSummary, file string) {
	if file == "" {
		return
	}
	a, err := loadAssessment(file)
	if err != nil {
		return
	}
	for _, r := range summary.Results {
		r.Question = a.Question(r.QuestionID)
	}
}

// persistSummary writes the rescored summary back and appends the grading
// event.
func persistSummary(ctx context.Context, st *store.Store, rec *store.AttemptRecord, summary *grading.SubmissionSummary, questionID, action, verdict string, score float64, source string) error {
	if err := st.EventRepo().AppendGrading(ctx, store.GradingEventData{
		AttemptID:  rec.AttemptID,
		QuestionID: questionID,
		Action:     action,
		Verdict:    verdict,
		Score:      score,
		Source:     source,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "warning: grading event not recorded: %v\n", err)
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return st.AttemptRepo().Update(ctx, &store.AttemptRecord{
		AttemptID:    rec.AttemptID,
		Summary:      raw,
		Percentage:   summary.DeterministicPercentage,
		PendingCount: summary.PendingSubjectiveCount,
	})
}

func printGrade(summary *grading.SubmissionSummary, questionID string) {
	r := summary.Result(questionID)
	if r == nil || r.Evaluation == nil {
		return
	}
	ev := r.Evaluation
	fmt.Printf("  %s: %s", questionID, ev.Verdict)
	if ev.AwardedScore != nil {
		fmt.Printf(" — %s/%s pts", trimNumber(*ev.AwardedScore), trimNumber(r.Max))
	}
	fmt.Println()
	if ev.FeedbackText != "" {
		fmt.Printf("  %s\n", ev.FeedbackText)
	}
}

func resultNumber(summary *grading.SubmissionSummary, questionID string) int {
	for i, r := range summary.Results {
		if r.QuestionID == questionID {
			return i + 1
		}
	}
	return 1
}
