package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/soloquiz/internal/assessment"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <assessment.json>",
	Short: "Validate an assessment file without taking it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read assessment: %w", err)
		}

		a, issues := assessment.Parse(raw)
		if len(issues) > 0 {
			for _, issue := range issues {
				fmt.Println(issue)
			}
			return fmt.Errorf("%d validation issue(s)", len(issues))
		}

		kinds := make(map[assessment.Kind]int)
		for i := range a.Questions {
			kinds[a.Questions[i].Kind]++
		}

		fmt.Printf("OK: %q — %d questions", a.Meta.Title, len(a.Questions))
		if a.Meta.TimeLimitSec > 0 {
			fmt.Printf(", %ds time limit", a.Meta.TimeLimitSec)
		}
		fmt.Println()
		for _, k := range assessment.Kinds {
			if n := kinds[k]; n > 0 {
				fmt.Printf("  %-10s %d\n", k, n)
			}
		}
		return nil
	},
}
