package cmd

import (
	"github.com/abhisek/soloquiz/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "soloquiz [assessment.json]",
	Short: "Self-assessment quiz runner for the terminal",
	Long:  "Soloquiz — take quizzes from JSON assessment files in the terminal, with automatic grading, attempt history, and LLM grading of written responses.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runQuiz(cmd, args[0])
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SOLOQUIZ_DB env var)")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(attemptsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SOLOQUIZ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
