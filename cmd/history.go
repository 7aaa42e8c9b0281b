package cmd

import (
	"github.com/abhisek/soloquiz/internal/app"
	"github.com/abhisek/soloquiz/internal/screens/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past attempts in the TUI",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		// Stored summaries do not carry rubric data, so LLM grading is
		// unavailable here; use `soloquiz grade` with the original file.
		return app.Run(history.New(st.AttemptRepo(), st.EventRepo(), nil))
	},
}
