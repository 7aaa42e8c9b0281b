package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/soloquiz/internal/assessment"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete stored attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		file, _ := cmd.Flags().GetString("file")
		yes, _ := cmd.Flags().GetBool("yes")

		if !all && file == "" {
			return fmt.Errorf("pass --file to reset one assessment's attempts, or --all for everything")
		}

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

		ctx := context.Background()
		recs, err := st.AttemptRepo().List(ctx, fingerprintKey, 0)
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}
		if len(recs) == 0 {
			fmt.Println("Nothing to delete.")
			return nil
		}

		if !yes {
			fmt.Printf("This will delete %d attempt(s). Re-run with --yes to confirm.\n", len(recs))
			return nil
		}

		for _, rec := range recs {
			if err := st.AttemptRepo().Delete(ctx, rec.AttemptID); err != nil {
				return err
			}
		}
		fmt.Printf("Deleted %d attempt(s).\n", len(recs))
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("all", false, "Delete attempts of every assessment")
	resetCmd.Flags().StringP("file", "f", "", "Delete attempts of this assessment file only")
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation")
}
