package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/soloquiz/internal/selfupdate"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update soloquiz to the latest version",
	RunE: func(cmd *cobra.Command, args []string) error {
		checkOnly, _ := cmd.Flags().GetBool("check")

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(2 * time.Minute))
		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		if checkOnly {
			return runUpdateCheck(ctx, checker)
		}
		return runUpdate(ctx, checker)
	},
}

func runUpdateCheck(ctx context.Context, checker *selfupdate.Checker) error {
	res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		return err
	}
	if !res.UpdateAvailable {
		fmt.Println("Already running the latest version.")
		return nil
	}
	fmt.Printf("Update available: %s -> %s\n", res.CurrentVersion, res.LatestVersion)
	fmt.Println("Run `soloquiz update` to install it.")
	return nil
}

func runUpdate(ctx context.Context, checker *selfupdate.Checker) error {
	err := checker.Update(ctx, &selfupdate.UpdateInput{CurrentVersion: version},
		func(p selfupdate.UpdateProgress) { fmt.Println(p.Message) })

	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Println("Cannot update a development build. Install a release build first.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Println("Already running the latest version.")
		return nil
	case os.IsPermission(err):
		return fmt.Errorf("%w\n\nTry running: sudo soloquiz update", err)
	default:
		return err
	}
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only check whether a newer release exists")
}
