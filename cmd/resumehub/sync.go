package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"resumehub/internal/app"
	"resumehub/internal/models"

	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync one platform, or all of them, for a user and print the summary",
	Example: "  resumehub sync --user u1 --platform github --credential octocat\n" +
		"  resumehub sync --user u1 --all --github octocat --devfolio builder",
	RunE: runSync,
}

var (
	syncUserID     string
	syncPlatform   string
	syncCredential string
	syncAll        bool
	syncGitHub     string
	syncCoursera   string
	syncDevfolio   string
)

func init() {
	syncCmd.Flags().StringVarP(&syncUserID, "user", "u", "", "User to sync for (required)")
	syncCmd.Flags().StringVarP(&syncPlatform, "platform", "p", "", "Platform to sync: github, coursera or devfolio")
	syncCmd.Flags().StringVarP(&syncCredential, "credential", "c", "", "Username or API key for --platform")
	syncCmd.Flags().BoolVar(&syncAll, "all", false, "Sync every platform")
	syncCmd.Flags().StringVar(&syncGitHub, "github", "", "GitHub username for --all")
	syncCmd.Flags().StringVar(&syncCoursera, "coursera", "", "Coursera API key for --all")
	syncCmd.Flags().StringVar(&syncDevfolio, "devfolio", "", "Devfolio username for --all")

	if err := syncCmd.MarkFlagRequired("user"); err != nil {
		panic(fmt.Sprintf("failed to mark user flag as required: %v", err))
	}
	syncCmd.MarkFlagsMutuallyExclusive("platform", "all")
	syncCmd.MarkFlagsOneRequired("platform", "all")

	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	application, err := app.New()
	if err != nil {
		return err
	}
	defer func() { _ = application.Close() }()

	var summary any
	if syncAll {
		summary, err = application.IntegrationController.SyncAll(cmd.Context(), syncUserID, map[models.Platform]string{
			models.PlatformGitHub:   syncGitHub,
			models.PlatformCoursera: syncCoursera,
			models.PlatformDevfolio: syncDevfolio,
		})
	} else {
		platform, ok := models.ParsePlatform(strings.TrimSpace(syncPlatform))
		if !ok {
			return fmt.Errorf("unknown platform %q", syncPlatform)
		}
		summary, err = application.IntegrationController.SyncPlatform(cmd.Context(), syncUserID, platform, syncCredential)
	}
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}
