package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/exposim/exposim/study/session"
)

var (
	sessionsDataDir string // Data directory override; empty defers to settings
	sessionsKeep    int    // Artifacts to retain per class; 0 defers to settings
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect and prune session artifacts",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List session artifacts, oldest first",
	Run: func(cmd *cobra.Command, args []string) {
		s := initRun()
		dir := effectiveDataDir(s)
		artifacts := session.ListArtifacts(dir)
		if len(artifacts) == 0 {
			fmt.Printf("no session artifacts in %s\n", dir)
			return
		}
		for _, a := range artifacts {
			fmt.Printf("%-9s %s  %s\n", a.Class, a.SessionID, a.Path)
		}
	},
}

var sessionsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete the oldest session artifacts beyond the retention cap",
	Run: func(cmd *cobra.Command, args []string) {
		s := initRun()
		keep := sessionsKeep
		if keep <= 0 {
			keep = s.RetainSessions
		}
		removed := session.PruneArtifacts(effectiveDataDir(s), keep)
		fmt.Printf("removed %d artifacts (keeping %d per class)\n", removed, keep)
	},
}

func effectiveDataDir(s Settings) string {
	if sessionsDataDir != "" {
		return sessionsDataDir
	}
	return s.DataDir
}

func init() {
	sessionsCmd.PersistentFlags().StringVar(&sessionsDataDir, "data-dir", "", "Session data directory (defaults to settings data_dir)")
	sessionsPruneCmd.Flags().IntVar(&sessionsKeep, "keep", 0, "Artifacts to retain per class (defaults to settings retain_sessions)")
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsPruneCmd)
	rootCmd.AddCommand(sessionsCmd)
}
