package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VictorTPhan/ella-app/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "ella",
	Short: "Korean pronunciation quiz",
	Long:  "Ella: a terminal game for practicing Korean pronunciation with AI-generated quizzes.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ELLA_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides ELLA_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-file", "", "Path to log file (overrides ELLA_LOG env var)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level")
	rootCmd.Flags().Bool("skip-welcome", false, "Start at the home screen")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ELLA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
