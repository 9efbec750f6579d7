// ABOUTME: Root CLI command with global flags and logger setup
// ABOUTME: Wires subcommands and loads .env before anything runs
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	dataDir string

	logger = zap.NewNop()
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mindvault",
		Short: "Password-protected therapeutic journal",
		Long: `MindVault is a local, password-protected journaling and AI therapy tool.

Everything you write is encrypted with a key derived from your password
before it touches disk. Journal entries, therapy sessions, therapist
notes, and your profile live in a single SQLite file that is useless
without the password.

The password is never stored. A wrong password opens the vault but
fails on the first read, so keep it safe: there is no recovery.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env may carry API keys for the session commands
			_ = godotenv.Load()

			if quiet {
				logger = zap.NewNop()
				return nil
			}
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all logging")
	cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory (default: XDG data home)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewJournalCmd(),
		NewSessionCmd(),
		NewProfileCmd(),
		NewNotesCmd(),
		NewCondenseCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
