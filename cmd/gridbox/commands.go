// Package gridbox implements the gridbox command line interface.
package gridbox

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/gridbox/internal/version"
	"github.com/arthur-debert/gridbox/pkg/cobrax/topics"
	"github.com/arthur-debert/gridbox/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "gridbox",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)

	// Disable the automatic help command; the topic help system below
	// installs its own.
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Add all commands
	rootCmd.AddCommand(newArchivesCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newVerifyCmd())
	rootCmd.AddCommand(newVersionCmd())

	initHelpTopics(rootCmd)

	return rootCmd
}

// initHelpTopics wires the topic help system when a docs/help directory
// can be found near the executable or the working directory.
func initHelpTopics(rootCmd *cobra.Command) {
	var possiblePaths []string
	if exe, err := os.Executable(); err == nil {
		possiblePaths = append(possiblePaths,
			filepath.Join(filepath.Dir(exe), "..", "..", "docs", "help"),
			filepath.Join(filepath.Dir(exe), "docs", "help"),
		)
	}
	possiblePaths = append(possiblePaths, filepath.Join("docs", "help"))

	for _, helpPath := range possiblePaths {
		if _, err := os.Stat(helpPath); err == nil {
			if err := topics.Install(rootCmd, helpPath, topics.NewGlamourRenderer()); err == nil {
				break
			}
		}
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gridbox version %s\n", version.Version)
			fmt.Printf("  commit: %s\n", version.Commit)
			fmt.Printf("  built:  %s\n", version.Date)
		},
	}
}
