// Package cli implements the graphview command-line interface.
//
// # Commands
//
//   - show: open one or more graph directories
//   - demo: open the built-in sample graph
//   - snapshot: render a graph directory to a PNG file
//
// All commands accept --config (a TOML file, see internal/config) and
// --verbose for debug logging. Loggers travel through context.Context.
package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/wesen/graphview/internal/config"
)

// Backend names accepted by --backend.
const (
	backendTerm   = "term"
	backendRaster = "raster"
)

// app holds the state shared by every command.
type app struct {
	configPath string
	verbose    bool
	cfg        config.Config
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "graphview",
		Short:         "graphview draws graphs and lets you pan and zoom around them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if a.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))

			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", os.Getenv("GRAPHVIEW_CONFIG"), "TOML configuration file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newShowCmd(a))
	root.AddCommand(newDemoCmd(a))
	root.AddCommand(newSnapshotCmd(a))
	return root
}

// Execute runs the CLI until the command finishes or ctx is cancelled.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
