// Package cli implements the cartesian command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/buildinfo"
	"github.com/matzehuels/cartesian/pkg/config"
	chartio "github.com/matzehuels/cartesian/pkg/io"
	"github.com/matzehuels/cartesian/pkg/model"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "cartesian"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Cartesian lays out scrollable, zoomable charts",
		Long:         `Cartesian measures, renders and explores column, line and candlestick charts, and serves the layout engine over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.measureCommand())
	root.AddCommand(c.ticksCommand())
	root.AddCommand(c.markersCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.interpolateCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.stateCommand())
	root.AddCommand(c.completionCommand())
	registerCompletions(root)

	return root
}

// =============================================================================
// Shared Flags
// =============================================================================

// chartFlags are the flags of every command that lays out a model.
type chartFlags struct {
	config string
	width  float64
	height float64
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "chart config file (.toml, .yaml)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width (overrides the config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height (overrides the config)")
}

// load reads the config file, if any, and applies the size flags.
func (f *chartFlags) load() (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return nil, err
		}
	}
	if f.width > 0 {
		cfg.Width = f.width
	}
	if f.height > 0 {
		cfg.Height = f.height
	}
	return cfg, nil
}

// loadModel imports a model file and logs its size.
func loadModel(ctx context.Context, path string) (*model.Model, error) {
	m, err := chartio.ImportJSON(path)
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("loaded model", "path", path, "datasets", len(m.Datasets))
	return m, nil
}
