package cli

import (
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cartesian/pkg/chart"
	"github.com/matzehuels/cartesian/pkg/model"
	"github.com/matzehuels/cartesian/pkg/state"
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var (
		flags   chartFlags
		stores  storeFlags
		id      string
		noState bool
	)
	cmd := &cobra.Command{
		Use:   "explore <model.json>",
		Short: "Scroll, zoom and inspect a chart in the terminal",
		Long: `Explore draws the chart in the terminal and animates scrolling, zooming and
model reloads. Scroll and zoom are restored from and saved to the state
store under the chart ID.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			path := args[0]

			cfg, err := flags.load()
			if err != nil {
				return err
			}
			chartCfg, err := cfg.Build(termMeasurer)
			if err != nil {
				return err
			}
			chartCfg.Logger = logger
			ch, err := chart.New(chartCfg)
			if err != nil {
				return err
			}
			m, err := loadModel(ctx, path)
			if err != nil {
				return err
			}
			ch.SetModel(ctx, time.Now(), m)

			var store state.Store
			if !noState {
				if store, err = stores.open(ctx, defaultStore); err != nil {
					return err
				}
				defer store.Close()
				if id == "" {
					id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
				}
				snap, found, err := store.Load(ctx, id)
				if err != nil {
					return err
				}
				if found {
					logger.Debug("restoring state", "id", id, "scroll", snap.ScrollValue, "zoom", snap.ZoomValue)
					ch.Restore(ctx, snap)
				}
			}

			load := func() (*model.Model, error) { return loadModel(ctx, path) }
			p := tea.NewProgram(NewExploreModel(ctx, ch, load, store, id),
				tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}
	flags.register(cmd)
	stores.register(cmd, false)
	cmd.Flags().StringVar(&id, "id", "", "chart ID for saved state (default: model file name)")
	cmd.Flags().BoolVar(&noState, "no-state", false, "do not restore or save state")
	return cmd
}
