package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/state"
)

// stateDir returns the state directory using the XDG standard
// (~/.local/state/cartesian/).
func stateDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", appName), nil
}

// defaultStore opens the file store in stateDir.
func defaultStore() (state.Store, error) {
	dir, err := stateDir()
	if err != nil {
		return nil, err
	}
	s, err := state.NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// stateCommand creates the state command group.
func (c *CLI) stateCommand() *cobra.Command {
	var stores storeFlags
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect and edit persisted chart scroll and zoom state",
	}
	stores.register(cmd, true)

	open := func(ctx context.Context) (state.Store, error) { return stores.open(ctx, defaultStore) }
	cmd.AddCommand(c.stateGetCommand(open))
	cmd.AddCommand(c.stateSetCommand(open))
	cmd.AddCommand(c.stateDeleteCommand(open))
	cmd.AddCommand(c.statePathCommand())
	return cmd
}

type storeOpener func(ctx context.Context) (state.Store, error)

func (c *CLI) stateGetCommand(open storeOpener) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "get <chart-id>",
		Short: "Print the stored state of a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := open(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			snap, found, err := store.Load(ctx, args[0])
			if err != nil {
				return err
			}
			if !found {
				return errs.New(errs.ErrCodeNotFound, "no state for chart %q", args[0])
			}
			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, snap)
			}
			printKeyValue(w, "scroll", formatNumber(snap.ScrollValue))
			zoom := formatNumber(snap.ZoomValue)
			if snap.ZoomOverridden {
				zoom += StyleDim.Render(" (set by user)")
			}
			printKeyValue(w, "zoom", zoom)
			if !snap.UpdatedAt.IsZero() {
				printKeyValue(w, "updated", snap.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func (c *CLI) stateSetCommand(open storeOpener) *cobra.Command {
	var snap state.Snapshot
	cmd := &cobra.Command{
		Use:   "set <chart-id>",
		Short: "Store the state of a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := open(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Save(ctx, args[0], snap); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Saved state for %s", args[0])
			return nil
		},
	}
	cmd.Flags().Float64Var(&snap.ScrollValue, "scroll", 0, "scroll value in pixels")
	cmd.Flags().Float64Var(&snap.ZoomValue, "zoom", 1, "zoom factor")
	cmd.Flags().BoolVar(&snap.ZoomOverridden, "overridden", false, "mark the zoom as set by the user")
	return cmd
}

func (c *CLI) stateDeleteCommand(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <chart-id>",
		Short: "Delete the stored state of a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := open(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Deleted state for %s", args[0])
			return nil
		},
	}
}

func (c *CLI) statePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the default state directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := stateDir()
			if err != nil {
				return err
			}
			cmd.Println(dir)
			return nil
		},
	}
}
