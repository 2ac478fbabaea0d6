// Package cmd implements the cablemap command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"cablemap/connections"
	"cablemap/core"
	"cablemap/layout"
)

// options holds the flags shared by every subcommand.
type options struct {
	verbose bool

	strategy      string
	clearance     float64
	startDistance float64
	maxHops       int
	cellSize      float64
	noOptimize    bool
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "cablemap",
		Short: "Orthogonal cable routing for device diagrams",
		Long: `cablemap routes cables between device ports as clean orthogonal lines.

Layouts are JSON or .wires files listing devices, their ports and the
connections between them.

Examples:
  cablemap route office.wires                 # Print routed segments
  cablemap route office.json --json           # Machine-readable output
  cablemap render office.wires -o office.png  # Draw to a PNG
  cablemap render office.wires --ascii        # Draw to the terminal
  cablemap export office.wires -f d2          # Emit D2 source
  cablemap route office.wires --validate      # Check the routes
  cablemap view office.wires --strategy astar # Interactive preview`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				core.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output (debug logging of routing decisions)")
	pf.StringVarP(&opts.strategy, "strategy", "s", "", "router: greedy, astar or simple (default from the layout, else greedy)")
	pf.Float64Var(&opts.clearance, "clearance", 0, "minimum distance between parallel cables")
	pf.Float64Var(&opts.startDistance, "start-distance", 0, "straight run out of a device before the first turn")
	pf.IntVar(&opts.maxHops, "max-hops", 0, "hop limit of the greedy router")
	pf.Float64Var(&opts.cellSize, "cell-size", 0, "grid cell size of the astar router")
	pf.BoolVar(&opts.noOptimize, "no-optimize", false, "keep raw greedy hops, skip clearance snapping")

	root.AddCommand(newRouteCommand(opts), newRenderCommand(opts), newExportCommand(opts), newViewCommand(opts))
	return root
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadScene reads a layout and resolves the routing config: defaults, then
// the layout's routing block, then any flag set on the command line.
func loadScene(cmd *cobra.Command, opts *options, path string) (*connections.Scene, core.Config, error) {
	snap, err := layout.LoadFile(path)
	if err != nil {
		return nil, core.Config{}, err
	}
	scene, err := layout.Build(snap)
	if err != nil {
		return nil, core.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg, err := snap.Routing.Apply(core.DefaultConfig())
	if err != nil {
		return nil, core.Config{}, fmt.Errorf("%s: %w", path, err)
	}

	flags := cmd.Flags()
	if flags.Changed("strategy") {
		s, err := core.ParseStrategy(opts.strategy)
		if err != nil {
			return nil, core.Config{}, err
		}
		cfg.Strategy = s
	}
	if flags.Changed("clearance") {
		cfg.MinimumDistanceBetweenLine = opts.clearance
	}
	if flags.Changed("start-distance") {
		cfg.MinimumStartLineDistance = opts.startDistance
	}
	if flags.Changed("max-hops") {
		cfg.MaxHops = opts.maxHops
	}
	if flags.Changed("cell-size") {
		cfg.GridCellSize = opts.cellSize
	}
	if opts.noOptimize {
		cfg.DisableOptimization = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, core.Config{}, err
	}
	return scene, cfg, nil
}
