package cmd

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"cablemap/render"
	"cablemap/terminal"
)

func newViewCommand(global *options) *cobra.Command {
	var plain bool
	c := &cobra.Command{
		Use:   "view <layout>",
		Short: "Preview the routed layout in the terminal",
		Long: `Opens an interactive preview of the routed layout.

Controls:
  1 / 2 / 3   - Re-route with greedy / astar / simple
  Arrow keys  - Scroll
  Q / Escape  - Quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, cfg, err := loadScene(cmd, global, args[0])
			if err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("failed to open terminal: %w", err)
			}
			opts := render.DefaultASCIIOptions()
			if plain {
				opts = render.PlainASCIIOptions()
			}
			return terminal.NewViewer(screen, scene, cfg, opts).Run()
		},
	}
	c.Flags().BoolVar(&plain, "plain", false, "use 7-bit characters")
	return c
}
