package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cablemap/connections"
	"cablemap/core"
	"cablemap/render"
)

type renderOptions struct {
	output string
	ascii  bool
	plain  bool
	scale  float64
}

func newRenderCommand(global *options) *cobra.Command {
	ro := &renderOptions{}
	c := &cobra.Command{
		Use:   "render <layout>",
		Short: "Draw the routed layout to a PNG or the terminal",
		Long: `Routes a layout and draws it. With -o the drawing is written as a PNG;
with --ascii (or without -o) a character frame is printed.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if ro.ascii && ro.output != "" {
				return errors.New("--ascii and --output are mutually exclusive")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, cfg, err := loadScene(cmd, global, args[0])
			if err != nil {
				return err
			}
			if ro.ascii || ro.output == "" {
				return renderASCII(cmd, scene, cfg, ro)
			}
			return renderPNG(cmd, scene, cfg, ro)
		},
	}
	c.Flags().StringVarP(&ro.output, "output", "o", "", "PNG file to write")
	c.Flags().BoolVar(&ro.ascii, "ascii", false, "print a character frame instead of a PNG")
	c.Flags().BoolVar(&ro.plain, "plain", false, "use 7-bit characters in the frame")
	c.Flags().Float64Var(&ro.scale, "scale", 1, "PNG pixels per layout unit")
	return c
}

func route(scene *connections.Scene, cfg core.Config, sink connections.Sink) error {
	pass, err := connections.NewPass(cfg, sink)
	if err != nil {
		return err
	}
	_, err = pass.Route(scene)
	return err
}

func renderASCII(cmd *cobra.Command, scene *connections.Scene, cfg core.Config, ro *renderOptions) error {
	opts := render.DefaultASCIIOptions()
	if ro.plain {
		opts = render.PlainASCIIOptions()
	}
	frame, err := render.NewASCII(scene, opts)
	if err != nil {
		return err
	}
	if err := route(scene, cfg, frame); err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), frame.String())
	return err
}

func renderPNG(cmd *cobra.Command, scene *connections.Scene, cfg core.Config, ro *renderOptions) (err error) {
	opts := render.DefaultPNGOptions()
	opts.Scale = ro.scale
	img, err := render.NewPNG(scene, opts)
	if err != nil {
		return err
	}
	defer img.Close()

	if err := route(scene, cfg, img); err != nil {
		return err
	}

	f, err := os.Create(ro.output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := img.Encode(f); err != nil {
		return err
	}

	w, h := img.Size()
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%dx%d)\n", ro.output, w, h)
	return nil
}
