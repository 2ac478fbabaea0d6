package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cablemap/connections"
	"cablemap/export"
)

func newExportCommand(global *options) *cobra.Command {
	var (
		format string
		output string
		plain  bool
	)
	names := make([]string, 0, len(export.AvailableFormats()))
	for _, f := range export.AvailableFormats() {
		names = append(names, string(f))
	}

	c := &cobra.Command{
		Use:   "export <layout>",
		Short: "Export the routed layout to another diagram format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			exporter, err := export.NewExporter(f)
			if err != nil {
				return err
			}
			if f == export.FormatASCII && plain {
				exporter = export.NewPlainASCIIExporter()
			}

			scene, cfg, err := loadScene(cmd, global, args[0])
			if err != nil {
				return err
			}
			pass, err := connections.NewPass(cfg, nil)
			if err != nil {
				return err
			}
			routed, err := pass.Route(scene)
			if err != nil {
				return err
			}
			text, err := exporter.Export(scene, routed)
			if err != nil {
				return fmt.Errorf("export %s: %w", f, err)
			}

			if output == "" {
				_, err = fmt.Fprint(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", output)
			return nil
		},
	}
	c.Flags().StringVarP(&format, "format", "f", string(export.FormatJSON), "output format: "+strings.Join(names, ", "))
	c.Flags().StringVarP(&output, "output", "o", "", "file to write instead of stdout")
	c.Flags().BoolVar(&plain, "plain", false, "use 7-bit characters for the ascii format")
	return c
}
