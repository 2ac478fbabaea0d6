package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ttacon/chalk"

	"cablemap/connections"
	"cablemap/export"
	"cablemap/validation"
)

type routeOptions struct {
	json     bool
	noColor  bool
	validate bool
}

func newRouteCommand(global *options) *cobra.Command {
	ro := &routeOptions{}
	c := &cobra.Command{
		Use:   "route <layout>",
		Short: "Route every connection and print the segments",
		Long: `Routes the connections of a layout in declaration order and prints one
line per connection. Degraded routes (a fallback was used or the target
was not reached) are highlighted.

With --validate every route is checked afterwards; issues go to stderr
and the command fails if any route is broken.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if ro.json {
				err = writeRoutesJSON(cmd.OutOrStdout(), routed)
			} else {
				err = writeRoutesText(cmd.OutOrStdout(), routed, !ro.noColor)
			}
			if err != nil || !ro.validate {
				return err
			}
			return reportIssues(cmd.ErrOrStderr(), validation.ForConfig(cfg).Validate(scene, routed), !ro.noColor)
		},
	}
	c.Flags().BoolVar(&ro.json, "json", false, "print routes as JSON")
	c.Flags().BoolVar(&ro.noColor, "no-color", false, "disable coloured output")
	c.Flags().BoolVar(&ro.validate, "validate", false, "check the routes and fail on broken ones")
	return c
}

func writeRoutesJSON(w io.Writer, routed []connections.RoutedConnection) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export.Routes(routed))
}

func writeRoutesText(w io.Writer, routed []connections.RoutedConnection, color bool) error {
	degraded := 0
	for _, rc := range routed {
		status := "ok"
		if rc.Degraded {
			status = "degraded"
			degraded++
		}
		if color {
			if rc.Degraded {
				status = chalk.Yellow.Color(status)
			} else {
				status = chalk.Green.Color(status)
			}
		}

		pts := rc.Path.Points()
		parts := make([]string, len(pts))
		for i, p := range pts {
			parts[i] = p.String()
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rc.ID(), rc.Strategy, status, strings.Join(parts, " -> ")); err != nil {
			return err
		}
	}

	summary := fmt.Sprintf("%d routed, %d degraded", len(routed), degraded)
	if color && degraded > 0 {
		summary = fmt.Sprint(chalk.Yellow, summary, chalk.Reset)
	}
	_, err := fmt.Fprintln(w, summary)
	return err
}

// errBrokenRoutes is returned by --validate when a route has errors.
var errBrokenRoutes = errors.New("routes failed validation")

func reportIssues(w io.Writer, issues []validation.Issue, color bool) error {
	for _, i := range issues {
		line := i.String()
		if color {
			if i.Severity == validation.Error {
				line = chalk.Red.Color(line)
			} else {
				line = chalk.Yellow.Color(line)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	errs, warns := validation.Summary(issues)
	if _, err := fmt.Fprintf(w, "%d errors, %d warnings\n", errs, warns); err != nil {
		return err
	}
	if errs > 0 {
		return fmt.Errorf("%w: %d errors", errBrokenRoutes, errs)
	}
	return nil
}
