package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cablemap/core"
	"cablemap/export"
	"cablemap/validation"
)

var (
	wiresLayout = filepath.Join("..", "..", "..", "layout", "testdata", "office.wires")
	jsonLayout  = filepath.Join("..", "..", "..", "layout", "testdata", "office.json")
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRouteText(t *testing.T) {
	out, err := run(t, "route", wiresLayout, "--no-color")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "desk1\tgreedy\t") || !strings.Contains(lines[0], "(90,20) -> ") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[4], "4 routed, ") {
		t.Errorf("summary = %q", lines[4])
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("--no-color output contains escape codes")
	}
}

func TestRouteJSON(t *testing.T) {
	for _, strategy := range []string{"greedy", "astar", "simple"} {
		t.Run(strategy, func(t *testing.T) {
			out, err := run(t, "route", jsonLayout, "--json", "--strategy", strategy)
			if err != nil {
				t.Fatal(err)
			}
			var routes []export.Route
			if err := json.Unmarshal([]byte(out), &routes); err != nil {
				t.Fatalf("invalid json: %v\n%s", err, out)
			}
			if len(routes) != 4 {
				t.Fatalf("got %d routes", len(routes))
			}
			first := routes[0]
			if first.ID != "desk1" || first.From != "pc1.eth" || first.To != "hub.p1" {
				t.Errorf("first route = %+v", first)
			}
			if len(first.Points) < 2 || first.Points[0] != [2]float64{90, 20} {
				t.Errorf("first route points = %v", first.Points)
			}
		})
	}
}

func TestRouteFlagOverrides(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"unknown strategy", []string{"--strategy", "fastest"}, core.ErrInvalidConfig},
		{"zero hops", []string{"--max-hops", "0"}, core.ErrInvalidConfig},
		{"negative clearance", []string{"--clearance=-1"}, core.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"route", wiresLayout}, tt.args...)
			if _, err := run(t, args...); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRouteMissingLayout(t *testing.T) {
	if _, err := run(t, "route", filepath.Join(t.TempDir(), "missing.wires")); err == nil {
		t.Error("expected an error for a missing layout")
	}
}

func TestRenderASCII(t *testing.T) {
	out, err := run(t, "render", wiresLayout, "--ascii", "--plain")
	if err != nil {
		t.Fatal(err)
	}
	for _, label := range []string{"pc1", "hub", "nas"} {
		if !strings.Contains(out, label) {
			t.Errorf("frame is missing %q:\n%s", label, out)
		}
	}
	if strings.ContainsAny(out, "─│┌") {
		t.Error("--plain frame contains box-drawing characters")
	}
}

func TestRenderPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "office.png")
	if _, err := run(t, "render", wiresLayout, "-o", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a png")
	}

	if _, err := run(t, "render", wiresLayout, "-o", path, "--ascii"); err == nil {
		t.Error("expected --ascii and -o to conflict")
	}
}

func TestRouteValidate(t *testing.T) {
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"route", wiresLayout, "--validate", "--no-color"})
	if err := root.Execute(); err != nil {
		t.Fatalf("validate failed: %v\n%s", err, errOut.String())
	}
	if !strings.Contains(errOut.String(), "0 errors, ") {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestExport(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"d2", []string{"pc1.width: 80", `pc1 -> hub: "eth -> p1"`, `hub -> nas: "up -> eth"`}},
		{"mermaid", []string{"flowchart LR", `N0["pc1 (computer)"]`}},
		{"json", []string{`"id": "desk1"`, `"from": "pc1.eth"`}},
		{"txt", []string{"pc1", "printer"}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := run(t, "export", wiresLayout, "--format", tt.format)
			if err != nil {
				t.Fatal(err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output is missing %q:\n%s", want, out)
				}
			}
		})
	}

	if _, err := run(t, "export", wiresLayout, "--format", "svg"); !errors.Is(err, export.ErrUnknownFormat) {
		t.Errorf("error = %v, want ErrUnknownFormat", err)
	}

	path := filepath.Join(t.TempDir(), "office.mmd")
	if _, err := run(t, "export", jsonLayout, "-f", "mermaid", "-o", path); err != nil {
		t.Fatal(err)
	}
	if data, err := os.ReadFile(path); err != nil || !strings.HasPrefix(string(data), "flowchart LR") {
		t.Errorf("written file = %q, %v", data, err)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestReportIssuesWriteError(t *testing.T) {
	broken := errors.New("broken pipe")
	issues := []validation.Issue{{Connection: "A", Kind: validation.KindUnreached, Severity: validation.Warning, Segment: -1}}
	for _, tt := range [][]validation.Issue{nil, issues} {
		if err := reportIssues(failingWriter{broken}, tt, false); !errors.Is(err, broken) {
			t.Errorf("reportIssues(%d issues) error = %v, want the write error", len(tt), err)
		}
	}
}
