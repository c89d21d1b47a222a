package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/visibility"
)

// execute runs the root command with an isolated config and cache home.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var logs, out bytes.Buffer
	root := New(&logs, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	var got []string
	for _, c := range root.Commands() {
		got = append(got, c.Name())
	}
	for _, name := range []string{"cache", "completion", "config", "demo", "gallery", "resolve", "serve", "states"} {
		found := false
		for _, g := range got {
			found = found || g == name
		}
		if !found {
			t.Errorf("subcommand %q not registered (have %v)", name, got)
		}
	}
}

func TestResolveCommandJSON(t *testing.T) {
	out, err := execute(t, "resolve", "--trigger", "10,50,40,20", "--panel", "120,30", "-p", "left top", "--json")
	if err != nil {
		t.Fatalf("resolve: %v\n%s", err, out)
	}

	var got placement.Result
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	want := placement.Result{
		Requested: placement.MustParse("left top"),
		Placement: placement.MustParse("right top"),
		Flipped:   true,
		Style:     placement.At(50, 50),
	}
	if got != want {
		t.Errorf("resolve --json = %+v, want %+v", got, want)
	}
}

func TestResolveCommandTable(t *testing.T) {
	out, err := execute(t, "resolve", "--trigger", "100,50,40,20", "--panel", "120,30", "--all")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, want := range []string{"top left", "bottom right", "left"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestResolveCommandRequiresFlags(t *testing.T) {
	if _, err := execute(t, "resolve", "--panel", "120,30"); err == nil {
		t.Error("resolve without --trigger should fail")
	}
}

func TestConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popover.toml")
	if err := os.WriteFile(path, []byte("[placement]\nmin_panel_width = 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", path, "resolve", "--trigger", "700,50,40,20", "--panel", "50,30", "-p", "right", "--json")
	if err != nil {
		t.Fatalf("resolve: %v\n%s", err, out)
	}
	var got placement.Result
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Flipped || got.Placement.Side != placement.Left {
		t.Errorf("min_panel_width from config not applied: %+v", got)
	}
}

func TestConfigFlagInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "popover.toml")
	if err := os.WriteFile(path, []byte("[placement]\nunknown = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "--config", path, "config"); err == nil {
		t.Error("unknown config key should fail")
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"[placement]", "min_panel_width = 35.0", "[tooltip]", `position = "top"`} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestStatesCommandDOT(t *testing.T) {
	out, err := execute(t, "states", "click", "--dot")
	if err != nil {
		t.Fatalf("states: %v", err)
	}
	if !strings.HasPrefix(out, `digraph "click"`) {
		t.Errorf("states --dot output = %q", out)
	}
	if strings.Contains(out, `digraph "hover"`) {
		t.Error("only the requested mode should be drawn")
	}
}

func TestStatesCommandRejectsUnknownMode(t *testing.T) {
	if _, err := execute(t, "states", "press", "--dot"); err == nil {
		t.Error("unknown mode should fail")
	}
}

func TestParseModes(t *testing.T) {
	got, err := parseModes(nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(visibility.Modes(), got); diff != "" {
		t.Errorf("parseModes(nil) mismatch (-want +got):\n%s", diff)
	}

	got, err = parseModes([]string{"focus", "hover"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]visibility.Mode{visibility.Focus, visibility.Hover}, got); diff != "" {
		t.Errorf("parseModes mismatch (-want +got):\n%s", diff)
	}

	if _, err := parseModes([]string{"hover", "nope"}); err == nil {
		t.Error("parseModes should reject unknown modes")
	}
}

func TestDisplayAddr(t *testing.T) {
	tests := map[string]string{
		":8080":          "localhost:8080",
		"127.0.0.1:9000": "127.0.0.1:9000",
		"":               "",
	}
	for in, want := range tests {
		if got := displayAddr(in); got != want {
			t.Errorf("displayAddr(%q) = %q, want %q", in, got, want)
		}
	}
}
