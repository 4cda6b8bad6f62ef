package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"snap-go/internal/config"
	"snap-go/internal/render"
	"snap-go/internal/snap"
	"snap-go/internal/testutil"
)

func newTestApp(t *testing.T, cfg *config.Config) *SnapApp {
	t.Helper()
	a, err := newSnapApp(cfg, "Test", testutil.TickingClock(time.Second), testutil.NewStubIDGenerator())
	if err != nil {
		t.Fatalf("newSnapApp() error = %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func readLog(t *testing.T, cfg *config.Config) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.LogDir, logFileName))
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	return string(data)
}

func TestNewSnapApp(t *testing.T) {
	t.Run("rejects invalid config", func(t *testing.T) {
		tests := []struct {
			name   string
			modify func(*config.Config)
		}{
			{name: "missing log dir", modify: func(c *config.Config) { c.LogDir = "" }},
			{name: "bad log level", modify: func(c *config.Config) { c.Log.Level = "chatty" }},
			{name: "bad display format", modify: func(c *config.Config) { c.Display.Format = "xml" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				cfg := config.NewConfig("ws-1", t.TempDir())
				tt.modify(cfg)
				if _, err := NewSnapApp(cfg, "Test"); err == nil {
					t.Fatal("NewSnapApp() expected error")
				}
			})
		}
	})

	t.Run("tags log lines with the operation id", func(t *testing.T) {
		cfg := config.NewConfig("ws-1", t.TempDir())
		a := newTestApp(t, cfg)

		if a.Operation().ID != "id-1" {
			t.Errorf("Operation().ID = %q, want id-1", a.Operation().ID)
		}
		if err := a.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		log := readLog(t, cfg)
		for _, want := range []string{"\tid-1\toperation started", "workspace=ws-1", "operation finished", "status=success"} {
			if !strings.Contains(log, want) {
				t.Errorf("log missing %q:\n%s", want, log)
			}
		}
	})
}

func TestSnapApp_RunDemo(t *testing.T) {
	cfg := config.NewConfig("ws-1", t.TempDir())
	a := newTestApp(t, cfg)

	res, err := a.RunDemo()
	if err != nil {
		t.Fatalf("RunDemo() error = %v", err)
	}
	if len(res.Commits) != 2 {
		t.Errorf("len(Commits) = %d, want 2", len(res.Commits))
	}

	versions := a.Versions()
	if len(versions) != 2 {
		t.Fatalf("len(Versions()) = %d, want 2", len(versions))
	}
	if !versions[0].CommittedAt().Before(versions[1].CommittedAt()) {
		t.Error("versions not committed in clock order")
	}
}

func TestSnapApp_RunScenarioFile(t *testing.T) {
	t.Run("runs a valid file", func(t *testing.T) {
		cfg := config.NewConfig("ws-1", t.TempDir())
		a := newTestApp(t, cfg)

		path := filepath.Join(t.TempDir(), "s.yaml")
		os.WriteFile(path, []byte("name: s\nsteps:\n  - folder: a\n  - commit: c\n  - checkout: 1\n    expect: [a/]\n"), 0644)

		res, err := a.RunScenarioFile(path)
		if err != nil {
			t.Fatalf("RunScenarioFile() error = %v", err)
		}
		if len(res.Checkouts) != 1 || !res.Checkouts[0].Found {
			t.Errorf("Checkouts = %+v, want one found checkout", res.Checkouts)
		}
		if a.Operation().Failed() {
			t.Error("operation marked failed")
		}
	})

	t.Run("marks the operation failed", func(t *testing.T) {
		cfg := config.NewConfig("ws-1", t.TempDir())
		a := newTestApp(t, cfg)

		path := filepath.Join(t.TempDir(), "s.yaml")
		os.WriteFile(path, []byte("name: s\nsteps:\n  - checkout: 5\n"), 0644)

		_, err := a.RunScenarioFile(path)
		if !errors.Is(err, snap.ErrVersionNotFound) {
			t.Fatalf("RunScenarioFile() error = %v, want ErrVersionNotFound", err)
		}
		if !a.Operation().Failed() {
			t.Error("operation not marked failed")
		}

		a.Close()
		if log := readLog(t, cfg); !strings.Contains(log, "status=error") {
			t.Errorf("log missing status=error:\n%s", log)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		a := newTestApp(t, config.NewConfig("ws-1", t.TempDir()))
		if _, err := a.RunScenarioFile(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
			t.Fatal("RunScenarioFile() expected error")
		}
	})
}

func TestSnapApp_ImportDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")
	os.MkdirAll(filepath.Join(dir, "src"), 0755)
	os.MkdirAll(filepath.Join(dir, "tmp"), 0755)
	os.WriteFile(filepath.Join(dir, "README"), []byte("readme"), 0644)
	os.WriteFile(filepath.Join(dir, "src", "main.go"), []byte("package main"), 0644)
	os.WriteFile(filepath.Join(dir, "tmp", "scratch"), []byte("x"), 0644)

	cfg := config.NewConfig("ws-1", t.TempDir())
	cfg.Import.Ignore = append(cfg.Import.Ignore, "tmp")
	a := newTestApp(t, cfg)

	res, err := a.ImportDirectory(dir)
	if err != nil {
		t.Fatalf("ImportDirectory() error = %v", err)
	}
	if res.ID != 1 {
		t.Errorf("ID = %d, want 1", res.ID)
	}

	got := snap.Paths(nil, res.Containers)
	want := []string{"project/", "project/README", "project/src/", "project/src/main.go"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("paths = %v, want %v", got, want)
	}

	if _, err := a.ImportDirectory(filepath.Join(dir, "README")); err == nil {
		t.Error("ImportDirectory() on a file expected error")
	}
}

func TestSnapApp_RenderOptions(t *testing.T) {
	cfg := config.NewConfig("ws-1", t.TempDir())
	cfg.Display.Format = render.FormatYAML
	cfg.Display.Width = 100
	a := newTestApp(t, cfg)

	tests := []struct {
		name        string
		format      string
		showContent bool
		want        render.Options
		wantErr     bool
	}{
		{name: "config defaults", want: render.Options{Format: render.FormatYAML, Width: 100}},
		{name: "flag overrides format", format: render.FormatText, want: render.Options{Format: render.FormatText, Width: 100}},
		{name: "content flag", showContent: true, want: render.Options{Format: render.FormatYAML, ShowContent: true, Width: 100}},
		{name: "unknown format", format: "html", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.RenderOptions(tt.format, tt.showContent)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RenderOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("RenderOptions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
