package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv("SNAP_CONFIG_PATH", "/custom/snap.toml")
		t.Setenv("SNAP_HOME", "/custom/snap")

		got, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		want := Defaults{
			ConfigPath: "/custom/snap.toml",
			BaseDir:    "/custom/snap",
			LogDir:     "/custom/snap/log",
		}
		if *got != want {
			t.Errorf("GetDefaults() = %+v, want %+v", *got, want)
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		t.Setenv("SNAP_CONFIG_PATH", "")
		t.Setenv("SNAP_HOME", "")
		homeDir, err := os.UserHomeDir()
		if err != nil {
			t.Skipf("no home directory: %v", err)
		}

		got, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		base := filepath.Join(homeDir, ".local", "share", "snap")
		want := Defaults{
			ConfigPath: filepath.Join(homeDir, ".config", "snap.toml"),
			BaseDir:    base,
			LogDir:     filepath.Join(base, "log"),
		}
		if *got != want {
			t.Errorf("GetDefaults() = %+v, want %+v", *got, want)
		}
	})

	t.Run("config path and home are independent", func(t *testing.T) {
		t.Setenv("SNAP_CONFIG_PATH", "/etc/snap.toml")
		t.Setenv("SNAP_HOME", "/srv/snap")

		got, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}
		if got.ConfigPath != "/etc/snap.toml" || got.LogDir != "/srv/snap/log" {
			t.Errorf("GetDefaults() = %+v", *got)
		}
	})
}
