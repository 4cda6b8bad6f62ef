package main

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"

	"snap-go/internal/app"
	"snap-go/internal/config"
	"snap-go/internal/render"
	"snap-go/internal/scenario"
	"snap-go/internal/snap"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file, falling back to defaults when none exists.
func loadConfig() (*config.Config, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults.ConfigPath)
	if errors.Is(err, iofs.ErrNotExist) {
		return config.NewConfig("", defaults.BaseDir), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// newApp reads the config and creates a SnapApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Demo", "Import").
func newApp(operation string) (*app.SnapApp, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	a, err := app.NewSnapApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// outputOptions reads the shared output flags of cmd.
func outputOptions(cmd *cobra.Command, a *app.SnapApp) (render.Options, bool, error) {
	format, _ := cmd.Flags().GetString("format")
	content, _ := cmd.Flags().GetBool("content")
	history, _ := cmd.Flags().GetBool("history")

	opts, err := a.RenderOptions(format, content)
	return opts, history, err
}

// printResult prints every commit and checkout of a scenario run in step order.
func printResult(w io.Writer, res *scenario.Result, opts render.Options) error {
	commits, checkouts := res.Commits, res.Checkouts
	for len(commits) > 0 || len(checkouts) > 0 {
		if len(checkouts) == 0 || (len(commits) > 0 && commits[0].Step < checkouts[0].Step) {
			c := commits[0]
			commits = commits[1:]
			fmt.Fprintf(w, "Committed %q as version %d\n", c.Label, c.ID)
			continue
		}

		co := checkouts[0]
		checkouts = checkouts[1:]
		if !co.Found {
			fmt.Fprintf(w, "Version %d not found\n", co.ID)
			continue
		}
		if err := render.Checkout(w, co.ID, co.Entries, co.Containers, opts); err != nil {
			return err
		}
	}
	return nil
}

func printHistory(w io.Writer, versions []*snap.Version) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "History:")
	return render.History(w, versions)
}

// runScenario is the shared body of the demo and run commands.
func runScenario(cmd *cobra.Command, operation string, run func(*app.SnapApp) (*scenario.Result, error)) error {
	a, err := newApp(operation)
	if err != nil {
		return err
	}
	defer a.Close()

	opts, history, err := outputOptions(cmd, a)
	if err != nil {
		return err
	}

	res, err := run(a)
	if res != nil {
		if perr := printResult(os.Stdout, res, opts); perr != nil && err == nil {
			err = perr
		}
	}
	if err != nil {
		return err
	}

	if history {
		return printHistory(os.Stdout, a.Versions())
	}
	return nil
}

var rootCmd = &cobra.Command{
	Use:   "snap",
	Short: "In-memory snapshot version control",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		workspaceID := snap.UUIDGenerator{}.New()
		cfg := config.NewConfig(workspaceID, defaults.BaseDir)

		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Workspace ID: %s\n", workspaceID)
		fmt.Printf("Base Dir: %s\n", defaults.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults.ConfigPath)
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Printf("Workspace ID:  %s\n", cfg.WorkspaceID)
		fmt.Printf("Base Dir:      %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:       %s\n", cfg.LogDir)
		fmt.Printf("Log Level:     %s\n", cfg.Log.Level)
		fmt.Printf("Format:        %s\n", cfg.Display.Format)
		fmt.Printf("Show Content:  %t\n", cfg.Display.ShowContent)
		fmt.Printf("Ignore:        %v\n", cfg.Import.Ignore)
		return nil
	},
}

// demo command
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the built-in demo scenario",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenario(cmd, "Demo", (*app.SnapApp).RunDemo)
	},
}

// run command
var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenario(cmd, "RunScenario", func(a *app.SnapApp) (*scenario.Result, error) {
			return a.RunScenarioFile(args[0])
		})
	},
}

// import command
var importCmd = &cobra.Command{
	Use:   "import DIR",
	Short: "Commit a directory as a version and show it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Import")
		if err != nil {
			return err
		}
		defer a.Close()

		opts, history, err := outputOptions(cmd, a)
		if err != nil {
			return err
		}

		res, err := a.ImportDirectory(args[0])
		if err != nil {
			return err
		}

		if err := render.Checkout(os.Stdout, res.ID, nil, res.Containers, opts); err != nil {
			return err
		}
		if history {
			return printHistory(os.Stdout, a.Versions())
		}
		return nil
	},
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", "Output format: text or yaml (default from config)")
	cmd.Flags().BoolP("content", "c", false, "Show entry content previews")
	cmd.Flags().Bool("history", false, "Print the version history afterwards")
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(demoCmd)
	addOutputFlags(demoCmd)
	rootCmd.AddCommand(runCmd)
	addOutputFlags(runCmd)
	rootCmd.AddCommand(importCmd)
	addOutputFlags(importCmd)
}
