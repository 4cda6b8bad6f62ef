package app

import (
	"fmt"
	"os"

	"snap-go/internal/config"
	"snap-go/internal/fs"
	"snap-go/internal/render"
	"snap-go/internal/scenario"
	"snap-go/internal/snap"
)

// SnapApp is the application layer between the CLI and the snapshot store.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw paths, and owns the log file until Close.
//
// The store lives only as long as the SnapApp: versions committed by one CLI
// invocation are not visible to the next.
type SnapApp struct {
	cfg      *config.Config
	store    *snap.Store
	importer *fs.Importer
	runner   *scenario.Runner
	logger   snap.Logger
	clock    snap.Clock
	op       *Operation
	logFile  *os.File
}

// ImportResult is the version created by ImportDirectory, checked out again.
type ImportResult struct {
	ID         snap.VersionID
	Containers []*snap.Container
}

// NewSnapApp creates a fully wired SnapApp from the given config.
// operation identifies the CLI command being run (e.g. "Demo", "Import").
// The caller must call Close when done.
func NewSnapApp(cfg *config.Config, operation string) (*SnapApp, error) {
	return newSnapApp(cfg, operation, snap.RealClock{}, snap.UUIDGenerator{})
}

func newSnapApp(cfg *config.Config, operation string, clock snap.Clock, ids snap.IDGenerator) (*SnapApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("checking config: %w", err)
	}
	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	op := NewOperation(ids.New(), operation, clock.Now())
	l, logFile, err := newLogger(cfg.LogDir, op.ID, level, cfg.Log.Stderr)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	if cfg.WorkspaceID != "" {
		l = l.With("workspace", cfg.WorkspaceID)
	}
	logger := &slogAdapter{l: l}

	store := snap.NewStore(logger, clock)
	logger.Info("operation started", "operation", op.Name)

	return &SnapApp{
		cfg:      cfg,
		store:    store,
		importer: fs.NewImporter(cfg.Import.Ignore, cfg.Import.MaxFileSize, logger),
		runner:   scenario.NewRunner(store, clock, logger),
		logger:   logger,
		clock:    clock,
		op:       op,
		logFile:  logFile,
	}, nil
}

// Operation returns the operation this app was created for.
func (a *SnapApp) Operation() *Operation { return a.op }

// RenderOptions resolves output options: format overrides the configured
// format unless empty, and showContent adds to the configured setting. The
// text width comes from config, or from the terminal on stdout.
func (a *SnapApp) RenderOptions(format string, showContent bool) (render.Options, error) {
	if format == "" {
		format = a.cfg.Display.Format
	}
	if err := render.ValidateFormat(format); err != nil {
		return render.Options{}, err
	}

	width := a.cfg.Display.Width
	if width <= 0 {
		width = render.DetectWidth(os.Stdout, 0)
	}
	return render.Options{
		Format:      format,
		ShowContent: showContent || a.cfg.Display.ShowContent,
		Width:       width,
	}, nil
}

// RunDemo runs the built-in demo scenario.
func (a *SnapApp) RunDemo() (*scenario.Result, error) {
	return a.RunScenario(scenario.Demo())
}

// RunScenarioFile reads the scenario at path and runs it.
func (a *SnapApp) RunScenarioFile(path string) (*scenario.Result, error) {
	sc, err := scenario.ReadFromFile(path)
	if err != nil {
		return nil, a.fail(err)
	}
	return a.RunScenario(sc)
}

// RunScenario runs sc against the app's store.
func (a *SnapApp) RunScenario(sc *scenario.Scenario) (*scenario.Result, error) {
	res, err := a.runner.Run(sc)
	if err != nil {
		return res, a.fail(fmt.Errorf("running scenario %s: %w", sc.Name, err))
	}
	return res, nil
}

// ImportDirectory imports the directory at rawPath as a working tree, commits
// it and checks the new version out again.
func (a *SnapApp) ImportDirectory(rawPath string) (*ImportResult, error) {
	root, err := a.importer.ImportDir(rawPath)
	if err != nil {
		return nil, a.fail(fmt.Errorf("importing directory: %w", err))
	}

	id, err := a.store.Commit(nil, []*snap.Container{root})
	if err != nil {
		return nil, a.fail(fmt.Errorf("committing import: %w", err))
	}

	_, containers, err := a.store.Checkout(id, nil, nil)
	if err != nil {
		return nil, a.fail(err)
	}
	return &ImportResult{ID: id, Containers: containers}, nil
}

// Versions returns the versions committed so far by this app.
func (a *SnapApp) Versions() []*snap.Version {
	return a.store.Versions()
}

func (a *SnapApp) fail(err error) error {
	a.op.Fail()
	a.logger.Error("operation failed", "operation", a.op.Name, "error", err)
	return err
}

// Close logs the end of the operation and closes the log file. Calls after
// the first do nothing.
func (a *SnapApp) Close() error {
	if a.logFile == nil {
		return nil
	}
	a.logger.Info("operation finished",
		"operation", a.op.Name,
		"status", a.op.Status,
		"versions", a.store.Len(),
		"elapsed", a.op.Elapsed(a.clock.Now()),
	)

	f := a.logFile
	a.logFile = nil
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	return nil
}
