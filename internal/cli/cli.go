// Package cli implements the pkgview command-line interface.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pkgview/pkg/buildinfo"
	"github.com/matzehuels/pkgview/pkg/config"
	"github.com/matzehuels/pkgview/pkg/errors"
	"github.com/matzehuels/pkgview/pkg/registry"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "pkgview"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	cfg        config.Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "pkgview derives package header metadata for the files view",
		Long:         `pkgview reads npm package documents from a local registry directory and derives the header of the package files view: versions newest first, dist-tags, the version-switching path template, and homepage and GitHub links.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a TOML config file")

	root.AddCommand(c.headerCommand())
	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file, if any, and applies its log level unless
// the level was already raised to debug.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if c.Logger.GetLevel() != LogDebug {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "log level")
		}
		c.SetLogLevel(level)
	}
	c.Logger.Debug("config loaded", "path", c.configPath, "registry", cfg.Registry.Dir)
	return nil
}

// =============================================================================
// Record Loading
// =============================================================================

// recordSource selects where a command reads a package record from.
type recordSource struct {
	file string // single packument file; overrides dir
	dir  string // registry directory; empty means the configured one
}

func (s *recordSource) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&s.file, "file", "f", "", "read the record from a single packument JSON file")
	cmd.Flags().StringVarP(&s.dir, "dir", "d", "", "registry directory (default from config)")
}

// loadRecord resolves "name[@version]" against the selected source and
// returns the record and the concrete version.
func (c *CLI) loadRecord(ctx context.Context, src recordSource, spec string) (*registry.PackageRecord, string, error) {
	name, version := splitSpec(spec)

	var (
		rec *registry.PackageRecord
		err error
	)
	if src.file != "" {
		rec, err = registry.LoadFile(src.file)
		if err == nil && name != "" && rec.Name != name {
			err = errors.New(errors.ErrCodePackageNotFound, "%s contains %s, not %s", src.file, rec.Name, name)
		}
	} else {
		dir := src.dir
		if dir == "" {
			dir = c.cfg.Registry.Dir
		}
		var store *registry.FileStore
		if store, err = registry.NewFileStore(dir); err == nil {
			rec, err = store.Get(ctx, name)
		}
	}
	if err != nil {
		return nil, "", err
	}

	resolved, err := rec.ResolveVersion(version)
	if err != nil {
		return nil, "", err
	}
	c.Logger.Debug("record loaded", "package", rec.Name, "versions", len(rec.Versions), "version", resolved)
	return rec, resolved, nil
}

// splitSpec splits "name@version"; a leading "@" belongs to a scoped name.
func splitSpec(s string) (name, version string) {
	i := strings.LastIndex(s, "@")
	if i <= 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}
