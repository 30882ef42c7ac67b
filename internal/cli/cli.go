package cli

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/firestore"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/GregMSThompson/vehicle-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/vehicle-dashboard/internal/config"
	"github.com/GregMSThompson/vehicle-dashboard/internal/layout"
	"github.com/GregMSThompson/vehicle-dashboard/internal/store"
)

const (
	appName      = "dashctl"
	defaultOwner = "local"
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	owner      string

	// engineOpts are appended after the configured column count.
	engineOpts []layout.Option
}

// New creates a CLI whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		owner:  defaultOwner,
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
		Short:        "Edit a dashboard widget grid from the terminal",
		Long:         `dashctl loads one owner's widget layout from the configured store, applies a single change and saves it back.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "dashboard.toml", "path to a TOML config file")
	root.PersistentFlags().StringVar(&c.owner, "owner", defaultOwner, "layout owner id")

	root.AddCommand(c.listCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.renameCommand())
	return root
}

// session is an engine bound to the owner's stored layout for one command.
type session struct {
	engine *layout.Engine
	close  func() error
}

func (c *CLI) openSession(ctx context.Context) (*session, error) {
	cfg, err := config.LoadFrom(c.configPath, config.LocalDefault())
	if err != nil {
		return nil, err
	}

	closers := []func() error{}
	closeAll := func() error {
		var first error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	var fs *firestore.Client
	if cfg.Store.Backend == config.BackendFirestore {
		fs, err = bootstrap.InitFirestore(ctx, cfg.ProjectID)
		if err != nil {
			return nil, err
		}
		closers = append(closers, fs.Close)
	}
	backend, closeBackend, err := bootstrap.OpenLayouts(ctx, cfg.Store, fs)
	if err != nil {
		closeAll()
		return nil, err
	}
	closers = append(closers, closeBackend)

	opts := append([]layout.Option{layout.WithColumns(cfg.Grid.Columns)}, c.engineOpts...)
	e, err := layout.New(ctx, store.Scope(backend, c.owner), opts...)
	if err != nil {
		closeAll()
		return nil, err
	}
	c.Logger.Debug("layout loaded", "owner", c.owner, "backend", cfg.Store.Backend, "widgets", len(e.List()))
	return &session{engine: e, close: closeAll}, nil
}

// withSession runs fn against a freshly loaded engine and closes the store afterwards.
func (c *CLI) withSession(cmd *cobra.Command, fn func(ctx context.Context, e *layout.Engine) error) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	s, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.close(); err != nil {
			c.Logger.Warn("closing store", "err", err)
		}
	}()
	return fn(ctx, s.engine)
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
