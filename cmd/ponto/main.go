package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/spf13/cobra"
	"ponto.app/ponto/config"
	"ponto.app/ponto/core"
	"ponto.app/ponto/infrastructure/devops"
	"ponto.app/ponto/log"
	"ponto.app/ponto/store"
)

const appVersion = "1.0.0"

type app struct {
	configPath  string
	storeDriver string
	dataDir     string
	dsn         string

	cfg        *config.Config
	logger     *slog.Logger
	store      store.Store
	closeStore func(context.Context) error
	engine     *core.Engine
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ponto",
		Short:         "Personal time clock",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}

	cmd.Version = appVersion
	cmd.SetVersionTemplate("ponto v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default $PONTO_CONFIG)")
	cmd.PersistentFlags().StringVar(&a.storeDriver, "store", "", "Store driver: memory, file or mysql")
	cmd.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "Directory for the file store")
	cmd.PersistentFlags().StringVar(&a.dsn, "dsn", "", "MySQL DSN for the mysql store")

	cmd.AddCommand(
		a.punchCmd(),
		a.listCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.summaryCmd(),
		a.exportCmd(),
		a.watchCmd(),
		a.historyCmd(),
		a.serveCmd(),
		a.migrateCmd(),
		a.tokenCmd(),
	)

	return cmd
}

func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	if cfg.SSMParameter != "" {
		params, err := devops.ConnectParameterStore(cmd.Context())
		if err != nil {
			return err
		}
		if err := cfg.Overlay(cmd.Context(), params); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store.Driver = a.storeDriver
	}
	if flags.Changed("data-dir") {
		cfg.Store.Dir = a.dataDir
	}
	if flags.Changed("dsn") {
		cfg.Store.DSN = a.dsn
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log.SetLevel(cfg.LogLevel)
	a.cfg = cfg
	a.logger = log.New("ponto")
	return nil
}

// open builds the store and engine on first use.
func (a *app) open(ctx context.Context) (*core.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}

	loc, err := a.cfg.TimeLocation()
	if err != nil {
		return nil, err
	}

	s, closeFn, err := a.cfg.OpenStore(ctx, log.SubLogger(a.logger, "store"))
	if err != nil {
		return nil, err
	}
	a.store, a.closeStore = s, closeFn

	engine, err := core.NewEngine(ctx, s,
		core.WithLocation(loc),
		core.WithLogger(log.SubLogger(a.logger, "engine")),
	)
	if err != nil {
		return nil, err
	}
	a.engine = engine
	return engine, nil
}

func (a *app) close(ctx context.Context) error {
	if a.closeStore == nil {
		return nil
	}
	err := a.closeStore(ctx)
	a.closeStore = nil
	return err
}

// execute runs the CLI with args and always releases the store afterwards.
func execute(ctx context.Context, args []string, out io.Writer) error {
	a := &app{}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(out)

	err := cmd.ExecuteContext(ctx)
	return errors.Join(err, a.close(context.WithoutCancel(ctx)))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
