package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"ponto.app/ponto/config"
	"ponto.app/ponto/log"
	"ponto.app/ponto/security"
	"ponto.app/ponto/web"
	"ponto.app/ponto/web/common"
)

func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Address
			}
			secret, err := a.cfg.AuthSecret()
			if err != nil {
				return err
			}
			if secret == nil {
				a.logger.Warn("auth.secret is empty, the API is open")
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			router := web.NewRouter(common.NewHandler(e), secret)
			return web.Serve(cmd.Context(), addr, router, log.SubLogger(a.logger, "web"))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the MySQL schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Store.Driver != config.DriverMySQL {
				return fmt.Errorf("migrate needs the mysql store, configured driver is %q", a.cfg.Store.Driver)
			}
			_, dm, err := a.cfg.OpenGormStore(cmd.Context())
			if err != nil {
				return err
			}
			defer dm.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func (a *app) tokenCmd() *cobra.Command {
	var (
		name   string
		device string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token signed with auth.secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := a.cfg.AuthSecret()
			if err != nil {
				return err
			}
			if secret == nil {
				return fmt.Errorf("auth.secret is not configured")
			}
			if ttl <= 0 {
				ttl = a.cfg.Auth.TTL
			}

			token, err := security.CreateToken(name, device, secret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "ponto", "Name stored in the token")
	cmd.Flags().StringVar(&device, "device", "", "Device the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default from config)")
	return cmd
}
