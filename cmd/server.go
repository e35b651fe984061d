package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/poi-reserve/internal/analytics"
	"github.com/example/poi-reserve/internal/config"
	"github.com/example/poi-reserve/internal/db"
	"github.com/example/poi-reserve/internal/logging"
	"github.com/example/poi-reserve/internal/migrate"
	"github.com/example/poi-reserve/internal/poi"
	"github.com/example/poi-reserve/internal/web"
)

func newServerCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the POI listing + reservation flow server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logging.New(cfg.LogLevel, cfg.DevMode)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			var pois poi.Finder
			if cfg.DevMode {
				log.Info("dev mode: serving the in-memory catalog")
				pois = poi.NewMemoryRepo(nil)
			} else {
				d, err := db.Open(ctx, cfg.DatabaseURL)
				if err != nil {
					return err
				}
				defer d.Close()
				if err := d.Ping(ctx); err != nil {
					return fmt.Errorf("db ping: %w", err)
				}
				if migrateUp {
					if err := migrate.Up(ctx, d); err != nil {
						return err
					}
				}
				pois = poi.NewPostgresRepo(d)
			}

			var sink analytics.Sink
			if cfg.AnalyticsURL != "" {
				sink = analytics.NewHTTPSink(cfg.AnalyticsURL, log)
			} else {
				sink = analytics.ZapSink{Log: log}
			}
			tracker := analytics.NewTracker(sink)

			hashKey, blockKey, err := cfg.NavKeys()
			if err != nil {
				return err
			}

			srv := &web.Server{
				Pois: pois,
				Wizards: web.NewWizardStore(time.Now, func(sessionID string) {
					tracker.Event("select_session", analytics.Params{"session_id": sessionID})
				}),
				Nav:     web.NewNavState(hashKey, blockKey),
				Tracker: tracker,
				Log:     log,
			}
			log.Info("starting server", zap.String("addr", cfg.HTTPAddr), zap.Bool("dev", cfg.DevMode))
			return web.Start(ctx, cfg.HTTPAddr, srv.Routes(), log)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", true, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}
