package main

import (
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metrolens/metrolens/internal/bls"
	"github.com/metrolens/metrolens/internal/cache"
	"github.com/metrolens/metrolens/internal/census"
	"github.com/metrolens/metrolens/internal/institutions"
	"github.com/metrolens/metrolens/internal/msa"
	"github.com/metrolens/metrolens/internal/overlay"
	"github.com/metrolens/metrolens/internal/server"
	"github.com/metrolens/metrolens/internal/wage"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the labor-market API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		ttl := cache.DefaultTTL
		if cfg.Cache.TTLHours > 0 {
			ttl = time.Duration(cfg.Cache.TTLHours) * time.Hour
		}

		wageClient := wage.NewClient(wage.ClientOptions{
			UserID: cfg.CareerOneStop.UserID,
			Token:  cfg.CareerOneStop.Token,
		})
		wageService := wage.NewService(wageClient, cache.New[*wage.Record](ttl), "FL")

		boundaries := msa.NewIndex(filepath.Join(cfg.Data.Dir, cfg.Data.BoundaryFile))
		censusClient := census.NewClient()
		overlayService := overlay.NewService(censusClient, boundaries, cache.New[*overlay.Result](ttl))

		srv := server.New(server.Options{
			Config:       cfg,
			Wages:        wageService,
			LAUS:         bls.NewClient(cfg.BLS.Key),
			Population:   censusClient,
			Overlay:      overlayService,
			Boundaries:   boundaries,
			Institutions: institutions.NewStore(filepath.Join(cfg.Data.Dir, cfg.Data.InstitutionsFile)),
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		zap.L().Info("starting",
			zap.Int("port", port),
			zap.Bool("wage_credentials", cfg.CareerOneStop.Configured()),
			zap.Bool("bls_key", cfg.BLS.Key != ""),
		)
		return srv.Run(ctx, port)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
