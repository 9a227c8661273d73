package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for storing resumes and tailoring them to job descriptions.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	rt, err := setup(cmd)
	if err != nil {
		return err
	}
	defer rt.close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store server.Store
	database, err := rt.database(ctx)
	if err != nil {
		return err
	}
	if database != nil {
		store = database
	} else {
		rt.log.Warn("DATABASE_URL not set, storing records in memory")
		store = server.NewMemoryStore()
	}

	engine, err := rt.engine(ctx, store)
	if err != nil {
		return err
	}

	port := rt.cfg.Port
	if servePort > 0 {
		port = servePort
	}
	srv := server.New(server.Config{
		Port:           port,
		AllowedOrigins: rt.cfg.AllowedOrigins,
		MaxUploadSize:  rt.cfg.MaxUploadSize,
		AllowedTypes:   rt.cfg.AllowedFileTypes,
		UploadDir:      rt.cfg.UploadDirectory,
		RateLimit:      rt.cfg.RateLimitPerMinute,
	}, engine, store, rt.log)

	rt.log.Info("starting resume tailor API",
		zap.Int("port", port),
		zap.String("environment", rt.cfg.Environment),
	)
	return srv.Start(ctx)
}
