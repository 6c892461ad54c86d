package serve

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"voicescribe/internal/api/server"
	"voicescribe/internal/app"
	"voicescribe/internal/logger"
)

var host string
var port string
var environment string

func init() {
	Cmd.Flags().StringVar(&host, "host", "0.0.0.0", "interface to bind")
	Cmd.Flags().StringVarP(&port, "port", "p", "8080", "port to listen on")
	Cmd.Flags().StringVarP(&environment, "env", "e", "development", "environment: development or production")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server

- Exposes providers, settings, session control, transcripts and exports
- Prometheus metrics at /metrics, health check at /health`,
	Run: func(cmd *cobra.Command, args []string) {
		logg := logger.MustNew(environment != "production")
		defer logg.Sync()

		a, err := app.InitializeApp(logg)
		if err != nil {
			log.Fatalf("initialization failed: %v\n", err)
		}
		defer a.Close()

		cfg := server.DefaultConfig()
		cfg.Host = host
		cfg.Port = port
		cfg.Environment = environment

		slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		srv := server.NewServer(cfg, a, slogger)
		if err := srv.Start(); err != nil {
			log.Fatalf("server failed to start: %v\n", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("shutdown failed: %v\n", err)
		}
	},
}
