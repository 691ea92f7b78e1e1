package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inventory-sim/inventory-sim/sim/sweep"
)

var serveAddr string // Listen address for serve

// serveCmd exposes count and run over HTTP
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve scenario counts and sweeps over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		if logrus.GetLevel() < logrus.DebugLevel {
			gin.SetMode(gin.ReleaseMode)
		}
		server := NewServer(sweep.NewMetrics("inventory_sim"))
		srv := &http.Server{
			Addr:        serveAddr,
			Handler:     corsHandler(server.Router()),
			ReadTimeout: 30 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.Fatalf("Server error: %v", err)
			}
		}()
		logrus.Infof("Serving on %s", serveAddr)

		<-ctx.Done()
		logrus.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.Errorf("Server forced to shutdown: %v", err)
		}
		logrus.Info("Server stopped")
	},
}

// corsHandler allows browser clients on any origin to call the API.
func corsHandler(h http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(h)
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}
