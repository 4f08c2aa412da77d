package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	handler "daily-digest/api"
	"daily-digest/config"
	"daily-digest/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the published pages and the archive API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadServe(v)
			log := newLogger(v, cmd)
			gin.SetMode(ginMode(cfg.LogLevel))

			srv := &http.Server{
				Addr:    cfg.Addr,
				Handler: handler.NewRouter(cfg.OutputDir),
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("starting digest server", "addr", cfg.Addr, "dir", cfg.OutputDir)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			log.Info("shutdown server")
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address")
	v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}

// ginMode keeps gin's route dump and request log for debug runs only.
func ginMode(level string) string {
	if logger.ParseLevel(level) == slog.LevelDebug {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}
