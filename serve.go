package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-organism/internal/logging"
	"github.com/sheikhrachel/go-organism/model"
	"github.com/sheikhrachel/go-organism/world"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local world service to submit against",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := logging.New(config.SlogLevel())

		addr, _ := cmd.Flags().GetString("addr")
		size, _ := cmd.Flags().GetInt("size")
		density, _ := cmd.Flags().GetFloat64("density")
		seed, _ := cmd.Flags().GetInt64("seed")
		count, _ := cmd.Flags().GetInt("generations")
		metrics, _ := cmd.Flags().GetBool("metrics")

		if size <= 0 {
			return errors.Wrapf(model.ErrInvalidGrid, "[serve] --size %d", size)
		}

		source := world.RandomWorld(size, density, seed)
		if density <= 0 {
			if source, err = world.DeadWorld(size); err != nil {
				return err
			}
		}

		srv, err := world.NewServer(source, count, model.NewStepper(config.Workers), logger)
		if err != nil {
			return errors.Wrap(err, "[serve]")
		}
		router := srv.Router()
		if metrics {
			router.Handle("/metrics", promhttp.Handler())
		}

		httpServer := &http.Server{Addr: addr, Handler: router}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go func() {
			<-ctx.Done()
			_ = httpServer.Close()
		}()

		logger.Info("world service listening", "addr", addr, "size", size, "generations", count)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().Int("size", 10, "Side length of issued worlds")
	serveCmd.Flags().Float64("density", 0.3, "Fraction of live cells in issued worlds; 0 issues dead worlds")
	serveCmd.Flags().Int64("seed", 1, "Random seed for issued worlds")
	serveCmd.Flags().Int("generations", 5, "generationCount issued with each world")
	serveCmd.Flags().Bool("metrics", true, "Expose /metrics")
}
