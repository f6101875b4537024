package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/sheikhrachel/go-organism/cache"
	"github.com/sheikhrachel/go-organism/internal/logging"
	"github.com/sheikhrachel/go-organism/model"
	"github.com/sheikhrachel/go-organism/pipeline"
	"github.com/sheikhrachel/go-organism/utils"
	"github.com/sheikhrachel/go-organism/verify"
	"github.com/sheikhrachel/go-organism/world"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Verify fixtures, then fetch, evolve and submit a world",
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyRunFlags(cmd, &config)
		logger := logging.New(config.SlogLevel())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cases, err := verify.LoadFixtures(config.FixturesPath)
		if err != nil {
			return err
		}

		stepper := model.NewStepper(config.Workers)
		client := world.NewClient(config.WorldURL, config.SubmitURL, config.HTTPTimeout, logger)

		var generator pipeline.Generator = pipeline.StepperGenerator{Stepper: stepper}
		if config.RedisAddr != "" {
			memo := cache.New(config.RedisAddr, stepper, logger, cache.WithTTL(config.CacheTTL))
			defer memo.Close()
			generator = memo
		}

		var opener world.Opener
		if config.OpenBrowser {
			opener = world.BrowserOpener{}
		}

		if config.MetricsAddr != "" {
			go func() {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				logger.Info("starting metrics server", "addr", config.MetricsAddr)
				if err := http.ListenAndServe(config.MetricsAddr, mux); err != nil {
					logger.Error("metrics server stopped", "error", err)
				}
			}()
		}

		p := pipeline.New(pipeline.Deps{
			Fixtures:  cases,
			Verifier:  verify.NewVerifier(stepper, logger),
			Fetcher:   client,
			Submitter: client,
			Generator: generator,
			Opener:    opener,
			Metrics:   pipeline.NewMetrics(prometheus.DefaultRegisterer),
			Logger:    logger,
		})

		out, err := p.Run(ctx)
		if out != nil && out.Report != nil {
			printReport(out.Report)
		}
		if err != nil {
			return err
		}

		if render, _ := cmd.Flags().GetBool("render"); render {
			renderer := model.NewTerminalRenderer(os.Stdout)
			if frameRate, _ := cmd.Flags().GetDuration("animate"); frameRate > 0 {
				renderer.Animate(out.Sequence, frameRate)
			} else {
				renderer.DisplaySequence(out.Sequence)
			}
		}
		fmt.Println(out.ResultURL)
		return nil
	},
}

// applyRunFlags lets explicitly set flags override the config file
func applyRunFlags(cmd *cobra.Command, config *utils.Config) {
	flags := cmd.Flags()
	if flags.Changed("fixtures") {
		config.FixturesPath, _ = flags.GetString("fixtures")
	}
	if flags.Changed("world-url") {
		config.WorldURL, _ = flags.GetString("world-url")
	}
	if flags.Changed("submit-url") {
		config.SubmitURL, _ = flags.GetString("submit-url")
	}
	if flags.Changed("redis") {
		config.RedisAddr, _ = flags.GetString("redis")
	}
	if flags.Changed("metrics-addr") {
		config.MetricsAddr, _ = flags.GetString("metrics-addr")
	}
	if flags.Changed("workers") {
		config.Workers, _ = flags.GetInt("workers")
	}
	if noBrowser, _ := flags.GetBool("no-browser"); noBrowser {
		config.OpenBrowser = false
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("fixtures", "", "Fixture file (JSON, or YAML by extension)")
	runCmd.Flags().String("world-url", "", "URL to fetch the starting world from")
	runCmd.Flags().String("submit-url", "", "URL to post generations to")
	runCmd.Flags().String("redis", "", "Redis address for caching sequences")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address")
	runCmd.Flags().Int("workers", 0, "Stepping workers (0 = one per CPU)")
	runCmd.Flags().Bool("no-browser", false, "Do not open the result in a browser")
	runCmd.Flags().Bool("render", false, "Render every generation to the terminal")
	runCmd.Flags().Duration("animate", 0, "With --render, redraw generations in place at this frame rate")
}
