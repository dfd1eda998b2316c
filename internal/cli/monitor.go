package cli

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"trendwatch/internal/collector"
	"trendwatch/internal/metrics"
	"trendwatch/internal/notifier"
	"trendwatch/internal/recorder"
	"trendwatch/internal/scheduler"
)

var useMockData bool

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run the scheduled crossover monitor",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Println("[INFO] trendwatch monitor starting...")

		var fetcher collector.Fetcher
		if useMockData {
			fetcher = &collector.MockFetcher{}
		} else {
			fetcher = collector.NewYahooFetcher(cfg.Proxy)
		}
		log.Printf("[INFO] data source: %s", fetcher.Name())

		col := collector.NewCollector(fetcher, cfg.DataSource.Symbol)
		dn := notifier.NewDiscordNotifier(cfg.Discord.WebhookURL, cfg.Proxy)
		if !dn.Configured() {
			log.Println("[WARN] discord webhook not configured, alerts will be logged only")
		}

		var rec recorder.Recorder
		if cfg.Database.SQLitePath != "" {
			sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
			if err != nil {
				log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
				rec = recorder.NewNoopRecorder()
			} else {
				rec = sr
				defer sr.Close()
			}
		} else {
			rec = recorder.NewNoopRecorder()
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if cfg.Metrics.Addr != "" {
			srv := metrics.Serve(cfg.Metrics.Addr)
			defer srv.Close()
		}

		sched := scheduler.NewScheduler(ctx, col, dn, rec,
			cfg.Indicators.ShortWindow, cfg.Indicators.LongWindow, cfg.DataSource.LookbackDays)
		if err := sched.Register(cfg.Schedule.TickCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, executing tick now")
			go sched.RunNow()
		}

		log.Println("[INFO] trendwatch is running. Press Ctrl+C to stop.")

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
		return nil
	},
}

func init() {
	monitorCmd.Flags().BoolVar(&useMockData, "mock", false, "use generated mock data instead of live quotes")
	rootCmd.AddCommand(monitorCmd)
}
