package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"trendwatch/internal/model"
	"trendwatch/internal/notifier"
	"trendwatch/internal/strategy"
)

var alertCmd = &cobra.Command{
	Use:   "test-alert",
	Short: "Send test BUY and SELL alerts to verify webhook delivery",
	RunE: func(cmd *cobra.Command, args []string) error {
		dn := notifier.NewDiscordNotifier(cfg.Discord.WebhookURL, cfg.Proxy)
		if !dn.Configured() {
			return fmt.Errorf("discord webhook not configured (set DISCORD_WEBHOOK_URL)")
		}

		symbol := cfg.DataSource.Symbol
		snap := &strategy.Snapshot{Price: 150.25, ShortMA: 150.1, LongMA: 149.8}
		for _, sig := range []model.Signal{model.SignalBuy, model.SignalSell} {
			if err := dn.SendSignal(symbol, sig, snap); err != nil {
				return fmt.Errorf("send test %s alert: %w", sig, err)
			}
			log.Printf("[INFO] test %s alert sent", sig)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(alertCmd)
}
