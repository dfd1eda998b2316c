package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"trendwatch/internal/backtest"
	"trendwatch/internal/collector"
	"trendwatch/internal/notifier"
	"trendwatch/internal/recorder"
)

var (
	btSymbol  string
	btMonths  int
	btCapital float64
	btShort   int
	btLong    int
	btMock    bool
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Replay the crossover strategy over historical daily closes",
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol := btSymbol
		if symbol == "" {
			symbol = cfg.DataSource.Symbol
		}
		months := btMonths
		if months == 0 {
			months = cfg.Backtest.LookbackMonths
		}
		capital := btCapital
		if capital == 0 {
			capital = cfg.Backtest.InitialCapital
		}
		short, long := btShort, btLong
		if short == 0 {
			short = cfg.Indicators.ShortWindow
		}
		if long == 0 {
			long = cfg.Indicators.LongWindow
		}

		var fetcher collector.Fetcher
		if btMock {
			fetcher = &collector.MockFetcher{}
		} else {
			fetcher = collector.NewYahooFetcher(cfg.Proxy)
		}
		col := collector.NewCollector(fetcher, symbol)

		log.Printf("[INFO] backtesting %s: %d months, windows %d/%d, capital %.2f",
			symbol, months, short, long, capital)
		series, err := col.CollectDaily(months * 31)
		if err != nil {
			return err
		}

		res, err := backtest.New(capital).Run(series, short, long)
		if err != nil {
			return err
		}
		fmt.Print(notifier.FormatBacktestReport(symbol, res))

		if cfg.Database.SQLitePath != "" {
			sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
			if err != nil {
				log.Printf("[WARN] recorder unavailable, run not persisted: %v", err)
				return nil
			}
			defer sr.Close()
			run := &recorder.BacktestRun{
				Symbol:         symbol,
				ShortWindow:    short,
				LongWindow:     long,
				InitialCapital: capital,
				Report:         res.Report,
				Trades:         res.Trades,
			}
			if err := sr.RecordBacktest(run); err != nil {
				log.Printf("[ERROR] record backtest: %v", err)
			} else {
				log.Printf("[INFO] backtest run recorded: %s", run.ID)
			}
		}
		return nil
	},
}

func init() {
	backtestCmd.Flags().StringVar(&btSymbol, "symbol", "", "ticker symbol (defaults to config)")
	backtestCmd.Flags().IntVar(&btMonths, "months", 0, "lookback months of daily closes")
	backtestCmd.Flags().Float64Var(&btCapital, "capital", 0, "initial capital")
	backtestCmd.Flags().IntVar(&btShort, "short", 0, "short MA window")
	backtestCmd.Flags().IntVar(&btLong, "long", 0, "long MA window")
	backtestCmd.Flags().BoolVar(&btMock, "mock", false, "use generated mock data instead of live quotes")
	rootCmd.AddCommand(backtestCmd)
}
