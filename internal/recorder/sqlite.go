package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the monitor writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ticks (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			points      INTEGER,
			last_price  REAL,
			short_ma    REAL,
			long_ma     REAL,
			signal      TEXT,
			base_price  REAL,
			delta_count INTEGER,
			deltas      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ticks_ts ON ticks(timestamp)`,

		`CREATE TABLE IF NOT EXISTS signal_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			signal    TEXT NOT NULL,
			price     REAL,
			short_ma  REAL,
			long_ma   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signal_ts ON signal_events(timestamp)`,

		`CREATE TABLE IF NOT EXISTS backtest_runs (
			id               TEXT PRIMARY KEY,
			timestamp        INTEGER NOT NULL,
			symbol           TEXT NOT NULL,
			short_window     INTEGER,
			long_window      INTEGER,
			initial_capital  REAL,
			final_capital    REAL,
			total_trades     INTEGER,
			winning_trades   INTEGER,
			losing_trades    INTEGER,
			win_rate         REAL,
			total_return     REAL,
			total_return_pct REAL,
			avg_profit       REAL,
			best_trade       REAL,
			worst_trade      REAL,
			max_drawdown     REAL,
			verdict          TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_backtest_ts ON backtest_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			entry_time  INTEGER,
			exit_time   INTEGER,
			entry_price REAL,
			exit_price  REAL,
			shares      REAL,
			profit      REAL,
			profit_pct  REAL,
			FOREIGN KEY (run_id) REFERENCES backtest_runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordTick(snap *TickSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	deltas, err := json.Marshal(snap.Compressed.Deltas)
	if err != nil {
		return fmt.Errorf("marshal deltas: %w", err)
	}

	_, err = r.db.Exec(`INSERT INTO ticks
		(timestamp, symbol, points, last_price, short_ma, long_ma, signal,
		 base_price, delta_count, deltas)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), snap.Symbol, snap.Points, snap.LastPrice,
		snap.ShortMA, snap.LongMA, string(snap.Signal),
		snap.Compressed.BasePrice, snap.Compressed.Count, string(deltas),
	)
	return err
}

func (r *SQLiteRecorder) RecordSignal(evt *SignalEventRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signal_events
		(timestamp, symbol, signal, price, short_ma, long_ma)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, string(evt.Signal),
		evt.Price, evt.ShortMA, evt.LongMA,
	)
	return err
}

func (r *SQLiteRecorder) RecordBacktest(run *BacktestRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rep := run.Report
	if _, err := tx.Exec(`INSERT INTO backtest_runs
		(id, timestamp, symbol, short_window, long_window, initial_capital,
		 final_capital, total_trades, winning_trades, losing_trades, win_rate,
		 total_return, total_return_pct, avg_profit, best_trade, worst_trade,
		 max_drawdown, verdict)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, time.Now().Unix(), run.Symbol, run.ShortWindow, run.LongWindow,
		run.InitialCapital, rep.FinalCapital, rep.TotalTrades,
		rep.WinningTrades, rep.LosingTrades, rep.WinRate,
		rep.TotalReturn, rep.TotalReturnPct, rep.AvgProfit,
		rep.BestTrade, rep.WorstTrade, rep.MaxDrawdown, string(rep.Verdict),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, t := range run.Trades {
		if _, err := tx.Exec(`INSERT INTO trades
			(run_id, entry_time, exit_time, entry_price, exit_price, shares, profit, profit_pct)
			VALUES (?,?,?,?,?,?,?,?)`,
			run.ID, t.EntryTime.Unix(), t.ExitTime.Unix(),
			t.EntryPrice, t.ExitPrice, t.Shares, t.Profit, t.ProfitPct,
		); err != nil {
			return fmt.Errorf("insert trade: %w", err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
