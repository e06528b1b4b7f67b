package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"SpotFetch/internal/config"
	"SpotFetch/internal/errs"
	"SpotFetch/internal/esios"
	"SpotFetch/internal/export"
	"SpotFetch/internal/model"
	"SpotFetch/internal/notifier"
	"SpotFetch/internal/pipeline"
	"SpotFetch/internal/scheduler"
	"SpotFetch/internal/store"
)

var dateLayouts = []string{"2006-01-02"}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cmd := &cli.Command{
		Name:  "spotfetch",
		Usage: "Fetch ESIOS electricity spot prices into CSV and SQLite",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config file",
				Value:   defaultConfigPath(),
			},
		},
		Commands: []*cli.Command{
			fetchCommand(),
			backfillCommand(),
			serveCommand(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "spotfetch: %v\n", err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "configs/config.yaml"
}

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch a date range and write it to a CSV file",
		Flags: []cli.Flag{
			&cli.TimestampFlag{
				Name:    "start",
				Aliases: []string{"s"},
				Usage:   "Start date in `YYYY-MM-DD` format. If omitted, continues past the last stored row, or from January 1 of the current year",
				Config:  cli.TimestampConfig{Layouts: dateLayouts},
			},
			&cli.TimestampFlag{
				Name:    "end",
				Aliases: []string{"e"},
				Usage:   "End date in `YYYY-MM-DD` format. Defaults to now",
				Config:  cli.TimestampConfig{Layouts: dateLayouts},
			},
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "Destination CSV `PATH`",
				Required: true,
			},
			&cli.IntFlag{
				Name:    "indicator",
				Aliases: []string{"i"},
				Usage:   "ESIOS indicator id. Supported: " + model.IndicatorList(),
			},
			&cli.BoolFlag{
				Name:  "no-store",
				Usage: "Skip the SQLite upsert",
			},
		},
		Action: fetchAction,
	}
}

func fetchAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	indicator, err := resolveIndicator(cmd, cfg)
	if err != nil {
		return err
	}

	st, closeStore := openStore(cfg, cmd.Bool("no-store"))
	defer closeStore()

	p := pipeline.New(esios.NewClient(cfg.Esios.BaseURL, cfg.Token, cfg.Proxy), st, indicator)

	now := time.Now().UTC()
	var start time.Time
	if cmd.IsSet("start") {
		start = model.StartOfDay(cmd.Timestamp("start"))
	} else {
		start, err = p.NextStart(now)
		if err != nil {
			return err
		}
	}
	end := now
	if cmd.IsSet("end") {
		end = model.EndOfDay(cmd.Timestamp("end"))
	}
	if start.After(end) {
		return errs.Newf(errs.KindConfig, "start %s is after end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	log.Printf("[INFO] fetching indicator %d from %s to %s", indicator,
		start.Format(time.RFC3339), end.Format(time.RFC3339))

	series, err := p.FetchAndStore(ctx, start, end)
	if err != nil {
		return err
	}

	outPath := cmd.String("out")
	if err := export.WriteCSV(series, outPath); err != nil {
		return err
	}
	log.Printf("[INFO] saved %d rows to %s", len(series.Records), outPath)
	return nil
}

func backfillCommand() *cli.Command {
	return &cli.Command{
		Name:  "backfill",
		Usage: "Backfill a historical range into SQLite in small chunks",
		Flags: []cli.Flag{
			&cli.TimestampFlag{
				Name:     "start",
				Aliases:  []string{"s"},
				Usage:    "Start date in `YYYY-MM-DD` format",
				Config:   cli.TimestampConfig{Layouts: dateLayouts},
				Required: true,
			},
			&cli.TimestampFlag{
				Name:     "end",
				Aliases:  []string{"e"},
				Usage:    "End date in `YYYY-MM-DD` format",
				Config:   cli.TimestampConfig{Layouts: dateLayouts},
				Required: true,
			},
			&cli.IntFlag{
				Name:  "chunk-days",
				Usage: "Size of each chunk in days",
				Value: 31,
			},
			&cli.DurationFlag{
				Name:  "sleep",
				Usage: "Pause between API calls",
				Value: time.Second,
			},
			&cli.IntFlag{
				Name:    "indicator",
				Aliases: []string{"i"},
				Usage:   "ESIOS indicator id. Supported: " + model.IndicatorList(),
			},
		},
		Action: backfillAction,
	}
}

func backfillAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	indicator, err := resolveIndicator(cmd, cfg)
	if err != nil {
		return err
	}
	if cfg.Database.SQLitePath == "" {
		return errs.New(errs.KindConfig, "backfill requires database.sqlite_path")
	}

	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		return errs.Wrap(errs.KindIO, "open sqlite store", err)
	}
	defer st.Close()

	p := pipeline.New(esios.NewClient(cfg.Esios.BaseURL, cfg.Token, cfg.Proxy), st, indicator)

	rng := model.DateRange{Start: cmd.Timestamp("start"), End: cmd.Timestamp("end")}
	if !rng.Valid() {
		return errs.Newf(errs.KindConfig, "start %s is after end %s",
			rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))
	}

	total, err := p.Backfill(ctx, rng.StartInstant(), rng.EndInstant(),
		int(cmd.Int("chunk-days")), cmd.Duration("sleep"))
	if err != nil {
		return err
	}
	log.Printf("[INFO] backfill done: %d rows stored for indicator %d", total, indicator)
	return nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the daily fetch on a cron schedule until interrupted",
		Action: serveAction,
	}
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, closeStore := openStore(cfg, false)
	defer closeStore()

	p := pipeline.New(esios.NewClient(cfg.Esios.BaseURL, cfg.Token, cfg.Proxy), st, cfg.Esios.Indicator)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if tn.Enabled() {
		log.Println("[INFO] Telegram notifications enabled")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sched := scheduler.NewScheduler(runCtx, p, tn, cfg.Output.CSVPath)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		return errs.Wrap(errs.KindConfig, "register cron task", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing ingest now")
		go sched.RunNow()
	}

	log.Println("[INFO] spotfetch is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
	case <-runCtx.Done():
	}
	return nil
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, errs.Wrap(errs.KindConfig, "load config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveIndicator(cmd *cli.Command, cfg *config.Config) (int, error) {
	indicator := cfg.Esios.Indicator
	if cmd.IsSet("indicator") {
		indicator = int(cmd.Int("indicator"))
	}
	if _, ok := model.Indicators[indicator]; !ok {
		return 0, errs.Newf(errs.KindConfig, "unsupported indicator %d (supported: %s)",
			indicator, model.IndicatorList())
	}
	return indicator, nil
}

// openStore returns the configured SQLite store, or a noop store when
// disabled or unavailable. A broken store never blocks a CSV fetch.
func openStore(cfg *config.Config, disabled bool) (store.Store, func()) {
	if disabled || cfg.Database.SQLitePath == "" {
		return store.NewNoop(), func() {}
	}
	s, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
		return store.NewNoop(), func() {}
	}
	return s, func() { s.Close() }
}
