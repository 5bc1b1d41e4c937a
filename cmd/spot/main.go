package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"SpotWatch/internal/config"
	"SpotWatch/internal/export"
	"SpotWatch/internal/feed"
	"SpotWatch/internal/ingest"
	"SpotWatch/internal/scheduler"
	"SpotWatch/internal/store"
	"SpotWatch/internal/zone"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: %s <command> [arguments]

Commands:
  fetch [ZONE] [HOURS]   fetch day-ahead prices into the database
                         (default: all zones, 24 hours from now)
  export [ZONE]          write stored prices as CSV to stdout
  graph <ZONE> [flags]   show window tables, spot graph and price table
        --hours N        hours around now to display (default from config)
        --timezone TZ    display timezone (e.g. Europe/Helsinki)
  watch                  run the fetch on a cron schedule until interrupted

Environment:
  CONFIG_PATH            config file (default configs/config.yaml)
  ENTSOE_API_TOKEN       API token, overrides api.token
  SQLITE_PATH            database file, overrides database.sqlite_path
`, os.Args[0])
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "fetch":
		err = runFetch(cfg, args)
	case "export":
		err = runExport(cfg, args)
	case "graph":
		err = runGraph(cfg, args)
	case "watch":
		err = runWatch(cfg)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("[FATAL] %s: %v", cmd, err)
	}
}

func openStore(cfg *config.Config) (store.TimelineStore, error) {
	return store.NewSQLiteStore(cfg.Database.SQLitePath)
}

func runFetch(cfg *config.Config, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	zones, err := cfg.FetchZones()
	if err != nil {
		return err
	}
	hours := cfg.Fetch.Hours
	if len(args) > 0 {
		z, ok := zone.FromCode(args[0])
		if !ok {
			return fmt.Errorf("unknown bidding zone %q", args[0])
		}
		zones = []zone.Zone{z}
		if len(args) > 1 {
			h, err := strconv.Atoi(args[1])
			if err != nil || h <= 0 {
				return fmt.Errorf("invalid hours value %q", args[1])
			}
			hours = h
		}
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	fetcher := feed.NewEntsoeFetcher(cfg.API.BaseURL, cfg.API.Token, cfg.Proxy)
	in := ingest.NewIngestor(fetcher, st)

	start := time.Now().UTC().Truncate(time.Hour)
	end := start.Add(time.Duration(hours) * time.Hour)
	log.Printf("[INFO] fetching %d zones, %s to %s", len(zones),
		start.Format(time.RFC3339), end.Format(time.RFC3339))

	sum, err := in.Run(context.Background(), zones, start, end)
	if err != nil {
		return err
	}
	log.Printf("[INFO] fetch done: %d zones ok, %d empty, %d failed, %d points stored",
		sum.ZonesFetched, sum.ZonesEmpty, sum.ZonesFailed, sum.PointsStored)
	return nil
}

func runExport(cfg *config.Config, args []string) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	zones := zone.All()
	if len(args) > 0 {
		z, ok := zone.FromCode(args[0])
		if !ok {
			return fmt.Errorf("unknown bidding zone %q", args[0])
		}
		zones = []zone.Zone{z}
	}

	// The whole stored history, every zone in sequence.
	start := time.Unix(0, 0)
	end := time.Now().UTC().Add(14 * 24 * time.Hour)

	var all []store.TimelinePoint
	for _, z := range zones {
		points, err := st.Range(z.Code, start, end)
		if err != nil {
			return err
		}
		all = append(all, points...)
	}
	return export.WriteCSV(os.Stdout, all)
}

func runGraph(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("graph", flag.ContinueOnError)
	hours := fs.Int("hours", cfg.Display.Hours, "hours around now to display")
	tzName := fs.String("timezone", cfg.Display.Timezone, "display timezone")

	if len(args) < 1 {
		usage()
		return fmt.Errorf("graph requires a bidding zone argument")
	}
	z, ok := zone.FromCode(args[0])
	if !ok {
		return fmt.Errorf("unknown bidding zone %q", args[0])
	}
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	loc, err := time.LoadLocation(*tzName)
	if err != nil {
		return fmt.Errorf("invalid timezone %q", *tzName)
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	now := time.Now().UTC()
	points, err := st.Range(z.Code,
		now.Add(-time.Duration(*hours)*time.Hour),
		now.Add(time.Duration(*hours)*time.Hour))
	if err != nil {
		return err
	}

	return export.RenderSummary(os.Stdout, z.Code, points, export.RenderOptions{
		Location: loc,
		Now:      now,
	})
}

func runWatch(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	zones, err := cfg.FetchZones()
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := feed.NewEntsoeFetcher(cfg.API.BaseURL, cfg.API.Token, cfg.Proxy)
	in := ingest.NewIngestor(fetcher, st)

	sched := scheduler.NewScheduler(ctx, in, zones, cfg.Fetch.Hours)
	if err := sched.Register(cfg.Fetch.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, fetching now")
		go sched.RunNow()
	}

	log.Printf("[INFO] watching %d zones on schedule %q. Press Ctrl+C to stop.", len(zones), cfg.Fetch.Cron)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	return nil
}
