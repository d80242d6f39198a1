package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/npezzotti/go-chatstore/internal/cli"
	"github.com/npezzotti/go-chatstore/internal/config"
	"github.com/npezzotti/go-chatstore/internal/database"
	"github.com/npezzotti/go-chatstore/internal/stats"
)

var (
	configPath string
	location   string
	timeZone   string
	dumpStats  bool
)

func main() {
	flag.StringVar(&configPath, "config", "", "path to a YAML config file")
	flag.StringVar(&location, "db", "", "database location, overrides the config file")
	flag.StringVar(&timeZone, "tz", "", "time zone for message dates, overrides the config file")
	flag.BoolVar(&dumpStats, "stats", false, "print store counters to stderr on exit")
	flag.Usage = usage
	flag.Parse()

	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Println("config:", err)
		return 1
	}
	if location != "" || timeZone != "" {
		if location == "" {
			location = cfg.Database.Location
		}
		if timeZone == "" {
			timeZone = cfg.Database.TimeZone
		}
		override, err := config.NewConfig(location, timeZone)
		if err != nil {
			log.Println("config:", err)
			return 1
		}
		override.Database.BusyTimeout = cfg.Database.BusyTimeout
		override.Log = cfg.Log
		cfg = override
	}

	logger := log.New(os.Stderr, cfg.Log.Prefix, log.LstdFlags)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	statsUpdater := stats.NewStatsUpdater()
	statsUpdater.Run()
	defer statsUpdater.Stop()

	store, err := database.Open(ctx, cfg.Database, logger, statsUpdater)
	if err != nil {
		logger.Println("db open:", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Println("db close:", err)
		}
	}()

	app := cli.NewApp(store, os.Stdout)
	err = app.Run(ctx, flag.Args())

	if dumpStats {
		statsUpdater.Flush()
		if err := json.NewEncoder(os.Stderr).Encode(statsUpdater.Snapshot()); err != nil {
			logger.Println("stats:", err)
		}
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrUsage):
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, app.Usage())
		return 2
	default:
		logger.Println(err)
		return 1
	}
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <command> [args]\n\nflags:\n", os.Args[0])
	flag.PrintDefaults()
}
