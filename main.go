package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stock-pulse/api"
	"stock-pulse/catalog"
	"stock-pulse/chart"
	"stock-pulse/config"
	"stock-pulse/loader"
	"stock-pulse/logger"
	"stock-pulse/search"
	"stock-pulse/server"
	"stock-pulse/site"
	"stock-pulse/ticker"

	"github.com/joho/godotenv"
)

const usage = `Usage: stock-pulse [-config file] [serve|build]

Commands:
  serve   run the site, JSON api and ticker over HTTP (default)
  build   write the static site to build.output_dir
`

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger.GetLogger().WithField("panic", r).Fatal("Application panicked")
		}
	}()

	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	command := "serve"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}
	if command != "serve" && command != "build" {
		flag.Usage()
		os.Exit(2)
	}

	log := logger.GetLogger()

	// Load environment variables (if any)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Failed to read .env file")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal(err, "Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal(err, "Invalid configuration")
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		log.WithError(err).Warn("Unknown log level, keeping default")
	}

	// Load the catalog (embedded unless catalog.path is set)
	var ds *loader.Dataset
	if cfg.Catalog.Path != "" {
		ds, err = loader.LoadCatalog(cfg.Catalog.Path)
	} else {
		ds, err = loader.LoadDefault()
	}
	if err != nil {
		logger.Fatal(err, "Failed to load catalog")
	}
	log.WithField("stocks", len(ds.Stocks)).
		WithField("sectors", len(ds.Sectors)).
		Info("Catalog loaded")

	cat, err := catalog.Build(ds, chart.NewSeededGenerator(cfg.Chart.Seed))
	if err != nil {
		logger.Fatal(err, "Failed to build catalog")
	}

	pages, err := site.New(cat, site.Options{Name: cfg.Site.Name, BaseURL: cfg.Site.BaseURL})
	if err != nil {
		logger.Fatal(err, "Failed to load templates")
	}

	if command == "build" {
		if err := pages.Export(cfg.Build.OutputDir); err != nil {
			logger.Fatal(err, "Static export failed")
		}
		return
	}

	// Initialize Search Engine
	engine, err := search.New(cfg.Search.Engine, cat.Stocks())
	if err != nil {
		logger.Fatal(err, "Failed to initialize search engine")
	}
	if closer, ok := engine.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	hub := ticker.NewHub(cat)
	if err := hub.Start(cfg.Ticker.Schedule); err != nil {
		logger.Fatal(err, "Failed to schedule ticker")
	}
	defer hub.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server.Addr, pages, api.NewHandler(engine, cat), hub)
	if err := srv.Run(ctx); err != nil {
		logger.Error(err, "HTTP server failed")
		return
	}
	logger.Info("Shutdown complete")
}
