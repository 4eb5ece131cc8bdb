package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/yourneighborhoodchef/gpuwatch/internal/client"
	"github.com/yourneighborhoodchef/gpuwatch/internal/config"
	"github.com/yourneighborhoodchef/gpuwatch/internal/headers"
	"github.com/yourneighborhoodchef/gpuwatch/internal/logging"
	"github.com/yourneighborhoodchef/gpuwatch/internal/monitor"
	"github.com/yourneighborhoodchef/gpuwatch/internal/notify"
	"github.com/yourneighborhoodchef/gpuwatch/internal/ratelimit"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(logging.Config{Level: cfg.Logging.Level, File: cfg.Logging.File})
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup logging: %v\n", err)
		os.Exit(1)
	}

	httpClient, err := client.New(cfg.API.Timeout.Std())
	if err != nil {
		log.Fatal().Err(err).Msg("create http client")
	}

	hdr := headers.Build(cfg.Headers)
	searcher := client.NewSearcher(httpClient, cfg.API.SearchURL(), hdr, log)
	prober := client.NewProber(httpClient, cfg.API.InventoryURLFor, hdr, log)
	mailer := notify.NewMailer(
		cfg.Email.SMTPHost, cfg.Email.SMTPPort,
		cfg.Email.User, cfg.Email.Password, cfg.Email.Recipient,
		log,
	)

	subjects := monitor.Subjects{
		Baseline: cfg.Email.BaselineSubject,
		Listing:  cfg.Email.ListingSubject,
		Product:  cfg.Email.ProductSubject,
		Down:     cfg.Email.DownSubject,
	}
	tracker := monitor.NewTracker(cfg.MonitoredGPUs)
	engine := monitor.NewEngine(cfg.General.Manufacturer, cfg.MonitoredGPUs, subjects, tracker, prober, mailer, log)

	pacer := ratelimit.NewPacer(cfg.General.CheckInterval.Std())
	defer pacer.Stop()

	log.Info().
		Strs("gpus", cfg.MonitoredGPUs).
		Str("manufacturer", cfg.General.Manufacturer).
		Dur("interval", cfg.General.CheckInterval.Std()).
		Int("max_failures", cfg.General.MaxFailures).
		Msg("monitoring configured")

	loop := monitor.NewLoop(searcher, engine, mailer, pacer, cfg.General.MaxFailures, subjects.Down, log)
	loop.Run()
}
