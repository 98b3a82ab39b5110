package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/crawl"
	"github.com/LOOKALIKE-AI/Leads/pkg/extract"
	"github.com/LOOKALIKE-AI/Leads/pkg/fetch"
	"github.com/LOOKALIKE-AI/Leads/pkg/leadio"
	"github.com/LOOKALIKE-AI/Leads/pkg/models"
	"github.com/LOOKALIKE-AI/Leads/pkg/parse"
	"github.com/LOOKALIKE-AI/Leads/pkg/pipeline"
	"github.com/LOOKALIKE-AI/Leads/pkg/revenue"
	"github.com/LOOKALIKE-AI/Leads/pkg/score"
	"github.com/LOOKALIKE-AI/Leads/pkg/serp"
	"github.com/LOOKALIKE-AI/Leads/pkg/storage"
)

func main() {
	// --- Early Initialization & Flags ---
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel) // Default level

	configFileFlag := flag.String("config", "config.yaml", "Path to YAML config file")
	inputFileFlag := flag.String("input", "", "CSV file of store URLs to scan")
	outputFileFlag := flag.String("output", "leads.csv", "Report file (.csv or .xlsx)")
	logLevelFlag := flag.String("loglevel", "info", "Log level (debug, info, warn, error, fatal)")
	resumeFlag := flag.Bool("resume", false, "Keep existing state DB and skip already-processed domains")
	discoverFlag := flag.Bool("discover", false, "Run configured SERP discovery queries for extra candidates")
	batchNameFlag := flag.String("batch", "leads", "Batch name, keys the state DB directory")
	flag.Parse()

	// --- Logger Configuration ---
	level, err := logrus.ParseLevel(*logLevelFlag)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", *logLevelFlag, err)
	} else {
		log.SetLevel(level)
		log.Infof("Setting log level to: %s", level.String())
	}

	// --- Secrets ---
	_ = godotenv.Load()
	serpAPIKey := os.Getenv("SERPAPI_KEY")
	if serpAPIKey == "" {
		log.Warn("SERPAPI_KEY not set; revenue lookup and SERP discovery are disabled.")
	}

	// --- Load Application Configuration ---
	appCfg := &config.AppConfig{}
	if _, statErr := os.Stat(*configFileFlag); statErr == nil {
		log.Infof("Loading configuration from %s", *configFileFlag)
		yamlFile, err := os.ReadFile(*configFileFlag)
		if err != nil {
			log.Fatalf("Read config file '%s' error: %v", *configFileFlag, err)
		}
		if err := yaml.Unmarshal(yamlFile, appCfg); err != nil {
			log.Fatalf("Parse config file '%s' error: %v", *configFileFlag, err)
		}
	} else {
		log.Infof("Config file '%s' not found, using built-in defaults", *configFileFlag)
	}

	warnings, err := appCfg.Validate()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	for _, w := range warnings {
		log.Warn(w)
	}
	logAppConfig(appCfg, log)

	// --- Global Context & Signal Handling ---
	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Warnf("Received signal: %v. Initiating graceful shutdown...", sig)
		cancelRun()
		select {
		case sig = <-sigChan:
			log.Warnf("Received second signal: %v. Forcing exit.", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			log.Warn("Graceful shutdown period exceeded after signal. Forcing exit.")
			os.Exit(1)
		}
	}()
	defer signal.Stop(sigChan)

	// --- Gather Candidates ---
	var candidates []models.StoreCandidate
	if *inputFileFlag != "" {
		fileCandidates, err := leadio.ReadCandidates(*inputFileFlag, log)
		if err != nil {
			log.Fatalf("Input error: %v", err)
		}
		candidates = append(candidates, fileCandidates...)
	}

	var provider serp.Provider
	if serpAPIKey != "" {
		provider = serp.NewSerpAPIClient(fetch.NewClient(appCfg.HTTPClientSettings, log), serpAPIKey, appCfg.Serp, log)
	}

	if *discoverFlag {
		if provider == nil {
			log.Fatal("Discovery requested but SERPAPI_KEY is not set.")
		}
		discovered := pipeline.DiscoverCandidates(runCtx, provider, appCfg.Serp, log)
		log.Infof("Discovery surfaced %d candidates", len(discovered))
		candidates = append(candidates, discovered...)
	}

	if len(candidates) == 0 {
		log.Fatal("No candidates to scan: provide -input and/or -discover.")
	}

	// --- Initialize Components ---
	log.Info("Initializing components...")

	var store storage.LeadStore
	if appCfg.StateDir != "" {
		badgerStore, err := storage.NewBadgerStore(runCtx, appCfg.StateDir, *batchNameFlag, *resumeFlag, logrus.NewEntry(log))
		if err != nil {
			log.Fatalf("Failed to initialize lead DB: %v", err)
		}
		defer badgerStore.Close()
		go badgerStore.RunGC(runCtx, 10*time.Minute)
		store = badgerStore
	} else {
		log.Info("No state_dir configured, running without cross-run persistence.")
	}

	httpClient := fetch.NewClient(appCfg.HTTPClientSettings, log)
	fetcher := fetch.NewFetcher(httpClient, appCfg, log)
	rateLimiter := fetch.NewRateLimiter(appCfg.StorePacing, log)

	var robots *fetch.RobotsHandler
	if appCfg.RespectRobots {
		robots = fetch.NewRobotsHandler(fetcher, appCfg.UserAgent, log.WithField("component", "robots"))
	}
	crawler := crawl.NewCrawler(fetcher, robots, rateLimiter, log)

	resolver := parse.NewResolver(fetcher, log)
	catalog := extract.NewCatalogEstimator(fetcher, appCfg.Catalog, log)
	strategies := extract.NewContactStrategies(appCfg.Contacts)
	contacts := extract.NewContactExtractor(strategies.All(), crawler, appCfg.Discovery, appCfg.Contacts, log)
	vat := extract.NewVATExtractor(crawler, appCfg.Discovery, appCfg.VAT, log)
	revenueResolver := revenue.NewResolver(provider, appCfg.Revenue, log)
	scorer := score.NewScorer(appCfg.Scoring)

	p := pipeline.NewPipeline(appCfg, fetcher, rateLimiter, resolver, catalog, contacts, vat, revenueResolver, scorer, store, log)

	// --- Run ---
	leads, summary := p.Run(runCtx, candidates)

	// --- Write Report ---
	if len(leads) > 0 {
		var writeErr error
		if strings.EqualFold(filepath.Ext(*outputFileFlag), ".xlsx") {
			writeErr = leadio.WriteXLSX(*outputFileFlag, leads, log)
		} else {
			writeErr = leadio.WriteCSV(*outputFileFlag, leads, log)
		}
		if writeErr != nil {
			log.Errorf("Failed to write report: %v", writeErr)
			os.Exit(1)
		}
	} else {
		log.Warn("No leads scored, skipping report file.")
	}

	log.WithFields(logrus.Fields{
		"run_id":    summary.RunID,
		"processed": summary.Processed,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
	}).Info("Scan complete.")

	if runCtx.Err() != nil {
		log.Warn("Scan cancelled before completing the batch.")
		os.Exit(0)
	}
	os.Exit(0)
}

// logAppConfig logs the effective global configuration
func logAppConfig(appCfg *config.AppConfig, log *logrus.Logger) {
	log.Infof("Global Config: MaxReqs:%d, StorePacing:%v, RespectRobots:%t, Platform:%s, StateDir:%s",
		appCfg.MaxConcurrentRequests, appCfg.StorePacing, appCfg.RespectRobots, appCfg.Platform, appCfg.StateDir)
	log.Infof("Global Config Timeouts: Primary:%v, Secondary:%v",
		appCfg.PrimaryTimeout, appCfg.SecondaryTimeout)
	log.Infof("Global Config Crawl Caps: ContactPages:%d, VATPages:%d",
		appCfg.Contacts.MaxPages, appCfg.VAT.MaxPages)
	log.Infof("Global Config Scoring: Weights:%+v, CatalogMinSKU:%d, TierFloor:%s, HighAbove:%d",
		appCfg.Scoring.Weights, appCfg.Scoring.CatalogMinSKU, appCfg.Scoring.TierFloor, *appCfg.Scoring.HighPriorityAbove)
}
