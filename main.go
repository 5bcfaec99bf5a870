package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carneiros_checker/checker"
	"carneiros_checker/config"
	"carneiros_checker/httputil"
	"carneiros_checker/logging"
	"carneiros_checker/models"
	"carneiros_checker/scheduler"
	"carneiros_checker/server"
	"carneiros_checker/sheets"
	"carneiros_checker/storage"
)

var (
	checkOnce = flag.Bool("check", false, "Run one availability check and exit")
	checkin   = flag.String("checkin", "", "Check-in date (YYYY-MM-DD, with -check)")
	checkout  = flag.String("checkout", "", "Check-out date (YYYY-MM-DD, with -check)")
	guests    = flag.Int("guests", 2, "Guest count (with -check)")
)

func main() {
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	logFile, err := logging.Setup("checker.log")
	if err != nil {
		log.Printf("Warning: could not set up file logging: %v", err)
	} else {
		defer logFile.Close()
	}

	log.Println("Starting carneiros_checker...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Loaded %d listings", len(cfg.Listings))
	for _, l := range cfg.Listings {
		log.Printf("  - %s (%s)", l.Name, l.ExternalID)
	}

	ctx := context.Background()

	store, err := storage.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open SQLite: %v", err)
	}
	defer store.Close()
	log.Printf("SQLite database: %s", cfg.DBPath)

	driver := checker.NewSessionDriver(&cfg.Checker)
	defer driver.Stop()

	chk := checker.New(cfg, driver, store)

	if cfg.Artifacts.Bucket != "" {
		artifacts, err := storage.NewArtifactStore(ctx, &cfg.Artifacts)
		if err != nil {
			log.Printf("Warning: artifact store disabled: %v", err)
		} else {
			chk.SetArtifactSink(artifacts)
			log.Printf("Artifact uploads enabled: %s", cfg.Artifacts.Bucket)
		}
	}

	if *checkOnce {
		runOnce(ctx, chk)
		return
	}

	clients := httputil.NewClients()
	sheetsClient := sheets.NewClient(&cfg.Sheets, clients.Sheets)
	if sheetsClient.Enabled() {
		log.Printf("Sheets integration enabled: %s", cfg.Sheets.SpreadsheetID)
	}

	handlers := server.NewHandlers(chk, store, sheetsClient)
	srv := server.New(cfg.Port, handlers)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	sched := scheduler.New(cfg, driver, store, clients)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	log.Println("Daemon running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutting down...")
	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Goodbye!")
}

func runOnce(ctx context.Context, chk *checker.Checker) {
	ci, err := time.Parse("2006-01-02", *checkin)
	if err != nil {
		log.Fatalf("Invalid -checkin: %v", err)
	}
	co, err := time.Parse("2006-01-02", *checkout)
	if err != nil {
		log.Fatalf("Invalid -checkout: %v", err)
	}

	q, err := models.NewStayQuery(ci, co, *guests)
	if err != nil {
		log.Fatalf("Invalid query: %v", err)
	}

	result, err := chk.Run(ctx, q)
	if err != nil {
		log.Fatalf("Check failed: %v", err)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	os.Stdout.Write(append(out, '\n'))
}
