package scheduler

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/robfig/cron/v3"

	"carneiros_checker/checker"
	"carneiros_checker/config"
	"carneiros_checker/httputil"
	"carneiros_checker/storage"
)

// Scheduler runs the periodic site probe that keeps a long-lived daemon
// honest: it verifies the browser runtime still starts and the booking
// host still answers, and records the outcome so /health can report it.
type Scheduler struct {
	cfg     *config.Config
	driver  *checker.SessionDriver
	store   *storage.SQLiteStore
	clients *httputil.Clients
	cron    *cron.Cron
}

func New(cfg *config.Config, driver *checker.SessionDriver, store *storage.SQLiteStore, clients *httputil.Clients) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		driver:  driver,
		store:   store,
		clients: clients,
		cron:    cron.New(),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.Healthcheck.Cron == "" {
		log.Println("No healthcheck schedule configured")
		return nil
	}

	log.Printf("Starting healthcheck with cron: %s", s.cfg.Healthcheck.Cron)
	_, err := s.cron.AddFunc(s.cfg.Healthcheck.Cron, func() {
		s.runProbe(ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) runProbe(ctx context.Context) {
	healthy := true
	detail := "ok"

	if err := s.driver.Ready(); err != nil {
		healthy = false
		detail = fmt.Sprintf("browser runtime: %v", err)
	} else if err := s.probeSite(ctx); err != nil {
		healthy = false
		detail = fmt.Sprintf("booking site: %v", err)
	}

	if healthy {
		log.Println("Healthcheck: ok")
	} else {
		log.Printf("Healthcheck: %s", detail)
	}

	if s.store != nil {
		if err := s.store.RecordHealth(healthy, detail); err != nil {
			log.Printf("Error recording healthcheck: %v", err)
		}
	}
}

// probeSite does a lightweight HEAD against the booking host. Redirects
// count as reachable; only transport errors and 5xx do not.
func (s *Scheduler) probeSite(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.cfg.Checker.BaseURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.clients.Probe.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
