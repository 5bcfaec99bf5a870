package checker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"carneiros_checker/config"
	"carneiros_checker/models"
	"carneiros_checker/storage"
)

// PageCapturer is the session boundary the batch drives. Satisfied by
// *SessionDriver.
type PageCapturer interface {
	CapturePage(pageURL string) (string, error)
}

// ArtifactSink receives rendered pages that yielded no availability so
// the matching heuristics can be inspected when the target site
// changes. Optional.
type ArtifactSink interface {
	SaveArtifact(ctx context.Context, key string, body []byte) error
}

// Checker runs the per-listing availability pipeline over the fixed
// listing table. Listings are checked strictly sequentially; a global
// semaphore bounds how many browser sessions concurrent requests may
// hold at once.
type Checker struct {
	cfg       *config.Config
	driver    PageCapturer
	store     *storage.SQLiteStore
	artifacts ArtifactSink
	sessions  chan struct{}
}

func New(cfg *config.Config, driver PageCapturer, store *storage.SQLiteStore) *Checker {
	maxSessions := cfg.Checker.MaxSessions
	if maxSessions < 1 {
		maxSessions = 1
	}
	return &Checker{
		cfg:      cfg,
		driver:   driver,
		store:    store,
		sessions: make(chan struct{}, maxSessions),
	}
}

// SetArtifactSink enables uploads of unavailable-page snapshots.
func (c *Checker) SetArtifactSink(sink ArtifactSink) {
	c.artifacts = sink
}

// Run checks every configured listing for the stay, in table order, one
// browser session at a time. A listing whose check fails keeps its
// default result (unavailable, empty price and URL) and the batch
// continues; only an invalid query is returned as an error, before any
// session is opened.
func (c *Checker) Run(ctx context.Context, q models.StayQuery) (*models.QueryResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	run := &models.CheckRun{
		BatchID:   uuid.NewString(),
		StartedAt: time.Now(),
		Status:    models.RunStatusRunning,
	}
	if c.store != nil {
		id, err := c.store.CreateRun(run)
		if err != nil {
			log.Printf("Warning: could not record check run: %v", err)
		} else {
			run.ID = id
		}
	}

	result := models.NewQueryResult(c.cfg.Listings, q)

	for _, listing := range c.cfg.Listings {
		run.ListingsChecked++

		signal, err := c.checkListing(ctx, run.BatchID, listing, q)
		if err != nil {
			run.ErrorsCount++
			c.log(run, models.LogLevelError, fmt.Sprintf("check failed: %v", err), listing)
			continue
		}

		if !signal.Available {
			// Normal outcome, not an error: either the dates are booked
			// or no price could be read.
			c.log(run, models.LogLevelInfo, "unavailable for requested dates", listing)
			continue
		}

		run.ListingsAvailable++
		price := FormatPrice(*signal.Price)
		result.Results[listing.ResultKey] = models.ListingResult{
			Available: true,
			Price:     price,
			URL:       signal.SourceURL,
		}
		c.log(run, models.LogLevelInfo, fmt.Sprintf("available at %s", price), listing)
	}

	c.finishRun(run)
	return result, nil
}

func (c *Checker) checkListing(ctx context.Context, batchID string, listing models.Listing, q models.StayQuery) (models.AvailabilitySignal, error) {
	select {
	case c.sessions <- struct{}{}:
	case <-ctx.Done():
		return models.AvailabilitySignal{}, fmt.Errorf("%w: %v", ErrNavigation, ctx.Err())
	}
	defer func() { <-c.sessions }()

	pageURL := BuildBookingURL(c.cfg.Checker.BaseURL, listing, q)
	log.Printf("Checking %s (%s)", listing.Name, listing.ExternalID)

	content, err := c.driver.CapturePage(pageURL)
	if err != nil {
		return models.AvailabilitySignal{}, err
	}

	signal := Extract(content, pageURL)
	if !signal.Available {
		c.saveArtifact(batchID, listing, content)
	}
	return signal, nil
}

// saveArtifact keeps the rendered page of an unavailable verdict for
// offline inspection. Best effort; the batch never waits on it.
func (c *Checker) saveArtifact(batchID string, listing models.Listing, content string) {
	if c.artifacts == nil {
		return
	}

	key := fmt.Sprintf("checks/%s/%s.html", batchID, listing.ResultKey)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := c.artifacts.SaveArtifact(ctx, key, []byte(content)); err != nil {
			log.Printf("Warning: artifact upload failed for %s: %v", key, err)
		}
	}()
}

func (c *Checker) finishRun(run *models.CheckRun) {
	now := time.Now()
	run.FinishedAt = &now
	run.Status = models.RunStatusCompleted
	if run.ErrorsCount > 0 {
		run.Status = models.RunStatusPartial
	}

	if c.store != nil && run.ID != 0 {
		if err := c.store.UpdateRun(run); err != nil {
			log.Printf("Warning: could not finalize check run: %v", err)
		}
	}

	log.Printf("Batch %s: %d checked, %d available, %d errors",
		run.BatchID, run.ListingsChecked, run.ListingsAvailable, run.ErrorsCount)
}

func (c *Checker) log(run *models.CheckRun, level models.LogLevel, message string, listing models.Listing) {
	log.Printf("[%s] %s: %s", level, listing.ResultKey, message)
	if c.store != nil && run.ID != 0 {
		c.store.Log(&run.ID, level, message, string(listing.ResultKey))
	}
}
