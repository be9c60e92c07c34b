package runner

import (
	"context"
	"encoding/json"
	"time"

	"github.com/HolyKasra/NezamPezeshki-Crawler/config"
	"github.com/HolyKasra/NezamPezeshki-Crawler/helpers"
	"github.com/HolyKasra/NezamPezeshki-Crawler/internal/scraper"
	errs "github.com/HolyKasra/NezamPezeshki-Crawler/pkg/errors"
	"github.com/HolyKasra/NezamPezeshki-Crawler/services/exporter"
	"github.com/HolyKasra/NezamPezeshki-Crawler/services/publisher"
)

// Scraper walks the directory hierarchy and returns the doctor records
// matching the given province and specialty
type Scraper interface {
	Scrape(provinceName, specialtyName string) ([]scraper.DoctorRecord, error)
}

// Runner drives a single crawl from scrape through export and publish
type Runner struct {
	scraper   Scraper
	exporter  exporter.Exporter
	publisher publisher.Publisher
	logger    helpers.LoggerInterface
	cfg       *config.Config
}

// New creates a new runner
func New(scr Scraper, exp exporter.Exporter, pub publisher.Publisher, logger helpers.LoggerInterface, cfg *config.Config) *Runner {
	return &Runner{
		scraper:   scr,
		exporter:  exp,
		publisher: pub,
		logger:    logger,
		cfg:       cfg,
	}
}

// Run executes one crawl. The first failing stage aborts the run; context
// cancellation between stages aborts with ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return err
	}

	records, err := r.scraper.Scrape(r.cfg.Province, r.cfg.Specialty)
	if err != nil {
		r.logger.LogError("scrape", err)
		return err
	}
	r.logger.LogInfo("Scraped %d rows for %s / %s", len(records), r.cfg.Province, r.cfg.Specialty)

	if err := ctx.Err(); err != nil {
		return err
	}

	unique := exporter.DedupeByNezam(records)
	if err := r.exporter.Export(unique); err != nil {
		r.logger.LogError("export", err)
		return err
	}
	r.logger.LogInfo("Exported %d unique records to %s", len(unique), r.cfg.OutputPath)

	if r.cfg.PublishEnabled {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.publishRecords(unique); err != nil {
			return err
		}
	}

	if r.cfg.Environment != "production" {
		r.logger.LogInfo("Crawl took %s", time.Since(start))
	}

	return nil
}

// publishRecords serializes each record and appends it to a stream
func (r *Runner) publishRecords(records []scraper.DoctorRecord) error {
	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			serr := errs.NewPublisher("publish", "failed to serialize record "+record["Nezam"], err)
			r.logger.LogError("publish", serr)
			return serr
		}

		if err := r.publisher.Publish(record["Nezam"], data); err != nil {
			r.logger.LogError("publish", err)
			return err
		}
	}

	// Trim all streams after a publish batch
	if err := r.publisher.TrimStreams(); err != nil {
		r.logger.LogError("publish", err)
		return err
	}

	r.logger.LogInfo("Published %d records", len(records))
	return nil
}
