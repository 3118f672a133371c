// Package etl orchestrates the pulse pipeline: sync the source tree,
// extract raw records per dataset, transform them into clean aggregated
// rows, and upsert them into the relational sink.
package etl

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/psurana/pulse-etl/etl/config"
	"github.com/psurana/pulse-etl/etl/extractors"
	"github.com/psurana/pulse-etl/etl/load"
	"github.com/psurana/pulse-etl/etl/models"
	"github.com/psurana/pulse-etl/etl/source"
	"github.com/psurana/pulse-etl/etl/transform"
	"github.com/psurana/pulse-etl/etl/utils"
)

// Runner sequences the pipeline across all six datasets and owns the sink
// connection for the duration of a run.
type Runner struct {
	cfg         config.Config
	db          *sql.DB
	logger      *utils.ETLLogger
	transformer *transform.Transformer
	loadManager *load.LoadManager
}

// NewRunner connects to the sink and wires the pipeline components.
func NewRunner(cfg config.Config) (*Runner, error) {
	logger := utils.NewETLLogger(cfg.LogDir, cfg.Verbose)
	logger.Info("Initializing pulse ETL runner")

	dialect, err := load.DialectFor(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	if err := config.EnsureDatabase(cfg.Database, logger); err != nil {
		return nil, fmt.Errorf("ensuring database: %w", err)
	}

	db, err := config.ConnectDatabase(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to sink: %w", err)
	}

	loader := load.NewSQLLoader(db, dialect, logger)
	normalizer := transform.NewNormalizer(transform.DefaultAliases())

	return &Runner{
		cfg:         cfg,
		db:          db,
		logger:      logger,
		transformer: transform.NewTransformer(normalizer, logger),
		loadManager: load.NewLoadManager(loader, logger),
	}, nil
}

// Close releases the sink connection.
func (r *Runner) Close() {
	r.logger.Info("Shutting down pulse ETL runner")
	config.CloseDatabase(r.db, r.logger)
}

// Execute performs one full pipeline run. With skipSync the existing
// checkout under the data directory is used instead of cloning or pulling.
// A zero-record extraction across all datasets fails the run: it signals a
// missing or empty source tree, not legitimately empty data.
func (r *Runner) Execute(skipSync bool) error {
	startTime := time.Now()
	r.logger.Info("Starting pulse ETL pipeline")

	if err := load.EnsureSchema(r.db); err != nil {
		return fmt.Errorf("setting up schema: %w", err)
	}

	var dataDir string
	if skipSync {
		dataDir = source.DataTreePath(r.cfg.DataDir)
		r.logger.Info("Skipping repository sync, using %s", dataDir)
	} else {
		var err error
		dataDir, err = source.SyncRepository(r.cfg.RepoURL, r.cfg.DataDir, r.logger)
		if err != nil {
			return fmt.Errorf("syncing source repository: %w", err)
		}
	}

	extractor := extractors.NewExtractor(dataDir, r.logger)
	extracted, report := extractor.ExtractAll()
	r.writeSummary(report)

	if extracted.TotalRecords() == 0 {
		return fmt.Errorf("no records extracted from %s: source tree is missing or empty", dataDir)
	}

	transformed := r.transformer.Transform(extracted)

	if err := r.loadManager.Load(transformed); err != nil {
		return fmt.Errorf("load phase: %w", err)
	}

	r.logger.Info("Pipeline completed in %v (%d records extracted, %d loaded)",
		time.Since(startTime), extracted.TotalRecords(), transformed.TotalRecords())
	return nil
}

// writeSummary persists the dataset record-count mapping for operational
// visibility. A write failure is a warning, never fatal.
func (r *Runner) writeSummary(report models.ExtractionReport) {
	path := r.cfg.SummaryFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		r.logger.Warn("Could not create summary directory: %v", err)
		return
	}

	payload, err := json.MarshalIndent(report.RecordCounts(), "", "  ")
	if err != nil {
		r.logger.Warn("Could not encode run summary: %v", err)
		return
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		r.logger.Warn("Could not write run summary: %v", err)
		return
	}
	r.logger.Info("Run summary written to %s", path)
}

// StartScheduler runs the pipeline on a fixed interval until the context is
// cancelled. Failures of individual runs are logged; the scheduler keeps
// going.
func (r *Runner) StartScheduler(ctx context.Context, skipSync bool) error {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Starting scheduler with interval %v", r.cfg.RunInterval)
	_, err := scheduler.Every(r.cfg.RunInterval).Do(func() {
		r.logger.Info("Scheduled pipeline run starting")
		if err := r.Execute(skipSync); err != nil {
			r.logger.Error("Scheduled run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("configuring scheduler: %w", err)
	}

	scheduler.StartAsync()
	<-ctx.Done()
	scheduler.Stop()
	r.logger.Info("Scheduler stopped")
	return nil
}
