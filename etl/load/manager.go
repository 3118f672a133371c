package load

import (
	"errors"
	"fmt"
	"time"

	"github.com/psurana/pulse-etl/etl/models"
	"github.com/psurana/pulse-etl/etl/utils"
)

// LoadManager drives the load phase. Datasets are independent: a failed
// batch rolls back alone and never disturbs batches already committed, so
// every dataset is attempted even after a failure. The combined error is
// returned so the run is reported as failed.
type LoadManager struct {
	loader Loader
	logger *utils.ETLLogger
}

// NewLoadManager creates a LoadManager over the given loader.
func NewLoadManager(loader Loader, logger *utils.ETLLogger) *LoadManager {
	return &LoadManager{loader: loader, logger: logger}
}

// Load upserts all six datasets in a fixed sequence.
func (m *LoadManager) Load(data *models.TransformedData) error {
	startTime := time.Now()
	m.logger.LogPhaseStart("Load")

	datasets := []struct {
		name string
		load func() error
	}{
		{models.DatasetAggregatedTransactions, func() error { return m.loader.LoadAggregatedTransactions(data.AggregatedTransactions) }},
		{models.DatasetAggregatedUsers, func() error { return m.loader.LoadAggregatedUsers(data.AggregatedUsers) }},
		{models.DatasetMapTransactions, func() error { return m.loader.LoadMapTransactions(data.MapTransactions) }},
		{models.DatasetMapUsers, func() error { return m.loader.LoadMapUsers(data.MapUsers) }},
		{models.DatasetTopTransactions, func() error { return m.loader.LoadTopTransactions(data.TopTransactions) }},
		{models.DatasetTopUsers, func() error { return m.loader.LoadTopUsers(data.TopUsers) }},
	}

	var errs []error
	for _, dataset := range datasets {
		if err := dataset.load(); err != nil {
			m.logger.Error("Load failed for %s: %v", dataset.name, err)
			errs = append(errs, fmt.Errorf("%s: %w", dataset.name, err))
		}
	}

	m.logger.LogPhaseComplete("Load", time.Since(startTime))
	return errors.Join(errs...)
}
