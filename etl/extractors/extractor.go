package extractors

import (
	"encoding/json"
	"path/filepath"
	"time"

	"github.com/psurana/pulse-etl/etl/models"
	"github.com/psurana/pulse-etl/etl/source"
	"github.com/psurana/pulse-etl/etl/utils"
)

// Dataset subpaths inside the pulse repository's data tree. The country
// scope is fixed: the published tree only carries india.
const (
	aggregatedTransactionPath = "aggregated/transaction/country/india"
	aggregatedUserPath        = "aggregated/user/country/india"
	mapTransactionPath        = "map/transaction/hover/country/india"
	mapUserPath               = "map/user/hover/country/india"
	topTransactionPath        = "top/transaction/country/india"
	topUserPath               = "top/user/country/india"

	countryScope = "india"
)

// Extractor walks the pulse data tree and produces raw records for all six
// datasets. Documents that cannot contribute records are counted per skip
// reason in the extraction report, never fatal.
type Extractor struct {
	dataDir string
	logger  *utils.ETLLogger
	report  models.ExtractionReport
}

// NewExtractor creates an Extractor rooted at the pulse data tree.
func NewExtractor(dataDir string, logger *utils.ETLLogger) *Extractor {
	return &Extractor{
		dataDir: dataDir,
		logger:  logger,
		report:  models.NewExtractionReport(),
	}
}

// ExtractAll runs all six extractors and returns the raw records together
// with the per-dataset accounting.
func (e *Extractor) ExtractAll() (*models.ExtractedData, models.ExtractionReport) {
	startTime := time.Now()
	e.logger.LogPhaseStart("Extract")

	data := &models.ExtractedData{
		AggregatedTransactions: e.AggregatedTransactions(),
		AggregatedUsers:        e.AggregatedUsers(),
		MapTransactions:        e.MapTransactions(),
		MapUsers:               e.MapUsers(),
		TopTransactions:        e.TopTransactions(),
		TopUsers:               e.TopUsers(),
	}

	for _, name := range models.DatasetNames {
		dr := e.report[name]
		e.logger.Info("%s: %d files, %d records, %d skipped", name, dr.Files, dr.Records, dr.TotalSkipped())
	}
	e.logger.LogPhaseComplete("Extract", time.Since(startTime))

	return data, e.report
}

// coordinates resolves a document's (year, quarter) and folds failures into
// the dataset report.
func (e *Extractor) coordinates(dataset, path string) (int, int, bool) {
	year, quarter, ok := source.YearQuarter(path)
	if !ok {
		e.report[dataset].Skip(models.SkipMissingCoordinates)
		e.logger.Debug("[%s] no year/quarter in path, skipping: %s", dataset, path)
	}
	return year, quarter, ok
}

// payload reads a document's data payload and folds defects into the report.
func (e *Extractor) payload(dataset, path string) (json.RawMessage, bool) {
	raw, reason, ok := readDocument(path)
	if !ok {
		e.report[dataset].Skip(reason)
		e.logger.Debug("[%s] skipping document (%s): %s", dataset, reason, path)
	}
	return raw, ok
}

// decode unmarshals a payload into the dataset's shape; a shape mismatch is
// a parse skip like any other malformed document.
func (e *Extractor) decode(dataset, path string, payload json.RawMessage, shape interface{}) bool {
	if err := json.Unmarshal(payload, shape); err != nil {
		e.report[dataset].Skip(models.SkipParseError)
		e.logger.Debug("[%s] payload shape mismatch: %s: %v", dataset, path, err)
		return false
	}
	return true
}

// AggregatedTransactions emits one raw record per payment instrument per
// transaction category. Collapsing instruments into category totals is the
// Transformer's job.
func (e *Extractor) AggregatedTransactions() []models.RawAggregatedTransaction {
	const dataset = models.DatasetAggregatedTransactions
	var records []models.RawAggregatedTransaction

	base := filepath.Join(e.dataDir, filepath.FromSlash(aggregatedTransactionPath))
	for _, path := range source.FindJSONFiles(base, "", e.logger) {
		e.report[dataset].Files++

		year, quarter, ok := e.coordinates(dataset, path)
		if !ok {
			continue
		}
		payload, ok := e.payload(dataset, path)
		if !ok {
			continue
		}
		var data aggregatedTransactionData
		if !e.decode(dataset, path, payload, &data) {
			continue
		}

		for _, item := range data.TransactionData {
			for _, instrument := range item.PaymentInstruments {
				records = append(records, models.RawAggregatedTransaction{
					State:           countryScope,
					Year:            year,
					Quarter:         quarter,
					TransactionType: item.Name,
					PaymentMode:     instrument.Type,
					Count:           instrument.Count,
					Amount:          instrument.Amount,
				})
			}
		}
	}

	e.report[dataset].Records = len(records)
	return records
}

// AggregatedUsers emits one raw record per document from the singleton
// aggregate object.
func (e *Extractor) AggregatedUsers() []models.RawAggregatedUser {
	const dataset = models.DatasetAggregatedUsers
	var records []models.RawAggregatedUser

	base := filepath.Join(e.dataDir, filepath.FromSlash(aggregatedUserPath))
	for _, path := range source.FindJSONFiles(base, "", e.logger) {
		e.report[dataset].Files++

		year, quarter, ok := e.coordinates(dataset, path)
		if !ok {
			continue
		}
		payload, ok := e.payload(dataset, path)
		if !ok {
			continue
		}
		var data aggregatedUserData
		if !e.decode(dataset, path, payload, &data) {
			continue
		}

		records = append(records, models.RawAggregatedUser{
			State:           countryScope,
			Year:            year,
			Quarter:         quarter,
			RegisteredUsers: data.Aggregated.RegisteredUsers,
			AppOpens:        data.Aggregated.AppOpens,
		})
	}

	e.report[dataset].Records = len(records)
	return records
}
