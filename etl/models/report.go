package models

// SkipReason classifies why a source document contributed no records.
// Skips are non-fatal; they are counted so a run's health is observable
// instead of living only in log lines.
type SkipReason string

const (
	SkipParseError         SkipReason = "parse_error"
	SkipUnsuccessful       SkipReason = "unsuccessful"
	SkipMissingPayload     SkipReason = "missing_payload"
	SkipMissingCoordinates SkipReason = "missing_coordinates"
)

// DatasetReport accumulates extraction accounting for one dataset.
type DatasetReport struct {
	Files   int
	Records int
	Skipped map[SkipReason]int
}

// NewDatasetReport returns an empty report.
func NewDatasetReport() *DatasetReport {
	return &DatasetReport{Skipped: make(map[SkipReason]int)}
}

// Skip records one skipped document.
func (r *DatasetReport) Skip(reason SkipReason) {
	r.Skipped[reason]++
}

// TotalSkipped returns the number of skipped documents across all reasons.
func (r *DatasetReport) TotalSkipped() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}
	return total
}

// ExtractionReport maps dataset name to its accounting.
type ExtractionReport map[string]*DatasetReport

// NewExtractionReport returns a report with an entry for every dataset.
func NewExtractionReport() ExtractionReport {
	report := make(ExtractionReport, len(DatasetNames))
	for _, name := range DatasetNames {
		report[name] = NewDatasetReport()
	}
	return report
}

// RecordCounts returns the dataset name to record count mapping persisted as
// the run summary artifact.
func (r ExtractionReport) RecordCounts() map[string]int {
	counts := make(map[string]int, len(r))
	for name, dr := range r {
		counts[name] = dr.Records
	}
	return counts
}

// TotalRecords returns the extracted record count across all datasets.
func (r ExtractionReport) TotalRecords() int {
	total := 0
	for _, dr := range r {
		total += dr.Records
	}
	return total
}
