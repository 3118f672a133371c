package extractors

import (
	"path/filepath"
	"strings"

	"github.com/psurana/pulse-etl/etl/models"
	"github.com/psurana/pulse-etl/etl/source"
)

// The top-N documents carry up to three independent buckets (states,
// districts, pincodes). A missing or null bucket is simply empty, and null
// items inside a bucket are skipped. State and district names are lowercased
// here; pincodes are opaque tokens and preserved as-is.

// TopTransactions extracts ranked transaction metrics per entity bucket.
func (e *Extractor) TopTransactions() []models.RawTopTransaction {
	const dataset = models.DatasetTopTransactions
	var records []models.RawTopTransaction

	base := filepath.Join(e.dataDir, filepath.FromSlash(topTransactionPath))
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
		var data topTransactionData
		if !e.decode(dataset, path, payload, &data) {
			continue
		}

		buckets := []struct {
			entityType string
			entries    []*topTransactionEntry
		}{
			{models.EntityTypeState, data.States},
			{models.EntityTypeDistrict, data.Districts},
			{models.EntityTypePincode, data.Pincodes},
		}

		for _, bucket := range buckets {
			for _, entry := range bucket.entries {
				if entry == nil {
					continue
				}
				name := entry.EntityName
				if bucket.entityType != models.EntityTypePincode {
					name = strings.ToLower(name)
				}
				records = append(records, models.RawTopTransaction{
					State:      countryScope,
					Year:       year,
					Quarter:    quarter,
					EntityType: bucket.entityType,
					EntityName: name,
					Count:      entry.Metric.Count,
					Amount:     entry.Metric.Amount,
				})
			}
		}
	}

	e.report[dataset].Records = len(records)
	return records
}

// TopUsers extracts ranked registered-user counts per entity bucket.
func (e *Extractor) TopUsers() []models.RawTopUser {
	const dataset = models.DatasetTopUsers
	var records []models.RawTopUser

	base := filepath.Join(e.dataDir, filepath.FromSlash(topUserPath))
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
		var data topUserData
		if !e.decode(dataset, path, payload, &data) {
			continue
		}

		buckets := []struct {
			entityType string
			entries    []*topUserEntry
		}{
			{models.EntityTypeState, data.States},
			{models.EntityTypeDistrict, data.Districts},
			{models.EntityTypePincode, data.Pincodes},
		}

		for _, bucket := range buckets {
			for _, entry := range bucket.entries {
				if entry == nil {
					continue
				}
				name := entry.Name
				if bucket.entityType != models.EntityTypePincode {
					name = strings.ToLower(name)
				}
				records = append(records, models.RawTopUser{
					State:           countryScope,
					Year:            year,
					Quarter:         quarter,
					EntityType:      bucket.entityType,
					EntityName:      name,
					RegisteredUsers: entry.RegisteredUsers,
				})
			}
		}
	}

	e.report[dataset].Records = len(records)
	return records
}
