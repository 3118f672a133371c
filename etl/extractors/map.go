package extractors

import (
	"path/filepath"
	"strings"

	"github.com/psurana/pulse-etl/etl/models"
	"github.com/psurana/pulse-etl/etl/source"
)

// The map datasets live in two parallel branches: country-scope documents
// directly under .../india, and one subdirectory per state under
// .../india/state/<name>. Both passes run and their outputs concatenate.
// District-level data is a separate file-tree branch, not a field inside the
// country documents, and the country pass must not descend into it.

const stateBranch = "state"

func underStateBranch(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel == stateBranch || strings.HasPrefix(rel, stateBranch+"/")
}

// MapTransactions extracts hover transaction metrics at country scope (one
// record per state, district synthesized equal to state) and at state scope
// (one record per district).
func (e *Extractor) MapTransactions() []models.RawMapTransaction {
	const dataset = models.DatasetMapTransactions
	var records []models.RawMapTransaction

	base := filepath.Join(e.dataDir, filepath.FromSlash(mapTransactionPath))

	// Country pass: hover entries are states; district collapses to state.
	for _, path := range source.FindJSONFiles(base, "", e.logger) {
		if underStateBranch(base, path) {
			continue
		}
		records = e.mapTransactionDocuments(dataset, path, "", records)
	}

	// State pass: one directory per state, hover entries are districts.
	stateBase := filepath.Join(base, stateBranch)
	for _, stateDir := range source.StateDirectories(stateBase, e.logger) {
		stateName := strings.ToLower(stateDir)
		for _, path := range source.FindJSONFiles(filepath.Join(stateBase, stateDir), "", e.logger) {
			records = e.mapTransactionDocuments(dataset, path, stateName, records)
		}
	}

	e.report[dataset].Records = len(records)
	return records
}

// mapTransactionDocuments appends the records of one hover document.
// stateName is empty at country scope, where each entry names a state and
// the district collapses to it.
func (e *Extractor) mapTransactionDocuments(dataset, path, stateName string, records []models.RawMapTransaction) []models.RawMapTransaction {
	e.report[dataset].Files++

	year, quarter, ok := e.coordinates(dataset, path)
	if !ok {
		return records
	}
	payload, ok := e.payload(dataset, path)
	if !ok {
		return records
	}
	var data mapTransactionData
	if !e.decode(dataset, path, payload, &data) {
		return records
	}

	for _, item := range data.HoverDataList {
		name := strings.ToLower(item.Name)
		state, district := stateName, name
		if state == "" {
			state, district = name, name
		}
		for _, metric := range item.Metric {
			records = append(records, models.RawMapTransaction{
				State:    state,
				Year:     year,
				Quarter:  quarter,
				District: district,
				Count:    metric.Count,
				Amount:   metric.Amount,
			})
		}
	}
	return records
}

// MapUsers extracts hover user metrics with the same two passes as
// MapTransactions, over the name-keyed hoverData map.
func (e *Extractor) MapUsers() []models.RawMapUser {
	const dataset = models.DatasetMapUsers
	var records []models.RawMapUser

	base := filepath.Join(e.dataDir, filepath.FromSlash(mapUserPath))

	for _, path := range source.FindJSONFiles(base, "", e.logger) {
		if underStateBranch(base, path) {
			continue
		}
		records = e.mapUserDocuments(dataset, path, "", records)
	}

	stateBase := filepath.Join(base, stateBranch)
	for _, stateDir := range source.StateDirectories(stateBase, e.logger) {
		stateName := strings.ToLower(stateDir)
		for _, path := range source.FindJSONFiles(filepath.Join(stateBase, stateDir), "", e.logger) {
			records = e.mapUserDocuments(dataset, path, stateName, records)
		}
	}

	e.report[dataset].Records = len(records)
	return records
}

func (e *Extractor) mapUserDocuments(dataset, path, stateName string, records []models.RawMapUser) []models.RawMapUser {
	e.report[dataset].Files++

	year, quarter, ok := e.coordinates(dataset, path)
	if !ok {
		return records
	}
	payload, ok := e.payload(dataset, path)
	if !ok {
		return records
	}
	var data mapUserData
	if !e.decode(dataset, path, payload, &data) {
		return records
	}

	for rawName, entry := range data.HoverData {
		name := strings.ToLower(rawName)
		state, district := stateName, name
		if state == "" {
			state, district = name, name
		}
		records = append(records, models.RawMapUser{
			State:           state,
			Year:            year,
			Quarter:         quarter,
			District:        district,
			RegisteredUsers: entry.RegisteredUsers,
			AppOpens:        entry.AppOpens,
		})
	}
	return records
}
