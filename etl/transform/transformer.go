package transform

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/psurana/pulse-etl/etl/models"
	"github.com/psurana/pulse-etl/etl/utils"
)

// Transformer turns raw extracted records into clean, aggregated rows.
// Per dataset it canonicalizes names, coerces measures, drops rows missing a
// natural-key component, and sums measures per natural key so that exactly
// one row per key reaches the loader.
type Transformer struct {
	normalizer *Normalizer
	logger     *utils.ETLLogger
}

// NewTransformer creates a Transformer with the given name normalizer.
func NewTransformer(normalizer *Normalizer, logger *utils.ETLLogger) *Transformer {
	return &Transformer{normalizer: normalizer, logger: logger}
}

// Transform runs all six dataset transforms.
func (t *Transformer) Transform(extracted *models.ExtractedData) *models.TransformedData {
	startTime := time.Now()
	t.logger.LogPhaseStart("Transform")

	transformed := &models.TransformedData{
		AggregatedTransactions: t.AggregatedTransactions(extracted.AggregatedTransactions),
		AggregatedUsers:        t.AggregatedUsers(extracted.AggregatedUsers),
		MapTransactions:        t.MapTransactions(extracted.MapTransactions),
		MapUsers:               t.MapUsers(extracted.MapUsers),
		TopTransactions:        t.TopTransactions(extracted.TopTransactions),
		TopUsers:               t.TopUsers(extracted.TopUsers),
	}

	t.logger.LogPhaseComplete("Transform", time.Since(startTime))
	return transformed
}

type aggTxKey struct {
	state           string
	year, quarter   int
	transactionType string
}

// AggregatedTransactions collapses the per-instrument rows emitted by the
// extractor into one row per (state, year, quarter, transaction type).
func (t *Transformer) AggregatedTransactions(raw []models.RawAggregatedTransaction) []models.AggregatedTransaction {
	grouped := make(map[aggTxKey]*models.AggregatedTransaction)

	for _, r := range raw {
		state := t.normalizer.StateName(r.State)
		transactionType := CleanLabel(r.TransactionType)
		if state == "" || transactionType == "" || r.Year == 0 || r.Quarter == 0 {
			continue
		}

		key := aggTxKey{state, r.Year, r.Quarter, transactionType}
		row, ok := grouped[key]
		if !ok {
			row = &models.AggregatedTransaction{
				State:           state,
				Year:            r.Year,
				Quarter:         r.Quarter,
				TransactionType: transactionType,
			}
			grouped[key] = row
		}
		row.Count += coerceInt(r.Count)
		row.Amount += coerceFloat(r.Amount)
	}

	rows := make([]models.AggregatedTransaction, 0, len(grouped))
	for _, row := range grouped {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return lessKey(
			[]string{rows[i].State, itoaPair(rows[i].Year, rows[i].Quarter), rows[i].TransactionType},
			[]string{rows[j].State, itoaPair(rows[j].Year, rows[j].Quarter), rows[j].TransactionType},
		)
	})

	t.logger.Info("Transformed %d aggregated transaction rows (from %d raw)", len(rows), len(raw))
	return rows
}

type aggUserKey struct {
	state         string
	year, quarter int
}

// AggregatedUsers groups user summaries by (state, year, quarter).
func (t *Transformer) AggregatedUsers(raw []models.RawAggregatedUser) []models.AggregatedUser {
	grouped := make(map[aggUserKey]*models.AggregatedUser)

	for _, r := range raw {
		state := t.normalizer.StateName(r.State)
		if state == "" || r.Year == 0 || r.Quarter == 0 {
			continue
		}

		key := aggUserKey{state, r.Year, r.Quarter}
		row, ok := grouped[key]
		if !ok {
			row = &models.AggregatedUser{State: state, Year: r.Year, Quarter: r.Quarter}
			grouped[key] = row
		}
		row.RegisteredUsers += coerceInt(r.RegisteredUsers)
		row.AppOpens += coerceInt(r.AppOpens)
	}

	rows := make([]models.AggregatedUser, 0, len(grouped))
	for _, row := range grouped {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return lessKey(
			[]string{rows[i].State, itoaPair(rows[i].Year, rows[i].Quarter)},
			[]string{rows[j].State, itoaPair(rows[j].Year, rows[j].Quarter)},
		)
	})

	t.logger.Info("Transformed %d aggregated user rows (from %d raw)", len(rows), len(raw))
	return rows
}

type mapKey struct {
	state         string
	year, quarter int
	district      string
}

// MapTransactions groups hover metrics by (state, year, quarter, district).
func (t *Transformer) MapTransactions(raw []models.RawMapTransaction) []models.MapTransaction {
	grouped := make(map[mapKey]*models.MapTransaction)

	for _, r := range raw {
		state := t.normalizer.StateName(r.State)
		district := CleanLabel(r.District)
		if state == "" || r.Year == 0 || r.Quarter == 0 {
			continue
		}

		key := mapKey{state, r.Year, r.Quarter, district}
		row, ok := grouped[key]
		if !ok {
			row = &models.MapTransaction{State: state, Year: r.Year, Quarter: r.Quarter, District: district}
			grouped[key] = row
		}
		row.Count += coerceInt(r.Count)
		row.Amount += coerceFloat(r.Amount)
	}

	rows := make([]models.MapTransaction, 0, len(grouped))
	for _, row := range grouped {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return lessKey(
			[]string{rows[i].State, itoaPair(rows[i].Year, rows[i].Quarter), rows[i].District},
			[]string{rows[j].State, itoaPair(rows[j].Year, rows[j].Quarter), rows[j].District},
		)
	})

	t.logger.Info("Transformed %d map transaction rows (from %d raw)", len(rows), len(raw))
	return rows
}

// MapUsers groups hover user metrics by (state, year, quarter, district).
func (t *Transformer) MapUsers(raw []models.RawMapUser) []models.MapUser {
	grouped := make(map[mapKey]*models.MapUser)

	for _, r := range raw {
		state := t.normalizer.StateName(r.State)
		district := CleanLabel(r.District)
		if state == "" || r.Year == 0 || r.Quarter == 0 {
			continue
		}

		key := mapKey{state, r.Year, r.Quarter, district}
		row, ok := grouped[key]
		if !ok {
			row = &models.MapUser{State: state, Year: r.Year, Quarter: r.Quarter, District: district}
			grouped[key] = row
		}
		row.RegisteredUsers += coerceInt(r.RegisteredUsers)
		row.AppOpens += coerceInt(r.AppOpens)
	}

	rows := make([]models.MapUser, 0, len(grouped))
	for _, row := range grouped {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return lessKey(
			[]string{rows[i].State, itoaPair(rows[i].Year, rows[i].Quarter), rows[i].District},
			[]string{rows[j].State, itoaPair(rows[j].Year, rows[j].Quarter), rows[j].District},
		)
	})

	t.logger.Info("Transformed %d map user rows (from %d raw)", len(rows), len(raw))
	return rows
}

type topKey struct {
	state         string
	year, quarter int
	entityType    string
	entityName    string
}

// TopTransactions groups ranked metrics by entity. Pincode entity names are
// opaque tokens and pass through uncleaned.
func (t *Transformer) TopTransactions(raw []models.RawTopTransaction) []models.TopTransaction {
	grouped := make(map[topKey]*models.TopTransaction)

	for _, r := range raw {
		state := t.normalizer.StateName(r.State)
		entityType := strings.ToLower(strings.TrimSpace(r.EntityType))
		entityName := r.EntityName
		if entityType != models.EntityTypePincode {
			entityName = CleanLabel(entityName)
		}
		if state == "" || entityType == "" || entityName == "" || r.Year == 0 || r.Quarter == 0 {
			continue
		}

		key := topKey{state, r.Year, r.Quarter, entityType, entityName}
		row, ok := grouped[key]
		if !ok {
			row = &models.TopTransaction{
				State:      state,
				Year:       r.Year,
				Quarter:    r.Quarter,
				EntityType: entityType,
				EntityName: entityName,
			}
			grouped[key] = row
		}
		row.Count += coerceInt(r.Count)
		row.Amount += coerceFloat(r.Amount)
	}

	rows := make([]models.TopTransaction, 0, len(grouped))
	for _, row := range grouped {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return lessKey(
			[]string{rows[i].State, itoaPair(rows[i].Year, rows[i].Quarter), rows[i].EntityType, rows[i].EntityName},
			[]string{rows[j].State, itoaPair(rows[j].Year, rows[j].Quarter), rows[j].EntityType, rows[j].EntityName},
		)
	})

	t.logger.Info("Transformed %d top transaction rows (from %d raw)", len(rows), len(raw))
	return rows
}

// TopUsers groups ranked user counts by entity.
func (t *Transformer) TopUsers(raw []models.RawTopUser) []models.TopUser {
	grouped := make(map[topKey]*models.TopUser)

	for _, r := range raw {
		state := t.normalizer.StateName(r.State)
		entityType := strings.ToLower(strings.TrimSpace(r.EntityType))
		entityName := r.EntityName
		if entityType != models.EntityTypePincode {
			entityName = CleanLabel(entityName)
		}
		if state == "" || entityType == "" || entityName == "" || r.Year == 0 || r.Quarter == 0 {
			continue
		}

		key := topKey{state, r.Year, r.Quarter, entityType, entityName}
		row, ok := grouped[key]
		if !ok {
			row = &models.TopUser{
				State:      state,
				Year:       r.Year,
				Quarter:    r.Quarter,
				EntityType: entityType,
				EntityName: entityName,
			}
			grouped[key] = row
		}
		row.RegisteredUsers += coerceInt(r.RegisteredUsers)
	}

	rows := make([]models.TopUser, 0, len(grouped))
	for _, row := range grouped {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return lessKey(
			[]string{rows[i].State, itoaPair(rows[i].Year, rows[i].Quarter), rows[i].EntityType, rows[i].EntityName},
			[]string{rows[j].State, itoaPair(rows[j].Year, rows[j].Quarter), rows[j].EntityType, rows[j].EntityName},
		)
	})

	t.logger.Info("Transformed %d top user rows (from %d raw)", len(rows), len(raw))
	return rows
}

// lessKey compares two composite keys lexicographically, component by
// component. Output ordering is cosmetic (stable logs and tests); the sink
// does not depend on it.
func lessKey(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func itoaPair(year, quarter int) string {
	return fmt.Sprintf("%04d%d", year, quarter)
}
