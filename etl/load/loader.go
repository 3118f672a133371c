package load

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/psurana/pulse-etl/etl/models"
	"github.com/psurana/pulse-etl/etl/utils"
)

// Loader writes transformed rows into the sink, one dataset at a time.
type Loader interface {
	LoadAggregatedTransactions(rows []models.AggregatedTransaction) error
	LoadAggregatedUsers(rows []models.AggregatedUser) error
	LoadMapTransactions(rows []models.MapTransaction) error
	LoadMapUsers(rows []models.MapUser) error
	LoadTopTransactions(rows []models.TopTransaction) error
	LoadTopUsers(rows []models.TopUser) error
}

// SQLLoader implements Loader over a relational sink. Each dataset's batch
// runs inside a single transaction: either every row is applied or none.
type SQLLoader struct {
	db      *sql.DB
	dialect Dialect
	logger  *utils.ETLLogger
}

// NewSQLLoader creates a loader for the given sink connection.
func NewSQLLoader(db *sql.DB, dialect Dialect, logger *utils.ETLLogger) *SQLLoader {
	return &SQLLoader{db: db, dialect: dialect, logger: logger}
}

// execBatch upserts all rows of one dataset inside a single transaction.
// The first failure rolls the whole batch back and surfaces the error.
// An empty batch is a logged no-op.
func (l *SQLLoader) execBatch(table string, keyColumns, measureColumns []string, rows [][]interface{}) error {
	if len(rows) == 0 {
		l.logger.Info("No %s rows to load", table)
		return nil
	}

	startTime := time.Now()
	query := upsertQuery(l.dialect, table, keyColumns, measureColumns)

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning %s transaction: %w", table, err)
	}

	stmt, err := tx.Prepare(query)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("preparing %s upsert: %w", table, err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.Exec(row...); err != nil {
			tx.Rollback()
			return fmt.Errorf("upserting %s row %d of %d: %w", table, i+1, len(rows), err)
		}
	}

	if err := tx.Commit(); err != nil {
		tx.Rollback()
		return fmt.Errorf("committing %s batch: %w", table, err)
	}

	l.logger.Info("Loaded %d rows into %s in %v", len(rows), table, time.Since(startTime))
	return nil
}

func (l *SQLLoader) LoadAggregatedTransactions(rows []models.AggregatedTransaction) error {
	batch := make([][]interface{}, len(rows))
	for i, r := range rows {
		batch[i] = []interface{}{r.State, r.Year, r.Quarter, r.TransactionType, r.Count, r.Amount}
	}
	return l.execBatch(models.DatasetAggregatedTransactions,
		[]string{"state", "year", "quarter", "transaction_type"},
		[]string{"transaction_count", "transaction_amount"},
		batch)
}

func (l *SQLLoader) LoadAggregatedUsers(rows []models.AggregatedUser) error {
	batch := make([][]interface{}, len(rows))
	for i, r := range rows {
		batch[i] = []interface{}{r.State, r.Year, r.Quarter, r.RegisteredUsers, r.AppOpens}
	}
	return l.execBatch(models.DatasetAggregatedUsers,
		[]string{"state", "year", "quarter"},
		[]string{"registered_users", "app_opens"},
		batch)
}

func (l *SQLLoader) LoadMapTransactions(rows []models.MapTransaction) error {
	batch := make([][]interface{}, len(rows))
	for i, r := range rows {
		batch[i] = []interface{}{r.State, r.Year, r.Quarter, r.District, r.Count, r.Amount}
	}
	return l.execBatch(models.DatasetMapTransactions,
		[]string{"state", "year", "quarter", "district"},
		[]string{"transaction_count", "transaction_amount"},
		batch)
}

func (l *SQLLoader) LoadMapUsers(rows []models.MapUser) error {
	batch := make([][]interface{}, len(rows))
	for i, r := range rows {
		batch[i] = []interface{}{r.State, r.Year, r.Quarter, r.District, r.RegisteredUsers, r.AppOpens}
	}
	return l.execBatch(models.DatasetMapUsers,
		[]string{"state", "year", "quarter", "district"},
		[]string{"registered_users", "app_opens"},
		batch)
}

func (l *SQLLoader) LoadTopTransactions(rows []models.TopTransaction) error {
	batch := make([][]interface{}, len(rows))
	for i, r := range rows {
		batch[i] = []interface{}{r.State, r.Year, r.Quarter, r.EntityType, r.EntityName, r.Count, r.Amount}
	}
	return l.execBatch(models.DatasetTopTransactions,
		[]string{"state", "year", "quarter", "entity_type", "entity_name"},
		[]string{"transaction_count", "transaction_amount"},
		batch)
}

func (l *SQLLoader) LoadTopUsers(rows []models.TopUser) error {
	batch := make([][]interface{}, len(rows))
	for i, r := range rows {
		batch[i] = []interface{}{r.State, r.Year, r.Quarter, r.EntityType, r.EntityName, r.RegisteredUsers}
	}
	return l.execBatch(models.DatasetTopUsers,
		[]string{"state", "year", "quarter", "entity_type", "entity_name"},
		[]string{"registered_users"},
		batch)
}
