package load_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/psurana/pulse-etl/etl/load"
	"github.com/psurana/pulse-etl/etl/models"
	"github.com/psurana/pulse-etl/etl/utils"
)

func openSink(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "pulse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, load.EnsureSchema(db))
	return db
}

func newLoader(t *testing.T, db *sql.DB) *load.SQLLoader {
	t.Helper()
	return load.NewSQLLoader(db, load.DialectSQLite, utils.NewETLLogger("", false))
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestLoadIsIdempotent(t *testing.T) {
	db := openSink(t)
	loader := newLoader(t, db)

	rows := []models.AggregatedTransaction{
		{State: "India", Year: 2023, Quarter: 1, TransactionType: "Recharge", Count: 10, Amount: 100},
		{State: "India", Year: 2023, Quarter: 2, TransactionType: "Recharge", Count: 20, Amount: 200},
	}

	require.NoError(t, loader.LoadAggregatedTransactions(rows))
	require.NoError(t, loader.LoadAggregatedTransactions(rows))
	require.Equal(t, 2, countRows(t, db, models.DatasetAggregatedTransactions))
}

func TestReloadOverwritesMeasuresOnly(t *testing.T) {
	db := openSink(t)
	loader := newLoader(t, db)

	first := []models.AggregatedUser{
		{State: "Kerala", Year: 2022, Quarter: 3, RegisteredUsers: 100, AppOpens: 1000},
	}
	second := []models.AggregatedUser{
		{State: "Kerala", Year: 2022, Quarter: 3, RegisteredUsers: 150, AppOpens: 1500},
	}

	require.NoError(t, loader.LoadAggregatedUsers(first))
	require.NoError(t, loader.LoadAggregatedUsers(second))

	var users, opens int64
	require.NoError(t, db.QueryRow(
		"SELECT registered_users, app_opens FROM aggregated_users WHERE state = ? AND year = ? AND quarter = ?",
		"Kerala", 2022, 3,
	).Scan(&users, &opens))
	require.Equal(t, int64(150), users)
	require.Equal(t, int64(1500), opens)
	require.Equal(t, 1, countRows(t, db, models.DatasetAggregatedUsers))
}

func TestBatchRollsBackOnFirstFailure(t *testing.T) {
	db := openSink(t)
	loader := newLoader(t, db)

	// The second row violates the quarter range check, so the whole
	// batch must be rolled back including the row already executed.
	rows := []models.MapTransaction{
		{State: "Karnataka", Year: 2023, Quarter: 1, District: "mysuru", Count: 5, Amount: 50},
		{State: "Karnataka", Year: 2023, Quarter: 9, District: "mysuru", Count: 5, Amount: 50},
	}

	err := loader.LoadMapTransactions(rows)
	require.Error(t, err)
	require.Contains(t, err.Error(), "row 2 of 2")
	require.Zero(t, countRows(t, db, models.DatasetMapTransactions))
}

func TestEmptyBatchIsNoOp(t *testing.T) {
	db := openSink(t)
	loader := newLoader(t, db)

	require.NoError(t, loader.LoadTopUsers(nil))
	require.Zero(t, countRows(t, db, models.DatasetTopUsers))
}

func TestLoadManagerIsolatesDatasetFailures(t *testing.T) {
	db := openSink(t)
	manager := load.NewLoadManager(newLoader(t, db), utils.NewETLLogger("", false))

	data := &models.TransformedData{
		AggregatedUsers: []models.AggregatedUser{
			{State: "India", Year: 2023, Quarter: 1, RegisteredUsers: 10, AppOpens: 100},
		},
		MapUsers: []models.MapUser{
			{State: "Kerala", Year: 2023, Quarter: 9, District: "kochi", RegisteredUsers: 1, AppOpens: 1},
		},
		TopUsers: []models.TopUser{
			{State: "India", Year: 2023, Quarter: 1, EntityType: "state", EntityName: "kerala", RegisteredUsers: 5},
		},
	}

	err := manager.Load(data)
	require.Error(t, err)
	require.Contains(t, err.Error(), models.DatasetMapUsers)

	require.Equal(t, 1, countRows(t, db, models.DatasetAggregatedUsers))
	require.Zero(t, countRows(t, db, models.DatasetMapUsers))
	require.Equal(t, 1, countRows(t, db, models.DatasetTopUsers))
}
