package load

import (
	"database/sql"
	"fmt"
	"strings"
)

// Schema holds the DDL for the six sink tables. Each table's primary key is
// its natural key; upserts conflict on it and overwrite measures only. The
// statements stick to the dialect subset MySQL and SQLite share.
const Schema = `
CREATE TABLE IF NOT EXISTS aggregated_transactions (
    state VARCHAR(100) NOT NULL,
    year INT NOT NULL,
    quarter INT NOT NULL CHECK (quarter BETWEEN 1 AND 4),
    transaction_type VARCHAR(100) NOT NULL,
    transaction_count BIGINT NOT NULL DEFAULT 0,
    transaction_amount DOUBLE NOT NULL DEFAULT 0,
    PRIMARY KEY (state, year, quarter, transaction_type)
);

CREATE TABLE IF NOT EXISTS aggregated_users (
    state VARCHAR(100) NOT NULL,
    year INT NOT NULL,
    quarter INT NOT NULL CHECK (quarter BETWEEN 1 AND 4),
    registered_users BIGINT NOT NULL DEFAULT 0,
    app_opens BIGINT NOT NULL DEFAULT 0,
    PRIMARY KEY (state, year, quarter)
);

CREATE TABLE IF NOT EXISTS map_transactions (
    state VARCHAR(100) NOT NULL,
    year INT NOT NULL,
    quarter INT NOT NULL CHECK (quarter BETWEEN 1 AND 4),
    district VARCHAR(100) NOT NULL,
    transaction_count BIGINT NOT NULL DEFAULT 0,
    transaction_amount DOUBLE NOT NULL DEFAULT 0,
    PRIMARY KEY (state, year, quarter, district)
);

CREATE TABLE IF NOT EXISTS map_users (
    state VARCHAR(100) NOT NULL,
    year INT NOT NULL,
    quarter INT NOT NULL CHECK (quarter BETWEEN 1 AND 4),
    district VARCHAR(100) NOT NULL,
    registered_users BIGINT NOT NULL DEFAULT 0,
    app_opens BIGINT NOT NULL DEFAULT 0,
    PRIMARY KEY (state, year, quarter, district)
);

CREATE TABLE IF NOT EXISTS top_transactions (
    state VARCHAR(100) NOT NULL,
    year INT NOT NULL,
    quarter INT NOT NULL CHECK (quarter BETWEEN 1 AND 4),
    entity_type VARCHAR(20) NOT NULL,
    entity_name VARCHAR(100) NOT NULL,
    transaction_count BIGINT NOT NULL DEFAULT 0,
    transaction_amount DOUBLE NOT NULL DEFAULT 0,
    PRIMARY KEY (state, year, quarter, entity_type, entity_name)
);

CREATE TABLE IF NOT EXISTS top_users (
    state VARCHAR(100) NOT NULL,
    year INT NOT NULL,
    quarter INT NOT NULL CHECK (quarter BETWEEN 1 AND 4),
    entity_type VARCHAR(20) NOT NULL,
    entity_name VARCHAR(100) NOT NULL,
    registered_users BIGINT NOT NULL DEFAULT 0,
    PRIMARY KEY (state, year, quarter, entity_type, entity_name)
);
`

// EnsureSchema creates the sink tables if they do not exist.
func EnsureSchema(db *sql.DB) error {
	for _, statement := range strings.Split(Schema, ";") {
		statement = strings.TrimSpace(statement)
		if statement == "" {
			continue
		}
		if _, err := db.Exec(statement); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}
