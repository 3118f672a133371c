package load

import (
	"fmt"
	"strings"
)

// Dialect names the upsert flavor of the sink driver.
type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite3"
)

// DialectFor maps a database/sql driver name to its Dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "mysql":
		return DialectMySQL, nil
	case "sqlite3":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported sink driver %q", driver)
	}
}

// upsertQuery builds a parameterized upsert keyed on the table's natural key.
// On conflict only the measure columns are overwritten; key columns are
// immutable once inserted.
func upsertQuery(dialect Dialect, table string, keyColumns, measureColumns []string) string {
	columns := append(append([]string{}, keyColumns...), measureColumns...)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")

	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), placeholders)

	switch dialect {
	case DialectSQLite:
		fmt.Fprintf(&b, " ON CONFLICT(%s) DO UPDATE SET ", strings.Join(keyColumns, ", "))
		for i, col := range measureColumns {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s = excluded.%s", col, col)
		}
	default: // DialectMySQL
		b.WriteString(" ON DUPLICATE KEY UPDATE ")
		for i, col := range measureColumns {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s = VALUES(%s)", col, col)
		}
	}

	return b.String()
}
