package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/psurana/pulse-etl/etl/config"
	"github.com/psurana/pulse-etl/etl/models"
	"github.com/psurana/pulse-etl/etl/utils"
)

// NewViewCommand builds the `view` subcommand: read-only inspection of the
// sink tables. Without flags it prints a row-count summary of all six
// tables.
func NewViewCommand(stdout io.Writer) *cobra.Command {
	var (
		table   string
		limit   int
		query   string
		showAll bool
	)

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "inspect the loaded tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := utils.NewETLLogger("", false)

			db, err := config.ConnectDatabase(cfg.Database)
			if err != nil {
				return err
			}
			defer config.CloseDatabase(db, logger)

			switch {
			case query != "":
				return printQuery(stdout, db, query)
			case table != "":
				return printTable(stdout, db, table, limit)
			case showAll:
				if err := printSummary(stdout, db); err != nil {
					return err
				}
				for _, name := range models.DatasetNames {
					if err := printTable(stdout, db, name, limit); err != nil {
						return err
					}
				}
				return nil
			default:
				return printSummary(stdout, db)
			}
		},
	}

	flags := viewCmd.Flags()
	flags.StringVar(&table, "table", "", "table to display")
	flags.IntVar(&limit, "limit", 10, "number of rows to display")
	flags.StringVar(&query, "query", "", "ad-hoc SQL query to run against the sink")
	flags.BoolVar(&showAll, "all", false, "display a sample of every table")

	return viewCmd
}

func validTable(name string) bool {
	for _, t := range models.DatasetNames {
		if t == name {
			return true
		}
	}
	return false
}

func printSummary(w io.Writer, db *sql.DB) error {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "DATABASE SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TABLE\tRECORDS")
	for _, name := range models.DatasetNames {
		var count int64
		if err := db.QueryRow("SELECT COUNT(*) FROM " + name).Scan(&count); err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\n", name, err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d (%s)\n", name, count, formatNumber(float64(count)))
	}
	return tw.Flush()
}

func printTable(w io.Writer, db *sql.DB, table string, limit int) error {
	if !validTable(table) {
		return fmt.Errorf("unknown table %q (expected one of %s)", table, strings.Join(models.DatasetNames, ", "))
	}

	var total int64
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&total); err != nil {
		return fmt.Errorf("counting %s rows: %w", table, err)
	}

	fmt.Fprintf(w, "\nTable: %s (%d rows)\n", table, total)
	if total == 0 {
		return nil
	}

	if err := printQuery(w, db, fmt.Sprintf("SELECT * FROM %s LIMIT %d", table, limit)); err != nil {
		return err
	}
	if total > int64(limit) {
		fmt.Fprintf(w, "... and %d more rows (use --limit to see more)\n", total-int64(limit))
	}
	return nil
}

func printQuery(w io.Writer, db *sql.DB, query string) error {
	rows, err := db.Query(query)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("reading columns: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(columns, "\t")))

	values := make([]sql.NullString, len(columns))
	scanArgs := make([]interface{}, len(columns))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	count := 0
	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		fields := make([]string, len(values))
		for i, v := range values {
			if v.Valid {
				fields[i] = v.String
			} else {
				fields[i] = "NULL"
			}
		}
		fmt.Fprintln(tw, strings.Join(fields, "\t"))
		count++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d rows\n", count)
	return nil
}

// formatNumber renders large values with K/M/B suffixes. Display-only; the
// stored measures stay in base units.
func formatNumber(num float64) string {
	switch {
	case num >= 1e9:
		return fmt.Sprintf("%.2fB", num/1e9)
	case num >= 1e6:
		return fmt.Sprintf("%.2fM", num/1e6)
	case num >= 1e3:
		return fmt.Sprintf("%.2fK", num/1e3)
	default:
		return fmt.Sprintf("%.2f", num)
	}
}
