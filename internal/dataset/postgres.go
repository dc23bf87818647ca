package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/lib/pq"
	"github.com/spf13/cast"

	"student-score-predictor/internal/models"
)

// PostgresSource reads the dataset from a PostgreSQL table
type PostgresSource struct {
	DSN   string
	Table string

	db *sql.DB
}

// NewPostgresSource creates a source for table reachable through dsn
func NewPostgresSource(dsn, table string) *PostgresSource {
	return &PostgresSource{DSN: dsn, Table: table}
}

func (p *PostgresSource) Name() string {
	return "postgres:" + p.Table
}

// Connect opens and pings the database
func (p *PostgresSource) Connect(ctx context.Context) error {
	db, err := sql.Open("postgres", p.DSN)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return err
	}
	p.db = db
	return nil
}

// Close releases the connection pool
func (p *PostgresSource) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// ListTables returns the tables of the public schema
func (p *PostgresSource) ListTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name;
	`
	rows, err := p.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}
	return tables, rows.Err()
}

// Load reads the schema's columns from the configured table. The table
// must exist in the public schema.
func (p *PostgresSource) Load(ctx context.Context, schema models.Schema) (*Frame, error) {
	if p.db == nil {
		if err := p.Connect(ctx); err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
	}

	tables, err := p.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	if !containsString(tables, p.Table) {
		return nil, fmt.Errorf("table %q not found in public schema", p.Table)
	}

	rows, err := p.db.QueryContext(ctx, selectQuery(p.Table, schema.Names()))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", p.Table, err)
	}
	defer rows.Close()

	header := schema.Names()
	records := [][]string{header}
	for rows.Next() {
		values := make([]interface{}, len(header))
		valuePtrs := make([]interface{}, len(header))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		record := make([]string, len(values))
		for i, v := range values {
			record[i] = formatValue(v)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	df := dataframe.LoadRecords(records, loadOptions(schema)...)
	return newFrame(df, schema, p.Name())
}

func selectQuery(table string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), pq.QuoteIdentifier(table))
}

// formatValue renders a scanned driver value the way it would appear in CSV
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		// NUMERIC and text columns arrive as bytes
		return string(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return cast.ToString(val)
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
