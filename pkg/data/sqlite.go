package data

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	// sqlite driver (pure Go)
	_ "modernc.org/sqlite"
)

// LoadSQLite runs query against the SQLite database at dbPath and returns the
// result set. Column kinds follow the declared column types; expression
// columns without a declared type are scanned like CSV text.
func LoadSQLite(ctx context.Context, dbPath, query string, opts Options) (*Dataset, error) {
	if query == "" {
		return nil, fmt.Errorf("sqlite source requires a query")
	}
	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	n := len(types)
	raw := make([][]string, n)
	null := make([][]bool, n)
	for rows.Next() {
		values := make([]any, n)
		ptrs := make([]any, n)
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for j, v := range values {
			raw[j] = append(raw[j], formatSQLValue(v))
			null[j] = append(null[j], v == nil)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	missing := opts.missingSet()
	cols := make([]*Column, n)
	for j, ct := range types {
		name := ct.Name()
		kind, forced := opts.Kinds[name]
		if !forced {
			var ok bool
			if kind, ok = KindFromDeclType(ct.DatabaseTypeName()); !ok {
				kind = inferNonNull(raw[j], null[j], missing)
			}
		}
		col, err := buildColumn(name, kind, raw[j], null[j], missing)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	return New(cols...)
}

// KindFromDeclType maps a declared SQLite column type to a Kind. ok is false
// when the type is empty and the caller has to scan values instead.
func KindFromDeclType(decl string) (kind Kind, ok bool) {
	t := strings.ToUpper(strings.TrimSpace(decl))
	switch {
	case t == "":
		return 0, false
	case strings.Contains(t, "BOOL"), strings.Contains(t, "DATE"),
		strings.Contains(t, "TIME"), strings.Contains(t, "BLOB"):
		return Unsupported, true
	case strings.Contains(t, "INT"), strings.Contains(t, "REAL"), strings.Contains(t, "FLOA"),
		strings.Contains(t, "DOUB"), strings.Contains(t, "NUM"), strings.Contains(t, "DEC"):
		return Numeric, true
	default:
		return Categorical, true
	}
}

func inferNonNull(raw []string, null []bool, missing map[string]struct{}) Kind {
	vals := make([]string, 0, len(raw))
	for i, v := range raw {
		if !null[i] {
			vals = append(vals, v)
		}
	}
	return InferKind(vals, missing)
}

func formatSQLValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
