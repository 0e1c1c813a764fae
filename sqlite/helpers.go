package sqlite

import (
	"database/sql"
	"slices"
	"strings"

	"github.com/fwojciec/cutil"
)

// maxParams is SQLite's default limit on bound parameters per statement.
const maxParams = 32766

// quoteIdent quotes a table or column name.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteIdents quotes and comma-joins names.
func quoteIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

// placeholders returns "(?, ?, ...)" with n parameters.
func placeholders(n int) string {
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", n), ", ") + ")"
}

// columnsOf returns the sorted column names of the first row and checks
// that every row has exactly the same columns and fits in one statement.
func columnsOf(rows []Row) ([]string, error) {
	cols := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		cols = append(cols, k)
	}
	slices.Sort(cols)
	if len(cols) == 0 {
		return nil, cutil.Errorf(cutil.EINVALID, "rows must have at least one column")
	}
	if len(cols) > maxParams {
		return nil, cutil.Errorf(cutil.EINVALID, "rows have %d columns, at most %d are supported", len(cols), maxParams)
	}

	for i, row := range rows[1:] {
		if len(row) != len(cols) {
			return nil, cutil.Errorf(cutil.EINVALID, "row %d has different columns than row 0", i+1)
		}
		for _, c := range cols {
			if _, ok := row[c]; !ok {
				return nil, cutil.Errorf(cutil.EINVALID, "row %d is missing column %q", i+1, c)
			}
		}
	}
	return cols, nil
}

// scanRows reads every result row into a Row keyed by column name.
func scanRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func defaultReturnCols(cols []string) []string {
	if len(cols) == 0 {
		return []string{"id"}
	}
	return cols
}
