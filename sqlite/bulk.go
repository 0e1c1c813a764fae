package sqlite

import (
	"context"
	"database/sql"
	"slices"
	"strings"

	"github.com/fwojciec/cutil"
)

// Row is a single record keyed by column name.
type Row map[string]any

// Insert writes rows to table with multi-row INSERT statements and returns
// the returnCols of each inserted row ("id" when none are given). All rows
// must have the same columns. Rows are written in one transaction.
func (db *DB) Insert(ctx context.Context, table string, rows []Row, returnCols ...string) ([]Row, error) {
	if len(rows) == 0 {
		return []Row{}, nil
	}
	cols, err := columnsOf(rows)
	if err != nil {
		return nil, err
	}
	returnCols = defaultReturnCols(returnCols)

	var out []Row
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		for _, batch := range cutil.ChunksOf(maxParams/len(cols), rows) {
			query, args := insertStatement(table, cols, batch)
			query += " RETURNING " + quoteIdents(returnCols)

			res, err := queryRows(ctx, tx, query, args)
			if err != nil {
				return err
			}
			out = append(out, res...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertOptions configures Upsert.
type UpsertOptions struct {
	// ConflictFields name the unique columns that detect an existing row.
	// Required.
	ConflictFields []string

	// DoNothing keeps existing rows unchanged instead of updating them.
	DoNothing bool

	// UpdateFields are the columns overwritten on conflict. Defaults to
	// every column that is not a conflict field.
	UpdateFields []string

	// ReturnCols are returned for each written row. Defaults to "id".
	ReturnCols []string
}

// Upsert inserts rows into table, resolving conflicts on
// opts.ConflictFields by updating or keeping the existing row. It returns
// opts.ReturnCols of each inserted or updated row. With DoNothing, rows
// that hit a conflict are not returned.
func (db *DB) Upsert(ctx context.Context, table string, rows []Row, opts UpsertOptions) ([]Row, error) {
	if len(rows) == 0 {
		return []Row{}, nil
	}
	if len(opts.ConflictFields) == 0 {
		return nil, cutil.Errorf(cutil.EINVALID, "upsert requires conflict fields")
	}
	cols, err := columnsOf(rows)
	if err != nil {
		return nil, err
	}

	action := "NOTHING"
	if !opts.DoNothing {
		update := opts.UpdateFields
		if len(update) == 0 {
			for _, c := range cols {
				if !slices.Contains(opts.ConflictFields, c) {
					update = append(update, c)
				}
			}
		}
		if len(update) == 0 {
			return nil, cutil.Errorf(cutil.EINVALID, "upsert cannot update when every column is a conflict field")
		}

		sets := make([]string, len(update))
		for i, c := range update {
			sets[i] = quoteIdent(c) + " = excluded." + quoteIdent(c)
		}
		action = "UPDATE SET " + strings.Join(sets, ", ")
	}
	returnCols := defaultReturnCols(opts.ReturnCols)

	var out []Row
	err = db.withTx(ctx, func(tx *sql.Tx) error {
		for _, batch := range cutil.ChunksOf(maxParams/len(cols), rows) {
			query, args := insertStatement(table, cols, batch)
			query += " ON CONFLICT (" + quoteIdents(opts.ConflictFields) + ") DO " + action +
				" RETURNING " + quoteIdents(returnCols)

			res, err := queryRows(ctx, tx, query, args)
			if err != nil {
				return err
			}
			out = append(out, res...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update sets the columns of each row on the table row whose matchedField
// equals the row's value for it. Rows without matchedField, or with nothing
// else to set, are skipped and logged. It returns returnCols ("id" when
// none are given) of each updated row. Rows are updated in one transaction.
func (db *DB) Update(ctx context.Context, table string, rows []Row, matchedField string, returnCols ...string) ([]Row, error) {
	if matchedField == "" {
		matchedField = "id"
	}
	returnCols = defaultReturnCols(returnCols)

	out := []Row{}
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		for i, row := range rows {
			matched, ok := row[matchedField]
			if !ok || matched == nil {
				db.Logger.Warn("skipping row without matched field", "table", table, "row", i, "field", matchedField)
				continue
			}

			cols := make([]string, 0, len(row))
			for c := range row {
				if c != matchedField {
					cols = append(cols, c)
				}
			}
			if len(cols) == 0 {
				db.Logger.Warn("skipping row with nothing to update", "table", table, "row", i)
				continue
			}
			slices.Sort(cols)

			sets := make([]string, len(cols))
			args := make([]any, 0, len(cols)+1)
			for j, c := range cols {
				sets[j] = quoteIdent(c) + " = ?"
				args = append(args, row[c])
			}
			args = append(args, matched)

			query := "UPDATE " + quoteIdent(table) + " SET " + strings.Join(sets, ", ") +
				" WHERE " + quoteIdent(matchedField) + " = ? RETURNING " + quoteIdents(returnCols)

			res, err := queryRows(ctx, tx, query, args)
			if err != nil {
				return err
			}
			out = append(out, res...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// insertStatement builds a multi-row INSERT for rows over cols.
func insertStatement(table string, cols []string, rows []Row) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(quoteIdent(table))
	b.WriteString(" (")
	b.WriteString(quoteIdents(cols))
	b.WriteString(") VALUES ")

	row := placeholders(len(cols))
	args := make([]any, 0, len(rows)*len(cols))
	for i, r := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(row)
		for _, c := range cols {
			args = append(args, r[c])
		}
	}
	return b.String(), args
}

func queryRows(ctx context.Context, tx *sql.Tx, query string, args []any) ([]Row, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanRows(rows)
}
