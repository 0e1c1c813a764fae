package sqlite_test

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"testing"

	"github.com/fwojciec/cutil"
	"github.com/fwojciec/cutil/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wideRow(n int) sqlite.Row {
	row := sqlite.Row{"name": "wide"}
	for i := 1; i < n; i++ {
		row["c"+strconv.Itoa(i)] = i
	}
	return row
}

func TestDB_Insert(t *testing.T) {
	t.Parallel()

	t.Run("inserts rows and returns ids", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)
		ctx := context.Background()

		ids, err := db.Insert(ctx, "items", []sqlite.Row{
			{"name": "a", "price": 1.5},
			{"name": "b", "price": 2.0},
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []sqlite.Row{{"id": int64(1)}, {"id": int64(2)}}, ids)

		var price float64
		err = db.QueryRowContext(ctx, "SELECT price FROM items WHERE name = ?", "a").Scan(&price)
		require.NoError(t, err)
		assert.Equal(t, 1.5, price)
	})

	t.Run("returns requested columns", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)

		got, err := db.Insert(context.Background(), "items", []sqlite.Row{{"name": "a"}}, "id", "name")
		require.NoError(t, err)
		assert.Equal(t, []sqlite.Row{{"id": int64(1), "name": "a"}}, got)
	})

	t.Run("returns empty result for no rows", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)

		got, err := db.Insert(context.Background(), "items", nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("returns EINVALID for mismatched columns", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)

		_, err := db.Insert(context.Background(), "items", []sqlite.Row{
			{"name": "a", "price": 1.0},
			{"name": "b", "url": "x"},
		})
		require.Error(t, err)
		assert.Equal(t, cutil.EINVALID, cutil.ErrorCode(err))
	})

	t.Run("returns EINVALID for rows wider than one statement allows", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)

		_, err := db.Insert(context.Background(), "items", []sqlite.Row{wideRow(32767)})
		require.Error(t, err)
		assert.Equal(t, cutil.EINVALID, cutil.ErrorCode(err))

		_, err = db.Upsert(context.Background(), "items", []sqlite.Row{wideRow(32767)}, sqlite.UpsertOptions{ConflictFields: []string{"name"}})
		require.Error(t, err)
		assert.Equal(t, cutil.EINVALID, cutil.ErrorCode(err))

		var count int
		require.NoError(t, db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM items`).Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("rolls back every row on failure", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)
		ctx := context.Background()

		_, err := db.Insert(ctx, "items", []sqlite.Row{{"name": "dup"}, {"name": "dup"}})
		require.Error(t, err)

		var count int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count))
		assert.Zero(t, count)
	})
}

func TestDB_Upsert(t *testing.T) {
	t.Parallel()

	t.Run("updates existing rows on conflict", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)
		ctx := context.Background()

		_, err := db.Insert(ctx, "items", []sqlite.Row{{"name": "a", "price": 1.0}})
		require.NoError(t, err)

		got, err := db.Upsert(ctx, "items", []sqlite.Row{
			{"name": "a", "price": 3.0},
			{"name": "b", "price": 4.0},
		}, sqlite.UpsertOptions{ConflictFields: []string{"name"}})
		require.NoError(t, err)
		assert.ElementsMatch(t, []sqlite.Row{{"id": int64(1)}, {"id": int64(2)}}, got)

		var price float64
		require.NoError(t, db.QueryRowContext(ctx, "SELECT price FROM items WHERE name = 'a'").Scan(&price))
		assert.Equal(t, 3.0, price)
	})

	t.Run("updates only the given fields", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)
		ctx := context.Background()

		_, err := db.Insert(ctx, "items", []sqlite.Row{{"name": "a", "price": 1.0, "url": "old"}})
		require.NoError(t, err)

		_, err = db.Upsert(ctx, "items", []sqlite.Row{{"name": "a", "price": 9.0, "url": "new"}}, sqlite.UpsertOptions{
			ConflictFields: []string{"name"},
			UpdateFields:   []string{"url"},
		})
		require.NoError(t, err)

		var price float64
		var url string
		require.NoError(t, db.QueryRowContext(ctx, "SELECT price, url FROM items WHERE name = 'a'").Scan(&price, &url))
		assert.Equal(t, 1.0, price)
		assert.Equal(t, "new", url)
	})

	t.Run("keeps existing rows with DoNothing", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)
		ctx := context.Background()

		_, err := db.Insert(ctx, "items", []sqlite.Row{{"name": "a", "price": 1.0}})
		require.NoError(t, err)

		got, err := db.Upsert(ctx, "items", []sqlite.Row{{"name": "a", "price": 5.0}}, sqlite.UpsertOptions{
			ConflictFields: []string{"name"},
			DoNothing:      true,
		})
		require.NoError(t, err)
		assert.Empty(t, got)

		var price float64
		require.NoError(t, db.QueryRowContext(ctx, "SELECT price FROM items WHERE name = 'a'").Scan(&price))
		assert.Equal(t, 1.0, price)
	})

	t.Run("returns EINVALID without conflict fields", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)

		_, err := db.Upsert(context.Background(), "items", []sqlite.Row{{"name": "a"}}, sqlite.UpsertOptions{})
		require.Error(t, err)
		assert.Equal(t, cutil.EINVALID, cutil.ErrorCode(err))
	})

	t.Run("returns EINVALID when nothing can be updated", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)

		_, err := db.Upsert(context.Background(), "items", []sqlite.Row{{"name": "a"}}, sqlite.UpsertOptions{
			ConflictFields: []string{"name"},
		})
		require.Error(t, err)
		assert.Equal(t, cutil.EINVALID, cutil.ErrorCode(err))
	})
}

func TestDB_Update(t *testing.T) {
	t.Parallel()

	t.Run("updates rows matched by id", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)
		ctx := context.Background()

		_, err := db.Insert(ctx, "items", []sqlite.Row{{"name": "a", "price": 1.0}, {"name": "b", "price": 2.0}})
		require.NoError(t, err)

		got, err := db.Update(ctx, "items", []sqlite.Row{{"id": 2, "price": 7.0}}, "")
		require.NoError(t, err)
		assert.Equal(t, []sqlite.Row{{"id": int64(2)}}, got)

		var price float64
		require.NoError(t, db.QueryRowContext(ctx, "SELECT price FROM items WHERE id = 2").Scan(&price))
		assert.Equal(t, 7.0, price)
	})

	t.Run("matches on a custom field", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)
		ctx := context.Background()

		_, err := db.Insert(ctx, "items", []sqlite.Row{{"name": "a", "url": ""}})
		require.NoError(t, err)

		got, err := db.Update(ctx, "items", []sqlite.Row{{"name": "a", "url": "https://example.com"}}, "name", "url")
		require.NoError(t, err)
		assert.Equal(t, []sqlite.Row{{"url": "https://example.com"}}, got)
	})

	t.Run("skips and logs rows without the matched field", func(t *testing.T) {
		t.Parallel()

		db := openItems(t)
		var buf bytes.Buffer
		db.Logger = slog.New(slog.NewTextHandler(&buf, nil))

		got, err := db.Update(context.Background(), "items", []sqlite.Row{{"price": 1.0}, {"id": 1}}, "id")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Contains(t, buf.String(), "skipping row without matched field")
		assert.Contains(t, buf.String(), "skipping row with nothing to update")
	})
}
