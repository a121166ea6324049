package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ABeGood/klim-fit/internal/models"
)

var testTime = time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i := range dest {
		switch target := dest[i].(type) {
		case *int64:
			*target = r.values[i].(int64)
		case *int:
			*target = r.values[i].(int)
		case *string:
			*target = r.values[i].(string)
		case **string:
			*target = r.values[i].(*string)
		case *time.Time:
			*target = r.values[i].(time.Time)
		case *bool:
			*target = r.values[i].(bool)
		case **int:
			*target = r.values[i].(*int)
		case **float64:
			*target = r.values[i].(*float64)
		case *map[string]bool:
			*target = r.values[i].(map[string]bool)
		case *[]models.Comment:
			*target = r.values[i].([]models.Comment)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type stubDBTX struct {
	queryRowFn func(ctx context.Context, query string, args ...any) stubRow
	execFn     func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	lastQuery  string
	lastArgs   []any
}

func (db *stubDBTX) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	db.lastQuery = query
	db.lastArgs = args
	if db.execFn != nil {
		return db.execFn(ctx, query, args...)
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (db *stubDBTX) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	db.lastQuery = query
	db.lastArgs = args
	return nil, errors.New("not implemented")
}

func (db *stubDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	db.lastQuery = query
	db.lastArgs = args
	return db.queryRowFn(ctx, query, args...)
}
