package postgres

import (
	"context"
	"fmt"
	"reflect"

	"github.com/doug-martin/goqu/v9"
	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/geocoder89/eventclone/internal/store"
	"github.com/jackc/pgx/v5"
)

type tx struct {
	tx pgx.Tx
	g  *Gateway
}

func (g *Gateway) Begin(ctx context.Context) (store.Tx, error) {
	var t pgx.Tx
	err := g.observe("tx.begin", func() error {
		var err error
		t, err = g.pool.BeginTx(ctx, pgx.TxOptions{})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &tx{tx: t, g: g}, nil
}

// columns returns the struct behind the row so goqu reads its db tags.
func columns(row event.Row) any {
	return reflect.ValueOf(row).Elem().Interface()
}

func (t *tx) Insert(ctx context.Context, row event.Row) error {
	sql, args, err := dialect.Insert(row.Table()).
		Rows(columns(row)).
		Returning("id").
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", row.Table(), err)
	}

	return t.g.observe(row.Table()+".insert", func() error {
		return t.tx.QueryRow(ctx, sql, args...).Scan(row.PrimaryKey())
	})
}

func (t *tx) Update(ctx context.Context, row event.Row) error {
	sql, args, err := dialect.Update(row.Table()).
		Set(columns(row)).
		Where(goqu.C("id").Eq(*row.PrimaryKey())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update %s: %w", row.Table(), err)
	}

	return t.g.observe(row.Table()+".update", func() error {
		tag, err := t.tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("update %s %d: %w", row.Table(), *row.PrimaryKey(), event.ErrNotFound)
		}
		return nil
	})
}

// Link inserts an association row; an existing pair is left as is.
func (t *tx) Link(ctx context.Context, l event.Link) error {
	sql, args, err := dialect.Insert(l.Table).
		Cols(l.OwnerCol, l.RefCol).
		Vals(goqu.Vals{l.OwnerID, l.RefID}).
		OnConflict(goqu.DoNothing()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build link %s: %w", l.Table, err)
	}

	return t.g.observe(l.Table+".link", func() error {
		_, err := t.tx.Exec(ctx, sql, args...)
		return err
	})
}

func (t *tx) Commit(ctx context.Context) error {
	return t.g.observe("tx.commit", func() error {
		return t.tx.Commit(ctx)
	})
}

func (t *tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}
