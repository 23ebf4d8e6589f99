package memory

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"

	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/geocoder89/eventclone/internal/store"
)

var ErrTxDone = errors.New("transaction already finished")

// DB is an in-process gateway. Rows are stored as detached copies per table; ids
// come from one sequence per table.
type DB struct {
	mu     sync.RWMutex
	tables map[string]map[int64]event.Row
	links  map[string][]event.Link
	seq    map[string]int64

	// FailOn makes Insert fail for the named table. Used to exercise partial commits.
	FailOn map[string]error
}

func NewDB() *DB {
	return &DB{
		tables: make(map[string]map[int64]event.Row),
		links:  make(map[string][]event.Link),
		seq:    make(map[string]int64),
		FailOn: make(map[string]error),
	}
}

var _ store.Gateway = (*DB)(nil)

func (db *DB) Begin(ctx context.Context) (store.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &tx{db: db}, nil
}

// Seed stores rows directly. Rows without an id get the next id of their table.
func (db *DB) Seed(rows ...event.Row) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, r := range rows {
		pk := r.PrimaryKey()
		if *pk == 0 {
			*pk = db.nextIDLocked(r.Table())
		} else if *pk > db.seq[r.Table()] {
			db.seq[r.Table()] = *pk
		}
		db.putLocked(r)
	}
}

func (db *DB) SeedLinks(links ...event.Link) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, l := range links {
		db.links[l.Table] = append(db.links[l.Table], l)
	}
}

// Count returns the number of rows stored in the table.
func (db *DB) Count(table string) int {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return len(db.tables[table])
}

func (db *DB) Links(table string) []event.Link {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]event.Link, len(db.links[table]))
	copy(out, db.links[table])
	return out
}

// All returns copies of every row of type T in the table, ordered by id.
func All[T any, PT interface {
	*T
	event.Row
}](db *DB) []PT {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return listLocked[T, PT](db, func(PT) bool { return true })
}

func (db *DB) nextIDLocked(table string) int64 {
	db.seq[table]++
	return db.seq[table]
}

func (db *DB) putLocked(r event.Row) {
	t := db.tables[r.Table()]
	if t == nil {
		t = make(map[int64]event.Row)
		db.tables[r.Table()] = t
	}
	t[*r.PrimaryKey()] = detach(r)
}

func getLocked[T any, PT interface {
	*T
	event.Row
}](db *DB, id int64) (PT, bool) {
	var zero T
	r, ok := db.tables[PT(&zero).Table()][id]
	if !ok {
		return nil, false
	}
	return detach(r).(PT), true
}

func listLocked[T any, PT interface {
	*T
	event.Row
}](db *DB, keep func(PT) bool) []PT {
	var zero T
	rows := db.tables[PT(&zero).Table()]

	out := make([]PT, 0, len(rows))
	for _, r := range rows {
		v := detach(r).(PT)
		if keep(v) {
			out = append(out, v)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return *out[i].PrimaryKey() < *out[j].PrimaryKey()
	})
	return out
}

// detach returns a shallow copy of the row with its non-column fields cleared.
func detach(r event.Row) event.Row {
	src := reflect.ValueOf(r).Elem()
	cp := reflect.New(src.Type())
	cp.Elem().Set(src)

	t := src.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("db") == "-" {
			cp.Elem().Field(i).SetZero()
		}
	}
	return cp.Interface().(event.Row)
}

type txOp struct {
	row  event.Row
	link *event.Link
}

// tx buffers writes and applies them on Commit. Ids are allocated eagerly, so a
// rolled back transaction leaves gaps in the sequence like a database would.
type tx struct {
	db   *DB
	ops  []txOp
	done bool
}

func (t *tx) Insert(ctx context.Context, row event.Row) error {
	if t.done {
		return ErrTxDone
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t.db.mu.Lock()
	if err := t.db.FailOn[row.Table()]; err != nil {
		t.db.mu.Unlock()
		return err
	}
	*row.PrimaryKey() = t.db.nextIDLocked(row.Table())
	t.db.mu.Unlock()

	t.ops = append(t.ops, txOp{row: detach(row)})
	return nil
}

func (t *tx) Update(ctx context.Context, row event.Row) error {
	if t.done {
		return ErrTxDone
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t.db.mu.RLock()
	_, ok := t.db.tables[row.Table()][*row.PrimaryKey()]
	t.db.mu.RUnlock()

	if !ok && !t.insertedHere(row) {
		return event.ErrNotFound
	}

	t.ops = append(t.ops, txOp{row: detach(row)})
	return nil
}

func (t *tx) insertedHere(row event.Row) bool {
	for _, op := range t.ops {
		if op.row != nil && op.row.Table() == row.Table() && *op.row.PrimaryKey() == *row.PrimaryKey() {
			return true
		}
	}
	return false
}

func (t *tx) Link(ctx context.Context, l event.Link) error {
	if t.done {
		return ErrTxDone
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t.ops = append(t.ops, txOp{link: &l})
	return nil
}

func (t *tx) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxDone
	}
	t.done = true

	t.db.mu.Lock()
	defer t.db.mu.Unlock()

	for _, op := range t.ops {
		if op.link != nil {
			t.db.links[op.link.Table] = append(t.db.links[op.link.Table], *op.link)
			continue
		}
		t.db.putLocked(op.row)
	}
	return nil
}

func (t *tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.ops = nil
	return nil
}
