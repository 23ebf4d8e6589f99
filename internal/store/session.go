package store

import (
	"context"
	"fmt"

	"github.com/geocoder89/eventclone/internal/domain/event"
)

type opKind int

const (
	opInsert opKind = iota
	opUpdate
	opLink
)

type pendingOp struct {
	kind  opKind
	row   event.Row
	build func(ownerID int64) event.Link
}

// Session is a unit of work over a Gateway. Rows are staged with Add, Update and Link
// and written in staging order by SaveChanges, which assigns generated ids back to
// the staged rows. Reads go straight to the gateway.
type Session struct {
	Reader

	gw       Gateway
	ids      *IdentityMap
	pending  []pendingOp
	regTypes []*event.RegistrationType
}

func NewSession(gw Gateway) *Session {
	return &Session{
		Reader: gw,
		gw:     gw,
		ids:    NewIdentityMap(),
	}
}

// Identity returns the identity map of shared reference entities for this session.
func (s *Session) Identity() *IdentityMap {
	return s.ids
}

// Add stages an insert. Rows that already carry an id are skipped on save.
func (s *Session) Add(row event.Row) {
	s.pending = append(s.pending, pendingOp{kind: opInsert, row: row})

	if rt, ok := row.(*event.RegistrationType); ok {
		s.regTypes = append(s.regTypes, rt)
	}
}

func (s *Session) Update(row event.Row) {
	s.pending = append(s.pending, pendingOp{kind: opUpdate, row: row})
}

// Link stages an association row whose owner id is read from owner at save time.
func (s *Session) Link(owner event.Row, build func(ownerID int64) event.Link) {
	s.pending = append(s.pending, pendingOp{kind: opLink, row: owner, build: build})
}

func (s *Session) Pending() int {
	return len(s.pending)
}

// LocalRegistrationTypes returns the registration types added through this session,
// saved or not, in the order they were added.
func (s *Session) LocalRegistrationTypes() []*event.RegistrationType {
	out := make([]*event.RegistrationType, len(s.regTypes))
	copy(out, s.regTypes)
	return out
}

// SaveChanges writes every staged change in one transaction. On failure the
// transaction is rolled back, ids assigned during the attempt are cleared and the
// staged changes are discarded.
func (s *Session) SaveChanges(ctx context.Context) (err error) {
	if len(s.pending) == 0 {
		return nil
	}

	ops := s.pending
	s.pending = nil

	tx, err := s.gw.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	w := &writer{tx: tx}

	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			for _, r := range w.inserted {
				*r.PrimaryKey() = 0
			}
		}
	}()

	for _, op := range ops {
		switch op.kind {
		case opInsert:
			err = w.insert(ctx, op.row)
		case opUpdate:
			err = w.update(ctx, op.row)
		case opLink:
			err = w.link(ctx, op.row, op.build)
		}
		if err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

type writer struct {
	tx       Tx
	inserted []event.Row
}

func (w *writer) insertRow(ctx context.Context, row event.Row) error {
	if *row.PrimaryKey() != 0 {
		return nil
	}

	if err := w.tx.Insert(ctx, row); err != nil {
		return fmt.Errorf("insert %s: %w", row.Table(), err)
	}

	w.inserted = append(w.inserted, row)
	return nil
}

// insert writes a row together with the children it owns.
func (w *writer) insert(ctx context.Context, row event.Row) error {
	if *row.PrimaryKey() != 0 {
		return nil
	}

	switch r := row.(type) {
	case *event.Event:
		return w.insertEvent(ctx, r)

	case *event.Sponsorship:
		if err := w.insertRow(ctx, r); err != nil {
			return err
		}
		for _, item := range r.SaleableItems {
			item.EventSponsorshipID = r.ID
			if err := w.insertRow(ctx, item); err != nil {
				return err
			}
		}
		for _, b := range r.Benefits {
			if b.ID == 0 {
				return fmt.Errorf("sponsorship benefit: %w", ErrUnsavedReference)
			}
			if err := w.tx.Link(ctx, event.SponsorshipBenefitLink(r.ID, b.ID)); err != nil {
				return fmt.Errorf("link %s: %w", event.TableSponsorshipBenefits, err)
			}
		}
		return nil

	case *event.RegistrationType:
		if err := w.insertRow(ctx, r); err != nil {
			return err
		}
		for _, item := range r.SaleableItems {
			item.EventRegistrationTypeID = r.ID
			if err := w.insertRow(ctx, item); err != nil {
				return err
			}
		}
		return nil

	case *event.EventDiscount:
		if r.Discount != nil {
			if err := w.insertRow(ctx, r.Discount); err != nil {
				return err
			}
			r.DiscountID = r.Discount.ID
		}
		if r.RegistrationType != nil {
			if r.RegistrationType.ID == 0 {
				return fmt.Errorf("registration type %q: %w", r.RegistrationType.Name, ErrUnsavedReference)
			}
			id := r.RegistrationType.ID
			r.EventRegistrationTypeID = &id
		}
		return w.insertRow(ctx, r)
	}

	return w.insertRow(ctx, row)
}

func (w *writer) insertEvent(ctx context.Context, e *event.Event) error {
	d := e.Detail
	freshDetail := d != nil && d.ID == 0

	if d != nil {
		if err := w.insertRow(ctx, d); err != nil {
			return err
		}
		e.EventDetailID = d.ID
	}

	if err := w.insertRow(ctx, e); err != nil {
		return err
	}

	if !freshDetail {
		return nil
	}

	for _, c := range d.CategoryItems {
		if err := w.tx.Link(ctx, event.CategoryItemLink(d.ID, c.ID)); err != nil {
			return fmt.Errorf("link %s: %w", event.TableDetailCategoryItems, err)
		}
	}
	for _, c := range d.Calendars {
		if err := w.tx.Link(ctx, event.CalendarLink(d.ID, c.ID)); err != nil {
			return fmt.Errorf("link %s: %w", event.TableDetailCalendars, err)
		}
	}
	return nil
}

func (w *writer) update(ctx context.Context, row event.Row) error {
	if *row.PrimaryKey() == 0 {
		return fmt.Errorf("update %s: %w", row.Table(), ErrUnsavedReference)
	}

	if err := w.tx.Update(ctx, row); err != nil {
		return fmt.Errorf("update %s: %w", row.Table(), err)
	}
	return nil
}

func (w *writer) link(ctx context.Context, owner event.Row, build func(int64) event.Link) error {
	ownerID := *owner.PrimaryKey()
	if ownerID == 0 {
		return fmt.Errorf("link owner %s: %w", owner.Table(), ErrUnsavedReference)
	}

	l := build(ownerID)
	if err := w.tx.Link(ctx, l); err != nil {
		return fmt.Errorf("link %s: %w", l.Table, err)
	}
	return nil
}
