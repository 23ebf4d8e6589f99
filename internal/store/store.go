package store

import (
	"context"
	"errors"

	"github.com/geocoder89/eventclone/internal/domain/event"
)

// ErrUnsavedReference is returned when a staged row points at a row that has no id yet.
var ErrUnsavedReference = errors.New("reference to unsaved row")

// Reader is the read side of the persistence gateway. Lookups of a single row return
// event.ErrNotFound when nothing matches.
type Reader interface {
	// Event loads a non-deleted event of the tenant with its detail, category items and calendars.
	Event(ctx context.Context, tenantID, eventID int64) (*event.Event, error)
	// Address loads a non-deleted address of the tenant.
	Address(ctx context.Context, tenantID, addressID int64) (*event.Address, error)

	Images(ctx context.Context, detailID int64) ([]*event.Image, error)
	// Sponsorships returns non-deleted sponsorships with saleable items and benefits.
	Sponsorships(ctx context.Context, detailID int64) ([]*event.Sponsorship, error)
	// RegistrationTypes returns non-deleted registration types with saleable items.
	RegistrationTypes(ctx context.Context, detailID int64) ([]*event.RegistrationType, error)
	RegistrationInfo(ctx context.Context, detailID int64) (*event.RegistrationInfo, error)
	// Discounts returns non-deleted discount associations with their discount and
	// the name of the referenced registration type.
	Discounts(ctx context.Context, detailID int64) ([]*event.EventDiscount, error)
	// TaskItems returns the non-deleted tenant tasks linked to the event.
	TaskItems(ctx context.Context, tenantID, eventID int64) ([]*event.TaskItem, error)

	Exhibitors(ctx context.Context, detailID int64) ([]*event.Exhibitor, error)
	ExhibitorTypes(ctx context.Context, detailID int64) ([]*event.ExhibitorType, error)
	ExhibitorRegistrationInfo(ctx context.Context, detailID int64) (*event.ExhibitorRegistrationInfo, error)

	Registrations(ctx context.Context, tenantID, eventID int64) ([]*event.Registration, error)
	Attendees(ctx context.Context, eventID, registrationID int64) ([]*event.Attendee, error)

	// Summaries projects the non-deleted events of the tenant with the given id.
	Summaries(ctx context.Context, tenantID, eventID int64) ([]event.Summary, error)
}

// Tx is one write transaction. Insert assigns the generated id to the row.
type Tx interface {
	Insert(ctx context.Context, row event.Row) error
	Update(ctx context.Context, row event.Row) error
	Link(ctx context.Context, l event.Link) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Gateway interface {
	Reader
	Begin(ctx context.Context) (Tx, error)
}

// SessionFactory opens an independent session bound to a tenant's connection.
type SessionFactory interface {
	Open(ctx context.Context, tenantKey string) (*Session, error)
}
