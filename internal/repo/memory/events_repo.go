package memory

import (
	"context"

	"github.com/geocoder89/eventclone/internal/domain/event"
)

func (db *DB) Event(ctx context.Context, tenantID, eventID int64) (*event.Event, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	e, ok := getLocked[event.Event](db, eventID)
	if !ok || e.TenantID != tenantID || e.IsDeleted {
		return nil, event.ErrNotFound
	}

	d, ok := getLocked[event.EventDetail](db, e.EventDetailID)
	if !ok {
		return nil, event.ErrNotFound
	}

	for _, l := range db.links[event.TableDetailCategoryItems] {
		if l.OwnerID == d.ID {
			d.CategoryItems = append(d.CategoryItems, &event.CategoryItem{ID: l.RefID})
		}
	}
	for _, l := range db.links[event.TableDetailCalendars] {
		if l.OwnerID == d.ID {
			d.Calendars = append(d.Calendars, &event.Calendar{ID: l.RefID})
		}
	}

	e.Detail = d
	return e, nil
}

func (db *DB) Address(ctx context.Context, tenantID, addressID int64) (*event.Address, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	a, ok := getLocked[event.Address](db, addressID)
	if !ok || a.TenantID != tenantID || a.IsDeleted {
		return nil, event.ErrNotFound
	}
	return a, nil
}

func (db *DB) Images(ctx context.Context, detailID int64) ([]*event.Image, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return listLocked[event.Image](db, func(i *event.Image) bool {
		return i.EventDetailID == detailID
	}), nil
}

func (db *DB) Sponsorships(ctx context.Context, detailID int64) ([]*event.Sponsorship, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := listLocked[event.Sponsorship](db, func(s *event.Sponsorship) bool {
		return s.EventDetailID == detailID && !s.IsDeleted
	})

	for _, s := range out {
		s.SaleableItems = listLocked[event.SponsorshipSaleableItem](db, func(i *event.SponsorshipSaleableItem) bool {
			return i.EventSponsorshipID == s.ID
		})
		for _, l := range db.links[event.TableSponsorshipBenefits] {
			if l.OwnerID == s.ID {
				s.Benefits = append(s.Benefits, &event.SponsorshipBenefit{ID: l.RefID})
			}
		}
	}
	return out, nil
}

func (db *DB) RegistrationTypes(ctx context.Context, detailID int64) ([]*event.RegistrationType, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := listLocked[event.RegistrationType](db, func(r *event.RegistrationType) bool {
		return r.EventDetailID == detailID && !r.IsDeleted
	})

	for _, r := range out {
		r.SaleableItems = listLocked[event.RegistrationTypeSaleableItem](db, func(i *event.RegistrationTypeSaleableItem) bool {
			return i.EventRegistrationTypeID == r.ID
		})
	}
	return out, nil
}

func (db *DB) RegistrationInfo(ctx context.Context, detailID int64) (*event.RegistrationInfo, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := listLocked[event.RegistrationInfo](db, func(r *event.RegistrationInfo) bool {
		return r.EventDetailID == detailID
	})
	if len(out) == 0 {
		return nil, event.ErrNotFound
	}
	return out[0], nil
}

func (db *DB) Discounts(ctx context.Context, detailID int64) ([]*event.EventDiscount, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := listLocked[event.EventDiscount](db, func(d *event.EventDiscount) bool {
		return d.EventDetailID == detailID && !d.IsDeleted
	})

	for _, d := range out {
		if disc, ok := getLocked[event.Discount](db, d.DiscountID); ok {
			d.Discount = disc
		}
		if d.EventRegistrationTypeID != nil {
			if rt, ok := getLocked[event.RegistrationType](db, *d.EventRegistrationTypeID); ok {
				name := rt.Name
				d.RegistrationTypeName = &name
			}
		}
	}
	return out, nil
}

func (db *DB) TaskItems(ctx context.Context, tenantID, eventID int64) ([]*event.TaskItem, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	links := listLocked[event.TaskLink](db, func(l *event.TaskLink) bool {
		return l.EventID == eventID
	})

	out := make([]*event.TaskItem, 0, len(links))
	for _, l := range links {
		t, ok := getLocked[event.TaskItem](db, l.TaskItemID)
		if !ok || t.TenantID != tenantID || t.IsDeleted {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (db *DB) Exhibitors(ctx context.Context, detailID int64) ([]*event.Exhibitor, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return listLocked[event.Exhibitor](db, func(e *event.Exhibitor) bool {
		return e.EventDetailID == detailID
	}), nil
}

func (db *DB) ExhibitorTypes(ctx context.Context, detailID int64) ([]*event.ExhibitorType, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return listLocked[event.ExhibitorType](db, func(e *event.ExhibitorType) bool {
		return e.EventDetailID == detailID
	}), nil
}

func (db *DB) ExhibitorRegistrationInfo(ctx context.Context, detailID int64) (*event.ExhibitorRegistrationInfo, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := listLocked[event.ExhibitorRegistrationInfo](db, func(e *event.ExhibitorRegistrationInfo) bool {
		return e.EventDetailID == detailID
	})
	if len(out) == 0 {
		return nil, event.ErrNotFound
	}
	return out[0], nil
}

func (db *DB) Registrations(ctx context.Context, tenantID, eventID int64) ([]*event.Registration, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return listLocked[event.Registration](db, func(r *event.Registration) bool {
		return r.EventID == eventID && r.TenantID == tenantID
	}), nil
}

func (db *DB) Attendees(ctx context.Context, eventID, registrationID int64) ([]*event.Attendee, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return listLocked[event.Attendee](db, func(a *event.Attendee) bool {
		return a.EventID == eventID && a.EventRegistrationID == registrationID
	}), nil
}

func (db *DB) Summaries(ctx context.Context, tenantID, eventID int64) ([]event.Summary, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	events := listLocked[event.Event](db, func(e *event.Event) bool {
		return e.ID == eventID && e.TenantID == tenantID && !e.IsDeleted
	})

	out := make([]event.Summary, 0, len(events))
	for _, e := range events {
		s := event.Summary{
			ID:            e.ID,
			EventDetailID: e.EventDetailID,
			PublishDate:   e.PublishDate,
			CreatedAt:     e.CreatedAt,
		}
		if d, ok := getLocked[event.EventDetail](db, e.EventDetailID); ok {
			s.Name = d.Name
			s.Description = d.Description
			s.StartDate = d.StartDate
			s.EndDate = d.EndDate
			s.OrganizationID = d.OrganizationID
			s.AddressID = d.AddressID
		}
		out = append(out, s)
	}
	return out, nil
}
