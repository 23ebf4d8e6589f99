package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/geocoder89/eventclone/internal/repo/memory"
	"github.com/geocoder89/eventclone/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(tenantID int64) *event.Event {
	return &event.Event{
		TenantID:  tenantID,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Detail: &event.EventDetail{
			TenantID:  tenantID,
			Name:      "Annual Gala",
			StartDate: time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
		},
	}
}

func TestSaveChanges_EventWithDetailAndLinks(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDB()
	s := store.NewSession(db)

	e := newEvent(1)
	e.Detail.CategoryItems = []*event.CategoryItem{{ID: 7}}
	e.Detail.Calendars = []*event.Calendar{{ID: 3}, {ID: 4}}

	s.Add(e)
	require.NoError(t, s.SaveChanges(ctx))

	assert.NotZero(t, e.ID)
	assert.NotZero(t, e.Detail.ID)
	assert.Equal(t, e.Detail.ID, e.EventDetailID)
	assert.Len(t, db.Links(event.TableDetailCategoryItems), 1)
	assert.Len(t, db.Links(event.TableDetailCalendars), 2)
	assert.Zero(t, s.Pending())

	loaded, err := s.Event(ctx, 1, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Annual Gala", loaded.Detail.Name)
	assert.True(t, loaded.Detail.HasCalendar(4))
}

func TestSaveChanges_DiscountResolvesStagedRegistrationType(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDB()
	s := store.NewSession(db)

	e := newEvent(1)
	s.Add(e)
	require.NoError(t, s.SaveChanges(ctx))

	rt := &event.RegistrationType{
		EventDetailID: e.Detail.ID,
		Name:          "Member",
		SaleableItems: []*event.RegistrationTypeSaleableItem{{SaleableItemID: 5, Quantity: 1}},
	}
	s.Add(rt)

	d := &event.EventDiscount{
		EventDetailID:    e.Detail.ID,
		RegistrationType: rt,
		Discount:         &event.Discount{TenantID: 1, Name: "Early bird"},
	}
	s.Add(d)

	require.Equal(t, []*event.RegistrationType{rt}, s.LocalRegistrationTypes())
	require.NoError(t, s.SaveChanges(ctx))

	require.NotNil(t, d.EventRegistrationTypeID)
	assert.Equal(t, rt.ID, *d.EventRegistrationTypeID)
	assert.Equal(t, d.Discount.ID, d.DiscountID)
	assert.Equal(t, rt.ID, rt.SaleableItems[0].EventRegistrationTypeID)

	discounts, err := s.Discounts(ctx, e.Detail.ID)
	require.NoError(t, err)
	require.Len(t, discounts, 1)
	require.NotNil(t, discounts[0].RegistrationTypeName)
	assert.Equal(t, "Member", *discounts[0].RegistrationTypeName)
}

func TestSaveChanges_UnsavedReferenceRollsBack(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDB()
	s := store.NewSession(db)

	e := newEvent(1)
	s.Add(e)
	s.Add(&event.EventDiscount{
		RegistrationType: &event.RegistrationType{Name: "never staged"},
		Discount:         &event.Discount{Name: "x"},
	})

	err := s.SaveChanges(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrUnsavedReference))

	assert.Zero(t, e.ID)
	assert.Zero(t, e.Detail.ID)
	assert.Zero(t, db.Count("events"))
	assert.Zero(t, db.Count("discounts"))
	assert.Zero(t, s.Pending())
}

func TestSaveChanges_SponsorshipBenefitsAreLinked(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDB()
	s := store.NewSession(db)

	sp := &event.Sponsorship{
		EventDetailID: 10,
		Name:          "Gold",
		SaleableItems: []*event.SponsorshipSaleableItem{{SaleableItemID: 1}, {SaleableItemID: 2}},
		Benefits:      []*event.SponsorshipBenefit{{ID: 40}},
	}
	s.Add(sp)
	require.NoError(t, s.SaveChanges(ctx))

	links := db.Links(event.TableSponsorshipBenefits)
	require.Len(t, links, 1)
	assert.Equal(t, sp.ID, links[0].OwnerID)
	assert.Equal(t, int64(40), links[0].RefID)
	assert.Equal(t, 2, db.Count("event_sponsorship_saleable_items"))
}

func TestLink_UnsavedOwner(t *testing.T) {
	s := store.NewSession(memory.NewDB())

	d := &event.EventDetail{}
	s.Link(d, func(id int64) event.Link { return event.CalendarLink(id, 1) })

	err := s.SaveChanges(context.Background())
	assert.ErrorIs(t, err, store.ErrUnsavedReference)
}

func TestUpdate_WritesInPlace(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDB()
	s := store.NewSession(db)

	info := &event.RegistrationInfo{EventDetailID: 5}
	s.Add(info)
	require.NoError(t, s.SaveChanges(ctx))

	info.AllowWaitingList = true
	s.Update(info)
	require.NoError(t, s.SaveChanges(ctx))

	got, err := s.RegistrationInfo(ctx, 5)
	require.NoError(t, err)
	assert.True(t, got.AllowWaitingList)
	assert.Equal(t, 1, db.Count("event_registration_infos"))
}

func TestAttachOrGetLocal(t *testing.T) {
	im := store.NewIdentityMap()

	calls := 0
	mk := func(id int64) func() *event.Calendar {
		return func() *event.Calendar {
			calls++
			return &event.Calendar{ID: id}
		}
	}

	a := store.AttachOrGetLocal(im, 3, mk(3))
	b := store.AttachOrGetLocal(im, 3, mk(3))
	c := store.AttachOrGetLocal(im, 3, func() *event.CategoryItem { return &event.CategoryItem{ID: 3} })

	assert.Same(t, a, b)
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(3), c.ID)
	assert.Equal(t, 2, im.Len())
}
