package clone

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/geocoder89/eventclone/internal/store"
)

// CopyBaseInformation copies the publish date, a fresh copy of the address, the
// organization and the category and calendar links of the source event.
func (c *Copier) CopyBaseInformation(ctx context.Context, target *event.Event, sourceID int64) error {
	return c.step(ctx, "base_information", sourceID, func(ctx context.Context, src *event.Event) (int, error) {
		target.PublishDate = src.PublishDate

		d := target.Detail
		addressID, err := c.CopyAddress(ctx, src.Detail.AddressID)
		if err != nil {
			return 0, err
		}
		d.AddressID = addressID
		d.OrganizationID = src.Detail.OrganizationID

		rows := 0
		for _, ci := range src.Detail.CategoryItems {
			if d.HasCategoryItem(ci.ID) {
				continue
			}
			id := ci.ID
			item := store.AttachOrGetLocal(c.sess.Identity(), id, func() *event.CategoryItem {
				return &event.CategoryItem{ID: id}
			})
			d.CategoryItems = append(d.CategoryItems, item)
			c.sess.Link(d, func(detailID int64) event.Link { return event.CategoryItemLink(detailID, id) })
			rows++
		}

		for _, cal := range src.Detail.Calendars {
			if d.HasCalendar(cal.ID) {
				continue
			}
			id := cal.ID
			item := store.AttachOrGetLocal(c.sess.Identity(), id, func() *event.Calendar {
				return &event.Calendar{ID: id}
			})
			d.Calendars = append(d.Calendars, item)
			c.sess.Link(d, func(detailID int64) event.Link { return event.CalendarLink(detailID, id) })
			rows++
		}

		c.sess.Update(target)
		c.sess.Update(d)
		return rows, nil
	})
}

// CopyAddress copies the tenant's address with the given id into a new row and saves
// it to obtain the id. A nil id, or an address that is missing, deleted or owned by
// another tenant, yields nil.
func (c *Copier) CopyAddress(ctx context.Context, addressID *int64) (*int64, error) {
	if addressID == nil {
		return nil, nil
	}

	src, err := c.sess.Address(ctx, c.actor.TenantID, *addressID)
	if errors.Is(err, event.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load address %d: %w", *addressID, err)
	}

	a := &event.Address{
		TenantID:      c.actor.TenantID,
		AddressTypeID: src.AddressTypeID,
		Address1:      src.Address1,
		Address2:      src.Address2,
		City:          src.City,
		StateProvince: src.StateProvince,
		CountryID:     src.CountryID,
		CountyID:      src.CountyID,
		PostalCode:    src.PostalCode,
	}
	c.sess.Add(a)

	if err := c.sess.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("save address copy: %w", err)
	}

	id := a.ID
	return &id, nil
}

func (c *Copier) CopyImages(ctx context.Context, target *event.Event, sourceID int64) error {
	return c.step(ctx, "images", sourceID, func(ctx context.Context, src *event.Event) (int, error) {
		images, err := c.sess.Images(ctx, src.EventDetailID)
		if err != nil {
			return 0, err
		}

		for _, img := range images {
			c.sess.Add(&event.Image{
				EventDetailID:   target.Detail.ID,
				FileImageInfoID: img.FileImageInfoID,
				GalleryOrder:    img.GalleryOrder,
			})
		}
		return len(images), nil
	})
}
