package clone

import (
	"context"
	"errors"
	"fmt"

	"github.com/geocoder89/eventclone/internal/domain/event"
)

// CopyRegistrationInfo upserts the target registration info with the field subset
// copied while the request is in flight.
func (c *Copier) CopyRegistrationInfo(ctx context.Context, target *event.Event, sourceID int64) error {
	return c.step(ctx, "registration_info", sourceID, func(ctx context.Context, src *event.Event) (int, error) {
		return c.upsertRegistrationInfo(ctx, target, src, copySyncRegistrationInfo)
	})
}

// CopyAttendeeSetup upserts the target registration info with the fuller field set
// copied in the background.
func (c *Copier) CopyAttendeeSetup(ctx context.Context, target *event.Event, sourceID int64) error {
	return c.step(ctx, "attendee_setup", sourceID, func(ctx context.Context, src *event.Event) (int, error) {
		return c.upsertRegistrationInfo(ctx, target, src, copyAsyncRegistrationInfo)
	})
}

func (c *Copier) upsertRegistrationInfo(ctx context.Context, target, src *event.Event, apply func(dst, src *event.RegistrationInfo)) (int, error) {
	from, err := c.sess.RegistrationInfo(ctx, src.EventDetailID)
	if errors.Is(err, event.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	to, err := c.sess.RegistrationInfo(ctx, target.Detail.ID)
	switch {
	case errors.Is(err, event.ErrNotFound):
		to = &event.RegistrationInfo{EventDetailID: target.Detail.ID}
		apply(to, from)
		c.sess.Add(to)
	case err != nil:
		return 0, err
	default:
		apply(to, from)
		c.sess.Update(to)
	}
	return 1, nil
}

// copySyncRegistrationInfo and copyAsyncRegistrationInfo intentionally copy different
// field sets. Keep them apart.
func copySyncRegistrationInfo(dst, src *event.RegistrationInfo) {
	dst.MaximumAttendees = src.MaximumAttendees
	dst.AllowWaitingList = src.AllowWaitingList
	dst.ShowRegisteredAttendeesPublically = src.ShowRegisteredAttendeesPublically
	dst.ShowRegisteredAttendeesToMembers = src.ShowRegisteredAttendeesToMembers
	dst.AllowSponsorWaitingList = src.AllowSponsorWaitingList
	dst.PaymentGatewayID = src.PaymentGatewayID
	dst.AttendeeRegistrationTemplateID = src.AttendeeRegistrationTemplateID
	dst.AttendeeReminderTemplateID = src.AttendeeReminderTemplateID
	dst.SponsorRegistrationTemplateID = src.SponsorRegistrationTemplateID
	dst.EnableRegistration = src.EnableRegistration
	dst.EnableExhibitors = src.EnableExhibitors
}

func copyAsyncRegistrationInfo(dst, src *event.RegistrationInfo) {
	dst.MaximumAttendees = src.MaximumAttendees
	dst.AllowWaitingList = src.AllowWaitingList
	dst.ShowRegisteredAttendeesPublically = src.ShowRegisteredAttendeesPublically
	dst.ShowRegisteredAttendeesToMembers = src.ShowRegisteredAttendeesToMembers
	dst.AllowSponsorWaitingList = src.AllowSponsorWaitingList
	dst.PaymentGatewayID = src.PaymentGatewayID
	dst.AttendeeRegistrationTemplateID = src.AttendeeRegistrationTemplateID
	dst.AttendeeReminderTemplateID = src.AttendeeReminderTemplateID
	dst.SponsorRegistrationTemplateID = src.SponsorRegistrationTemplateID
	dst.EnableRegistration = src.EnableRegistration
	dst.EnableExhibitors = src.EnableExhibitors
	dst.EnableSessions = src.EnableSessions
	dst.EnableSponsors = src.EnableSponsors

	dst.RegistrationStartDate = src.RegistrationStartDate
	dst.RegistrationEndDate = src.RegistrationEndDate
	dst.ExternalRegistrationLink = src.ExternalRegistrationLink
	dst.SponsorRegistrationStartDate = src.SponsorRegistrationStartDate
	dst.SponsorRegistrationEndDate = src.SponsorRegistrationEndDate
	dst.AttendeeRegistrationInstructions = src.AttendeeRegistrationInstructions
	dst.SponsorRegistrationInstructions = src.SponsorRegistrationInstructions
	dst.AdditionalEventConfirmationMessage = src.AdditionalEventConfirmationMessage
	dst.FieldRequirementsJSON = src.FieldRequirementsJSON
	dst.SessionChangesUntil = src.SessionChangesUntil
	dst.FullCancelUntil = src.FullCancelUntil
	dst.CancelPolicyDescription = src.CancelPolicyDescription
	dst.CancelPolicyJSON = src.CancelPolicyJSON
	dst.AllowAttendeeSubstitutesUntil = src.AllowAttendeeSubstitutesUntil
}

// CopyRegistrationTypes copies the non-deleted registration types with their saleable
// items. The payment gateway lives on the registration info and is not carried over.
func (c *Copier) CopyRegistrationTypes(ctx context.Context, target *event.Event, sourceID int64) error {
	return c.step(ctx, "registration_types", sourceID, func(ctx context.Context, src *event.Event) (int, error) {
		types, err := c.sess.RegistrationTypes(ctx, src.EventDetailID)
		if err != nil {
			return 0, err
		}

		rows := 0
		for _, rt := range types {
			n := &event.RegistrationType{
				EventDetailID:            target.Detail.ID,
				Name:                     rt.Name,
				Description:              rt.Description,
				Price:                    rt.Price,
				IsForMembers:             rt.IsForMembers,
				IsForNonMembers:          rt.IsForNonMembers,
				IsDisplayedForNonMembers: rt.IsDisplayedForNonMembers,
				MaximumQuantity:          rt.MaximumQuantity,
				NumberOfAttendees:        rt.NumberOfAttendees,
				ReserveAllAttendees:      rt.ReserveAllAttendees,
				PurchaseTypeID:           rt.PurchaseTypeID,
				AllowOnlinePurchase:      rt.AllowOnlinePurchase,
				AllowOnlineInvoice:       rt.AllowOnlineInvoice,
				Terms:                    rt.Terms,
				TermsURL:                 rt.TermsURL,
				ExplicitTermAcceptance:   rt.ExplicitTermAcceptance,
				SystemRegistrationTypeID: rt.SystemRegistrationTypeID,
			}
			for _, item := range rt.SaleableItems {
				n.SaleableItems = append(n.SaleableItems, &event.RegistrationTypeSaleableItem{
					SaleableItemID: item.SaleableItemID,
					Quantity:       item.Quantity,
					Price:          item.Price,
					HideOnInvoice:  item.HideOnInvoice,
				})
			}

			c.sess.Add(n)
			rows += 1 + len(n.SaleableItems)
		}
		return rows, nil
	})
}

// CopyDiscounts copies the non-deleted discounts as brand-new discounts with no usage.
// The registration type is matched by exact name against the types staged for the new
// event. Without a match the reference is left empty; with several the first wins.
func (c *Copier) CopyDiscounts(ctx context.Context, target *event.Event, sourceID int64) error {
	return c.step(ctx, "discounts", sourceID, func(ctx context.Context, src *event.Event) (int, error) {
		discounts, err := c.sess.Discounts(ctx, src.EventDetailID)
		if err != nil {
			return 0, err
		}

		var local []*event.RegistrationType
		for _, rt := range c.sess.LocalRegistrationTypes() {
			if rt.EventDetailID == target.Detail.ID {
				local = append(local, rt)
			}
		}

		rows := 0
		for _, d := range discounts {
			if d.Discount == nil {
				c.unresolved(ctx, "event_discount.discount", "event_discount_id", d.ID, "discount_id", d.DiscountID)
				continue
			}

			n := &event.EventDiscount{
				EventDetailID:    target.Detail.ID,
				CategoryItemID:   d.CategoryItemID,
				MembershipTypeID: d.MembershipTypeID,
				GroupID:          d.GroupID,
				IsExcluded:       d.IsExcluded,
				Discount:         c.copyDiscount(d.Discount),
			}

			if d.RegistrationTypeName != nil {
				n.RegistrationType = c.matchRegistrationType(ctx, local, *d.RegistrationTypeName, d.ID)
			}

			c.sess.Add(n)
			rows += 2
		}
		return rows, nil
	})
}

func (c *Copier) matchRegistrationType(ctx context.Context, local []*event.RegistrationType, name string, eventDiscountID int64) *event.RegistrationType {
	var found *event.RegistrationType
	matches := 0
	for _, rt := range local {
		if rt.Name == name {
			if found == nil {
				found = rt
			}
			matches++
		}
	}

	switch {
	case matches == 0:
		c.unresolved(ctx, "event_discount.registration_type", "event_discount_id", eventDiscountID, "registration_type", name)
	case matches > 1:
		c.log.WarnContext(ctx, "registration type name is ambiguous, using first match",
			"event_discount_id", eventDiscountID, "registration_type", name, "matches", matches)
	}
	return found
}

func (c *Copier) copyDiscount(src *event.Discount) *event.Discount {
	return &event.Discount{
		TenantID:                    c.actor.TenantID,
		Name:                        src.Name,
		DiscountTypeID:              src.DiscountTypeID,
		StartDate:                   src.StartDate,
		EndDate:                     src.EndDate,
		PromoCode:                   src.PromoCode,
		CanBeUsedWithOtherDiscounts: src.CanBeUsedWithOtherDiscounts,
		TotalAvailable:              src.TotalAvailable,
		LimitPerPurchase:            src.LimitPerPurchase,
		MinToActivateDiscount:       src.MinToActivateDiscount,
		UsedQuantity:                0,
		DiscountNewPrice:            src.DiscountNewPrice,
		DiscountPercent:             src.DiscountPercent,
		DiscountAmount:              src.DiscountAmount,
	}
}

// CopyAttendees copies every registration of the source event that has an attendee.
// Each registration gets a new key, is attributed to the actor and is saved before its
// attendee is staged. Registrations without an attendee are skipped.
func (c *Copier) CopyAttendees(ctx context.Context, target *event.Event, sourceID int64) error {
	return c.step(ctx, "attendees", sourceID, func(ctx context.Context, src *event.Event) (int, error) {
		regs, err := c.sess.Registrations(ctx, c.actor.TenantID, src.ID)
		if err != nil {
			return 0, err
		}

		rows := 0
		for _, reg := range regs {
			attendees, err := c.sess.Attendees(ctx, src.ID, reg.ID)
			if err != nil {
				return rows, err
			}
			if len(attendees) == 0 {
				continue
			}
			if len(attendees) > 1 {
				return rows, fmt.Errorf("registration %d: %w", reg.ID, ErrAmbiguousAttendee)
			}
			a := attendees[0]

			n := &event.Registration{
				EventID:                 target.ID,
				TenantID:                c.actor.TenantID,
				EventRegistrationTypeID: reg.EventRegistrationTypeID,
				RegistrationKey:         c.newKey(),
				RegistrationDate:        c.now(),
				RegisteredBy:            c.actor.ContactID,
				PurchaseStatusTypeID:    reg.PurchaseStatusTypeID,
				WebReferralSourceTypeID: reg.WebReferralSourceTypeID,
				Comments:                reg.Comments,
				WebMarketingInfoID:      reg.WebMarketingInfoID,
				TableNumber:             reg.TableNumber,
			}
			c.sess.Add(n)
			if err := c.sess.SaveChanges(ctx); err != nil {
				return rows, fmt.Errorf("save registration copy: %w", err)
			}

			c.sess.Add(&event.Attendee{
				EventID:               target.ID,
				EventRegistrationID:   n.ID,
				EventAttendeeStatusID: a.EventAttendeeStatusID,
				ContactID:             a.ContactID,
				OrganizationID:        a.OrganizationID,
				AddressID:             a.AddressID,
				EmailID:               a.EmailID,
				PhoneID:               a.PhoneID,
				SeatNumber:            a.SeatNumber,
			})
			rows += 2
		}
		return rows, nil
	})
}
