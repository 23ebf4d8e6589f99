package clone

import (
	"context"
	"errors"

	"github.com/geocoder89/eventclone/internal/domain/event"
)

// CopyExhibitors copies every exhibitor of the source detail as is, retargeted to the
// new detail.
func (c *Copier) CopyExhibitors(ctx context.Context, target *event.Event, sourceID int64) error {
	return c.step(ctx, "exhibitors", sourceID, func(ctx context.Context, src *event.Event) (int, error) {
		exhibitors, err := c.sess.Exhibitors(ctx, src.EventDetailID)
		if err != nil {
			return 0, err
		}

		for _, e := range exhibitors {
			n := *e
			n.ID = 0
			n.EventDetailID = target.Detail.ID
			c.sess.Add(&n)
		}
		return len(exhibitors), nil
	})
}

// CopyExhibitorSetup copies the exhibitor registration info, when the source has one,
// and every exhibitor type.
func (c *Copier) CopyExhibitorSetup(ctx context.Context, target *event.Event, sourceID int64) error {
	return c.step(ctx, "exhibitor_setup", sourceID, func(ctx context.Context, src *event.Event) (int, error) {
		rows := 0

		info, err := c.sess.ExhibitorRegistrationInfo(ctx, src.EventDetailID)
		switch {
		case errors.Is(err, event.ErrNotFound):
		case err != nil:
			return 0, err
		default:
			c.sess.Add(&event.ExhibitorRegistrationInfo{
				EventDetailID:                     target.Detail.ID,
				DefaultBoothConfigurationID:       info.DefaultBoothConfigurationID,
				RegistrationStartDate:             info.RegistrationStartDate,
				RegistrationEndDate:               info.RegistrationEndDate,
				AllowWaitingList:                  info.AllowWaitingList,
				DepositDueBy:                      info.DepositDueBy,
				EnableOnlineExhibitorRegistration: info.EnableOnlineExhibitorRegistration,
				ExhibitorDirectoryID:              info.ExhibitorDirectoryID,
				TermsOfUseID:                      info.TermsOfUseID,
				AllowLogo:                         info.AllowLogo,
				LogoWidth:                         info.LogoWidth,
				LogoHeight:                        info.LogoHeight,
				RegistrationInstructions:          info.RegistrationInstructions,
				ConfirmationMessage:               info.ConfirmationMessage,
				MaximumExhibitors:                 info.MaximumExhibitors,
				AllowInvoicing:                    info.AllowInvoicing,
			})
			rows++
		}

		types, err := c.sess.ExhibitorTypes(ctx, src.EventDetailID)
		if err != nil {
			return rows, err
		}
		for _, t := range types {
			c.sess.Add(&event.ExhibitorType{
				EventDetailID:                       target.Detail.ID,
				TenantID:                            c.actor.TenantID,
				Name:                                t.Name,
				Description:                         t.Description,
				IncludedAttendeeQuantity:            t.IncludedAttendeeQuantity,
				ExhibitorAttendeeRegistrationTypeID: t.ExhibitorAttendeeRegistrationTypeID,
				MaximumExhibitors:                   t.MaximumExhibitors,
			})
			rows++
		}
		return rows, nil
	})
}
