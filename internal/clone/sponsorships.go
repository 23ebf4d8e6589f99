package clone

import (
	"context"

	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/geocoder89/eventclone/internal/store"
)

// CopySponsorships copies the non-deleted sponsorships with their saleable items and
// attaches the same benefits.
func (c *Copier) CopySponsorships(ctx context.Context, target *event.Event, sourceID int64) error {
	return c.step(ctx, "sponsorships", sourceID, func(ctx context.Context, src *event.Event) (int, error) {
		sponsorships, err := c.sess.Sponsorships(ctx, src.EventDetailID)
		if err != nil {
			return 0, err
		}

		rows := 0
		for _, s := range sponsorships {
			n := &event.Sponsorship{
				EventDetailID:          target.Detail.ID,
				Name:                   s.Name,
				Description:            s.Description,
				Position:               s.Position,
				SponsorColor:           s.SponsorColor,
				Price:                  s.Price,
				Quantity:               s.Quantity,
				SalesGoalQuantity:      s.SalesGoalQuantity,
				LogoHeight:             s.LogoHeight,
				LogoWidth:              s.LogoWidth,
				AllowOnlinePurchase:    s.AllowOnlinePurchase,
				AllowOnlineInvoice:     s.AllowOnlineInvoice,
				Terms:                  s.Terms,
				TermsURL:               s.TermsURL,
				ExplicitTermAcceptance: s.ExplicitTermAcceptance,
				TermsOfUseID:           s.TermsOfUseID,
			}

			for _, item := range s.SaleableItems {
				n.SaleableItems = append(n.SaleableItems, &event.SponsorshipSaleableItem{
					SaleableItemID: item.SaleableItemID,
					Price:          item.Price,
					Quantity:       item.Quantity,
					Description:    item.Description,
					HideOnInvoice:  item.HideOnInvoice,
				})
			}

			for _, b := range s.Benefits {
				id := b.ID
				n.Benefits = append(n.Benefits, store.AttachOrGetLocal(c.sess.Identity(), id, func() *event.SponsorshipBenefit {
					return &event.SponsorshipBenefit{ID: id}
				}))
			}

			c.sess.Add(n)
			rows += 1 + len(n.SaleableItems) + len(n.Benefits)
		}
		return rows, nil
	})
}
