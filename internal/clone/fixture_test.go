package clone

import (
	"context"
	"testing"
	"time"

	"github.com/geocoder89/eventclone/internal/actorctx"
	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/geocoder89/eventclone/internal/repo/memory"
	"github.com/geocoder89/eventclone/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	tenantID      = int64(1)
	otherTenantID = int64(2)
	sourceEventID = int64(42)
	sourceDetail  = int64(100)
)

var (
	fixedNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	contactID = int64(500)
	actor     = actorctx.Actor{TenantID: tenantID, TenantKey: "acme", ContactID: &contactID}
)

func ptr[T any](v T) *T { return &v }

// seedSource stores event 42 with a bit of every sub-aggregate.
func seedSource(db *memory.DB) {
	db.Seed(
		&event.Address{ID: 10, TenantID: tenantID, Address1: "1 Marina Rd", City: "Lagos", StateProvince: "LA", CountryID: ptr(int64(234)), PostalCode: "101001"},
		&event.Address{ID: 11, TenantID: otherTenantID, City: "Elsewhere"},
		&event.Address{ID: 12, TenantID: tenantID, City: "Gone", IsDeleted: true},

		&event.EventDetail{ID: sourceDetail, TenantID: tenantID, Name: "Source Gala", StartDate: fixedNow.AddDate(0, 1, 0), AddressID: ptr(int64(10)), OrganizationID: ptr(int64(77))},
		&event.Event{ID: sourceEventID, TenantID: tenantID, EventDetailID: sourceDetail, PublishDate: ptr(fixedNow.AddDate(0, 0, -3)), CreatedAt: fixedNow.AddDate(0, -1, 0)},

		&event.EventDetail{ID: 101, TenantID: tenantID, Name: "Deleted", StartDate: fixedNow},
		&event.Event{ID: 43, TenantID: tenantID, EventDetailID: 101, IsDeleted: true},
		&event.EventDetail{ID: 102, TenantID: otherTenantID, Name: "Foreign", StartDate: fixedNow},
		&event.Event{ID: 44, TenantID: otherTenantID, EventDetailID: 102},

		&event.Image{EventDetailID: sourceDetail, FileImageInfoID: 900, GalleryOrder: 1},
		&event.Image{EventDetailID: sourceDetail, FileImageInfoID: 901, GalleryOrder: 2},

		&event.Sponsorship{ID: 200, EventDetailID: sourceDetail, Name: "Gold", Position: 1, Price: 5000, Quantity: ptr(3), AllowOnlinePurchase: true, Terms: "gold terms"},
		&event.Sponsorship{ID: 201, EventDetailID: sourceDetail, Name: "Silver", Position: 2, Price: 2500, SponsorColor: "#c0c0c0"},
		&event.Sponsorship{ID: 202, EventDetailID: sourceDetail, Name: "Retired", IsDeleted: true},
		&event.SponsorshipSaleableItem{EventSponsorshipID: 200, SaleableItemID: 1, Price: 10, Quantity: 2, Description: "booth"},
		&event.SponsorshipSaleableItem{EventSponsorshipID: 200, SaleableItemID: 2, Price: 20, Quantity: 1},
		&event.SponsorshipSaleableItem{EventSponsorshipID: 201, SaleableItemID: 3, Price: 5, Quantity: 4, HideOnInvoice: true},

		&event.RegistrationType{ID: 300, EventDetailID: sourceDetail, Name: "Member", Price: 100, IsForMembers: true, NumberOfAttendees: 1, PurchaseTypeID: 1, PaymentGatewayID: ptr(int64(9)), SystemRegistrationTypeID: ptr(int64(4))},
		&event.RegistrationType{ID: 301, EventDetailID: sourceDetail, Name: "Guest", Price: 150, IsForNonMembers: true, NumberOfAttendees: 1, PurchaseTypeID: 1},
		&event.RegistrationType{ID: 302, EventDetailID: sourceDetail, Name: "Old", IsDeleted: true},
		&event.RegistrationTypeSaleableItem{EventRegistrationTypeID: 300, SaleableItemID: 7, Quantity: 1, Price: 12},

		&event.Discount{ID: 400, TenantID: tenantID, Name: "Early bird", DiscountTypeID: 1, PromoCode: "EARLY", UsedQuantity: 17, TotalAvailable: ptr(50), DiscountPercent: ptr(10.0)},
		&event.EventDiscount{ID: 410, EventDetailID: sourceDetail, EventRegistrationTypeID: ptr(int64(300)), DiscountID: 400, MembershipTypeID: ptr(int64(3)), IsExcluded: true},

		&event.RegistrationInfo{
			EventDetailID:                    sourceDetail,
			MaximumAttendees:                 ptr(250),
			AllowWaitingList:                 true,
			ShowRegisteredAttendeesToMembers: true,
			PaymentGatewayID:                 ptr(int64(9)),
			AttendeeRegistrationTemplateID:   ptr(int64(61)),
			EnableRegistration:               true,
			EnableSponsors:                   true,
			RegistrationStartDate:            ptr(fixedNow),
			ExternalRegistrationLink:         "https://tickets.example.org/gala",
			CancelPolicyDescription:          "no refunds",
			AllowAttendeeSubstitutesUntil:    ptr(fixedNow.AddDate(0, 0, 20)),
		},

		&event.TaskItem{ID: 600, TenantID: tenantID, Name: "Book venue", DueDate: ptr(fixedNow.AddDate(0, 0, 7)), AssignedToContactID: ptr(int64(501))},
		&event.TaskItem{ID: 601, TenantID: tenantID, Name: "Order catering", DependentOnTaskID: ptr(int64(600)), DependentOnMustCompleteFirst: true},
		&event.TaskItem{ID: 602, TenantID: tenantID, Name: "Print badges", EstimatedHours: ptr(2.5)},
		&event.TaskItem{ID: 603, TenantID: tenantID, Name: "Cancelled", IsDeleted: true},
		&event.TaskLink{EventID: sourceEventID, TaskItemID: 600},
		&event.TaskLink{EventID: sourceEventID, TaskItemID: 601},
		&event.TaskLink{EventID: sourceEventID, TaskItemID: 602},
		&event.TaskLink{EventID: sourceEventID, TaskItemID: 603},

		&event.Exhibitor{EventDetailID: sourceDetail, TenantID: tenantID, Description: "Acme Tools", ContactID: ptr(int64(800)), EventExhibitorTypeID: ptr(int64(700))},
		&event.Exhibitor{EventDetailID: sourceDetail, TenantID: tenantID, Description: "Globex", PreferredBoothInfo: "corner"},
		&event.ExhibitorType{ID: 700, EventDetailID: sourceDetail, TenantID: tenantID, Name: "Standard booth", IncludedAttendeeQuantity: 2, MaximumExhibitors: ptr(40)},
		&event.ExhibitorRegistrationInfo{EventDetailID: sourceDetail, AllowLogo: true, LogoWidth: ptr(200), MaximumExhibitors: ptr(40), ConfirmationMessage: "see you there"},

		&event.Registration{ID: 1000, EventID: sourceEventID, TenantID: tenantID, EventRegistrationTypeID: ptr(int64(300)), RegistrationKey: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Comments: "vip", TableNumber: "4"},
		&event.Registration{ID: 1001, EventID: sourceEventID, TenantID: tenantID, RegistrationKey: uuid.MustParse("22222222-2222-2222-2222-222222222222")},
		&event.Registration{ID: 1002, EventID: sourceEventID, TenantID: tenantID, RegistrationKey: uuid.MustParse("33333333-3333-3333-3333-333333333333"), TableNumber: "9"},
		&event.Attendee{EventID: sourceEventID, EventRegistrationID: 1000, ContactID: ptr(int64(801)), SeatNumber: "A1"},
		&event.Attendee{EventID: sourceEventID, EventRegistrationID: 1002, ContactID: ptr(int64(802)), SeatNumber: "B7"},
	)

	db.SeedLinks(
		event.CategoryItemLink(sourceDetail, 5),
		event.CategoryItemLink(sourceDetail, 6),
		event.CalendarLink(sourceDetail, 8),
		event.SponsorshipBenefitLink(200, 30),
		event.SponsorshipBenefitLink(201, 30),
		event.SponsorshipBenefitLink(201, 31),
	)
}

type harness struct {
	db     *memory.DB
	sess   *store.Session
	copier *Copier
	keys   int
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{db: memory.NewDB()}
	seedSource(h.db)
	h.sess = store.NewSession(h.db)
	h.copier = New(h.sess, actor,
		WithClock(func() time.Time { return fixedNow }),
		WithKeyGenerator(func() uuid.UUID {
			h.keys++
			return uuid.New()
		}),
	)
	return h
}

func (h *harness) newTarget(t *testing.T) *event.Event {
	t.Helper()

	target, err := h.copier.CreateEvent(context.Background(), event.AddEventRequest{
		Name:      "Copy of Gala",
		StartDate: fixedNow.AddDate(1, 0, 0),
	})
	require.NoError(t, err)
	return target
}

func (h *harness) save(t *testing.T) {
	t.Helper()
	require.NoError(t, h.sess.SaveChanges(context.Background()))
}
