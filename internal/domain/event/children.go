package event

import "time"

type Address struct {
	ID            int64  `db:"id" goqu:"skipinsert,skipupdate"`
	TenantID      int64  `db:"tenant_id"`
	AddressTypeID *int64 `db:"address_type_id"`
	Address1      string `db:"address1"`
	Address2      string `db:"address2"`
	City          string `db:"city"`
	StateProvince string `db:"state_province"`
	CountryID     *int64 `db:"country_id"`
	CountyID      *int64 `db:"county_id"`
	PostalCode    string `db:"postal_code"`
	IsDeleted     bool   `db:"is_deleted"`
}

func (a *Address) Table() string      { return "addresses" }
func (a *Address) PrimaryKey() *int64 { return &a.ID }

type Image struct {
	ID              int64 `db:"id" goqu:"skipinsert,skipupdate"`
	EventDetailID   int64 `db:"event_detail_id"`
	FileImageInfoID int64 `db:"file_image_info_id"`
	GalleryOrder    int   `db:"gallery_order"`
}

func (i *Image) Table() string      { return "event_images" }
func (i *Image) PrimaryKey() *int64 { return &i.ID }

type Sponsorship struct {
	ID                     int64   `db:"id" goqu:"skipinsert,skipupdate"`
	EventDetailID          int64   `db:"event_detail_id"`
	Name                   string  `db:"name"`
	Description            string  `db:"description"`
	Position               int     `db:"position"`
	SponsorColor           string  `db:"sponsor_color"`
	Price                  float64 `db:"price"`
	Quantity               *int    `db:"quantity"`
	SalesGoalQuantity      *int    `db:"sales_goal_quantity"`
	LogoHeight             *int    `db:"logo_height"`
	LogoWidth              *int    `db:"logo_width"`
	AllowOnlinePurchase    bool    `db:"allow_online_purchase"`
	AllowOnlineInvoice     bool    `db:"allow_online_invoice"`
	Terms                  string  `db:"terms"`
	TermsURL               string  `db:"terms_url"`
	ExplicitTermAcceptance bool    `db:"explicit_term_acceptance"`
	TermsOfUseID           *int64  `db:"terms_of_use_id"`
	IsDeleted              bool    `db:"is_deleted"`

	SaleableItems []*SponsorshipSaleableItem `db:"-"`
	Benefits      []*SponsorshipBenefit      `db:"-"`
}

func (s *Sponsorship) Table() string      { return "event_sponsorships" }
func (s *Sponsorship) PrimaryKey() *int64 { return &s.ID }

type SponsorshipSaleableItem struct {
	ID                 int64   `db:"id" goqu:"skipinsert,skipupdate"`
	EventSponsorshipID int64   `db:"event_sponsorship_id"`
	SaleableItemID     int64   `db:"saleable_item_id"`
	Price              float64 `db:"price"`
	Quantity           int     `db:"quantity"`
	Description        string  `db:"description"`
	HideOnInvoice      bool    `db:"hide_on_invoice"`
}

func (s *SponsorshipSaleableItem) Table() string      { return "event_sponsorship_saleable_items" }
func (s *SponsorshipSaleableItem) PrimaryKey() *int64 { return &s.ID }

type RegistrationType struct {
	ID                       int64   `db:"id" goqu:"skipinsert,skipupdate"`
	EventDetailID            int64   `db:"event_detail_id"`
	Name                     string  `db:"name"`
	Description              string  `db:"description"`
	Price                    float64 `db:"price"`
	IsForMembers             bool    `db:"is_for_members"`
	IsForNonMembers          bool    `db:"is_for_non_members"`
	IsDisplayedForNonMembers bool    `db:"is_displayed_for_non_members"`
	MaximumQuantity          *int    `db:"maximum_quantity"`
	NumberOfAttendees        int     `db:"number_of_attendees"`
	ReserveAllAttendees      bool    `db:"reserve_all_attendees"`
	PurchaseTypeID           int64   `db:"purchase_type_id"`
	AllowOnlinePurchase      bool    `db:"allow_online_purchase"`
	AllowOnlineInvoice       bool    `db:"allow_online_invoice"`
	Terms                    string  `db:"terms"`
	TermsURL                 string  `db:"terms_url"`
	ExplicitTermAcceptance   bool    `db:"explicit_term_acceptance"`
	SystemRegistrationTypeID *int64  `db:"system_registration_type_id"`
	// PaymentGatewayID moved to the event registration info; copies leave it empty.
	PaymentGatewayID *int64 `db:"payment_gateway_id"`
	IsDeleted        bool   `db:"is_deleted"`

	SaleableItems []*RegistrationTypeSaleableItem `db:"-"`
}

func (r *RegistrationType) Table() string      { return "event_registration_types" }
func (r *RegistrationType) PrimaryKey() *int64 { return &r.ID }

type RegistrationTypeSaleableItem struct {
	ID                      int64   `db:"id" goqu:"skipinsert,skipupdate"`
	EventRegistrationTypeID int64   `db:"event_registration_type_id"`
	SaleableItemID          int64   `db:"saleable_item_id"`
	Quantity                int     `db:"quantity"`
	Price                   float64 `db:"price"`
	HideOnInvoice           bool    `db:"hide_on_invoice"`
}

func (r *RegistrationTypeSaleableItem) Table() string      { return "event_registration_type_saleable_items" }
func (r *RegistrationTypeSaleableItem) PrimaryKey() *int64 { return &r.ID }

type Discount struct {
	ID                          int64      `db:"id" goqu:"skipinsert,skipupdate"`
	TenantID                    int64      `db:"tenant_id"`
	Name                        string     `db:"name"`
	DiscountTypeID              int64      `db:"discount_type_id"`
	StartDate                   *time.Time `db:"start_date"`
	EndDate                     *time.Time `db:"end_date"`
	PromoCode                   string     `db:"promo_code"`
	CanBeUsedWithOtherDiscounts bool       `db:"can_be_used_with_other_discounts"`
	TotalAvailable              *int       `db:"total_available"`
	LimitPerPurchase            *int       `db:"limit_per_purchase"`
	MinToActivateDiscount       *int       `db:"min_to_activate_discount"`
	UsedQuantity                int        `db:"used_quantity"`
	DiscountNewPrice            *float64   `db:"discount_new_price"`
	DiscountPercent             *float64   `db:"discount_percent"`
	DiscountAmount              *float64   `db:"discount_amount"`
}

func (d *Discount) Table() string      { return "discounts" }
func (d *Discount) PrimaryKey() *int64 { return &d.ID }

type EventDiscount struct {
	ID                      int64  `db:"id" goqu:"skipinsert,skipupdate"`
	EventDetailID           int64  `db:"event_detail_id"`
	EventRegistrationTypeID *int64 `db:"event_registration_type_id"`
	CategoryItemID          *int64 `db:"category_item_id"`
	MembershipTypeID        *int64 `db:"membership_type_id"`
	GroupID                 *int64 `db:"group_id"`
	IsExcluded              bool   `db:"is_excluded"`
	DiscountID              int64  `db:"discount_id"`
	IsDeleted               bool   `db:"is_deleted"`

	// RegistrationTypeName is the name of the referenced type, filled on reads.
	RegistrationTypeName *string `db:"-"`
	// RegistrationType points at a staged type of the new event; its id is resolved on save.
	RegistrationType *RegistrationType `db:"-"`
	Discount         *Discount         `db:"-"`
}

func (d *EventDiscount) Table() string      { return "event_discounts" }
func (d *EventDiscount) PrimaryKey() *int64 { return &d.ID }
