package event

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("event not found")
	// ErrSingleResultViolation is returned when a projection that must match exactly one
	// row matches zero or several.
	ErrSingleResultViolation = errors.New("expected exactly one matching event")
)

// Row is a persisted record with a generated bigint identifier.
type Row interface {
	Table() string
	PrimaryKey() *int64
}

// Link is an association row between an owner and a shared reference entity.
type Link struct {
	Table    string
	OwnerCol string
	OwnerID  int64
	RefCol   string
	RefID    int64
}

const (
	TableDetailCategoryItems = "event_detail_category_items"
	TableDetailCalendars     = "event_detail_calendars"
	TableSponsorshipBenefits = "event_sponsorship_benefits"
)

func CategoryItemLink(detailID, categoryItemID int64) Link {
	return Link{Table: TableDetailCategoryItems, OwnerCol: "event_detail_id", OwnerID: detailID, RefCol: "category_item_id", RefID: categoryItemID}
}

func CalendarLink(detailID, calendarID int64) Link {
	return Link{Table: TableDetailCalendars, OwnerCol: "event_detail_id", OwnerID: detailID, RefCol: "calendar_id", RefID: calendarID}
}

func SponsorshipBenefitLink(sponsorshipID, benefitID int64) Link {
	return Link{Table: TableSponsorshipBenefits, OwnerCol: "event_sponsorship_id", OwnerID: sponsorshipID, RefCol: "sponsorship_benefit_id", RefID: benefitID}
}

type Event struct {
	ID            int64      `db:"id" goqu:"skipinsert,skipupdate" json:"id"`
	TenantID      int64      `db:"tenant_id" json:"tenantId"`
	EventDetailID int64      `db:"event_detail_id" json:"eventDetailId"`
	PublishDate   *time.Time `db:"publish_date" json:"publishDate,omitempty"`
	IsDeleted     bool       `db:"is_deleted" json:"-"`
	CreatedBy     *int64     `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`

	Detail *EventDetail `db:"-" json:"detail,omitempty"`
}

func (e *Event) Table() string      { return "events" }
func (e *Event) PrimaryKey() *int64 { return &e.ID }

type EventDetail struct {
	ID             int64      `db:"id" goqu:"skipinsert,skipupdate" json:"id"`
	TenantID       int64      `db:"tenant_id" json:"tenantId"`
	Name           string     `db:"name" json:"name"`
	Description    string     `db:"description" json:"description,omitempty"`
	StartDate      time.Time  `db:"start_date" json:"startDate"`
	EndDate        *time.Time `db:"end_date" json:"endDate,omitempty"`
	AddressID      *int64     `db:"address_id" json:"addressId,omitempty"`
	OrganizationID *int64     `db:"organization_id" json:"organizationId,omitempty"`

	CategoryItems []*CategoryItem `db:"-" json:"-"`
	Calendars     []*Calendar     `db:"-" json:"-"`
}

func (d *EventDetail) Table() string      { return "event_details" }
func (d *EventDetail) PrimaryKey() *int64 { return &d.ID }

// HasCategoryItem reports whether the category item is already attached.
func (d *EventDetail) HasCategoryItem(id int64) bool {
	for _, c := range d.CategoryItems {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (d *EventDetail) HasCalendar(id int64) bool {
	for _, c := range d.Calendars {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Shared reference entities. They are attached by id and never copied.
type CategoryItem struct {
	ID int64
}

type Calendar struct {
	ID int64
}

type SponsorshipBenefit struct {
	ID int64
}

// Summary is the projection returned to callers after an event is added.
type Summary struct {
	ID             int64      `db:"id" json:"id"`
	EventDetailID  int64      `db:"event_detail_id" json:"eventDetailId"`
	Name           string     `db:"name" json:"name"`
	Description    string     `db:"description" json:"description,omitempty"`
	StartDate      time.Time  `db:"start_date" json:"startDate"`
	EndDate        *time.Time `db:"end_date" json:"endDate,omitempty"`
	PublishDate    *time.Time `db:"publish_date" json:"publishDate,omitempty"`
	OrganizationID *int64     `db:"organization_id" json:"organizationId,omitempty"`
	AddressID      *int64     `db:"address_id" json:"addressId,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
}

// AddEventRequest is the input of the add-event command.
type AddEventRequest struct {
	Name           string     `json:"name" binding:"required,min=3,max=200"`
	Description    string     `json:"description" binding:"omitempty,max=4000"`
	StartDate      time.Time  `json:"startDate" binding:"required"`
	EndDate        *time.Time `json:"endDate" binding:"omitempty,gtefield=StartDate"`
	OrganizationID *int64     `json:"organizationId" binding:"omitempty,min=1"`

	CopyFromExistingEvent bool   `json:"copyFromExistingEvent"`
	ExistingEventID       *int64 `json:"existingEventId" binding:"required_if=CopyFromExistingEvent true,omitempty,min=1"`
	CopyTasks             bool   `json:"copyTasks"`
	CopyExhibitors        bool   `json:"copyExhibitors"`
	CopyExhibitorSetup    bool   `json:"copyExhibitorSetup"`
	CopyAttendees         bool   `json:"copyAttendees"`
	CopyAttendeeSetup     bool   `json:"copyAttendeeSetup"`
}

// CopiesFromExisting reports whether the request asks for a copy and names a source.
func (r AddEventRequest) CopiesFromExisting() bool {
	return r.CopyFromExistingEvent && r.ExistingEventID != nil
}

// NeedsBackgroundCopy reports whether attendee data has to be copied after the response.
func (r AddEventRequest) NeedsBackgroundCopy() bool {
	return r.CopyAttendees || r.CopyAttendeeSetup
}
