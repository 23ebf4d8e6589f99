package event

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationInfo is the singleton registration configuration of an event detail.
type RegistrationInfo struct {
	ID            int64 `db:"id" goqu:"skipinsert,skipupdate"`
	EventDetailID int64 `db:"event_detail_id"`

	MaximumAttendees                  *int   `db:"maximum_attendees"`
	AllowWaitingList                  bool   `db:"allow_waiting_list"`
	ShowRegisteredAttendeesPublically bool   `db:"show_registered_attendees_publically"`
	ShowRegisteredAttendeesToMembers  bool   `db:"show_registered_attendees_to_members"`
	AllowSponsorWaitingList           bool   `db:"allow_sponsor_waiting_list"`
	PaymentGatewayID                  *int64 `db:"payment_gateway_id"`
	AttendeeRegistrationTemplateID    *int64 `db:"attendee_registration_template_id"`
	AttendeeReminderTemplateID        *int64 `db:"attendee_reminder_template_id"`
	SponsorRegistrationTemplateID     *int64 `db:"sponsor_registration_template_id"`
	EnableRegistration                bool   `db:"enable_registration"`
	EnableExhibitors                  bool   `db:"enable_exhibitors"`
	EnableSessions                    bool   `db:"enable_sessions"`
	EnableSponsors                    bool   `db:"enable_sponsors"`

	RegistrationStartDate              *time.Time `db:"registration_start_date"`
	RegistrationEndDate                *time.Time `db:"registration_end_date"`
	ExternalRegistrationLink           string     `db:"external_registration_link"`
	SponsorRegistrationStartDate       *time.Time `db:"sponsor_registration_start_date"`
	SponsorRegistrationEndDate         *time.Time `db:"sponsor_registration_end_date"`
	AttendeeRegistrationInstructions   string     `db:"attendee_registration_instructions"`
	SponsorRegistrationInstructions    string     `db:"sponsor_registration_instructions"`
	AdditionalEventConfirmationMessage string     `db:"additional_event_confirmation_message"`
	FieldRequirementsJSON              string     `db:"field_requirements_json"`
	SessionChangesUntil                *time.Time `db:"session_changes_until"`
	FullCancelUntil                    *time.Time `db:"full_cancel_until"`
	CancelPolicyDescription            string     `db:"cancel_policy_description"`
	CancelPolicyJSON                   string     `db:"cancel_policy_json"`
	AllowAttendeeSubstitutesUntil      *time.Time `db:"allow_attendee_substitutes_until"`
}

func (r *RegistrationInfo) Table() string      { return "event_registration_infos" }
func (r *RegistrationInfo) PrimaryKey() *int64 { return &r.ID }

type Registration struct {
	ID                      int64     `db:"id" goqu:"skipinsert,skipupdate"`
	EventID                 int64     `db:"event_id"`
	TenantID                int64     `db:"tenant_id"`
	EventRegistrationTypeID *int64    `db:"event_registration_type_id"`
	RegistrationKey         uuid.UUID `db:"registration_key"`
	RegistrationDate        time.Time `db:"registration_date"`
	RegisteredBy            *int64    `db:"registered_by"`
	PurchaseStatusTypeID    *int64    `db:"purchase_status_type_id"`
	WebReferralSourceTypeID *int64    `db:"web_referral_source_type_id"`
	Comments                string    `db:"comments"`
	WebMarketingInfoID      *int64    `db:"web_marketing_info_id"`
	TableNumber             string    `db:"table_number"`
}

func (r *Registration) Table() string      { return "event_registrations" }
func (r *Registration) PrimaryKey() *int64 { return &r.ID }

type Attendee struct {
	ID                    int64  `db:"id" goqu:"skipinsert,skipupdate"`
	EventID               int64  `db:"event_id"`
	EventRegistrationID   int64  `db:"event_registration_id"`
	EventAttendeeStatusID *int64 `db:"event_attendee_status_id"`
	ContactID             *int64 `db:"contact_id"`
	OrganizationID        *int64 `db:"organization_id"`
	AddressID             *int64 `db:"address_id"`
	EmailID               *int64 `db:"email_id"`
	PhoneID               *int64 `db:"phone_id"`
	SeatNumber            string `db:"seat_number"`
}

func (a *Attendee) Table() string      { return "event_attendees" }
func (a *Attendee) PrimaryKey() *int64 { return &a.ID }
