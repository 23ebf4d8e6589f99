package event

import "time"

type Exhibitor struct {
	ID                     int64      `db:"id" goqu:"skipinsert,skipupdate"`
	EventDetailID          int64      `db:"event_detail_id"`
	ExhibitorStatusID      *int64     `db:"exhibitor_status_id"`
	EventExhibitorTypeID   *int64     `db:"event_exhibitor_type_id"`
	EventSponsorID         *int64     `db:"event_sponsor_id"`
	DepositPurchaseID      *int64     `db:"deposit_purchase_id"`
	PurchaseID             *int64     `db:"purchase_id"`
	TenantID               int64      `db:"tenant_id"`
	AuditID                *int64     `db:"audit_id"`
	IsDeleted              bool       `db:"is_deleted"`
	ContactID              *int64     `db:"contact_id"`
	PrimaryContactID       *int64     `db:"primary_contact_id"`
	Description            string     `db:"description"`
	Comments               string     `db:"comments"`
	PreferredBoothInfo     string     `db:"preferred_booth_info"`
	PreviousExhibitorYears *int       `db:"previous_exhibitor_years"`
	ExhibitorCapacity      *int       `db:"exhibitor_capacity"`
	AddressID              *int64     `db:"address_id"`
	WebAddressID           *int64     `db:"web_address_id"`
	PhoneID                *int64     `db:"phone_id"`
	EmailAddressID         *int64     `db:"email_address_id"`
	RegistrationDate       *time.Time `db:"registration_date"`
	ImageFileID            *int64     `db:"image_file_id"`
	DisplayNameOverride    string     `db:"display_name_override"`
}

func (e *Exhibitor) Table() string      { return "event_exhibitors" }
func (e *Exhibitor) PrimaryKey() *int64 { return &e.ID }

type ExhibitorType struct {
	ID                                  int64  `db:"id" goqu:"skipinsert,skipupdate"`
	EventDetailID                       int64  `db:"event_detail_id"`
	TenantID                            int64  `db:"tenant_id"`
	Name                                string `db:"name"`
	Description                         string `db:"description"`
	IncludedAttendeeQuantity            int    `db:"included_attendee_quantity"`
	ExhibitorAttendeeRegistrationTypeID *int64 `db:"exhibitor_attendee_registration_type_id"`
	MaximumExhibitors                   *int   `db:"maximum_exhibitors"`
}

func (e *ExhibitorType) Table() string      { return "event_exhibitor_types" }
func (e *ExhibitorType) PrimaryKey() *int64 { return &e.ID }

type ExhibitorRegistrationInfo struct {
	ID                                int64      `db:"id" goqu:"skipinsert,skipupdate"`
	EventDetailID                     int64      `db:"event_detail_id"`
	DefaultBoothConfigurationID       *int64     `db:"default_booth_configuration_id"`
	RegistrationStartDate             *time.Time `db:"registration_start_date"`
	RegistrationEndDate               *time.Time `db:"registration_end_date"`
	AllowWaitingList                  bool       `db:"allow_waiting_list"`
	DepositDueBy                      *time.Time `db:"deposit_due_by"`
	EnableOnlineExhibitorRegistration bool       `db:"enable_online_exhibitor_registration"`
	ExhibitorDirectoryID              *int64     `db:"exhibitor_directory_id"`
	TermsOfUseID                      *int64     `db:"terms_of_use_id"`
	AllowLogo                         bool       `db:"allow_logo"`
	LogoWidth                         *int       `db:"logo_width"`
	LogoHeight                        *int       `db:"logo_height"`
	RegistrationInstructions          string     `db:"registration_instructions"`
	ConfirmationMessage               string     `db:"confirmation_message"`
	MaximumExhibitors                 *int       `db:"maximum_exhibitors"`
	AllowInvoicing                    bool       `db:"allow_invoicing"`
}

func (e *ExhibitorRegistrationInfo) Table() string      { return "event_exhibitor_registration_infos" }
func (e *ExhibitorRegistrationInfo) PrimaryKey() *int64 { return &e.ID }
