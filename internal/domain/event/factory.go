package event

import "time"

// NewFromAddRequest builds an unsaved event and its detail for the given tenant.
func NewFromAddRequest(req AddEventRequest, tenantID int64, createdBy *int64, now time.Time) *Event {
	return &Event{
		TenantID:  tenantID,
		CreatedBy: createdBy,
		CreatedAt: now,
		Detail: &EventDetail{
			TenantID:       tenantID,
			Name:           req.Name,
			Description:    req.Description,
			StartDate:      req.StartDate,
			EndDate:        req.EndDate,
			OrganizationID: req.OrganizationID,
		},
	}
}
