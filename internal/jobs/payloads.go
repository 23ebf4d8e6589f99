package jobs

// CopyAttendeeDataPayload carries what the background copy needs to act as the caller
// on a fresh session. It is ID-based; the handler reloads everything.
type CopyAttendeeDataPayload struct {
	TenantKey string `json:"tenantKey"`
	TenantID  int64  `json:"tenantId"`
	ContactID *int64 `json:"contactId,omitempty"`
	UserID    string `json:"userId,omitempty"`

	SourceEventID int64 `json:"sourceEventId"`
	TargetEventID int64 `json:"targetEventId"`

	CopyAttendees     bool `json:"copyAttendees"`
	CopyAttendeeSetup bool `json:"copyAttendeeSetup"`

	RequestID string `json:"requestId,omitempty"`
}
