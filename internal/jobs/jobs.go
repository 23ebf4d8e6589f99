package jobs

import (
	"time"

	"github.com/google/uuid"
)

// Job is one unit of detached background work. It lives in process only and is not
// persisted; a job lost on crash is not retried.
type Job struct {
	ID        string    `json:"id"`
	Type      JobType   `json:"type"`
	Payload   any       `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewJob(t JobType, payload any) (Job, error) {
	if err := ValidatePayload(t, payload); err != nil {
		return Job{}, err
	}

	return Job{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}, nil
}
