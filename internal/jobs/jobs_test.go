package jobs

import (
	"errors"
	"testing"
)

func validPayload() CopyAttendeeDataPayload {
	return CopyAttendeeDataPayload{
		TenantKey:     "acme",
		TenantID:      1,
		SourceEventID: 42,
		TargetEventID: 43,
		CopyAttendees: true,
	}
}

func TestNewJob(t *testing.T) {
	j, err := NewJob(JobCopyAttendeeData, validPayload())
	if err != nil {
		t.Fatalf("NewJob error: %v", err)
	}
	if j.ID == "" {
		t.Fatalf("expected job id")
	}
	if _, ok := j.Payload.(CopyAttendeeDataPayload); !ok {
		t.Fatalf("expected CopyAttendeeDataPayload, got %T", j.Payload)
	}
}

func TestValidatePayload(t *testing.T) {
	p := validPayload()

	noTenant := p
	noTenant.TenantKey = " "

	noTarget := p
	noTarget.TargetEventID = 0

	nothing := p
	nothing.CopyAttendees = false

	tests := []struct {
		name    string
		typ     JobType
		payload any
		want    error
	}{
		{name: "valid", typ: JobCopyAttendeeData, payload: p},
		{name: "valid pointer", typ: JobCopyAttendeeData, payload: &p},
		{name: "unknown type", typ: "nope", payload: p, want: ErrInvalidJobType},
		{name: "wrong payload", typ: JobCopyAttendeeData, payload: "x", want: ErrPayloadTypeMismatch},
		{name: "nil pointer", typ: JobCopyAttendeeData, payload: (*CopyAttendeeDataPayload)(nil), want: ErrInvalidJobPayload},
		{name: "no tenant key", typ: JobCopyAttendeeData, payload: noTenant, want: ErrInvalidJobPayload},
		{name: "no target", typ: JobCopyAttendeeData, payload: noTarget, want: ErrInvalidJobPayload},
		{name: "nothing to copy", typ: JobCopyAttendeeData, payload: nothing, want: ErrInvalidJobPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(tt.typ, tt.payload)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
