package jobs

import (
	"fmt"
	"strings"
)

// ValidatePayload checks that the payload matches the job type and names what it needs.
func ValidatePayload(t JobType, payload any) error {
	if !t.IsValid() {
		return ErrInvalidJobType
	}

	switch t {
	case JobCopyAttendeeData:
		var p CopyAttendeeDataPayload
		switch v := payload.(type) {
		case CopyAttendeeDataPayload:
			p = v
		case *CopyAttendeeDataPayload:
			if v == nil {
				return ErrInvalidJobPayload
			}
			p = *v
		default:
			return ErrPayloadTypeMismatch
		}

		switch {
		case strings.TrimSpace(p.TenantKey) == "":
			return fmt.Errorf("%w: tenant key is required", ErrInvalidJobPayload)
		case p.TenantID <= 0:
			return fmt.Errorf("%w: tenant id is required", ErrInvalidJobPayload)
		case p.SourceEventID <= 0 || p.TargetEventID <= 0:
			return fmt.Errorf("%w: source and target event ids are required", ErrInvalidJobPayload)
		case !p.CopyAttendees && !p.CopyAttendeeSetup:
			return fmt.Errorf("%w: nothing to copy", ErrInvalidJobPayload)
		}
		return nil

	default:
		return ErrInvalidJobType
	}
}
