package jobs

type JobType string

const (
	// JobCopyAttendeeData copies attendees and attendee setup into a newly added event
	// after the add request has returned.
	JobCopyAttendeeData JobType = "copy_attendee_data"
)

func (t JobType) IsValid() bool {
	switch t {
	case JobCopyAttendeeData:
		return true
	default:
		return false
	}
}
