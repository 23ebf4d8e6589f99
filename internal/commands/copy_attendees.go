package commands

import (
	"context"
	"fmt"

	"github.com/geocoder89/eventclone/internal/actorctx"
	"github.com/geocoder89/eventclone/internal/jobs"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// CopyAttendeeData is the background half of the add-event command. It opens its own
// session for the tenant, since the request that submitted it may already be done.
func (h *AddEventHandler) CopyAttendeeData(ctx context.Context, j jobs.Job) error {
	p, ok := j.Payload.(jobs.CopyAttendeeDataPayload)
	if !ok {
		return fmt.Errorf("%w: %T", jobs.ErrPayloadTypeMismatch, j.Payload)
	}

	ctx, span := h.tracer.Start(ctx, "commands.copy_attendee_data")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("source_event_id", p.SourceEventID),
		attribute.Int64("target_event_id", p.TargetEventID),
	)

	if err := h.copyAttendeeData(ctx, p); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// copyAttendeeData copies attendees first and the attendee setup second. A failed
// attendee copy leaves the target's registration info untouched.
func (h *AddEventHandler) copyAttendeeData(ctx context.Context, p jobs.CopyAttendeeDataPayload) error {
	ctx = actorctx.WithRequestID(ctx, p.RequestID)

	sess, err := h.sessions.Open(ctx, p.TenantKey)
	if err != nil {
		return err
	}

	actor := actorctx.Actor{
		TenantID:  p.TenantID,
		TenantKey: p.TenantKey,
		ContactID: p.ContactID,
		UserID:    p.UserID,
	}
	c := h.copier(sess, actor)

	target, err := sess.Event(ctx, p.TenantID, p.TargetEventID)
	if err != nil {
		return fmt.Errorf("load target event %d: %w", p.TargetEventID, err)
	}

	if p.CopyAttendees {
		if err := c.CopyAttendees(ctx, target, p.SourceEventID); err != nil {
			return err
		}
	}
	if p.CopyAttendeeSetup {
		if err := c.CopyAttendeeSetup(ctx, target, p.SourceEventID); err != nil {
			return err
		}
	}

	if err := sess.SaveChanges(ctx); err != nil {
		return fmt.Errorf("save attendee copy for event %d: %w", p.TargetEventID, err)
	}
	return nil
}
