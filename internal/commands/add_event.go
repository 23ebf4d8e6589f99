package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/geocoder89/eventclone/internal/actorctx"
	"github.com/geocoder89/eventclone/internal/clone"
	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/geocoder89/eventclone/internal/jobs"
	"github.com/geocoder89/eventclone/internal/observability"
	"github.com/geocoder89/eventclone/internal/store"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Submitter accepts detached background work.
type Submitter interface {
	Submit(j jobs.Job) error
}

type Options struct {
	// Clock and KeyGenerator are passed to every copier. Nil keeps the defaults.
	Clock        func() time.Time
	KeyGenerator func() uuid.UUID
}

// AddEventHandler creates an event and optionally copies an existing event into it.
type AddEventHandler struct {
	sessions store.SessionFactory
	worker   Submitter
	log      *slog.Logger
	prom     *observability.Prom
	tracer   trace.Tracer
	opts     Options
}

func NewAddEventHandler(sessions store.SessionFactory, worker Submitter, log *slog.Logger, prom *observability.Prom, opts Options) *AddEventHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AddEventHandler{
		sessions: sessions,
		worker:   worker,
		log:      log,
		prom:     prom,
		tracer:   observability.Tracer(),
		opts:     opts,
	}
}

func (h *AddEventHandler) copier(sess *store.Session, actor actorctx.Actor) *clone.Copier {
	opts := []clone.Option{clone.WithLogger(h.log)}
	if h.prom != nil {
		opts = append(opts, clone.WithMetrics(h.prom))
	}
	if h.opts.Clock != nil {
		opts = append(opts, clone.WithClock(h.opts.Clock))
	}
	if h.opts.KeyGenerator != nil {
		opts = append(opts, clone.WithKeyGenerator(h.opts.KeyGenerator))
	}
	return clone.New(sess, actor, opts...)
}

// Execute runs the add-event command. The synchronous copies are saved before it
// returns; attendee data is handed to the background worker and never reported back.
// Steps that already saved are not undone when a later step fails.
func (h *AddEventHandler) Execute(ctx context.Context, actor actorctx.Actor, req event.AddEventRequest) (event.Summary, error) {
	ctx, span := h.tracer.Start(ctx, "commands.add_event")
	defer span.End()

	summary, err := h.execute(ctx, actor, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return event.Summary{}, err
	}

	span.SetAttributes(attribute.Int64("event_id", summary.ID))
	return summary, nil
}

func (h *AddEventHandler) execute(ctx context.Context, actor actorctx.Actor, req event.AddEventRequest) (event.Summary, error) {
	sess, err := h.sessions.Open(ctx, actor.TenantKey)
	if err != nil {
		return event.Summary{}, err
	}

	c := h.copier(sess, actor)

	target, err := c.CreateEvent(ctx, req)
	if err != nil {
		return event.Summary{}, err
	}

	mode := "plain"
	if req.CopiesFromExisting() {
		mode = "copy"
		sourceID := *req.ExistingEventID

		if err := h.copySync(ctx, c, target, sourceID, req); err != nil {
			return event.Summary{}, err
		}
		if err := sess.SaveChanges(ctx); err != nil {
			return event.Summary{}, fmt.Errorf("save copied event %d: %w", target.ID, err)
		}

		if req.NeedsBackgroundCopy() {
			h.submitAttendeeCopy(ctx, actor, sourceID, target.ID, req)
		}
	}

	if h.prom != nil {
		h.prom.EventsCreated.WithLabelValues(mode).Inc()
	}

	return c.ProjectSummary(ctx, target.ID)
}

func (h *AddEventHandler) copySync(ctx context.Context, c *clone.Copier, target *event.Event, sourceID int64, req event.AddEventRequest) error {
	steps := []func(context.Context, *event.Event, int64) error{
		c.CopyBaseInformation,
		c.CopyImages,
		c.CopyRegistrationInfo,
		c.CopyRegistrationTypes,
		c.CopyDiscounts,
		c.CopySponsorships,
	}
	if req.CopyTasks {
		steps = append(steps, c.CopyTasks)
	}
	if req.CopyExhibitors {
		steps = append(steps, c.CopyExhibitors)
	}
	if req.CopyExhibitorSetup {
		steps = append(steps, c.CopyExhibitorSetup)
	}

	for _, step := range steps {
		if err := step(ctx, target, sourceID); err != nil {
			return err
		}
	}
	return nil
}

func (h *AddEventHandler) submitAttendeeCopy(ctx context.Context, actor actorctx.Actor, sourceID, targetID int64, req event.AddEventRequest) {
	log := h.log.With("source_event_id", sourceID, "target_event_id", targetID)

	if h.worker == nil {
		log.WarnContext(ctx, "no background worker, attendee copy skipped")
		return
	}

	j, err := jobs.NewJob(jobs.JobCopyAttendeeData, jobs.CopyAttendeeDataPayload{
		TenantKey:         actor.TenantKey,
		TenantID:          actor.TenantID,
		ContactID:         actor.ContactID,
		UserID:            actor.UserID,
		SourceEventID:     sourceID,
		TargetEventID:     targetID,
		CopyAttendees:     req.CopyAttendees,
		CopyAttendeeSetup: req.CopyAttendeeSetup,
		RequestID:         actorctx.RequestID(ctx),
	})
	if err != nil {
		log.ErrorContext(ctx, "build attendee copy job", "err", err)
		return
	}

	if err := h.worker.Submit(j); err != nil {
		log.ErrorContext(ctx, "submit attendee copy job", "job_id", j.ID, "err", err)
		return
	}
	log.InfoContext(ctx, "attendee copy submitted", "job_id", j.ID)
}
