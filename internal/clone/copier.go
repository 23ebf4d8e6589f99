package clone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/geocoder89/eventclone/internal/actorctx"
	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/geocoder89/eventclone/internal/observability"
	"github.com/geocoder89/eventclone/internal/store"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrAmbiguousAttendee is returned when a source registration has more than one attendee.
var ErrAmbiguousAttendee = errors.New("registration has more than one attendee")

// Copier creates events and copies sub-aggregates of an existing event into them.
// Every step reads through the actor's tenant and stages writes on the session; steps
// that need generated ids save the session themselves.
type Copier struct {
	sess   *store.Session
	actor  actorctx.Actor
	log    *slog.Logger
	prom   *observability.Prom
	tracer trace.Tracer
	now    func() time.Time
	newKey func() uuid.UUID

	sources map[int64]*event.Event
}

type Option func(*Copier)

func WithLogger(l *slog.Logger) Option {
	return func(c *Copier) { c.log = l }
}

func WithMetrics(p *observability.Prom) Option {
	return func(c *Copier) { c.prom = p }
}

func WithClock(now func() time.Time) Option {
	return func(c *Copier) { c.now = now }
}

// WithKeyGenerator replaces the generator of registration keys.
func WithKeyGenerator(f func() uuid.UUID) Option {
	return func(c *Copier) { c.newKey = f }
}

func New(sess *store.Session, actor actorctx.Actor, opts ...Option) *Copier {
	c := &Copier{
		sess:    sess,
		actor:   actor,
		log:     slog.Default(),
		tracer:  observability.Tracer(),
		now:     func() time.Time { return time.Now().UTC() },
		newKey:  uuid.New,
		sources: make(map[int64]*event.Event),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateEvent persists a new event and its detail for the actor's tenant.
func (c *Copier) CreateEvent(ctx context.Context, req event.AddEventRequest) (*event.Event, error) {
	ctx, span := c.tracer.Start(ctx, "clone.create_event")
	defer span.End()

	e := event.NewFromAddRequest(req, c.actor.TenantID, c.actor.ContactID, c.now())
	c.sess.Add(e)

	if err := c.sess.SaveChanges(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("create event: %w", err)
	}

	span.SetAttributes(attribute.Int64("event_id", e.ID))
	return e, nil
}

// ProjectSummary re-reads the event through the tenant and soft-delete filters.
// Anything but exactly one match is ErrSingleResultViolation.
func (c *Copier) ProjectSummary(ctx context.Context, eventID int64) (event.Summary, error) {
	rows, err := c.sess.Summaries(ctx, c.actor.TenantID, eventID)
	if err != nil {
		return event.Summary{}, fmt.Errorf("project event %d: %w", eventID, err)
	}
	if len(rows) != 1 {
		return event.Summary{}, fmt.Errorf("%w: event %d matched %d rows", event.ErrSingleResultViolation, eventID, len(rows))
	}
	return rows[0], nil
}

// source loads the source event once per copier. A nil event means it is absent or
// not visible to the actor.
func (c *Copier) source(ctx context.Context, sourceID int64) (*event.Event, error) {
	if e, ok := c.sources[sourceID]; ok {
		return e, nil
	}

	e, err := c.sess.Event(ctx, c.actor.TenantID, sourceID)
	if errors.Is(err, event.ErrNotFound) {
		c.sources[sourceID] = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load source event %d: %w", sourceID, err)
	}

	c.sources[sourceID] = e
	return e, nil
}

// step runs fn against the source event inside a span and records its metrics.
// A missing source makes the step a no-op.
func (c *Copier) step(ctx context.Context, name string, sourceID int64, fn func(ctx context.Context, src *event.Event) (int, error)) error {
	ctx, span := c.tracer.Start(ctx, "clone."+name, trace.WithAttributes(
		attribute.Int64("source_event_id", sourceID),
	))
	defer span.End()

	run := func() (int, error) {
		src, err := c.source(ctx, sourceID)
		if err != nil {
			return 0, err
		}
		if src == nil {
			c.log.DebugContext(ctx, "source event not found, skipping", "step", name, "source_event_id", sourceID)
			return 0, nil
		}
		return fn(ctx, src)
	}

	var rows int
	observed := func() (int, error) {
		n, err := run()
		rows = n
		return n, err
	}

	var err error
	if c.prom != nil {
		err = c.prom.ObserveCloneStep(name, observed)
	} else {
		_, err = observed()
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("copy %s: %w", name, err)
	}

	span.SetAttributes(attribute.Int("rows", rows))
	c.log.DebugContext(ctx, "copy step done", "step", name, "source_event_id", sourceID, "rows", rows)
	return nil
}

func (c *Copier) unresolved(ctx context.Context, kind string, attrs ...any) {
	if c.prom != nil {
		c.prom.UnresolvedReferences.WithLabelValues(kind).Inc()
	}
	c.log.WarnContext(ctx, "unresolved reference left empty", append([]any{"kind", kind}, attrs...)...)
}
