package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/geocoder89/eventclone/internal/actorctx"
	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/geocoder89/eventclone/internal/tenancy"
	"github.com/gin-gonic/gin"
)

// AddEventExecutor runs the add-event command for an authenticated actor.
type AddEventExecutor interface {
	Execute(ctx context.Context, actor actorctx.Actor, req event.AddEventRequest) (event.Summary, error)
}

type EventsHandler struct {
	cmd AddEventExecutor
}

func NewEventsHandler(cmd AddEventExecutor) *EventsHandler {
	return &EventsHandler{cmd: cmd}
}

// AddEvent handles POST /events. Attendee data requested in the body is copied after
// the response is written, so the summary never reflects it.
func (h *EventsHandler) AddEvent(ctx *gin.Context) {
	var req event.AddEventRequest
	if !BindJSON(ctx, &req) {
		return
	}

	actor, err := actorctx.MustFrom(ctx.Request.Context())
	if err != nil {
		RespondUnauthorized(ctx, "missing tenant identity")
		return
	}

	summary, err := h.cmd.Execute(ctx.Request.Context(), actor, req)
	if err != nil {
		respondCommandError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, summary)
}

func respondCommandError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, actorctx.ErrNoActor):
		RespondUnauthorized(ctx, "missing tenant identity")
	case errors.Is(err, tenancy.ErrUnknownTenant):
		RespondForbidden(ctx, "tenant is not provisioned")
	case errors.Is(err, event.ErrSingleResultViolation):
		_ = ctx.Error(err)
		RespondError(ctx, http.StatusInternalServerError, "inconsistent_event", "created event could not be read back", nil)
	default:
		_ = ctx.Error(err)
		RespondInternal(ctx, "failed to add event")
	}
}
