package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/geocoder89/eventclone/internal/actorctx"
	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/geocoder89/eventclone/internal/http/handlers"
	"github.com/geocoder89/eventclone/internal/tenancy"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAddEvent struct {
	executeFn func(ctx context.Context, actor actorctx.Actor, req event.AddEventRequest) (event.Summary, error)
	calls     int
}

func (f *fakeAddEvent) Execute(ctx context.Context, actor actorctx.Actor, req event.AddEventRequest) (event.Summary, error) {
	f.calls++
	if f.executeFn != nil {
		return f.executeFn(ctx, actor, req)
	}
	return event.Summary{}, nil
}

var testActor = actorctx.Actor{TenantID: 7, TenantKey: "acme", UserID: "u-1"}

// withActor stands in for the auth middleware.
func withActor(a *actorctx.Actor) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if a != nil {
			ctx.Request = ctx.Request.WithContext(actorctx.WithActor(ctx.Request.Context(), *a))
		}
		ctx.Next()
	}
}

func postEvent(t *testing.T, h *handlers.EventsHandler, actor *actorctx.Actor, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	r.POST("/events", withActor(actor), h.AddEvent)

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddEventHandler(t *testing.T) {
	start := time.Date(2027, 1, 10, 18, 0, 0, 0, time.UTC)
	valid := `{"name":"Annual Gala","startDate":"2027-01-10T18:00:00Z"}`
	copying := `{"name":"Annual Gala","startDate":"2027-01-10T18:00:00Z",
		"copyFromExistingEvent":true,"existingEventId":42,"copyTasks":true,"copyAttendees":true}`

	tests := []struct {
		name       string
		body       string
		actor      *actorctx.Actor
		execute    func(ctx context.Context, actor actorctx.Actor, req event.AddEventRequest) (event.Summary, error)
		wantStatus int
		wantCode   string
		wantCalls  int
	}{
		{
			name:  "plain create",
			body:  valid,
			actor: &testActor,
			execute: func(_ context.Context, actor actorctx.Actor, req event.AddEventRequest) (event.Summary, error) {
				if actor.TenantKey != "acme" {
					return event.Summary{}, fmt.Errorf("unexpected tenant %q", actor.TenantKey)
				}
				if req.CopiesFromExisting() {
					return event.Summary{}, errors.New("plain request reported a copy")
				}
				return event.Summary{ID: 1, EventDetailID: 2, Name: req.Name, StartDate: req.StartDate}, nil
			},
			wantStatus: http.StatusCreated,
			wantCalls:  1,
		},
		{
			name:  "copy request passes flags through",
			body:  copying,
			actor: &testActor,
			execute: func(_ context.Context, _ actorctx.Actor, req event.AddEventRequest) (event.Summary, error) {
				if !req.CopiesFromExisting() || *req.ExistingEventID != 42 || !req.CopyTasks || !req.NeedsBackgroundCopy() {
					return event.Summary{}, fmt.Errorf("flags lost: %+v", req)
				}
				return event.Summary{ID: 3, EventDetailID: 4, Name: req.Name, StartDate: start}, nil
			},
			wantStatus: http.StatusCreated,
			wantCalls:  1,
		},
		{
			name:       "missing name",
			body:       `{"startDate":"2027-01-10T18:00:00Z"}`,
			actor:      &testActor,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
		},
		{
			name:       "copy without source",
			body:       `{"name":"Annual Gala","startDate":"2027-01-10T18:00:00Z","copyFromExistingEvent":true}`,
			actor:      &testActor,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
		},
		{
			name:       "no actor",
			body:       valid,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "unauthorized",
		},
		{
			name:  "unknown tenant",
			body:  valid,
			actor: &testActor,
			execute: func(context.Context, actorctx.Actor, event.AddEventRequest) (event.Summary, error) {
				return event.Summary{}, fmt.Errorf("open session: %w", tenancy.ErrUnknownTenant)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "forbidden",
			wantCalls:  1,
		},
		{
			name:  "summary not single",
			body:  valid,
			actor: &testActor,
			execute: func(context.Context, actorctx.Actor, event.AddEventRequest) (event.Summary, error) {
				return event.Summary{}, fmt.Errorf("%w: matched 0 rows", event.ErrSingleResultViolation)
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "inconsistent_event",
			wantCalls:  1,
		},
		{
			name:  "copy step fails",
			body:  copying,
			actor: &testActor,
			execute: func(context.Context, actorctx.Actor, event.AddEventRequest) (event.Summary, error) {
				return event.Summary{}, errors.New("db down")
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
			wantCalls:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAddEvent{executeFn: tt.execute}
			w := postEvent(t, handlers.NewEventsHandler(fake), tt.actor, tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}
			if fake.calls != tt.wantCalls {
				t.Fatalf("executor called %d times, want %d", fake.calls, tt.wantCalls)
			}

			if tt.wantCode == "" {
				var summary event.Summary
				if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
					t.Fatalf("decode summary: %v", err)
				}
				if summary.ID == 0 || summary.Name != "Annual Gala" {
					t.Fatalf("unexpected summary: %+v", summary)
				}
				return
			}

			var resp bindErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error body: %v body=%s", err, w.Body.String())
			}
			if resp.Error.Code != tt.wantCode {
				t.Fatalf("got code %q, want %q", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestAddEventHandler_ErrorCarriesRequestID(t *testing.T) {
	fake := &fakeAddEvent{executeFn: func(context.Context, actorctx.Actor, event.AddEventRequest) (event.Summary, error) {
		return event.Summary{}, errors.New("boom")
	}}
	h := handlers.NewEventsHandler(fake)

	r := gin.New()
	r.POST("/events", func(ctx *gin.Context) {
		ctx.Request = ctx.Request.WithContext(actorctx.WithRequestID(ctx.Request.Context(), "req-1"))
		ctx.Next()
	}, withActor(&testActor), h.AddEvent)

	req := httptest.NewRequest(http.MethodPost, "/events",
		bytes.NewBufferString(`{"name":"Annual Gala","startDate":"2027-01-10T18:00:00Z"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp struct {
		Error handlers.APIError `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Error.RequestID != "req-1" {
		t.Fatalf("got requestId %q, want req-1", resp.Error.RequestID)
	}
}
