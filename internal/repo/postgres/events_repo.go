package postgres

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/geocoder89/eventclone/internal/domain/event"
	"github.com/geocoder89/eventclone/internal/observability"
	"github.com/geocoder89/eventclone/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var dialect = goqu.Dialect("postgres")

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Gateway reads through the pool and writes through transactions started by Begin.
type Gateway struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewGateway(pool *pgxpool.Pool, prom *observability.Prom) *Gateway {
	return &Gateway{pool: pool, prom: prom}
}

var _ store.Gateway = (*Gateway)(nil)

func (g *Gateway) observe(op string, fn func() error) error {
	if g.prom != nil {
		return g.prom.ObserveDB(op, fn)
	}
	return fn()
}

func selectRows[T any](ctx context.Context, q querier, ds *goqu.SelectDataset) ([]*T, error) {
	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByNameLax[T])
}

// list runs ds under the given metric name.
func list[T any](ctx context.Context, g *Gateway, op string, ds *goqu.SelectDataset) (out []*T, err error) {
	err = g.observe(op, func() error {
		out, err = selectRows[T](ctx, g.pool, ds)
		return err
	})
	return out, err
}

func one[T any](ctx context.Context, g *Gateway, op string, ds *goqu.SelectDataset) (*T, error) {
	out, err := list[T](ctx, g, op, ds.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, event.ErrNotFound
	}
	return out[0], nil
}

func (g *Gateway) refIDs(ctx context.Context, op, table, ownerCol, refCol string, ownerID int64) (ids []int64, err error) {
	ds := dialect.From(table).
		Select(refCol).
		Where(goqu.C(ownerCol).Eq(ownerID)).
		Order(goqu.C(refCol).Asc())

	sql, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	err = g.observe(op, func() error {
		rows, err := g.pool.Query(ctx, sql, args...)
		if err != nil {
			return err
		}
		ids, err = pgx.CollectRows(rows, pgx.RowTo[int64])
		return err
	})
	return ids, err
}

func (g *Gateway) Event(ctx context.Context, tenantID, eventID int64) (*event.Event, error) {
	e, err := one[event.Event](ctx, g, "events.get", dialect.From("events").Where(goqu.Ex{
		"id":         eventID,
		"tenant_id":  tenantID,
		"is_deleted": false,
	}))
	if err != nil {
		return nil, err
	}

	d, err := one[event.EventDetail](ctx, g, "event_details.get", dialect.From("event_details").Where(goqu.Ex{
		"id": e.EventDetailID,
	}))
	if err != nil {
		return nil, err
	}

	items, err := g.refIDs(ctx, "event_details.category_items", event.TableDetailCategoryItems, "event_detail_id", "category_item_id", d.ID)
	if err != nil {
		return nil, err
	}
	for _, id := range items {
		d.CategoryItems = append(d.CategoryItems, &event.CategoryItem{ID: id})
	}

	calendars, err := g.refIDs(ctx, "event_details.calendars", event.TableDetailCalendars, "event_detail_id", "calendar_id", d.ID)
	if err != nil {
		return nil, err
	}
	for _, id := range calendars {
		d.Calendars = append(d.Calendars, &event.Calendar{ID: id})
	}

	e.Detail = d
	return e, nil
}

func (g *Gateway) Address(ctx context.Context, tenantID, addressID int64) (*event.Address, error) {
	return one[event.Address](ctx, g, "addresses.get", dialect.From("addresses").Where(goqu.Ex{
		"id":         addressID,
		"tenant_id":  tenantID,
		"is_deleted": false,
	}))
}

func byDetail(table string, detailID int64, softDeleted bool) *goqu.SelectDataset {
	ex := goqu.Ex{"event_detail_id": detailID}
	if softDeleted {
		ex["is_deleted"] = false
	}
	return dialect.From(table).Where(ex).Order(goqu.C("id").Asc())
}

func (g *Gateway) Images(ctx context.Context, detailID int64) ([]*event.Image, error) {
	return list[event.Image](ctx, g, "event_images.list", byDetail("event_images", detailID, false))
}

func (g *Gateway) Sponsorships(ctx context.Context, detailID int64) ([]*event.Sponsorship, error) {
	out, err := list[event.Sponsorship](ctx, g, "event_sponsorships.list", byDetail("event_sponsorships", detailID, true))
	if err != nil {
		return nil, err
	}

	for _, s := range out {
		s.SaleableItems, err = list[event.SponsorshipSaleableItem](ctx, g, "event_sponsorship_saleable_items.list",
			dialect.From("event_sponsorship_saleable_items").
				Where(goqu.C("event_sponsorship_id").Eq(s.ID)).
				Order(goqu.C("id").Asc()))
		if err != nil {
			return nil, err
		}

		benefits, err := g.refIDs(ctx, "event_sponsorships.benefits", event.TableSponsorshipBenefits, "event_sponsorship_id", "sponsorship_benefit_id", s.ID)
		if err != nil {
			return nil, err
		}
		for _, id := range benefits {
			s.Benefits = append(s.Benefits, &event.SponsorshipBenefit{ID: id})
		}
	}
	return out, nil
}

func (g *Gateway) RegistrationTypes(ctx context.Context, detailID int64) ([]*event.RegistrationType, error) {
	out, err := list[event.RegistrationType](ctx, g, "event_registration_types.list", byDetail("event_registration_types", detailID, true))
	if err != nil {
		return nil, err
	}

	for _, r := range out {
		r.SaleableItems, err = list[event.RegistrationTypeSaleableItem](ctx, g, "event_registration_type_saleable_items.list",
			dialect.From("event_registration_type_saleable_items").
				Where(goqu.C("event_registration_type_id").Eq(r.ID)).
				Order(goqu.C("id").Asc()))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (g *Gateway) RegistrationInfo(ctx context.Context, detailID int64) (*event.RegistrationInfo, error) {
	return one[event.RegistrationInfo](ctx, g, "event_registration_infos.get", byDetail("event_registration_infos", detailID, false))
}

func (g *Gateway) Discounts(ctx context.Context, detailID int64) ([]*event.EventDiscount, error) {
	out, err := list[event.EventDiscount](ctx, g, "event_discounts.list", byDetail("event_discounts", detailID, true))
	if err != nil || len(out) == 0 {
		return out, err
	}

	discountIDs := make([]int64, 0, len(out))
	typeIDs := make([]int64, 0, len(out))
	for _, d := range out {
		discountIDs = append(discountIDs, d.DiscountID)
		if d.EventRegistrationTypeID != nil {
			typeIDs = append(typeIDs, *d.EventRegistrationTypeID)
		}
	}

	discounts, err := list[event.Discount](ctx, g, "discounts.list", dialect.From("discounts").Where(goqu.Ex{"id": discountIDs}))
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*event.Discount, len(discounts))
	for _, d := range discounts {
		byID[d.ID] = d
	}

	names := make(map[int64]string, len(typeIDs))
	if len(typeIDs) > 0 {
		types, err := list[event.RegistrationType](ctx, g, "event_registration_types.by_ids", dialect.From("event_registration_types").Where(goqu.Ex{"id": typeIDs}))
		if err != nil {
			return nil, err
		}
		for _, t := range types {
			names[t.ID] = t.Name
		}
	}

	for _, d := range out {
		d.Discount = byID[d.DiscountID]
		if d.EventRegistrationTypeID != nil {
			if name, ok := names[*d.EventRegistrationTypeID]; ok {
				d.RegistrationTypeName = &name
			}
		}
	}
	return out, nil
}

func (g *Gateway) TaskItems(ctx context.Context, tenantID, eventID int64) ([]*event.TaskItem, error) {
	ds := dialect.From(goqu.T("task_items").As("t")).
		Join(goqu.T("event_task_items").As("l"), goqu.On(goqu.I("l.task_item_id").Eq(goqu.I("t.id")))).
		Select(goqu.T("t").All()).
		Where(
			goqu.I("l.event_id").Eq(eventID),
			goqu.I("t.tenant_id").Eq(tenantID),
			goqu.I("t.is_deleted").IsFalse(),
		).
		Order(goqu.I("l.id").Asc())

	return list[event.TaskItem](ctx, g, "task_items.by_event", ds)
}

func (g *Gateway) Exhibitors(ctx context.Context, detailID int64) ([]*event.Exhibitor, error) {
	return list[event.Exhibitor](ctx, g, "event_exhibitors.list", byDetail("event_exhibitors", detailID, false))
}

func (g *Gateway) ExhibitorTypes(ctx context.Context, detailID int64) ([]*event.ExhibitorType, error) {
	return list[event.ExhibitorType](ctx, g, "event_exhibitor_types.list", byDetail("event_exhibitor_types", detailID, false))
}

func (g *Gateway) ExhibitorRegistrationInfo(ctx context.Context, detailID int64) (*event.ExhibitorRegistrationInfo, error) {
	return one[event.ExhibitorRegistrationInfo](ctx, g, "event_exhibitor_registration_infos.get", byDetail("event_exhibitor_registration_infos", detailID, false))
}

func (g *Gateway) Registrations(ctx context.Context, tenantID, eventID int64) ([]*event.Registration, error) {
	return list[event.Registration](ctx, g, "event_registrations.list", dialect.From("event_registrations").
		Where(goqu.Ex{"event_id": eventID, "tenant_id": tenantID}).
		Order(goqu.C("id").Asc()))
}

func (g *Gateway) Attendees(ctx context.Context, eventID, registrationID int64) ([]*event.Attendee, error) {
	return list[event.Attendee](ctx, g, "event_attendees.list", dialect.From("event_attendees").
		Where(goqu.Ex{"event_id": eventID, "event_registration_id": registrationID}).
		Order(goqu.C("id").Asc()))
}

func (g *Gateway) Summaries(ctx context.Context, tenantID, eventID int64) ([]event.Summary, error) {
	ds := dialect.From(goqu.T("events").As("e")).
		Join(goqu.T("event_details").As("d"), goqu.On(goqu.I("d.id").Eq(goqu.I("e.event_detail_id")))).
		Select(
			goqu.I("e.id"),
			goqu.I("e.event_detail_id"),
			goqu.I("d.name"),
			goqu.I("d.description"),
			goqu.I("d.start_date"),
			goqu.I("d.end_date"),
			goqu.I("e.publish_date"),
			goqu.I("d.organization_id"),
			goqu.I("d.address_id"),
			goqu.I("e.created_at"),
		).
		Where(
			goqu.I("e.id").Eq(eventID),
			goqu.I("e.tenant_id").Eq(tenantID),
			goqu.I("e.is_deleted").IsFalse(),
		)

	rows, err := list[event.Summary](ctx, g, "events.summary", ds)
	if err != nil {
		return nil, err
	}

	out := make([]event.Summary, 0, len(rows))
	for _, s := range rows {
		out = append(out, *s)
	}
	return out, nil
}
