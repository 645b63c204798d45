package emergency

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gramcare/gramcare/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type alertRepoPG struct{ pool *pgxpool.Pool }

func NewAlertRepoPG(pool *pgxpool.Pool) AlertRepository { return &alertRepoPG{pool: pool} }

func (r *alertRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const alertCols = `id, citizen_id, alert_type, severity, location, description,
	status, responder_id, response_time, resolution_time, created_at`

func (r *alertRepoPG) scanAlert(row pgx.Row) (*Alert, error) {
	var a Alert
	err := row.Scan(&a.ID, &a.CitizenID, &a.AlertType, &a.Severity, &a.Location, &a.Description,
		&a.Status, &a.ResponderID, &a.ResponseTime, &a.ResolutionTime, &a.CreatedAt)
	return &a, err
}

func (r *alertRepoPG) Create(ctx context.Context, a *Alert) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO emergency_alert (id, citizen_id, alert_type, severity, location, description, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.CitizenID, a.AlertType, a.Severity, a.Location, a.Description, a.Status)
	return err
}

func (r *alertRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Alert, error) {
	return r.scanAlert(r.conn(ctx).QueryRow(ctx, `SELECT `+alertCols+` FROM emergency_alert WHERE id = $1`, id))
}

func (r *alertRepoPG) ListByCitizen(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]*Alert, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM emergency_alert WHERE citizen_id = $1`, citizenID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+alertCols+` FROM emergency_alert WHERE citizen_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		citizenID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Alert
	for rows.Next() {
		a, err := r.scanAlert(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *alertRepoPG) ListOpenByVillages(ctx context.Context, villages []string, limit, offset int) ([]*Alert, int, error) {
	base := ` FROM emergency_alert a
		JOIN app_user u ON u.id = a.citizen_id
		WHERE a.status IN ('active','responding') AND u.village = ANY($1)`
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*)`+base, villages).Scan(&total); err != nil {
		return nil, 0, err
	}
	cols := `a.id, a.citizen_id, a.alert_type, a.severity, a.location, a.description,
		a.status, a.responder_id, a.response_time, a.resolution_time, a.created_at`
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+cols+base+` ORDER BY a.created_at DESC LIMIT $2 OFFSET $3`,
		villages, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Alert
	for rows.Next() {
		a, err := r.scanAlert(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

func (r *alertRepoPG) MarkResponding(ctx context.Context, id, responderID uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE emergency_alert
		SET responder_id = $2, response_time = $3, status = 'responding'
		WHERE id = $1 AND status = 'active'`,
		id, responderID, at)
	if err != nil {
		return false, fmt.Errorf("mark responding: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *alertRepoPG) MarkResolved(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE emergency_alert
		SET status = 'resolved', resolution_time = $2
		WHERE id = $1 AND status IN ('active','responding')`,
		id, at)
	if err != nil {
		return false, fmt.Errorf("mark resolved: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
