package scheme

import (
	"context"

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

type applicationRepoPG struct{ pool *pgxpool.Pool }

func NewApplicationRepoPG(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepoPG{pool: pool}
}

func (r *applicationRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const applicationCols = `id, user_id, scheme_name, scheme_id, eligibility_status,
	application_status, benefits_availed, documents_submitted, approved_amount,
	created_at, updated_at`

func (r *applicationRepoPG) scanApplication(row pgx.Row) (*Application, error) {
	var a Application
	err := row.Scan(&a.ID, &a.UserID, &a.SchemeName, &a.SchemeID, &a.EligibilityStatus,
		&a.ApplicationStatus, &a.BenefitsAvailed, &a.DocumentsSubmitted, &a.ApprovedAmount,
		&a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *applicationRepoPG) Create(ctx context.Context, a *Application) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO scheme_application (id, user_id, scheme_name, scheme_id, eligibility_status,
			application_status, benefits_availed, documents_submitted, approved_amount)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.UserID, a.SchemeName, a.SchemeID, a.EligibilityStatus,
		a.ApplicationStatus, a.BenefitsAvailed, a.DocumentsSubmitted, a.ApprovedAmount)
	return err
}

func (r *applicationRepoPG) Update(ctx context.Context, a *Application) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE scheme_application
		SET scheme_id = $2, eligibility_status = $3, application_status = $4,
			benefits_availed = $5, documents_submitted = $6, approved_amount = $7,
			updated_at = NOW()
		WHERE id = $1`,
		a.ID, a.SchemeID, a.EligibilityStatus, a.ApplicationStatus,
		a.BenefitsAvailed, a.DocumentsSubmitted, a.ApprovedAmount)
	return err
}

func (r *applicationRepoPG) GetByUserAndScheme(ctx context.Context, userID uuid.UUID, schemeName string) (*Application, error) {
	return r.scanApplication(r.conn(ctx).QueryRow(ctx,
		`SELECT `+applicationCols+` FROM scheme_application WHERE user_id = $1 AND scheme_name = $2`,
		userID, schemeName))
}

func (r *applicationRepoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Application, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+applicationCols+` FROM scheme_application WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Application
	for rows.Next() {
		a, err := r.scanApplication(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, nil
}
