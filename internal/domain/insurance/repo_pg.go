package insurance

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

type policyRepoPG struct{ pool *pgxpool.Pool }

func NewPolicyRepoPG(pool *pgxpool.Pool) PolicyRepository { return &policyRepoPG{pool: pool} }

func (r *policyRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const policyCols = `id, user_id, policy_type, policy_number, premium_amount,
	coverage_amount, start_date, end_date, status, claims, created_at`

func (r *policyRepoPG) scanPolicy(row pgx.Row) (*Policy, error) {
	var p Policy
	err := row.Scan(&p.ID, &p.UserID, &p.PolicyType, &p.PolicyNumber, &p.PremiumAmount,
		&p.CoverageAmount, &p.StartDate, &p.EndDate, &p.Status, &p.Claims, &p.CreatedAt)
	return &p, err
}

func (r *policyRepoPG) Create(ctx context.Context, p *Policy) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO insurance_policy (id, user_id, policy_type, policy_number, premium_amount,
			coverage_amount, start_date, end_date, status, claims)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.UserID, p.PolicyType, p.PolicyNumber, p.PremiumAmount,
		p.CoverageAmount, p.StartDate, p.EndDate, p.Status, p.Claims)
	return err
}

func (r *policyRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Policy, error) {
	return r.scanPolicy(r.conn(ctx).QueryRow(ctx, `SELECT `+policyCols+` FROM insurance_policy WHERE id = $1`, id))
}

func (r *policyRepoPG) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Policy, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+policyCols+` FROM insurance_policy WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Policy
	for rows.Next() {
		p, err := r.scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

func (r *policyRepoPG) UpdateClaims(ctx context.Context, id uuid.UUID, claims []Claim) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE insurance_policy SET claims = $2 WHERE id = $1`, id, claims)
	return err
}

func (r *policyRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx, `UPDATE insurance_policy SET status = $2 WHERE id = $1`, id, status)
	return err
}
