package healthrecord

import (
	"context"
	"strconv"
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

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const recordCols = `id, patient_id, record_type, title, description, vitals,
	risk_level, recommendations, record_date, created_at, updated_at`

func (r *repoPG) scanRecord(row pgx.Row) (*HealthRecord, error) {
	var rec HealthRecord
	err := row.Scan(&rec.ID, &rec.PatientID, &rec.RecordType, &rec.Title, &rec.Description,
		&rec.Vitals, &rec.RiskLevel, &rec.Recommendations, &rec.RecordDate, &rec.CreatedAt, &rec.UpdatedAt)
	return &rec, err
}

func (r *repoPG) Create(ctx context.Context, rec *HealthRecord) error {
	rec.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO health_record (id, patient_id, record_type, title, description, vitals,
			risk_level, recommendations, record_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		rec.ID, rec.PatientID, rec.RecordType, rec.Title, rec.Description, rec.Vitals,
		rec.RiskLevel, rec.Recommendations, rec.RecordDate)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*HealthRecord, error) {
	return r.scanRecord(r.conn(ctx).QueryRow(ctx, `SELECT `+recordCols+` FROM health_record WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, rec *HealthRecord) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE health_record
		SET title = $2, description = $3, vitals = $4, risk_level = $5,
			recommendations = $6, record_date = $7, updated_at = NOW()
		WHERE id = $1`,
		rec.ID, rec.Title, rec.Description, rec.Vitals, rec.RiskLevel,
		rec.Recommendations, rec.RecordDate)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx, `DELETE FROM health_record WHERE id = $1`, id)
	return err
}

func (r *repoPG) List(ctx context.Context, patientID uuid.UUID, filter ListFilter, limit, offset int) ([]*HealthRecord, int, error) {
	where := ` WHERE patient_id = $1`
	args := []interface{}{patientID}

	if filter.RecordType != "" && filter.RecordType != "all" {
		args = append(args, filter.RecordType)
		where += ` AND record_type = $2`
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += ` AND record_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += ` AND record_date <= $` + strconv.Itoa(len(args))
	}

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM health_record`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit, offset)
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+recordCols+` FROM health_record`+where+
			` ORDER BY record_date DESC LIMIT $`+strconv.Itoa(len(args)-1)+` OFFSET $`+strconv.Itoa(len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*HealthRecord
	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, nil
}

func (r *repoPG) LatestWithVitals(ctx context.Context, patientID uuid.UUID) (*HealthRecord, error) {
	return r.scanRecord(r.conn(ctx).QueryRow(ctx, `
		SELECT `+recordCols+` FROM health_record
		WHERE patient_id = $1 AND vitals IS NOT NULL
		ORDER BY record_date DESC LIMIT 1`, patientID))
}

func (r *repoPG) RiskDistribution(ctx context.Context, patientID uuid.UUID) ([]RiskCount, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT risk_level, COUNT(*) FROM health_record
		WHERE patient_id = $1 AND risk_level <> ''
		GROUP BY risk_level`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RiskCount
	for rows.Next() {
		var rc RiskCount
		if err := rows.Scan(&rc.RiskLevel, &rc.Count); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, nil
}

func (r *repoPG) ActivitySince(ctx context.Context, patientID uuid.UUID, since time.Time) ([]TypeCount, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT record_type, COUNT(*), MAX(record_date) FROM health_record
		WHERE patient_id = $1 AND record_date >= $2
		GROUP BY record_type`, patientID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TypeCount
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.RecordType, &tc.Count, &tc.LatestDate); err != nil {
			return nil, err
		}
		out = append(out, tc)
	}
	return out, nil
}

func (r *repoPG) CreateShare(ctx context.Context, grant *ShareGrant) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO record_share (token, patient_id, record_ids, expires_at)
		VALUES ($1,$2,$3,$4)`,
		grant.Token, grant.PatientID, grant.RecordIDs, grant.ExpiresAt)
	return err
}

func (r *repoPG) GetShare(ctx context.Context, token string) (*ShareGrant, error) {
	var g ShareGrant
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT token, patient_id, record_ids, expires_at, created_at
		FROM record_share WHERE token = $1`, token).
		Scan(&g.Token, &g.PatientID, &g.RecordIDs, &g.ExpiresAt, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &g, nil
}
