package facility

import (
	"context"
	"strconv"

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

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const facilityCols = `id, name, type, address, district, block, coordinates,
	contact_info, services, bsky_empanelled, rating, operating_hours,
	verification_status, created_at`

func scanFacility(row pgx.Row) (*Facility, error) {
	var f Facility
	err := row.Scan(&f.ID, &f.Name, &f.Type, &f.Address, &f.District, &f.Block,
		&f.Coordinates, &f.ContactInfo, &f.Services, &f.BSKYEmpanelled, &f.Rating,
		&f.OperatingHours, &f.VerificationStatus, &f.CreatedAt)
	return &f, err
}

func collectFacilities(rows pgx.Rows) ([]*Facility, error) {
	defer rows.Close()
	var items []*Facility
	for rows.Next() {
		f, err := scanFacility(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

func (r *repoPG) Create(ctx context.Context, f *Facility) error {
	f.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO healthcare_facility (id, name, type, address, district, block,
			coordinates, contact_info, services, bsky_empanelled, rating,
			operating_hours, verification_status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		f.ID, f.Name, f.Type, f.Address, f.District, f.Block,
		f.Coordinates, f.ContactInfo, f.Services, f.BSKYEmpanelled, f.Rating,
		f.OperatingHours, f.VerificationStatus)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	return scanFacility(r.conn(ctx).QueryRow(ctx,
		`SELECT `+facilityCols+` FROM healthcare_facility WHERE id = $1`, id))
}

func (r *repoPG) Search(ctx context.Context, filter SearchFilter) ([]*Facility, error) {
	query := `SELECT ` + facilityCols + ` FROM healthcare_facility WHERE 1=1`
	var args []interface{}
	if filter.Type != "" && filter.Type != "all" {
		args = append(args, filter.Type)
		query += ` AND type = $` + strconv.Itoa(len(args))
	}
	if filter.District != "" {
		args = append(args, filter.District)
		query += ` AND district = $` + strconv.Itoa(len(args))
	}
	if filter.BSKYOnly {
		query += ` AND bsky_empanelled = true`
	}
	query += ` ORDER BY rating DESC, name`
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectFacilities(rows)
}

func (r *repoPG) ListByDistrict(ctx context.Context, district string, limit int) ([]*Facility, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+facilityCols+` FROM healthcare_facility
		WHERE district = $1
		ORDER BY CASE WHEN bsky_empanelled THEN 0 ELSE 1 END, rating DESC, name
		LIMIT $2`, district, limit)
	if err != nil {
		return nil, err
	}
	return collectFacilities(rows)
}

func (r *repoPG) ListEmergencyCapable(ctx context.Context, limit int) ([]*Facility, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+facilityCols+` FROM healthcare_facility
		WHERE (services::text ILIKE '%emergency%' OR services::text ILIKE '%24/7%' OR type = 'hospital')
		  AND coordinates IS NOT NULL
		ORDER BY CASE WHEN bsky_empanelled THEN 0 ELSE 1 END, rating DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectFacilities(rows)
}
