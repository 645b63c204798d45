package identity

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

// =========== User Repository ===========

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository { return &userRepoPG{pool: pool} }

func (r *userRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const userCols = `id, email, password_hash, user_type, full_name, phone, abha_id,
	district, block, village, preferred_language, is_active, created_at, updated_at`

func (r *userRepoPG) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.UserType, &u.FullName, &u.Phone, &u.AbhaID,
		&u.District, &u.Block, &u.Village, &u.PreferredLanguage, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return &u, err
}

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO app_user (id, email, password_hash, user_type, full_name, phone, abha_id,
			district, block, village, preferred_language, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		u.ID, u.Email, u.PasswordHash, u.UserType, u.FullName, u.Phone, u.AbhaID,
		u.District, u.Block, u.Village, u.PreferredLanguage, u.IsActive)
	return err
}

func (r *userRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.scanUser(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
}

func (r *userRepoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.conn(ctx).QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE lower(email) = lower($1)`, email))
}

func (r *userRepoPG) Update(ctx context.Context, u *User) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE app_user SET full_name=$2, phone=$3, abha_id=$4, district=$5, block=$6,
			village=$7, preferred_language=$8, is_active=$9, updated_at=NOW()
		WHERE id = $1`,
		u.ID, u.FullName, u.Phone, u.AbhaID, u.District, u.Block,
		u.Village, u.PreferredLanguage, u.IsActive)
	return err
}

func (r *userRepoPG) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM app_user`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+userCols+` FROM app_user ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, nil
}

// =========== Citizen Repository ===========

type citizenRepoPG struct{ pool *pgxpool.Pool }

func NewCitizenRepoPG(pool *pgxpool.Pool) CitizenRepository { return &citizenRepoPG{pool: pool} }

func (r *citizenRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const citizenCols = `user_id, date_of_birth, gender, blood_group, emergency_contact, created_at`

func (r *citizenRepoPG) scanCitizen(row pgx.Row) (*CitizenProfile, error) {
	var p CitizenProfile
	err := row.Scan(&p.UserID, &p.DateOfBirth, &p.Gender, &p.BloodGroup, &p.EmergencyContact, &p.CreatedAt)
	return &p, err
}

func (r *citizenRepoPG) Create(ctx context.Context, p *CitizenProfile) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO citizen_profile (user_id, date_of_birth, gender, blood_group, emergency_contact)
		VALUES ($1,$2,$3,$4,$5)`,
		p.UserID, p.DateOfBirth, p.Gender, p.BloodGroup, p.EmergencyContact)
	return err
}

func (r *citizenRepoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*CitizenProfile, error) {
	return r.scanCitizen(r.conn(ctx).QueryRow(ctx, `SELECT `+citizenCols+` FROM citizen_profile WHERE user_id = $1`, userID))
}

func (r *citizenRepoPG) Update(ctx context.Context, p *CitizenProfile) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE citizen_profile SET date_of_birth=$2, gender=$3, blood_group=$4, emergency_contact=$5
		WHERE user_id = $1`,
		p.UserID, p.DateOfBirth, p.Gender, p.BloodGroup, p.EmergencyContact)
	return err
}

// =========== ASHA Repository ===========

type ashaRepoPG struct{ pool *pgxpool.Pool }

func NewASHARepoPG(pool *pgxpool.Pool) ASHARepository { return &ashaRepoPG{pool: pool} }

func (r *ashaRepoPG) conn(ctx context.Context) queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const ashaCols = `user_id, asha_id, certification_number, assigned_villages,
	training_status, performance_score, is_available, created_at`

func (r *ashaRepoPG) scanASHA(row pgx.Row) (*ASHAWorker, error) {
	var w ASHAWorker
	err := row.Scan(&w.UserID, &w.ASHAID, &w.CertificationNumber, &w.AssignedVillages,
		&w.TrainingStatus, &w.PerformanceScore, &w.IsAvailable, &w.CreatedAt)
	return &w, err
}

func (r *ashaRepoPG) Create(ctx context.Context, w *ASHAWorker) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO asha_worker (user_id, asha_id, certification_number, assigned_villages,
			training_status, performance_score, is_available)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		w.UserID, w.ASHAID, w.CertificationNumber, w.AssignedVillages,
		w.TrainingStatus, w.PerformanceScore, w.IsAvailable)
	return err
}

func (r *ashaRepoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*ASHAWorker, error) {
	return r.scanASHA(r.conn(ctx).QueryRow(ctx, `SELECT `+ashaCols+` FROM asha_worker WHERE user_id = $1`, userID))
}

func (r *ashaRepoPG) Update(ctx context.Context, w *ASHAWorker) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE asha_worker SET certification_number=$2, assigned_villages=$3,
			training_status=$4, performance_score=$5, is_available=$6
		WHERE user_id = $1`,
		w.UserID, w.CertificationNumber, w.AssignedVillages,
		w.TrainingStatus, w.PerformanceScore, w.IsAvailable)
	return err
}

func (r *ashaRepoPG) ListByVillage(ctx context.Context, village string, limit int) ([]*ASHAWorker, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+ashaCols+` FROM asha_worker
		WHERE is_available = TRUE AND $1 = ANY(assigned_villages)
		ORDER BY performance_score DESC
		LIMIT $2`, village, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ASHAWorker
	for rows.Next() {
		w, err := r.scanASHA(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, nil
}
