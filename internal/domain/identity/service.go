package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/gramcare/gramcare/internal/platform/auth"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotFound           = errors.New("user not found")
)

type Service struct {
	users    UserRepository
	citizens CitizenRepository
	ashas    ASHARepository
	tokens   *auth.TokenIssuer
}

func NewService(users UserRepository, citizens CitizenRepository, ashas ASHARepository, tokens *auth.TokenIssuer) *Service {
	return &Service{users: users, citizens: citizens, ashas: ashas, tokens: tokens}
}

// RegisterRequest carries the fields accepted at signup.
type RegisterRequest struct {
	Email             string  `json:"email"`
	Password          string  `json:"password"`
	UserType          string  `json:"user_type"`
	FullName          string  `json:"full_name"`
	Phone             *string `json:"phone,omitempty"`
	AbhaID            *string `json:"abha_id,omitempty"`
	District          *string `json:"district,omitempty"`
	Block             *string `json:"block,omitempty"`
	Village           *string `json:"village,omitempty"`
	PreferredLanguage string  `json:"preferred_language,omitempty"`

	// Citizen profile fields
	DateOfBirth      *time.Time `json:"date_of_birth,omitempty"`
	Gender           *string    `json:"gender,omitempty"`
	BloodGroup       *string    `json:"blood_group,omitempty"`
	EmergencyContact *string    `json:"emergency_contact,omitempty"`

	// ASHA profile fields
	ASHAID              string   `json:"asha_id,omitempty"`
	CertificationNumber *string  `json:"certification_number,omitempty"`
	AssignedVillages    []string `json:"assigned_villages,omitempty"`
}

// AuthResult is returned from Register and Login.
type AuthResult struct {
	User   *User           `json:"user"`
	Tokens *auth.TokenPair `json:"tokens"`
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if req.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	switch req.UserType {
	case UserTypeCitizen, UserTypeASHA:
	case "":
		return nil, fmt.Errorf("user_type is required")
	default:
		return nil, fmt.Errorf("user_type must be %q or %q", UserTypeCitizen, UserTypeASHA)
	}

	if existing, err := s.users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	lang := req.PreferredLanguage
	if lang == "" {
		lang = "en"
	}

	u := &User{
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:      string(hash),
		UserType:          req.UserType,
		FullName:          req.FullName,
		Phone:             req.Phone,
		AbhaID:            req.AbhaID,
		District:          req.District,
		Block:             req.Block,
		Village:           req.Village,
		PreferredLanguage: lang,
		IsActive:          true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	switch req.UserType {
	case UserTypeCitizen:
		profile := &CitizenProfile{
			UserID:           u.ID,
			DateOfBirth:      req.DateOfBirth,
			Gender:           req.Gender,
			BloodGroup:       req.BloodGroup,
			EmergencyContact: req.EmergencyContact,
		}
		if err := s.citizens.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("create citizen profile: %w", err)
		}
	case UserTypeASHA:
		ashaID := req.ASHAID
		if ashaID == "" {
			ashaID = "ASHA-" + strings.ToUpper(u.ID.String()[:8])
		}
		worker := &ASHAWorker{
			UserID:              u.ID,
			ASHAID:              ashaID,
			CertificationNumber: req.CertificationNumber,
			AssignedVillages:    req.AssignedVillages,
			TrainingStatus:      "pending",
			IsAvailable:         true,
		}
		if err := s.ashas.Create(ctx, worker); err != nil {
			return nil, fmt.Errorf("create asha profile: %w", err)
		}
	}

	tokens, err := s.tokens.Issue(u.ID.String(), u.UserType)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &AuthResult{User: u, Tokens: tokens}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	tokens, err := s.tokens.Issue(u.ID.String(), u.UserType)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return &AuthResult{User: u, Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil || u == nil || !u.IsActive {
		return nil, ErrInvalidCredentials
	}
	return s.tokens.Issue(u.ID.String(), u.UserType)
}

// Profile bundles a user with their type-specific profile.
type Profile struct {
	User    *User           `json:"user"`
	Citizen *CitizenProfile `json:"citizen_profile,omitempty"`
	ASHA    *ASHAWorker     `json:"asha_profile,omitempty"`
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrNotFound
	}
	p := &Profile{User: u}
	switch u.UserType {
	case UserTypeCitizen:
		if c, err := s.citizens.GetByUserID(ctx, userID); err == nil {
			p.Citizen = c
		}
	case UserTypeASHA:
		if w, err := s.ashas.GetByUserID(ctx, userID); err == nil {
			p.ASHA = w
		}
	}
	return p, nil
}

// UpdateProfileRequest carries the mutable profile fields.
type UpdateProfileRequest struct {
	FullName          *string  `json:"full_name,omitempty"`
	Phone             *string  `json:"phone,omitempty"`
	District          *string  `json:"district,omitempty"`
	Block             *string  `json:"block,omitempty"`
	Village           *string  `json:"village,omitempty"`
	PreferredLanguage *string  `json:"preferred_language,omitempty"`
	EmergencyContact  *string  `json:"emergency_contact,omitempty"`
	AssignedVillages  []string `json:"assigned_villages,omitempty"`
	IsAvailable       *bool    `json:"is_available,omitempty"`
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrNotFound
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.District != nil {
		u.District = req.District
	}
	if req.Block != nil {
		u.Block = req.Block
	}
	if req.Village != nil {
		u.Village = req.Village
	}
	if req.PreferredLanguage != nil {
		u.PreferredLanguage = *req.PreferredLanguage
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	switch u.UserType {
	case UserTypeCitizen:
		if req.EmergencyContact != nil {
			if c, err := s.citizens.GetByUserID(ctx, userID); err == nil {
				c.EmergencyContact = req.EmergencyContact
				if err := s.citizens.Update(ctx, c); err != nil {
					return nil, fmt.Errorf("update citizen profile: %w", err)
				}
			}
		}
	case UserTypeASHA:
		if req.AssignedVillages != nil || req.IsAvailable != nil {
			if w, err := s.ashas.GetByUserID(ctx, userID); err == nil {
				if req.AssignedVillages != nil {
					w.AssignedVillages = req.AssignedVillages
				}
				if req.IsAvailable != nil {
					w.IsAvailable = *req.IsAvailable
				}
				if err := s.ashas.Update(ctx, w); err != nil {
					return nil, fmt.Errorf("update asha profile: %w", err)
				}
			}
		}
	}
	return s.GetProfile(ctx, userID)
}
