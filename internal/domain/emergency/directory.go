package emergency

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gramcare/gramcare/internal/domain/identity"
)

// identityReporterDirectory resolves reporters through the identity domain.
type identityReporterDirectory struct {
	users    identity.UserRepository
	citizens identity.CitizenRepository
}

func NewReporterDirectory(users identity.UserRepository, citizens identity.CitizenRepository) ReporterDirectory {
	return &identityReporterDirectory{users: users, citizens: citizens}
}

func (d *identityReporterDirectory) GetReporter(ctx context.Context, userID uuid.UUID) (*Reporter, error) {
	u, err := d.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	profile, err := d.citizens.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("citizen profile: %w", err)
	}

	r := &Reporter{UserID: u.ID, FullName: u.FullName}
	if u.Village != nil {
		r.Village = *u.Village
	}
	if u.Phone != nil {
		r.Phone = *u.Phone
	}
	if profile.EmergencyContact != nil {
		r.EmergencyContact = *profile.EmergencyContact
	}
	return r, nil
}

// identityResponderDirectory resolves ASHA workers through the identity domain.
type identityResponderDirectory struct {
	users identity.UserRepository
	ashas identity.ASHARepository
}

func NewResponderDirectory(users identity.UserRepository, ashas identity.ASHARepository) ResponderDirectory {
	return &identityResponderDirectory{users: users, ashas: ashas}
}

func (d *identityResponderDirectory) FindByVillage(ctx context.Context, village string, limit int) ([]Candidate, error) {
	if village == "" {
		return nil, nil
	}
	workers, err := d.ashas.ListByVillage(ctx, village, limit)
	if err != nil {
		return nil, fmt.Errorf("list workers for village %s: %w", village, err)
	}
	candidates := make([]Candidate, 0, len(workers))
	for _, w := range workers {
		c := Candidate{UserID: w.UserID, ASHAID: w.ASHAID}
		if u, err := d.users.GetByID(ctx, w.UserID); err == nil {
			c.FullName = u.FullName
			if u.Phone != nil {
				c.Phone = *u.Phone
			}
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (d *identityResponderDirectory) GetResponder(ctx context.Context, userID uuid.UUID) (*Candidate, error) {
	w, err := d.ashas.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("asha worker: %w", err)
	}
	c := &Candidate{UserID: w.UserID, ASHAID: w.ASHAID}
	if u, err := d.users.GetByID(ctx, w.UserID); err == nil {
		c.FullName = u.FullName
		if u.Phone != nil {
			c.Phone = *u.Phone
		}
	}
	return c, nil
}
