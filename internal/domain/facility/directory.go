package facility

import (
	"context"

	"github.com/gramcare/gramcare/internal/domain/scheme"
)

// hospitalDirectory serves scheme eligibility lookups from the facility
// registry.
type hospitalDirectory struct {
	repo Repository
}

// NewHospitalDirectory adapts the facility registry to the scheme module's
// empanelled-hospital lookups.
func NewHospitalDirectory(repo Repository) scheme.HospitalDirectory {
	return &hospitalDirectory{repo: repo}
}

func (d *hospitalDirectory) EmpanelledHospitals(ctx context.Context, district string) ([]scheme.Hospital, error) {
	facilities, err := d.repo.Search(ctx, SearchFilter{District: district, BSKYOnly: true})
	if err != nil {
		return nil, err
	}
	hospitals := make([]scheme.Hospital, 0, len(facilities))
	for _, f := range facilities {
		h := scheme.Hospital{
			Name:     f.Name,
			Address:  f.Address,
			Services: f.Services,
		}
		if phone, ok := f.ContactInfo["phone"]; ok {
			h.Contact = phone
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, nil
}
