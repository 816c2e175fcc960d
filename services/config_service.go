package services

import (
	"log"
	"regexp"

	"github.com/cristianbbs/kolder-backend/entity"
	"github.com/cristianbbs/kolder-backend/pkg/apperr"
	"github.com/cristianbbs/kolder-backend/repository"
)

// ConfigService exposes the emergency ordering settings. Orders read the fee
// through ConfigRepository at creation time; this service only serves the
// admin-facing endpoints.
type ConfigService struct {
	Repo *repository.ConfigRepository
}

func NewConfigService(repo *repository.ConfigRepository) *ConfigService {
	return &ConfigService{Repo: repo}
}

type EmergencyConfigOut struct {
	ExtraCost *float64 `json:"extraCost"`
	Hours     *string  `json:"hours"`
	Days      *string  `json:"days"`
}

type EmergencyConfigIn struct {
	ExtraCost *float64 `json:"extraCost"`
	Hours     *string  `json:"hours"`
	Days      *string  `json:"days"`
}

var hoursRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d-([01]\d|2[0-3]):[0-5]\d$`)

func (s *ConfigService) GetEmergency() (*EmergencyConfigOut, error) {
	cfg, err := s.Repo.Get()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return &EmergencyConfigOut{}, nil
	}
	return &EmergencyConfigOut{
		ExtraCost: cfg.EmergencyExtraCost,
		Hours:     cfg.EmergencyHours,
		Days:      cfg.EmergencyDays,
	}, nil
}

func (s *ConfigService) UpdateEmergency(p entity.Principal, in *EmergencyConfigIn) (*EmergencyConfigOut, error) {
	updates := map[string]any{}
	if in.ExtraCost != nil {
		if *in.ExtraCost < 0 {
			return nil, apperr.BadBody("extraCost must be >= 0")
		}
		updates["emergency_extra_cost"] = *in.ExtraCost
	}
	if in.Hours != nil {
		if !hoursRe.MatchString(*in.Hours) {
			return nil, apperr.BadBody("hours must match HH:MM-HH:MM")
		}
		updates["emergency_hours"] = *in.Hours
	}
	if in.Days != nil {
		updates["emergency_days"] = *in.Days
	}
	if len(updates) == 0 {
		return nil, apperr.BadBody("at least one field required")
	}

	cfg, err := s.Repo.Save(updates)
	if err != nil {
		return nil, err
	}

	log.Printf("[CONFIG] emergency update by=%d role=%s", p.ID, p.Role)
	return &EmergencyConfigOut{
		ExtraCost: cfg.EmergencyExtraCost,
		Hours:     cfg.EmergencyHours,
		Days:      cfg.EmergencyDays,
	}, nil
}
