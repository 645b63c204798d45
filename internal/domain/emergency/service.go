package emergency

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrNotFound     = errors.New("alert not found")
	ErrConflict     = errors.New("alert status changed concurrently")
	ErrUnauthorized = errors.New("not authorized for this alert")
	ErrNoProfile    = errors.New("profile not found")
)

// maxCandidates bounds the responder candidate list per alert. The fan-out
// worker pool is capped at the same value.
const maxCandidates = 5

// notifyTimeout bounds each individual notification attempt.
const notifyTimeout = 5 * time.Second

// Service implements the emergency alert workflow. All collaborators are
// injected; none are package globals.
type Service struct {
	alerts     AlertRepository
	reporters  ReporterDirectory
	responders ResponderDirectory
	notifier   Notifier
	events     EventSink
	clock      Clock
	log        zerolog.Logger
}

func NewService(alerts AlertRepository, reporters ReporterDirectory, responders ResponderDirectory,
	notifier Notifier, events EventSink, clock Clock, log zerolog.Logger) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		alerts:     alerts,
		reporters:  reporters,
		responders: responders,
		notifier:   notifier,
		events:     events,
		clock:      clock,
		log:        log,
	}
}

// CreateAlertRequest carries the fields accepted when raising an alert.
type CreateAlertRequest struct {
	AlertType   string    `json:"alert_type"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	Location    *Location `json:"location,omitempty"`
}

// CreateAlert raises a new alert for the calling citizen. Responder discovery
// and notification are best-effort: their failure never fails the create.
func (s *Service) CreateAlert(ctx context.Context, citizenID uuid.UUID, req *CreateAlertRequest) (*CreateResult, error) {
	if req.AlertType == "" {
		return nil, fmt.Errorf("alert_type is required")
	}
	if req.Severity == "" {
		return nil, fmt.Errorf("severity is required")
	}
	if !validAlertType(req.AlertType) {
		return nil, fmt.Errorf("invalid alert_type %q", req.AlertType)
	}
	if !validSeverity(req.Severity) {
		return nil, fmt.Errorf("invalid severity %q", req.Severity)
	}

	reporter, err := s.reporters.GetReporter(ctx, citizenID)
	if err != nil {
		return nil, fmt.Errorf("citizen %w", ErrNoProfile)
	}

	a := &Alert{
		CitizenID:   citizenID,
		AlertType:   req.AlertType,
		Severity:    req.Severity,
		Location:    req.Location,
		Description: req.Description,
		Status:      StatusActive,
		CreatedAt:   s.clock(),
	}
	if err := s.alerts.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create alert: %w", err)
	}

	notified := s.dispatch(ctx, a, reporter)

	if a.Severity == SeverityCritical {
		if err := s.notifier.NotifyEmergencyServices(ctx, a); err != nil {
			s.log.Warn().Err(err).Str("alert_id", a.ID.String()).Msg("108 dispatch notification failed")
		}
	}

	s.emit("alert.created", a)

	return &CreateResult{
		AlertID:           a.ID,
		Status:            a.Status,
		NotificationsSent: notified,
		ResponsePlan:      PlanFor(a.AlertType, a.Severity),
		EmergencyContacts: EmergencyContacts(),
		CreatedAt:         a.CreatedAt,
	}, nil
}

// dispatch finds candidate responders for the reporter's village and notifies
// them in parallel. Returns the names of workers notified successfully.
func (s *Service) dispatch(ctx context.Context, a *Alert, reporter *Reporter) []string {
	candidates, err := s.responders.FindByVillage(ctx, reporter.Village, maxCandidates)
	if err != nil {
		s.log.Warn().Err(err).
			Str("alert_id", a.ID.String()).
			Str("village", reporter.Village).
			Msg("responder discovery failed")
		return []string{}
	}
	if len(candidates) == 0 {
		s.log.Info().
			Str("alert_id", a.ID.String()).
			Str("village", reporter.Village).
			Msg("no responders found for village")
		return []string{}
	}

	var (
		mu       sync.Mutex
		notified []string
		wg       sync.WaitGroup
	)
	for _, cand := range candidates {
		wg.Add(1)
		go func(cand Candidate) {
			defer wg.Done()
			nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
			defer cancel()
			if err := s.notifier.NotifyResponder(nctx, cand, a); err != nil {
				s.log.Warn().Err(err).
					Str("alert_id", a.ID.String()).
					Str("responder", cand.ASHAID).
					Msg("responder notification failed")
				return
			}
			mu.Lock()
			notified = append(notified, cand.FullName)
			mu.Unlock()
		}(cand)
	}
	wg.Wait()

	return notified
}

// RespondToAlert accepts an active alert on behalf of a health worker. The
// active → responding transition is a compare-and-set: a concurrent responder
// loses with ErrConflict rather than silently overwriting.
func (s *Service) RespondToAlert(ctx context.Context, responderID, alertID uuid.UUID, etaMinutes int) (*RespondResult, error) {
	responder, err := s.responders.GetResponder(ctx, responderID)
	if err != nil {
		return nil, fmt.Errorf("asha worker %w", ErrNoProfile)
	}
	if etaMinutes <= 0 {
		etaMinutes = 15
	}

	now := s.clock()
	ok, err := s.alerts.MarkResponding(ctx, alertID, responderID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, err := s.alerts.GetByID(ctx, alertID); err != nil {
			return nil, ErrNotFound
		}
		return nil, ErrConflict
	}

	a, err := s.alerts.GetByID(ctx, alertID)
	if err != nil {
		return nil, fmt.Errorf("reload alert: %w", err)
	}
	s.emit("alert.responding", a)

	contact := responder.Phone
	if contact == "" {
		contact = "Contact through ASHA supervisor"
	}
	return &RespondResult{
		AlertID:   alertID,
		Responder: *responder,
		CitizenNotification: CitizenNotification{
			Message:          fmt.Sprintf("ASHA worker %s is responding to your emergency", responder.FullName),
			EstimatedArrival: fmt.Sprintf("%d minutes", etaMinutes),
			Contact:          contact,
		},
	}, nil
}

// ResolveAlert closes an alert. Only the assigned responder or the reporting
// citizen may resolve, and resolution is allowed from both active and
// responding.
func (s *Service) ResolveAlert(ctx context.Context, actorID, alertID uuid.UUID, notes, outcome string) (*Resolution, error) {
	a, err := s.alerts.GetByID(ctx, alertID)
	if err != nil {
		return nil, ErrNotFound
	}

	var role, name string
	switch {
	case a.CitizenID == actorID:
		role = "citizen"
		if reporter, err := s.reporters.GetReporter(ctx, actorID); err == nil {
			name = reporter.FullName
		}
	case a.ResponderID != nil && *a.ResponderID == actorID:
		role = "asha"
		if responder, err := s.responders.GetResponder(ctx, actorID); err == nil {
			name = responder.FullName
		}
	default:
		return nil, ErrUnauthorized
	}

	if outcome == "" {
		outcome = "resolved"
	}

	now := s.clock()
	ok, err := s.alerts.MarkResolved(ctx, alertID, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrConflict
	}

	if resolved, err := s.alerts.GetByID(ctx, alertID); err == nil {
		s.emit("alert.resolved", resolved)
	}

	return &Resolution{
		ResolvedBy:      role,
		ResolverName:    name,
		ResolutionNotes: notes,
		Outcome:         outcome,
		ResolutionTime:  now,
	}, nil
}

// ListMyAlerts returns the calling citizen's alerts, newest first.
func (s *Service) ListMyAlerts(ctx context.Context, citizenID uuid.UUID, limit, offset int) ([]*Alert, int, error) {
	return s.alerts.ListByCitizen(ctx, citizenID, limit, offset)
}

// ListWorkerAlerts returns open alerts in the worker's assigned villages.
func (s *Service) ListWorkerAlerts(ctx context.Context, villages []string, limit, offset int) ([]*Alert, int, error) {
	if len(villages) == 0 {
		return []*Alert{}, 0, nil
	}
	return s.alerts.ListOpenByVillages(ctx, villages, limit, offset)
}

func (s *Service) emit(event string, a *Alert) {
	if s.events != nil {
		s.events.AlertEvent(event, a)
	}
}
