package emergency

import (
	"context"
	"fmt"

	"github.com/gramcare/gramcare/internal/platform/notification"
)

// dispatchNumber is the national ambulance dispatch line.
const dispatchNumber = "108"

// SMSNotifier delivers alert notifications over the SMS channel of the
// notification manager.
type SMSNotifier struct {
	mgr *notification.NotificationManager
}

func NewSMSNotifier(mgr *notification.NotificationManager) *SMSNotifier {
	return &SMSNotifier{mgr: mgr}
}

func (n *SMSNotifier) NotifyResponder(ctx context.Context, c Candidate, a *Alert) error {
	if c.Phone == "" {
		return fmt.Errorf("responder %s has no phone on record", c.ASHAID)
	}
	_, err := n.mgr.SendFromTemplate(ctx, "emergency-alert", map[string]string{
		"alert_type": a.AlertType,
		"severity":   a.Severity,
		"alert_id":   a.ID.String(),
	}, c.Phone)
	if err != nil {
		return fmt.Errorf("notify responder %s: %w", c.ASHAID, err)
	}
	return nil
}

func (n *SMSNotifier) NotifyEmergencyServices(ctx context.Context, a *Alert) error {
	address := ""
	if a.Location != nil {
		address = a.Location.Address
	}
	_, err := n.mgr.SendFromTemplate(ctx, "emergency-dispatch", map[string]string{
		"alert_type": a.AlertType,
		"severity":   a.Severity,
		"address":    address,
		"alert_id":   a.ID.String(),
	}, dispatchNumber)
	if err != nil {
		return fmt.Errorf("notify dispatch: %w", err)
	}
	return nil
}
