package notification

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// NotificationHandler exposes the delivery ledger over HTTP. These endpoints
// sit behind the authenticated API group; operators use them to audit and
// retry deliveries.
type NotificationHandler struct {
	manager *NotificationManager
}

func NewNotificationHandler(mgr *NotificationManager) *NotificationHandler {
	return &NotificationHandler{manager: mgr}
}

func (h *NotificationHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/notifications/send", h.send)
	g.POST("/notifications/send-template", h.sendTemplate)
	g.GET("/notifications/stats", h.stats)
	g.GET("/notifications/:id", h.get)
	g.GET("/notifications", h.list)
	g.POST("/notifications/:id/retry", h.retry)
}

type sendRequest struct {
	Type      NotificationType `json:"type"`
	Recipient string           `json:"recipient"`
	Subject   string           `json:"subject"`
	Body      string           `json:"body"`
}

func (h *NotificationHandler) send(c echo.Context) error {
	var req sendRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Recipient == "" || req.Body == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "recipient and body are required"})
	}

	n := &Notification{
		Type:      req.Type,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Body:      req.Body,
	}
	// A failed delivery still creates a ledger entry; return it so the
	// caller sees the ID and error and can retry.
	_ = h.manager.Send(c.Request().Context(), n)
	return c.JSON(http.StatusCreated, n)
}

type sendTemplateRequest struct {
	TemplateID string            `json:"template_id"`
	Recipient  string            `json:"recipient"`
	Data       map[string]string `json:"data"`
}

func (h *NotificationHandler) sendTemplate(c echo.Context) error {
	var req sendTemplateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	n, err := h.manager.SendFromTemplate(c.Request().Context(), req.TemplateID, req.Data, req.Recipient)
	if n == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *NotificationHandler) get(c echo.Context) error {
	n, err := h.manager.Get(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) list(c echo.Context) error {
	recipient := c.QueryParam("recipient")
	if recipient == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "recipient query parameter is required"})
	}
	list := h.manager.ListByRecipient(recipient, 100)
	if list == nil {
		list = []*Notification{}
	}
	return c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) retry(c echo.Context) error {
	id := c.Param("id")
	if err := h.manager.Retry(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	n, _ := h.manager.Get(id)
	return c.JSON(http.StatusOK, n)
}

func (h *NotificationHandler) stats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.manager.Stats())
}
