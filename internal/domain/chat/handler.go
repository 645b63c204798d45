package chat

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gramcare/gramcare/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/chat/start-session", h.StartSession)
	api.POST("/chat/send-message", h.SendMessage)
	api.POST("/chat/voice-message", h.VoiceMessage)
	api.GET("/chat/sessions", h.Sessions)
	api.GET("/chat/sessions/:id", h.Session)
}

func (h *Handler) StartSession(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req struct {
		Language    string `json:"language"`
		SessionType string `json:"session_type"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	session, welcome, err := h.svc.StartSession(c.Request().Context(), uid, req.Language, req.SessionType)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to start chat session")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"session_id":      session.ID,
		"welcome_message": welcome,
		"language":        session.Language,
		"session_type":    session.SessionType,
	})
}

func (h *Handler) SendMessage(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req struct {
		SessionID   string `json:"session_id"`
		Message     string `json:"message"`
		MessageType string `json:"message_type"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "session_id and message are required")
	}
	exchange, err := h.svc.SendMessage(c.Request().Context(), uid, sessionID, req.Message, req.MessageType)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalid):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "chat session not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to send message")
	}
	return c.JSON(http.StatusOK, exchange)
}

func (h *Handler) VoiceMessage(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req struct {
		SessionID string `json:"session_id"`
		Language  string `json:"language"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "session_id is required")
	}
	exchange, transcribed, err := h.svc.SendVoiceMessage(c.Request().Context(), uid, sessionID, req.Language)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "chat session not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "voice message processing failed")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"transcribed_text": transcribed,
		"user_message":     exchange.UserMessage,
		"ai_response":      exchange.AIResponse,
		"session_context":  exchange.Context,
	})
}

func (h *Handler) Sessions(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	previews, err := h.svc.ListSessions(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get chat sessions")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessions":    previews,
		"total_count": len(previews),
	})
}

func (h *Handler) Session(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}
	session, err := h.svc.GetSession(c.Request().Context(), uid, sessionID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "chat session not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"session": session})
}

func callerID(c echo.Context) (uuid.UUID, error) {
	uid, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return uid, nil
}
