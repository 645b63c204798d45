package triage

import (
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
	api.POST("/ai/analyze-symptoms", h.AnalyzeSymptoms)
	api.POST("/ai/device-reading", h.DeviceReading)
	api.POST("/ai/voice-analysis", h.VoiceAnalysis)
}

func (h *Handler) AnalyzeSymptoms(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req AnalyzeSymptomsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.AnalyzeSymptoms(c.Request().Context(), uid, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) DeviceReading(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var reading DeviceReading
	if err := c.Bind(&reading); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.ProcessDeviceReading(c.Request().Context(), uid, &reading)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) VoiceAnalysis(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req struct {
		Language string `json:"language"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Language == "" {
		req.Language = "hi"
	}
	result, err := h.svc.AnalyzeVoice(c.Request().Context(), uid, req.Language)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func callerID(c echo.Context) (uuid.UUID, error) {
	uid, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return uid, nil
}
