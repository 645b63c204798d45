package emergency

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gramcare/gramcare/internal/domain/identity"
	"github.com/gramcare/gramcare/internal/platform/auth"
	"github.com/gramcare/gramcare/pkg/pagination"
)

type Handler struct {
	svc   *Service
	ashas identity.ASHARepository
}

func NewHandler(svc *Service, ashas identity.ASHARepository) *Handler {
	return &Handler{svc: svc, ashas: ashas}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	citizenGroup := api.Group("", auth.RequireRole("citizen"))
	citizenGroup.POST("/emergency/alert", h.CreateAlert)
	citizenGroup.GET("/emergency/my-alerts", h.ListMyAlerts)

	ashaGroup := api.Group("", auth.RequireRole("asha"))
	ashaGroup.POST("/emergency/respond/:id", h.RespondToAlert)
	ashaGroup.GET("/emergency/asha-alerts", h.ListWorkerAlerts)

	// Resolution is open to both sides; the service enforces who may act.
	bothGroup := api.Group("", auth.RequireRole("citizen", "asha"))
	bothGroup.POST("/emergency/resolve/:id", h.ResolveAlert)

	api.GET("/emergency/contacts", h.Contacts)
}

func (h *Handler) CreateAlert(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.CreateAlert(c.Request().Context(), uid, &req)
	if err != nil {
		if errors.Is(err, ErrNoProfile) {
			return echo.NewHTTPError(http.StatusNotFound, "citizen profile not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) RespondToAlert(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid alert id")
	}
	var req struct {
		EstimatedArrivalMinutes int `json:"estimated_arrival_minutes"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.RespondToAlert(c.Request().Context(), uid, alertID, req.EstimatedArrivalMinutes)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoProfile):
			return echo.NewHTTPError(http.StatusNotFound, "asha worker profile not found")
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "alert not found")
		case errors.Is(err, ErrConflict):
			return echo.NewHTTPError(http.StatusConflict, "alert is no longer active")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) ResolveAlert(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid alert id")
	}
	var req struct {
		ResolutionNotes string `json:"resolution_notes"`
		Outcome         string `json:"outcome"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	resolution, err := h.svc.ResolveAlert(c.Request().Context(), uid, alertID, req.ResolutionNotes, req.Outcome)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "alert not found")
		case errors.Is(err, ErrUnauthorized):
			return echo.NewHTTPError(http.StatusForbidden, "not authorized to resolve this alert")
		case errors.Is(err, ErrConflict):
			return echo.NewHTTPError(http.StatusConflict, "alert already resolved")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resolution)
}

func (h *Handler) ListMyAlerts(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListMyAlerts(c.Request().Context(), uid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ListWorkerAlerts(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	worker, err := h.ashas.GetByUserID(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "asha worker profile not found")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListWorkerAlerts(c.Request().Context(), worker.AssignedVillages, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Contacts(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"contacts":    EmergencyContacts(),
		"total_count": len(EmergencyContacts()),
	})
}

func callerID(c echo.Context) (uuid.UUID, error) {
	uid, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return uid, nil
}
