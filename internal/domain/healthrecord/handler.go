package healthrecord

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/gramcare/gramcare/internal/platform/auth"
	"github.com/gramcare/gramcare/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, api *echo.Group) {
	api.POST("/health-records", h.Create)
	api.GET("/health-records", h.List)
	api.GET("/health-records/summary", h.Summary)
	api.POST("/health-records/share", h.Share)
	api.GET("/health-records/:id", h.Get)
	api.PUT("/health-records/:id", h.Update)
	api.DELETE("/health-records/:id", h.Delete)

	// Shared records are read with the token alone.
	public.GET("/health-records/shared/:token", h.Shared)
}

func (h *Handler) Create(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req CreateRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.CreateRecord(c.Request().Context(), uid, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *Handler) Get(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	rec, err := h.svc.GetRecord(c.Request().Context(), uid, recordID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "health record not found")
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) Update(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	var req CreateRecordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rec, err := h.svc.UpdateRecord(c.Request().Context(), uid, recordID, &req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "health record not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *Handler) Delete(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid record id")
	}
	if err := h.svc.DeleteRecord(c.Request().Context(), uid, recordID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "health record not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) List(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	filter := ListFilter{RecordType: c.QueryParam("type")}
	if v := c.QueryParam("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid start_date")
		}
		filter.From = &t
	}
	if v := c.QueryParam("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid end_date")
		}
		filter.To = &t
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListRecords(c.Request().Context(), uid, filter, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Summary(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	summary, err := h.svc.GetSummary(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) Share(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req struct {
		RecordIDs           []uuid.UUID `json:"record_ids"`
		AccessDurationHours int         `json:"access_duration_hours"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	grant, err := h.svc.ShareRecords(c.Request().Context(), uid, req.RecordIDs,
		time.Duration(req.AccessDurationHours)*time.Hour)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "health record not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"sharing_info": grant,
		"access_url":   "/api/v1/health-records/shared/" + grant.Token,
	})
}

func (h *Handler) Shared(c echo.Context) error {
	records, err := h.svc.ResolveShare(c.Request().Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, ErrShareExpired) {
			return echo.NewHTTPError(http.StatusGone, "share link expired")
		}
		return echo.NewHTTPError(http.StatusNotFound, "share link not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"records":     records,
		"total_count": len(records),
	})
}

func callerID(c echo.Context) (uuid.UUID, error) {
	uid, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return uid, nil
}
