package facility

import (
	"errors"
	"net/http"
	"strconv"

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

func (h *Handler) RegisterRoutes(public, api *echo.Group) {
	public.GET("/facilities/types", h.FacilityTypes)

	api.GET("/facilities/search", h.Search)
	api.GET("/facilities/nearby", h.Nearby)
	api.GET("/facilities/:id", h.Detail)
	api.POST("/facilities", h.Add)
	api.POST("/facilities/directions", h.Directions)
	api.POST("/facilities/emergency-nearby", h.EmergencyNearby)
}

func (h *Handler) Search(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	params := SearchParams{
		Type:     c.QueryParam("type"),
		District: c.QueryParam("district"),
		BSKYOnly: c.QueryParam("bsky_only") == "true",
	}
	if lat, latErr := strconv.ParseFloat(c.QueryParam("latitude"), 64); latErr == nil {
		if lng, lngErr := strconv.ParseFloat(c.QueryParam("longitude"), 64); lngErr == nil {
			params.Origin = &Coordinates{Lat: lat, Lng: lng}
		}
	}
	facilities, err := h.svc.Search(c.Request().Context(), uid, params)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "facility search failed")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"facilities":  facilities,
		"total_count": len(facilities),
		"search_params": map[string]interface{}{
			"type":      params.Type,
			"district":  params.District,
			"bsky_only": params.BSKYOnly,
		},
	})
}

func (h *Handler) Nearby(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	facilities, loc, err := h.svc.Nearby(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch nearby facilities")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"facilities":    facilities,
		"user_location": loc,
		"total_count":   len(facilities),
	})
}

func (h *Handler) Detail(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid facility id")
	}
	detail, err := h.svc.Detail(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "facility not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"facility": detail})
}

func (h *Handler) FacilityTypes(c echo.Context) error {
	types := Types()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"facility_types": types,
		"total_count":    len(types),
	})
}

func (h *Handler) Add(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var input AddInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	f, err := h.svc.Add(c.Request().Context(), uid, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalid):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrASHAOnly):
			return echo.NewHTTPError(http.StatusForbidden, "only ASHA workers can add facilities")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add facility")
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":     "Healthcare facility added successfully",
		"facility_id": f.ID,
		"status":      f.VerificationStatus,
	})
}

func (h *Handler) Directions(c echo.Context) error {
	var req struct {
		FacilityID   string       `json:"facility_id"`
		UserLocation *Coordinates `json:"user_location,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	id, err := uuid.Parse(req.FacilityID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "facility_id is required")
	}
	directions, err := h.svc.Directions(c.Request().Context(), id, req.UserLocation)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "facility not found")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"directions": directions})
}

func (h *Handler) EmergencyNearby(c echo.Context) error {
	var req struct {
		EmergencyType string       `json:"emergency_type"`
		UserLocation  *Coordinates `json:"user_location,omitempty"`
		MaxDistanceKm float64      `json:"max_distance_km"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.EmergencyType == "" {
		req.EmergencyType = "general"
	}
	facilities, contacts, err := h.svc.EmergencyNearby(c.Request().Context(), req.UserLocation, req.MaxDistanceKm)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch emergency facilities")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"emergency_facilities": facilities,
		"emergency_type":       req.EmergencyType,
		"total_count":          len(facilities),
		"emergency_contacts":   contacts,
	})
}

func callerID(c echo.Context) (uuid.UUID, error) {
	uid, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return uid, nil
}
