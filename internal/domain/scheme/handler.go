package scheme

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

func (h *Handler) RegisterRoutes(public, api *echo.Group) {
	public.GET("/schemes/info", h.SchemesInfo)

	api.POST("/schemes/check-eligibility", h.CheckEligibility)
	api.GET("/schemes/bsky/hospitals", h.Hospitals)
	api.GET("/schemes/vaccination-centers", h.VaccinationCenters)
	api.POST("/schemes/abha/create", h.CreateABHA)
	api.POST("/schemes/apply", h.Apply)
	api.GET("/schemes/applications", h.Applications)
}

func (h *Handler) SchemesInfo(c echo.Context) error {
	catalog := Catalog()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"schemes":       catalog,
		"total_schemes": len(catalog),
	})
}

func (h *Handler) CheckEligibility(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req struct {
		SchemeName string `json:"scheme_name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	check, err := h.svc.CheckEligibility(c.Request().Context(), uid, req.SchemeName)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoProfile):
			return echo.NewHTTPError(http.StatusNotFound, "user profile not found")
		case errors.Is(err, ErrUnsupportedScheme):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadGateway, "eligibility check failed")
	}
	return c.JSON(http.StatusOK, check)
}

func (h *Handler) Hospitals(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	hospitals, district, err := h.svc.EmpanelledHospitals(c.Request().Context(), uid, c.QueryParam("district"))
	if err != nil {
		if errors.Is(err, ErrNoDistrict) {
			return echo.NewHTTPError(http.StatusBadRequest, "district information required")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"district":    district,
		"hospitals":   hospitals,
		"total_count": len(hospitals),
	})
}

func (h *Handler) VaccinationCenters(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	centers, district, err := h.svc.VaccinationCenters(c.Request().Context(), uid,
		c.QueryParam("district"), c.QueryParam("date"))
	if err != nil {
		if errors.Is(err, ErrNoDistrict) {
			return echo.NewHTTPError(http.StatusBadRequest, "district information required")
		}
		return echo.NewHTTPError(http.StatusBadGateway, "failed to fetch vaccination centers")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"district":    district,
		"centers":     centers,
		"total_count": len(centers),
	})
}

func (h *Handler) CreateABHA(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	record, created, err := h.svc.CreateABHA(c.Request().Context(), uid)
	if err != nil {
		if errors.Is(err, ErrNoProfile) {
			return echo.NewHTTPError(http.StatusNotFound, "user profile not found")
		}
		return echo.NewHTTPError(http.StatusBadGateway, "abha creation failed")
	}
	status := http.StatusOK
	message := "ABHA ID already exists"
	if created {
		status = http.StatusCreated
		message = "ABHA ID created successfully"
	}
	return c.JSON(status, map[string]interface{}{
		"message":   message,
		"abha_data": record,
	})
}

func (h *Handler) Apply(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req struct {
		SchemeName      string                 `json:"scheme_name"`
		ApplicationData map[string]interface{} `json:"application_data"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	app, err := h.svc.Apply(c.Request().Context(), uid, req.SchemeName, req.ApplicationData)
	if err != nil {
		if errors.Is(err, ErrUnsupportedScheme) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown scheme")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"application_id": app.ID,
		"scheme_name":    app.SchemeName,
		"status":         app.ApplicationStatus,
	})
}

func (h *Handler) Applications(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	apps, err := h.svc.ListApplications(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"applications": apps,
		"total_count":  len(apps),
	})
}

func callerID(c echo.Context) (uuid.UUID, error) {
	uid, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return uid, nil
}
