package insurance

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
	// Product browsing and quoting need no account.
	public.GET("/insurance/products", h.Products)
	public.POST("/insurance/premium-calculator", h.PremiumCalculator)

	api.POST("/insurance/enroll", h.Enroll)
	api.GET("/insurance/policies", h.Policies)
	api.POST("/insurance/claims", h.FileClaim)
	api.GET("/insurance/claims/:policyId", h.Claims)
	api.POST("/insurance/renew/:id", h.Renew)
}

func (h *Handler) Products(c echo.Context) error {
	products := Products()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products":    products,
		"total_count": len(products),
	})
}

func (h *Handler) PremiumCalculator(c echo.Context) error {
	var req EnrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	quote, err := h.svc.Quote(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, quote)
}

func (h *Handler) Enroll(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req EnrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	policy, err := h.svc.Enroll(c.Request().Context(), uid, &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"policy": policy,
		"next_steps": []string{
			"Complete payment process",
			"Download policy document",
			"Share policy details with family",
		},
	})
}

func (h *Handler) Policies(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	policies, err := h.svc.ListPolicies(c.Request().Context(), uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	active := 0
	for _, p := range policies {
		if p.Status == StatusActive {
			active++
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"policies":        policies,
		"total_count":     len(policies),
		"active_policies": active,
	})
}

func (h *Handler) FileClaim(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	var req ClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	claim, err := h.svc.FileClaim(c.Request().Context(), uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "policy not found or inactive")
		case errors.Is(err, ErrExceedsCoverage):
			return echo.NewHTTPError(http.StatusBadRequest, "claim amount exceeds remaining coverage")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"claim": claim,
		"next_steps": []string{
			"Upload required documents",
			"Track claim status",
			"Contact support if needed",
		},
	})
}

func (h *Handler) Claims(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	policyID, err := uuid.Parse(c.Param("policyId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid policy id")
	}
	claims, err := h.svc.ListClaims(c.Request().Context(), uid, policyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "policy not found")
	}
	pending := 0
	for _, cl := range claims {
		if cl.Status == ClaimSubmitted || cl.Status == ClaimUnderReview {
			pending++
		}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"policy_id":      policyID,
		"claims":         claims,
		"total_claims":   len(claims),
		"pending_claims": pending,
	})
}

func (h *Handler) Renew(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	policyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid policy id")
	}
	var req struct {
		RenewalPeriodMonths int `json:"renewal_period_months"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	policy, err := h.svc.Renew(c.Request().Context(), uid, policyID, req.RenewalPeriodMonths)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "policy not found")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"renewed_policy":   policy,
		"loyalty_discount": 5.0,
	})
}

func callerID(c echo.Context) (uuid.UUID, error) {
	uid, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return uid, nil
}
