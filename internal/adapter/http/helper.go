package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"dealerdesk-backend/internal/domain/bank"
	"dealerdesk-backend/internal/domain/client"
	"dealerdesk-backend/internal/domain/pricing"
	"dealerdesk-backend/internal/domain/proposal"
	"dealerdesk-backend/internal/domain/reservation"
	"dealerdesk-backend/internal/domain/simulation"
	"dealerdesk-backend/internal/domain/vehicle"
)

// ---- helpers ----

// writeDomainError maps domain errors to HTTP codes; anything unrecognized
// falls back to a 400 so internals never leak as 500s from bad input.
func writeDomainError(c echo.Context, err error) error {
	return c.JSON(domainStatus(err), ErrorResponse{Error: err.Error()})
}

func domainStatus(err error) int {
	switch {
	case errors.Is(err, vehicle.ErrNotFound),
		errors.Is(err, bank.ErrNotFound),
		errors.Is(err, client.ErrNotFound),
		errors.Is(err, proposal.ErrNotFound),
		errors.Is(err, reservation.ErrNotFound),
		errors.Is(err, simulation.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, vehicle.ErrUnavailable),
		errors.Is(err, proposal.ErrInvalidTransition),
		errors.Is(err, reservation.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, proposal.ErrPricingMismatch),
		errors.Is(err, pricing.ErrNoEligibleBanks),
		errors.Is(err, vehicle.ErrTooManyPhotos):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// actorID reads the acting user from the gateway-injected header.
func actorID(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get("X-Actor-Id"))
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
