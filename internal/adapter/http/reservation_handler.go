package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dealerdesk-backend/internal/usecase/reservation"
)

type ReservationHandler struct{ uc *reservation.Usecase }

func NewReservationHandler(uc *reservation.Usecase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

type createReservationReq struct {
	VehicleID string `json:"vehicle_id" validate:"required,hex32"`
	ClientID  string `json:"client_id"  validate:"required,hex32"`
}

func (h *ReservationHandler) Create(c echo.Context) error {
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), reservation.CreateReservationInput{
		VehicleID: req.VehicleID,
		ClientID:  req.ClientID,
		SellerID:  actorID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ReservationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("reservation_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReservationHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ReservationHandler) Convert(c echo.Context) error {
	dto, err := h.uc.Convert(c.Request().Context(), c.Param("reservation_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReservationHandler) Cancel(c echo.Context) error {
	dto, err := h.uc.Cancel(c.Request().Context(), c.Param("reservation_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReservationHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("reservation_id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
