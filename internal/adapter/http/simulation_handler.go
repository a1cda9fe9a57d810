package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dealerdesk-backend/internal/usecase/simulation"
)

type SimulationHandler struct{ uc *simulation.Usecase }

func NewSimulationHandler(uc *simulation.Usecase) *SimulationHandler {
	return &SimulationHandler{uc: uc}
}

type quoteReq struct {
	DealType     string  `json:"deal_type"     validate:"required,dealtype"`
	VehicleID    string  `json:"vehicle_id"    validate:"omitempty,hex32"`
	VehiclePrice float64 `json:"vehicle_price" validate:"gte=0,dec2"`
	CashPrice    float64 `json:"cash_price"    validate:"gte=0,dec2"`
	DownPayment  float64 `json:"down_payment"  validate:"gte=0,dec2"`
	TermMonths   int     `json:"term_months"   validate:"omitempty,gte=1"`
}

// Quote prices a deal without persisting anything.
func (h *SimulationHandler) Quote(c echo.Context) error {
	var req quoteReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Quote(c.Request().Context(), simulation.QuoteInput{
		DealType:     req.DealType,
		VehicleID:    req.VehicleID,
		VehiclePrice: req.VehiclePrice,
		CashPrice:    req.CashPrice,
		DownPayment:  req.DownPayment,
		TermMonths:   req.TermMonths,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type saveSimulationReq struct {
	quoteReq
	BankID string `json:"bank_id" validate:"omitempty,hex32"`
}

// Save persists the chosen quote for the acting vendor.
func (h *SimulationHandler) Save(c echo.Context) error {
	var req saveSimulationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Save(c.Request().Context(), simulation.SaveInput{
		QuoteInput: simulation.QuoteInput{
			DealType:     req.DealType,
			VehicleID:    req.VehicleID,
			VehiclePrice: req.VehiclePrice,
			CashPrice:    req.CashPrice,
			DownPayment:  req.DownPayment,
			TermMonths:   req.TermMonths,
			VendorID:     actorID(c),
		},
		BankID: req.BankID,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *SimulationHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("simulation_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// List returns the acting vendor's saved simulations.
func (h *SimulationHandler) List(c echo.Context) error {
	out, err := h.uc.ListByVendor(c.Request().Context(), actorID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
