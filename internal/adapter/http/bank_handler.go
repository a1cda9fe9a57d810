package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dealerdesk-backend/internal/usecase/bank"
)

type BankHandler struct{ uc *bank.Usecase }

func NewBankHandler(uc *bank.Usecase) *BankHandler { return &BankHandler{uc: uc} }

type rateTableReq struct {
	M12 float64 `json:"12" validate:"gte=0"`
	M24 float64 `json:"24" validate:"gte=0"`
	M36 float64 `json:"36" validate:"gte=0"`
	M48 float64 `json:"48" validate:"gte=0"`
	M60 float64 `json:"60" validate:"gte=0"`
}

type createBankReq struct {
	Name              string        `json:"name"               validate:"required"`
	CommissionPercent float64       `json:"commission_percent" validate:"gte=0,dec2"`
	DirectFinancing   bool          `json:"direct_financing"`
	RateTable         *rateTableReq `json:"rate_table"`
}

func (h *BankHandler) Create(c echo.Context) error {
	var req createBankReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := bank.CreateBankInput{
		Name:              req.Name,
		CommissionPercent: req.CommissionPercent,
		DirectFinancing:   req.DirectFinancing,
	}
	if req.RateTable != nil {
		table := bank.RateTableInput(*req.RateTable)
		in.RateTable = &table
	}
	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BankHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("bank_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BankHandler) List(c echo.Context) error {
	onlyActive := c.QueryParam("active") == "true"
	out, err := h.uc.List(c.Request().Context(), onlyActive)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateBankReq struct {
	Name              *string       `json:"name"`
	Active            *bool         `json:"active"`
	CommissionPercent *float64      `json:"commission_percent" validate:"omitempty,gte=0,dec2"`
	RateTable         *rateTableReq `json:"rate_table"`
}

func (h *BankHandler) Update(c echo.Context) error {
	var req updateBankReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := bank.UpdateBankInput{
		Name:              req.Name,
		Active:            req.Active,
		CommissionPercent: req.CommissionPercent,
	}
	if req.RateTable != nil {
		table := bank.RateTableInput(*req.RateTable)
		in.RateTable = &table
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("bank_id"), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
