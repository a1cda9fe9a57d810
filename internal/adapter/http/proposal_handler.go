package http

import (
	"context"
	"encoding/base64"
	"net/http"

	"github.com/labstack/echo/v4"

	proposalDomain "dealerdesk-backend/internal/domain/proposal"
	"dealerdesk-backend/internal/usecase/proposal"
)

type ProposalHandler struct{ uc *proposal.Usecase }

func NewProposalHandler(uc *proposal.Usecase) *ProposalHandler { return &ProposalHandler{uc: uc} }

type createProposalReq struct {
	ClientID    string  `json:"client_id"    validate:"required,hex32"`
	VehicleID   string  `json:"vehicle_id"   validate:"required,hex32"`
	BankID      string  `json:"bank_id"      validate:"omitempty,hex32"`
	DealType    string  `json:"deal_type"    validate:"required,dealtype"`
	CashPrice   float64 `json:"cash_price"   validate:"gte=0,dec2"`
	DownPayment float64 `json:"down_payment" validate:"gte=0,dec2"`
	TermMonths  int     `json:"term_months"  validate:"omitempty,gte=1"`
	Notes       string  `json:"notes"`
}

func (h *ProposalHandler) Create(c echo.Context) error {
	var req createProposalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), proposal.CreateProposalInput{
		ClientID:    req.ClientID,
		VehicleID:   req.VehicleID,
		BankID:      req.BankID,
		DealType:    req.DealType,
		CashPrice:   req.CashPrice,
		DownPayment: req.DownPayment,
		TermMonths:  req.TermMonths,
		Notes:       req.Notes,
		VendorID:    actorID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type promoteProposalReq struct {
	SimulationID string `json:"simulation_id" validate:"required,hex32"`
	ClientID     string `json:"client_id"     validate:"required,hex32"`
	Notes        string `json:"notes"`
}

// CreateFromSimulation promotes a saved simulation into a proposal.
func (h *ProposalHandler) CreateFromSimulation(c echo.Context) error {
	var req promoteProposalReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.CreateFromSimulation(c.Request().Context(), proposal.PromoteInput{
		SimulationID: req.SimulationID,
		ClientID:     req.ClientID,
		Notes:        req.Notes,
		VendorID:     actorID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ProposalHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("proposal_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProposalHandler) List(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), proposal.ListFilter{
		Status:   c.QueryParam("status"),
		ClientID: c.QueryParam("client_id"),
		VendorID: c.QueryParam("vendor_id"),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProposalHandler) Send(c echo.Context) error {
	return h.applyTransition(c, h.uc.Send)
}

func (h *ProposalHandler) Approve(c echo.Context) error {
	return h.applyTransition(c, h.uc.Approve)
}

func (h *ProposalHandler) Reject(c echo.Context) error {
	return h.applyTransition(c, h.uc.Reject)
}

func (h *ProposalHandler) Cancel(c echo.Context) error {
	return h.applyTransition(c, h.uc.Cancel)
}

func (h *ProposalHandler) FinalizeSale(c echo.Context) error {
	return h.applyTransition(c, h.uc.FinalizeSale)
}

type attachSignatureReq struct {
	Party string `json:"party"     validate:"required,oneof=client vendor"`
	// Signature carries the blob base64-encoded.
	Signature string `json:"signature" validate:"required"`
}

func (h *ProposalHandler) AttachSignature(c echo.Context) error {
	var req attachSignatureReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	blob, err := base64.StdEncoding.DecodeString(req.Signature)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "signature must be base64"})
	}
	if err := h.uc.AttachSignature(c.Request().Context(), c.Param("proposal_id"), proposalDomain.SignatureParty(req.Party), blob); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProposalHandler) applyTransition(c echo.Context, fn func(ctx context.Context, proposalID string) (*proposal.ProposalDTO, error)) error {
	dto, err := fn(c.Request().Context(), c.Param("proposal_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
