package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	vehicleDomain "dealerdesk-backend/internal/domain/vehicle"
	"dealerdesk-backend/internal/usecase/vehicle"
)

type VehicleHandler struct{ uc *vehicle.Usecase }

func NewVehicleHandler(uc *vehicle.Usecase) *VehicleHandler { return &VehicleHandler{uc: uc} }

type createVehicleReq struct {
	Brand           string  `json:"brand"            validate:"required"`
	Model           string  `json:"model"            validate:"required"`
	Version         string  `json:"version"`
	ManufactureYear int     `json:"manufacture_year" validate:"omitempty,gte=1950"`
	ModelYear       int     `json:"model_year"       validate:"omitempty,gte=1950"`
	Price           float64 `json:"price"            validate:"required,gte=0,dec2"`
	Mileage         int     `json:"mileage"          validate:"gte=0"`
	FuelType        string  `json:"fuel_type"`
	Transmission    string  `json:"transmission"`
	Color           string  `json:"color"`
	Plate           string  `json:"plate"`
	Chassis         string  `json:"chassis"`
	Renavam         string  `json:"renavam"`
}

func (h *VehicleHandler) Create(c echo.Context) error {
	var req createVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), vehicle.CreateVehicleInput(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *VehicleHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("vehicle_id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *VehicleHandler) List(c echo.Context) error {
	f := vehicleDomain.Filter{
		Status: vehicleDomain.Status(c.QueryParam("status")),
		Brand:  c.QueryParam("brand"),
	}
	out, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

type updateVehicleReq struct {
	Price   *float64 `json:"price"   validate:"omitempty,gte=0,dec2"`
	Mileage *int     `json:"mileage" validate:"omitempty,gte=0"`
	Color   *string  `json:"color"`
	Plate   *string  `json:"plate"`
}

func (h *VehicleHandler) Update(c echo.Context) error {
	var req updateVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), c.Param("vehicle_id"), vehicle.UpdateVehicleInput(req))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type setPhotosReq struct {
	URLs []string `json:"urls" validate:"required,max=5,dive,url"`
}

func (h *VehicleHandler) SetPhotos(c echo.Context) error {
	var req setPhotosReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.SetPhotos(c.Request().Context(), c.Param("vehicle_id"), req.URLs)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
