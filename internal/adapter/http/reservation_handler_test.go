package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	reservationDomain "dealerdesk-backend/internal/domain/reservation"
	"dealerdesk-backend/internal/domain/uow"
	"dealerdesk-backend/internal/domain/vehicle"
	"dealerdesk-backend/internal/testutil/reservationmock"
	"dealerdesk-backend/internal/testutil/uowmock"
	"dealerdesk-backend/internal/testutil/vehiclemock"
	"dealerdesk-backend/internal/usecase/reservation"
)

func TestCreateReservation_OK(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	v := &vehicle.Vehicle{VehicleID: strings.Repeat("a", 32), Status: vehicle.StatusAvailable}
	holds := &reservationmock.Repo{}
	vehicles := &vehiclemock.Repo{}
	uc := reservation.NewUsecase(holds, uowmock.Passthrough(uow.Repos{Vehicles: vehicles, Reservations: holds}, v))
	h := NewReservationHandler(uc)

	body := `{"vehicle_id":"` + v.VehicleID + `","client_id":"` + strings.Repeat("c", 32) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-Actor-Id", "seller-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	var out struct {
		ReservationID string `json:"reservation_id"`
		Number        string `json:"number"`
		SellerID      string `json:"seller_id"`
		Status        string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.ReservationID) != 32 || !strings.HasPrefix(out.Number, "RES-") {
		t.Fatalf("out: %+v", out)
	}
	if out.SellerID != "seller-1" || out.Status != "active" {
		t.Fatalf("out: %+v", out)
	}
}

func TestCreateReservation_VehicleTaken_Maps409(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	v := &vehicle.Vehicle{VehicleID: strings.Repeat("a", 32), Status: vehicle.StatusReserved}
	holds := &reservationmock.Repo{}
	uc := reservation.NewUsecase(holds, uowmock.Passthrough(uow.Repos{Vehicles: &vehiclemock.Repo{}, Reservations: holds}, v))
	h := NewReservationHandler(uc)

	body := `{"vehicle_id":"` + v.VehicleID + `","client_id":"` + strings.Repeat("c", 32) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateReservation_BadIDs_Map422(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	uc := reservation.NewUsecase(&reservationmock.Repo{}, uowmock.New())
	h := NewReservationHandler(uc)

	body := `{"vehicle_id":"nope","client_id":"also-nope"}`
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCancelReservation_TerminalState_Maps409(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	res := &reservationDomain.Reservation{
		ReservationID: strings.Repeat("r", 32),
		VehicleID:     strings.Repeat("a", 32),
		Status:        reservationDomain.StatusConverted,
	}
	v := &vehicle.Vehicle{VehicleID: res.VehicleID, Status: vehicle.StatusSold}
	holds := &reservationmock.Repo{
		GetByReservationIDFn: func(ctx context.Context, id string) (*reservationDomain.Reservation, error) {
			return res, nil
		},
	}
	uc := reservation.NewUsecase(holds, uowmock.Passthrough(uow.Repos{Vehicles: &vehiclemock.Repo{}, Reservations: holds}, v))
	h := NewReservationHandler(uc)

	req := httptest.NewRequest(http.MethodPost, "/reservations/"+res.ReservationID+"/cancel", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("reservation_id")
	c.SetParamValues(res.ReservationID)

	if err := h.Cancel(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

// An unknown vehicle id on a well-formed request is a not-found, never a
// generic 400 carrying the store's error text.
func TestCreateReservation_UnknownVehicle_Maps404(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	holds := &reservationmock.Repo{}
	uc := reservation.NewUsecase(holds, uowmock.Passthrough(uow.Repos{Vehicles: &vehiclemock.Repo{}, Reservations: holds}, nil))
	h := NewReservationHandler(uc)

	body := `{"vehicle_id":"` + strings.Repeat("f", 32) + `","client_id":"` + strings.Repeat("c", 32) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "record not found") {
		t.Fatalf("store error text leaked: %s", rec.Body.String())
	}
}
