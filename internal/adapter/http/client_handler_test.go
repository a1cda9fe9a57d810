package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	clientDomain "dealerdesk-backend/internal/domain/client"
	"dealerdesk-backend/internal/testutil/clientmock"
	clientuc "dealerdesk-backend/internal/usecase/client"
)

func newClientEnv(repo *clientmock.Repo) (*echo.Echo, *ClientHandler) {
	e := echo.New()
	e.Validator = NewValidator()
	return e, NewClientHandler(clientuc.NewUsecase(repo))
}

func TestCreateClient_OK(t *testing.T) {
	var created *clientDomain.Client
	e, h := newClientEnv(&clientmock.Repo{
		CreateFn: func(ctx context.Context, c *clientDomain.Client) error {
			created = c
			return nil
		},
	})

	c, rec := postJSON(e, "/clients",
		`{"name":"Maria Souza","document":"12345678901","email":"maria@example.com"}`, nil)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if created == nil {
		t.Fatalf("client not persisted")
	}

	var out struct {
		ClientID string `json:"client_id"`
		Name     string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.ClientID) != 32 || out.Name != "Maria Souza" {
		t.Fatalf("out: %+v", out)
	}
}

func TestCreateClient_MissingDocument_Maps422(t *testing.T) {
	e, h := newClientEnv(&clientmock.Repo{})

	c, rec := postJSON(e, "/clients", `{"name":"Maria Souza"}`, nil)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestGetClient_Missing_Maps404(t *testing.T) {
	e, h := newClientEnv(&clientmock.Repo{
		GetByClientIDFn: func(ctx context.Context, clientID string) (*clientDomain.Client, error) {
			return nil, gorm.ErrRecordNotFound
		},
	})

	req, rec := postJSON(e, "/clients/deadbeefdeadbeefdeadbeefdeadbeef", ``, nil)
	req.SetParamNames("client_id")
	req.SetParamValues("deadbeefdeadbeefdeadbeefdeadbeef")
	if err := h.Get(req); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}
