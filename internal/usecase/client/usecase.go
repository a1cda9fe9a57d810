package client

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"dealerdesk-backend/internal/domain/client"
	"dealerdesk-backend/pkg/id"
)

type Usecase struct{ repo client.Repository }

func NewUsecase(r client.Repository) *Usecase { return &Usecase{repo: r} }

type CreateClientInput struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type ClientDTO struct {
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

var errInvalidInput = errors.New("invalid client input")

func (u *Usecase) Create(ctx context.Context, in CreateClientInput) (*ClientDTO, error) {
	if in.Name == "" || in.Document == "" {
		return nil, errInvalidInput
	}

	c := &client.Client{
		ClientID: id.NewID32(),
		Name:     in.Name,
		Document: in.Document,
		Email:    in.Email,
		Phone:    in.Phone,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) Get(ctx context.Context, clientID string) (*ClientDTO, error) {
	c, err := u.repo.GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrNotFound
		}
		return nil, err
	}
	return toDTO(c), nil
}

func (u *Usecase) List(ctx context.Context) ([]ClientDTO, error) {
	cs, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ClientDTO, 0, len(cs))
	for i := range cs {
		out = append(out, *toDTO(&cs[i]))
	}
	return out, nil
}

type UpdateClientInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (u *Usecase) Update(ctx context.Context, clientID string, in UpdateClientInput) (*ClientDTO, error) {
	c, err := u.repo.GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, client.ErrNotFound
		}
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, errInvalidInput
		}
		c.Name = *in.Name
	}
	if in.Email != nil {
		c.Email = *in.Email
	}
	if in.Phone != nil {
		c.Phone = *in.Phone
	}
	if err := u.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toDTO(c), nil
}

func toDTO(c *client.Client) *ClientDTO {
	return &ClientDTO{
		ClientID:  c.ClientID,
		Name:      c.Name,
		Document:  c.Document,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}
