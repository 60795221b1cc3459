package client

import (
	"context"
	"fmt"
	"net/http"

	"apparel-backoffice/internal/gateway"
	"apparel-backoffice/internal/model"
)

type UserFilter struct {
	Name        string
	PhoneNumber string
	Email       string
	RoleID      int64
	Active      *bool
	Page        int
	Limit       int
}

// AccountClient wraps the admin user and role endpoints. Login and
// register run anonymously; everything else rides the bearer credential.
type AccountClient interface {
	Login(ctx context.Context, phoneNumber, password string) (*model.LoginData, error)
	Register(ctx context.Context, payload any) (*model.Envelope, error)
	UserDetail(ctx context.Context) (*model.Envelope, error)
	ListUsers(ctx context.Context, filter UserFilter) (*model.Envelope, error)
	UpdateUser(ctx context.Context, id int64, payload any) (*model.Envelope, error)
	ChangePassword(ctx context.Context, payload any) (*model.Envelope, error)
	ListRoles(ctx context.Context) (*model.Envelope, error)
	AssignRoles(ctx context.Context, userID int64, roleIDs []int64) (*model.Envelope, error)
}

type accountClientImpl struct {
	gateway *gateway.Gateway
}

func NewAccountClient(g *gateway.Gateway) AccountClient {
	return &accountClientImpl{
		gateway: g,
	}
}

func (c *accountClientImpl) Login(ctx context.Context, phoneNumber, password string) (*model.LoginData, error) {
	env, err := callEnvelope(ctx, c.gateway, "/users/admin/login", &gateway.Options{
		Method:    http.MethodPost,
		Anonymous: true,
		JSONBody: map[string]string{
			"phone_number": phoneNumber,
			"password":     password,
		},
	})
	if err != nil {
		return nil, err
	}
	if !env.OK() {
		return nil, fmt.Errorf("login rejected: %s", env.Message)
	}

	var data model.LoginData
	if err := env.DecodeData(&data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *accountClientImpl) Register(ctx context.Context, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/users/admin/register", &gateway.Options{
		Method:   http.MethodPost,
		JSONBody: payload,
	})
}

func (c *accountClientImpl) UserDetail(ctx context.Context) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/users/admin/details", &gateway.Options{
		Method: http.MethodPost,
	})
}

func (c *accountClientImpl) ListUsers(ctx context.Context, filter UserFilter) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/users/admin", &gateway.Options{
		Params: map[string]any{
			"name":         filter.Name,
			"phone_number": filter.PhoneNumber,
			"email":        filter.Email,
			"role_id":      filter.RoleID,
			"active":       filter.Active,
			"page":         filter.Page,
			"limit":        filter.Limit,
		},
	})
}

func (c *accountClientImpl) UpdateUser(ctx context.Context, id int64, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/users/admin/%d", id), &gateway.Options{
		Method:   http.MethodPut,
		JSONBody: payload,
	})
}

func (c *accountClientImpl) ChangePassword(ctx context.Context, payload any) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/users/admin/change-password", &gateway.Options{
		Method:   http.MethodPut,
		JSONBody: payload,
	})
}

func (c *accountClientImpl) ListRoles(ctx context.Context) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, "/roles", nil)
}

func (c *accountClientImpl) AssignRoles(ctx context.Context, userID int64, roleIDs []int64) (*model.Envelope, error) {
	return callEnvelope(ctx, c.gateway, fmt.Sprintf("/user-roles/%d", userID), &gateway.Options{
		Method:   http.MethodPut,
		JSONBody: map[string]any{"role_ids": roleIDs},
	})
}
