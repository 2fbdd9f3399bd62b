package handler

import (
	"time"

	"github.com/docushop/storefront/internal/core/domain"
)

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"     validate:"omitempty,email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

func (r registerRequest) toDomain() domain.Registration {
	return domain.Registration{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}
}

type registerResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type credentialsRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type identityResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func toIdentityResponse(id *domain.Identity) identityResponse {
	return identityResponse{
		ID:       id.ID,
		Email:    id.Email,
		Username: id.Username,
		Role:     string(id.Role),
	}
}

type accountStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// accountResponse never carries the password hash.
type accountResponse struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Phone     string           `json:"phone"`
	Role      string           `json:"role"`
	Status    string           `json:"status"`
	Billing   *billingResponse `json:"billing,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func toAccountResponse(a *domain.Account) accountResponse {
	resp := accountResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Phone:     a.Phone,
		Role:      string(a.Role),
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.Billing != nil {
		b := toBillingResponse(*a.Billing)
		resp.Billing = &b
	}
	return resp
}

type listAccountsResponse struct {
	Data       []accountResponse  `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
