package handler

import (
	"encoding/json"
	"time"

	"github.com/docushop/storefront/internal/core/domain"
	"github.com/docushop/storefront/internal/core/ports"
)

type lineItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
	Variant   string `json:"variant"`
}

type billingRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
}

func (b billingRequest) toDomain() domain.Billing {
	return domain.Billing{
		Name:    b.Name,
		Address: b.Address,
		City:    b.City,
		Country: b.Country,
		Zip:     b.Zip,
		Phone:   b.Phone,
		Email:   b.Email,
	}
}

// placeOrderRequest leaves required-field checks on billing and line items to
// the core so the messages match across transports.
type placeOrderRequest struct {
	LineItems    []lineItemRequest `json:"lineItems"    validate:"dive"`
	Billing      billingRequest    `json:"billing"`
	ShippingTier string            `json:"shippingTier"`
}

func (r placeOrderRequest) toInput(accountID, idempotencyKey string) ports.PlaceOrderInput {
	lines := make([]domain.LineItem, 0, len(r.LineItems))
	for _, li := range r.LineItems {
		lines = append(lines, domain.LineItem{
			ProductID: li.ProductID,
			Quantity:  li.Quantity,
			Variant:   li.Variant,
		})
	}
	return ports.PlaceOrderInput{
		Lines:          lines,
		Billing:        r.Billing.toDomain(),
		ShippingTier:   r.ShippingTier,
		AccountID:      accountID,
		IdempotencyKey: idempotencyKey,
	}
}

type placeOrderResponse struct {
	OrderID string      `json:"orderId"`
	Total   json.Number `json:"total" swaggertype:"number"`
}

type billingResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Zip     string `json:"zip"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

func toBillingResponse(b domain.Billing) billingResponse {
	return billingResponse(b)
}

type orderLineResponse struct {
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	Variant     string      `json:"variant,omitempty"`
	Quantity    int         `json:"quantity"`
	UnitPrice   json.Number `json:"unitPrice" swaggertype:"number"`
	Subtotal    json.Number `json:"subtotal"  swaggertype:"number"`
}

type orderResponse struct {
	ID           string              `json:"id"`
	AccountID    string              `json:"accountId,omitempty"`
	LineItems    []orderLineResponse `json:"lineItems"`
	Billing      billingResponse     `json:"billing"`
	ShippingTier string              `json:"shippingTier"`
	Subtotal     json.Number         `json:"subtotal" swaggertype:"number"`
	Shipping     json.Number         `json:"shipping" swaggertype:"number"`
	Total        json.Number         `json:"total"    swaggertype:"number"`
	Status       string              `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Variant:     l.Variant,
			Quantity:    l.Quantity,
			UnitPrice:   money(l.UnitPrice),
			Subtotal:    money(l.Subtotal),
		})
	}
	return orderResponse{
		ID:           o.ID,
		AccountID:    o.AccountID,
		LineItems:    lines,
		Billing:      toBillingResponse(o.Billing),
		ShippingTier: string(o.ShippingTier),
		Subtotal:     money(o.Subtotal),
		Shipping:     money(o.Shipping),
		Total:        money(o.Total),
		Status:       string(o.Status),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

type listOrdersResponse struct {
	Data       []orderResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
