package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status lifecycle. Status only ever advances; Delivered is terminal.
const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
)

type OrderStatus string

// NextStatus maps an order status to its successor.
// Anything that is not Processing or Shipped (including Delivered itself and
// unrecognized values) resolves to Delivered, the absorbing state.
func NextStatus(s OrderStatus) OrderStatus {
	switch s {
	case StatusProcessing:
		return StatusShipped
	case StatusShipped:
		return StatusDelivered
	default:
		return StatusDelivered
	}
}

// User genders and roles as stored.
const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"

	RoleAdmin    Role = "admin"
	RoleCustomer Role = "user"
)

type (
	Gender string
	Role   string
)

// ShippingInfo is the delivery address attached to an order.
type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pinCode"`
	Phone   string `json:"phone"`
}

// OrderItem is one purchased line within an order.
type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
}

// Order is a placed order. Monetary fields use exact decimal arithmetic.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	ShippingInfo    ShippingInfo    `json:"shippingInfo"`
	Items           []OrderItem     `json:"orderItems"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	ShippingCharges decimal.Decimal `json:"shippingCharges"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Product is a catalog entry.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Photos      []string        `json:"photos"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// User is a registered store user.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Gender    Gender    `json:"gender"`
	Role      Role      `json:"role"`
	DOB       time.Time `json:"dob"`
	CreatedAt time.Time `json:"createdAt"`
}

// Age returns the user's age in whole years at the given instant.
func (u User) Age(now time.Time) int {
	years := now.Year() - u.DOB.Year()
	if now.Month() < u.DOB.Month() ||
		(now.Month() == u.DOB.Month() && now.Day() < u.DOB.Day()) {
		years--
	}
	return years
}
