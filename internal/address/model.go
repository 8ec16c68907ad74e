package address

import (
	"time"

	"github.com/google/uuid"
)

type Address struct {
	ID     uuid.UUID `json:"id"`
	UserID uint      `json:"userId"`

	FullName string  `json:"fullName"`
	Address1 string  `json:"address1"`
	Address2 *string `json:"address2,omitempty"`
	City     string  `json:"city"`
	State    string  `json:"state"`
	ZipCode  string  `json:"zipCode"`
	Country  string  `json:"country"`

	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateAddressInput struct {
	FullName     string  `json:"fullName" binding:"required"`
	Address1     string  `json:"address1" binding:"required"`
	Address2     *string `json:"address2"`
	City         string  `json:"city" binding:"required"`
	State        string  `json:"state" binding:"required"`
	ZipCode      string  `json:"zipCode" binding:"required"`
	Country      string  `json:"country" binding:"required"`
	SetAsDefault bool    `json:"setAsDefault"`
}
