package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerProfile is the optional account linked to an order. Guest checkouts
// produce orders with no profile at all.
type CustomerProfile struct {
	Id        string `json:"id" gorm:"primaryKey"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" gorm:"index"`
}

func (profile *CustomerProfile) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	if profile.Id == "" {
		profile.Id = uuid.NewString()
	}
	return
}
