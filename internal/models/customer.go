package models

import (
	"time"

	"github.com/google/uuid"
)

type Membership string

const (
	MembershipBronze Membership = "B"
	MembershipSilver Membership = "S"
	MembershipGold   Membership = "G"
)

type Customer struct {
	ID         int64      `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Membership Membership `json:"membership"`
}

type UpdateCustomerRequest struct {
	Phone      *string     `json:"phone,omitempty" validate:"omitempty,max=22"`
	BirthDate  *string     `json:"birth_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Membership *Membership `json:"membership,omitempty" validate:"omitempty,oneof=B S G"`
}
