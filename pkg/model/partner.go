package model

import "time"

// Partner is a referral partner paid a bonus for attributed sales.
type Partner struct {
	ID            int           `json:"id"`
	Name          string        `json:"name"`
	Username      string        `json:"username"`
	Requisites    string        `json:"requisites"`
	RequisiteType RequisiteType `json:"requisiteType"`
	BonusStatus   PaymentStatus `json:"bonusStatus"`
	Code          string        `json:"code"`
	CreatedAt     time.Time     `json:"createdAt"`
	Users         []User        `json:"users,omitempty"`
}

// CreatePartner is the body of POST /partners.
type CreatePartner struct {
	Name          string        `json:"name" validate:"required,max=255"`
	Username      string        `json:"username" validate:"required,max=64"`
	Requisites    string        `json:"requisites" validate:"required"`
	RequisiteType RequisiteType `json:"requisiteType" validate:"required,oneof=Card Yoomoney"`
	BonusStatus   PaymentStatus `json:"bonusStatus" validate:"required,oneof=PENDING COMPLETED"`
	Code          string        `json:"code" validate:"required,alphanum,max=32"`
}

// UpdatePartner is the body of PATCH /partners/{id}.
type UpdatePartner struct {
	Name          *string        `json:"name,omitempty" validate:"omitempty,max=255"`
	Username      *string        `json:"username,omitempty" validate:"omitempty,max=64"`
	Requisites    *string        `json:"requisites,omitempty"`
	RequisiteType *RequisiteType `json:"requisiteType,omitempty" validate:"omitempty,oneof=Card Yoomoney"`
	BonusStatus   *PaymentStatus `json:"bonusStatus,omitempty" validate:"omitempty,oneof=PENDING COMPLETED"`
	Code          *string        `json:"code,omitempty" validate:"omitempty,alphanum,max=32"`
}

// PartnerList is the partner collection. The endpoint reports only a total.
type PartnerList struct {
	Partners []Partner `json:"partners"`
	Total    int       `json:"total"`
}
