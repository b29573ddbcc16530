package models

import "time"

// GuestFamily is a household invited together and sharing one access code
type GuestFamily struct {
	ID         int64     `db:"id" json:"id"`
	FamilyName string    `db:"family_name" json:"family_name"`
	AccessCode string    `db:"access_code" json:"access_code"`
	Phone      *string   `db:"phone" json:"phone"`
	Notes      *string   `db:"notes" json:"notes"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// FamilyMember is one guest belonging to a family
type FamilyMember struct {
	ID           int64     `db:"id" json:"id"`
	FamilyID     int64     `db:"family_id" json:"family_id"`
	Name         string    `db:"name" json:"name"`
	Relationship *string   `db:"relationship" json:"relationship"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// FamilyWithMembers combines a family with its members in display order
type FamilyWithMembers struct {
	Family  GuestFamily    `json:"family"`
	Members []FamilyMember `json:"members"`
}

// FamilyInput is the admin-supplied content of a family, already validated
type FamilyInput struct {
	FamilyName string
	Phone      *string
	Notes      *string
	Members    []MemberInput
}

// MemberInput is one member of a FamilyInput
type MemberInput struct {
	Name         string
	Relationship *string
}
