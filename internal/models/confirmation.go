package models

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"time"
)

// Flag is a boolean stored as an integer column. It serializes to JSON as
// 1/0 and accepts true/false/1/0.
type Flag bool

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", "1":
		*f = true
	case "false", "0", "null":
		*f = false
	default:
		return fmt.Errorf("invalid attending value %s", data)
	}
	return nil
}

// Scan implements sql.Scanner
func (f *Flag) Scan(src any) error {
	v, err := driver.Bool.ConvertValue(src)
	if err != nil {
		return fmt.Errorf("invalid attending value %v: %w", src, err)
	}
	*f = Flag(v.(bool))
	return nil
}

// Value implements driver.Valuer
func (f Flag) Value() (driver.Value, error) {
	return bool(f), nil
}

// MemberConfirmation is one RSVP response for a member. Rows are never
// updated; a new response is a new row.
type MemberConfirmation struct {
	ID                  int64     `db:"id" json:"id"`
	MemberID            int64     `db:"member_id" json:"member_id"`
	Attending           Flag      `db:"attending" json:"attending"`
	DietaryRestrictions *string   `db:"dietary_restrictions" json:"dietary_restrictions"`
	Message             *string   `db:"message" json:"message"`
	ConfirmedAt         time.Time `db:"confirmed_at" json:"confirmed_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// ConfirmationInput is one item of a public RSVP submission
type ConfirmationInput struct {
	MemberID            int64   `json:"member_id"`
	Attending           Flag    `json:"attending"`
	DietaryRestrictions *string `json:"dietary_restrictions"`
	Message             *string `json:"message"`
}

// IsNewerThan reports whether c supersedes other as a member's current status
func (c *MemberConfirmation) IsNewerThan(other *MemberConfirmation) bool {
	if !c.ConfirmedAt.Equal(other.ConfirmedAt) {
		return c.ConfirmedAt.After(other.ConfirmedAt)
	}
	return c.ID > other.ID
}

// CurrentConfirmations returns the latest confirmation per member
func CurrentConfirmations(confirmations []MemberConfirmation) map[int64]MemberConfirmation {
	current := make(map[int64]MemberConfirmation, len(confirmations))
	for i := range confirmations {
		c := confirmations[i]
		if existing, ok := current[c.MemberID]; ok && !c.IsNewerThan(&existing) {
			continue
		}
		current[c.MemberID] = c
	}
	return current
}

// RSVPSummary aggregates the current status of every member
type RSVPSummary struct {
	TotalFamilies int `json:"total_families"`
	TotalMembers  int `json:"total_members"`
	Attending     int `json:"attending"`
	NotAttending  int `json:"not_attending"`
	Pending       int `json:"pending"`
}

// Summarize counts members by their current confirmation. Confirmations for
// members that no longer exist are ignored.
func Summarize(families []GuestFamily, members []FamilyMember, confirmations []MemberConfirmation) RSVPSummary {
	current := CurrentConfirmations(confirmations)
	summary := RSVPSummary{
		TotalFamilies: len(families),
		TotalMembers:  len(members),
	}
	for _, m := range members {
		c, ok := current[m.ID]
		switch {
		case !ok:
			summary.Pending++
		case bool(c.Attending):
			summary.Attending++
		default:
			summary.NotAttending++
		}
	}
	return summary
}
