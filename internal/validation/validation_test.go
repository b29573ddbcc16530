package validation

import (
	"errors"
	"testing"

	"weddingrsvp/internal/models"
)

func strPtr(s string) *string { return &s }

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{
			name:    "valid email",
			email:   "test@example.com",
			wantErr: false,
		},
		{
			name:    "valid email with subdomain",
			email:   "user@mail.example.com",
			wantErr: false,
		},
		{
			name:    "valid email with plus",
			email:   "user+tag@example.com",
			wantErr: false,
		},
		{
			name:    "missing @",
			email:   "testexample.com",
			wantErr: true,
		},
		{
			name:    "missing domain",
			email:   "test@",
			wantErr: true,
		},
		{
			name:    "empty string",
			email:   "",
			wantErr: true,
		},
		{
			name:    "spaces in email",
			email:   "test @example.com",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "password123", wantErr: false},
		{name: "exactly 8 characters", password: "12345678", wantErr: false},
		{name: "too short", password: "short", wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFamily(t *testing.T) {
	tests := []struct {
		name    string
		req     FamilyRequest
		wantMsg string
	}{
		{
			name:    "missing family name",
			req:     FamilyRequest{FamilyName: "   ", Members: []MemberRequest{{Name: "Ana"}}},
			wantMsg: MsgFamilyRequired,
		},
		{
			name:    "no members",
			req:     FamilyRequest{FamilyName: "Silva"},
			wantMsg: MsgFamilyRequired,
		},
		{
			name:    "blank member name",
			req:     FamilyRequest{FamilyName: "Silva", Members: []MemberRequest{{Name: "Ana"}, {Name: " "}}},
			wantMsg: MsgMemberNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateFamily(tt.req)
			var verr ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", verr.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateFamilyTrims(t *testing.T) {
	input, err := ValidateFamily(FamilyRequest{
		FamilyName: "  Silva ",
		Phone:      strPtr("  "),
		Notes:      strPtr(" mesa 4 "),
		Members: []MemberRequest{
			{Name: " Ana ", Relationship: strPtr(" tia ")},
			{Name: "Bruno", Relationship: strPtr("")},
		},
	})
	if err != nil {
		t.Fatalf("ValidateFamily() error = %v", err)
	}

	if input.FamilyName != "Silva" {
		t.Errorf("FamilyName = %q", input.FamilyName)
	}
	if input.Phone != nil {
		t.Errorf("blank phone should become nil, got %q", *input.Phone)
	}
	if input.Notes == nil || *input.Notes != "mesa 4" {
		t.Errorf("Notes = %v", input.Notes)
	}
	if input.Members[0].Name != "Ana" || *input.Members[0].Relationship != "tia" {
		t.Errorf("first member = %+v", input.Members[0])
	}
	if input.Members[1].Relationship != nil {
		t.Errorf("empty relationship should become nil")
	}
}

func TestValidateFamilyID(t *testing.T) {
	if err := ValidateFamilyID(0); err == nil {
		t.Error("expected error for id 0")
	}
	if err := ValidateFamilyID(-3); err == nil {
		t.Error("expected error for negative id")
	}
	if err := ValidateFamilyID(7); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestValidateConfirmations(t *testing.T) {
	if _, err := ValidateConfirmations(nil); err == nil {
		t.Error("expected error for empty batch")
	}

	cleaned, err := ValidateConfirmations([]models.ConfirmationInput{
		{MemberID: 1, Attending: true, DietaryRestrictions: strPtr(""), Message: strPtr("Parabéns!")},
		// unknown member IDs are accepted
		{MemberID: 999},
	})
	if err != nil {
		t.Fatalf("ValidateConfirmations() error = %v", err)
	}
	if len(cleaned) != 2 {
		t.Fatalf("got %d items", len(cleaned))
	}
	if cleaned[0].DietaryRestrictions != nil {
		t.Error("empty dietary restrictions should become nil")
	}
	if cleaned[0].Message == nil || *cleaned[0].Message != "Parabéns!" {
		t.Errorf("message = %v", cleaned[0].Message)
	}
}

func TestValidateLogin(t *testing.T) {
	if err := ValidateLogin("", "secret"); err == nil {
		t.Error("expected error for missing email")
	}
	if err := ValidateLogin("noivos@example.com", ""); err == nil {
		t.Error("expected error for missing password")
	}
	if err := ValidateLogin("noivos@example.com", "secret"); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}
