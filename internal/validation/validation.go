package validation

import (
	"fmt"
	"regexp"
	"strings"

	"weddingrsvp/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error. Message is shown to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Messages shown to guests and the admin
const (
	MsgFamilyRequired       = "Nome da família e membros são obrigatórios."
	MsgMemberNameRequired   = "Todos os membros precisam de um nome."
	MsgInvalidFamily        = "Família inválida."
	MsgCredentialsRequired  = "Email e senha são obrigatórios."
	MsgInvalidConfirmations = "Confirmações inválidas."
	MsgInvalidEmail         = "Email inválido."
	MsgPasswordTooShort     = "A senha deve ter pelo menos 8 caracteres."
)

// FamilyRequest is the admin payload for creating or replacing a family
type FamilyRequest struct {
	FamilyName string          `json:"family_name"`
	Phone      *string         `json:"phone"`
	Notes      *string         `json:"notes"`
	Members    []MemberRequest `json:"members"`
}

// MemberRequest is one member of a FamilyRequest
type MemberRequest struct {
	Name         string  `json:"name"`
	Relationship *string `json:"relationship"`
}

// ValidateFamily checks a family payload and returns its trimmed form.
// Optional fields that are blank after trimming become nil.
func ValidateFamily(req FamilyRequest) (models.FamilyInput, error) {
	name := strings.TrimSpace(req.FamilyName)
	if name == "" || len(req.Members) == 0 {
		return models.FamilyInput{}, ValidationError{Field: "family", Message: MsgFamilyRequired}
	}

	members := make([]models.MemberInput, 0, len(req.Members))
	for _, m := range req.Members {
		memberName := strings.TrimSpace(m.Name)
		if memberName == "" {
			return models.FamilyInput{}, ValidationError{Field: "members", Message: MsgMemberNameRequired}
		}
		members = append(members, models.MemberInput{
			Name:         memberName,
			Relationship: TrimOptional(m.Relationship),
		})
	}

	return models.FamilyInput{
		FamilyName: name,
		Phone:      TrimOptional(req.Phone),
		Notes:      TrimOptional(req.Notes),
		Members:    members,
	}, nil
}

// ValidateFamilyID checks a family ID taken from the URL
func ValidateFamilyID(id int64) error {
	if id <= 0 {
		return ValidationError{Field: "id", Message: MsgInvalidFamily}
	}
	return nil
}

// ValidateConfirmations checks a confirmation batch. Only the shape is
// checked; member IDs are not looked up.
func ValidateConfirmations(items []models.ConfirmationInput) ([]models.ConfirmationInput, error) {
	if len(items) == 0 {
		return nil, ValidationError{Field: "confirmations", Message: MsgInvalidConfirmations}
	}

	cleaned := make([]models.ConfirmationInput, len(items))
	for i, item := range items {
		item.DietaryRestrictions = EmptyToNil(item.DietaryRestrictions)
		item.Message = EmptyToNil(item.Message)
		cleaned[i] = item
	}
	return cleaned, nil
}

// ValidateLogin checks that both credentials are present
func ValidateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ValidationError{Field: "credentials", Message: MsgCredentialsRequired}
	}
	return nil
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: MsgCredentialsRequired}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: MsgInvalidEmail}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: MsgCredentialsRequired}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: MsgPasswordTooShort}
	}
	return nil
}

// TrimOptional trims s and returns nil when nothing is left
func TrimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// EmptyToNil returns nil for a nil or empty string, leaving other values as-is
func EmptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
