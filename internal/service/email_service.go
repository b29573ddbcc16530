package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"weddingrsvp/internal/logger"
	"weddingrsvp/internal/models"
	"weddingrsvp/internal/repository"
)

// EmailSender is the part of the SES client the email service uses
type EmailSender interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailSettings configures the RSVP notification email
type EmailSettings struct {
	AWSRegion string
	FromEmail string
	FromName  string
	NotifyTo  string
}

// EmailService sends RSVP notifications to the couple via Amazon SES
type EmailService struct {
	client     EmailSender
	familyRepo *repository.FamilyRepository
	settings   EmailSettings
	enabled    bool
	log        *logger.Logger
}

// NewEmailService creates a new email service. It is disabled unless both
// the sender and the notification recipient are configured.
func NewEmailService(ctx context.Context, settings EmailSettings, familyRepo *repository.FamilyRepository, log *logger.Logger) (*EmailService, error) {
	if settings.FromEmail == "" || settings.NotifyTo == "" {
		log.Info("Email notifications disabled: SES_FROM_EMAIL or RSVP_NOTIFY_EMAIL not configured")
		return &EmailService{familyRepo: familyRepo, settings: settings, log: log}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(settings.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Info("Email notifications enabled", "from", settings.FromEmail, "to", settings.NotifyTo, "region", settings.AWSRegion)
	return NewEmailServiceWithSender(sesv2.NewFromConfig(cfg), settings, familyRepo, log), nil
}

// NewEmailServiceWithSender creates an enabled email service around sender
func NewEmailServiceWithSender(sender EmailSender, settings EmailSettings, familyRepo *repository.FamilyRepository, log *logger.Logger) *EmailService {
	return &EmailService{
		client:     sender,
		familyRepo: familyRepo,
		settings:   settings,
		enabled:    true,
		log:        log,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// NotifyConfirmations emails the couple the responses in one batch
func (s *EmailService) NotifyConfirmations(ctx context.Context, confirmations []models.MemberConfirmation) error {
	if !s.enabled {
		s.log.Debug("Skipping confirmation email (service disabled)", "count", len(confirmations))
		return nil
	}
	if len(confirmations) == 0 {
		return nil
	}

	ids := make([]int64, len(confirmations))
	for i, c := range confirmations {
		ids[i] = c.MemberID
	}
	members, err := s.familyRepo.GetMembersByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to resolve member names: %w", err)
	}
	names := make(map[int64]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}

	subject, textBody, htmlBody := confirmationEmail(confirmations, names)
	return s.sendEmail(ctx, s.settings.NotifyTo, subject, htmlBody, textBody)
}

func confirmationEmail(confirmations []models.MemberConfirmation, names map[int64]string) (subject, textBody, htmlBody string) {
	subject = fmt.Sprintf("Nova confirmação de presença (%d)", len(confirmations))

	var text, rows strings.Builder
	text.WriteString("Novas respostas de RSVP:\n\n")
	for _, c := range confirmations {
		name, ok := names[c.MemberID]
		if !ok {
			name = fmt.Sprintf("#%d", c.MemberID)
		}
		answer := "Não vai"
		if c.Attending {
			answer = "Vai"
		}

		fmt.Fprintf(&text, "- %s: %s", name, answer)
		fmt.Fprintf(&rows, "<li><strong>%s</strong>: %s", html.EscapeString(name), answer)
		if c.DietaryRestrictions != nil {
			fmt.Fprintf(&text, " (restrições: %s)", *c.DietaryRestrictions)
			fmt.Fprintf(&rows, " (restrições: %s)", html.EscapeString(*c.DietaryRestrictions))
		}
		if c.Message != nil {
			fmt.Fprintf(&text, "\n  Mensagem: %s", *c.Message)
			fmt.Fprintf(&rows, "<br><em>%s</em>", html.EscapeString(*c.Message))
		}
		text.WriteString("\n")
		rows.WriteString("</li>\n")
	}

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<h2>Novas respostas de RSVP</h2>
	<ul>
%s	</ul>
</body>
</html>
`, rows.String())

	return subject, text.String(), htmlBody
}

// sendEmail sends an email using Amazon SES
func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.settings.FromEmail
	if s.settings.FromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.settings.FromName, s.settings.FromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	s.log.Info("Email sent", "to", toEmail, "subject", subject, "message_id", aws.ToString(result.MessageId))
	return nil
}
