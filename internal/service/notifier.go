package service

import (
	"context"
	"fmt"
	"time"

	"talentdesk-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EventSink receives pipeline milestones for outbound delivery. Every call
// is best effort; delivery failure never rolls back the state change that
// triggered it.
type EventSink interface {
	OfferMade(ctx context.Context, candidateEmail, candidateName, jobTitle, offerURL string, validUntil time.Time) error
	OfferAccepted(ctx context.Context, candidateName, jobTitle string) error
	OfferDeclined(ctx context.Context, candidateName, jobTitle string) error
	OfferRevoked(ctx context.Context, candidateEmail, candidateName, jobTitle, reason string) error
	CandidateOnboarded(ctx context.Context, candidateName, officeEmail, jobTitle string) error
}

type sendGridSink struct {
	apiKey   string
	from     string
	fromName string
	hrInbox  string
}

// NewSendGridSink delivers pipeline events over SendGrid. Candidate-facing
// events go to the candidate; accept/decline fan out to the HR inbox.
func NewSendGridSink(apiKey, from, fromName, hrInbox string) EventSink {
	return &sendGridSink{apiKey: apiKey, from: from, fromName: fromName, hrInbox: hrInbox}
}

func (s *sendGridSink) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *sendGridSink) OfferMade(ctx context.Context, candidateEmail, candidateName, jobTitle, offerURL string, validUntil time.Time) error {
	subject := fmt.Sprintf("Your offer for %s", jobTitle)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe are pleased to extend you an offer for the position of %s.\n\nView and respond to your offer here:\n%s\n\nThis offer is valid until %s.\n\nBest regards,\n%s",
		candidateName, jobTitle, offerURL, validUntil.Format("January 2, 2006"), s.fromName)
	return s.send(candidateEmail, candidateName, subject, body)
}

func (s *sendGridSink) OfferAccepted(ctx context.Context, candidateName, jobTitle string) error {
	subject := fmt.Sprintf("Offer accepted: %s for %s", candidateName, jobTitle)
	body := fmt.Sprintf("%s has accepted the offer for %s. Onboarding can begin.", candidateName, jobTitle)
	return s.send(s.hrInbox, "HR", subject, body)
}

func (s *sendGridSink) OfferDeclined(ctx context.Context, candidateName, jobTitle string) error {
	subject := fmt.Sprintf("Offer declined: %s for %s", candidateName, jobTitle)
	body := fmt.Sprintf("%s has declined the offer for %s.", candidateName, jobTitle)
	return s.send(s.hrInbox, "HR", subject, body)
}

func (s *sendGridSink) OfferRevoked(ctx context.Context, candidateEmail, candidateName, jobTitle, reason string) error {
	subject := fmt.Sprintf("Update on your offer for %s", jobTitle)
	body := fmt.Sprintf("Hello %s,\n\nYour offer for the position of %s has been withdrawn.", candidateName, jobTitle)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += fmt.Sprintf("\n\nBest regards,\n%s", s.fromName)
	return s.send(candidateEmail, candidateName, subject, body)
}

func (s *sendGridSink) CandidateOnboarded(ctx context.Context, candidateName, officeEmail, jobTitle string) error {
	subject := fmt.Sprintf("New joiner: %s", candidateName)
	body := fmt.Sprintf("%s has joined as %s. Office email: %s.", candidateName, jobTitle, officeEmail)
	return s.send(s.hrInbox, "HR", subject, body)
}

// logSink writes events to the log instead of sending mail. Used when no
// SendGrid key is configured, and in tests.
type logSink struct{}

func NewLogSink() EventSink {
	return &logSink{}
}

func (l *logSink) OfferMade(ctx context.Context, candidateEmail, candidateName, jobTitle, offerURL string, validUntil time.Time) error {
	logger.Info("offer made", "candidate", candidateName, "job", jobTitle, "valid_until", validUntil)
	return nil
}

func (l *logSink) OfferAccepted(ctx context.Context, candidateName, jobTitle string) error {
	logger.Info("offer accepted", "candidate", candidateName, "job", jobTitle)
	return nil
}

func (l *logSink) OfferDeclined(ctx context.Context, candidateName, jobTitle string) error {
	logger.Info("offer declined", "candidate", candidateName, "job", jobTitle)
	return nil
}

func (l *logSink) OfferRevoked(ctx context.Context, candidateEmail, candidateName, jobTitle, reason string) error {
	logger.Info("offer revoked", "candidate", candidateName, "job", jobTitle, "reason", reason)
	return nil
}

func (l *logSink) CandidateOnboarded(ctx context.Context, candidateName, officeEmail, jobTitle string) error {
	logger.Info("candidate onboarded", "candidate", candidateName, "office_email", officeEmail)
	return nil
}
