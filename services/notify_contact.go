package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/bgpaten/ahyarpattani/models"
)

// Notifier tells the site owner about a stored contact message.
type Notifier interface {
	NotifyContact(ctx context.Context, msg models.ContactMessage) error
}

type emailSender interface {
	SendEmail(ctx context.Context, email Email) (string, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// ContactNotifier fans a contact message out to every configured channel.
// A failing channel does not stop the others.
type ContactNotifier struct {
	email      emailSender
	ownerEmail string
	sms        smsSender
	ownerPhone string
}

func NewContactNotifier() *ContactNotifier {
	return &ContactNotifier{}
}

func (n *ContactNotifier) WithEmail(sender emailSender, ownerEmail string) *ContactNotifier {
	n.email = sender
	n.ownerEmail = ownerEmail
	return n
}

func (n *ContactNotifier) WithSMS(sender smsSender, ownerPhone string) *ContactNotifier {
	n.sms = sender
	n.ownerPhone = ownerPhone
	return n
}

// Channels lists the enabled channel names.
func (n *ContactNotifier) Channels() []string {
	var channels []string
	if n.email != nil {
		channels = append(channels, "email")
	}
	if n.sms != nil {
		channels = append(channels, "sms")
	}
	return channels
}

func (n *ContactNotifier) NotifyContact(ctx context.Context, msg models.ContactMessage) error {
	var failures []string
	var successes []string

	if n.email != nil {
		_, err := n.email.SendEmail(ctx, Email{
			To:      []string{n.ownerEmail},
			Subject: fmt.Sprintf("New message from %s", msg.Name),
			Html:    contactEmailHTML(msg),
			ReplyTo: msg.Email,
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to send contact email")
			failures = append(failures, fmt.Sprintf("email: %v", err))
		} else {
			successes = append(successes, "email")
		}
	}

	if n.sms != nil {
		body := fmt.Sprintf("New message from %s <%s>: %s", msg.Name, msg.Email, msg.Message)
		if err := n.sms.SendSMS(ctx, n.ownerPhone, body); err != nil {
			log.Error().Err(err).Msg("Failed to send contact SMS")
			failures = append(failures, fmt.Sprintf("sms: %v", err))
		} else {
			successes = append(successes, "sms")
		}
	}

	if len(successes) > 0 {
		log.Info().Strs("channels", successes).Str("messageId", msg.ID.String()).Msg("Notified owner of contact message")
	}
	if len(failures) > 0 {
		return fmt.Errorf("some channels failed: %s", strings.Join(failures, "; "))
	}
	return nil
}

func contactEmailHTML(msg models.ContactMessage) string {
	var b strings.Builder
	b.WriteString("<p><strong>From:</strong> ")
	b.WriteString(html.EscapeString(msg.Name))
	b.WriteString(" &lt;")
	b.WriteString(html.EscapeString(msg.Email))
	b.WriteString("&gt;</p><p>")
	b.WriteString(strings.ReplaceAll(html.EscapeString(msg.Message), "\n", "<br>"))
	b.WriteString("</p>")
	return b.String()
}
