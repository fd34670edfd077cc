package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"gopkg.in/gomail.v2"
)

// DeliveryStatus is the outcome of a notification attempt as reported to callers.
type DeliveryStatus string

const (
	DeliveryQueued   DeliveryStatus = "queued"
	DeliverySent     DeliveryStatus = "sent"
	DeliveryFailed   DeliveryStatus = "failed"
	DeliveryDisabled DeliveryStatus = "disabled"
)

// Notification never hides a failure: Error is set whenever Status is failed.
type Notification struct {
	Status DeliveryStatus `json:"status"`
	Error  string         `json:"error,omitempty"`
}

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer submits mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTML)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

// Notifier sends mail either inline or through the dispatcher. A nil
// mailer means SMTP is not configured.
type Notifier struct {
	mailer Mailer
	jobs   Submitter
}

func NewNotifier(mailer Mailer, jobs Submitter) *Notifier {
	return &Notifier{mailer: mailer, jobs: jobs}
}

// Queue hands msg to the dispatcher. The returned status says whether it
// was accepted, not whether it was delivered.
func (n *Notifier) Queue(msg Message) Notification {
	if n == nil || n.mailer == nil {
		return Notification{Status: DeliveryDisabled}
	}
	accepted := n.jobs.Submit("mail:"+msg.Subject, func(ctx context.Context) error {
		return n.mailer.Send(ctx, msg)
	})
	if !accepted {
		utils.Logger.Warn().Str("to", msg.To).Str("subject", msg.Subject).Msg("mail not queued")
		return Notification{Status: DeliveryFailed, Error: "notification queue unavailable"}
	}
	return Notification{Status: DeliveryQueued}
}

// SendNow delivers msg before returning.
func (n *Notifier) SendNow(ctx context.Context, msg Message) Notification {
	if n == nil || n.mailer == nil {
		return Notification{Status: DeliveryDisabled}
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		utils.LogError(err, map[string]interface{}{"to": msg.To, "subject": msg.Subject}, "mail delivery failed")
		return Notification{Status: DeliveryFailed, Error: err.Error()}
	}
	return Notification{Status: DeliverySent}
}

func welcomeMessage(user *models.User) Message {
	return Message{
		To:      user.Email,
		Subject: "Welcome to the CRM",
		HTML: fmt.Sprintf("<p>Hello %s,</p><p>Your account has been created with the role <b>%s</b>.</p>",
			html.EscapeString(user.FirstName), user.Role),
	}
}

func passwordResetMessage(user *models.User, token string) Message {
	return Message{
		To:      user.Email,
		Subject: "Password reset",
		HTML: fmt.Sprintf("<p>Hello %s,</p><p>Use this token to reset your password:</p><pre>%s</pre><p>If you did not ask for a reset you can ignore this mail.</p>",
			html.EscapeString(user.FirstName), html.EscapeString(token)),
	}
}

func passwordChangedMessage(user *models.User) Message {
	return Message{
		To:      user.Email,
		Subject: "Your password was changed",
		HTML: fmt.Sprintf("<p>Hello %s,</p><p>Your password was just changed. Contact an administrator if this was not you.</p>",
			html.EscapeString(user.FirstName)),
	}
}

func overdueDigestMessage(user *models.User, tasks []models.Task) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hello %s,</p><p>You have %d overdue task(s):</p><ul>", html.EscapeString(user.FirstName), len(tasks))
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		fmt.Fprintf(&b, "<li>%s (%s, due %s)</li>", html.EscapeString(t.Title), t.Priority, due)
	}
	b.WriteString("</ul>")
	return Message{To: user.Email, Subject: "Overdue tasks", HTML: b.String()}
}
