package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Notifier is what the usecases see: hand over an event and move on.
// Delivery is asynchronous; the caller never learns whether it succeeded.
type Notifier interface {
	Notify(ctx context.Context, ev Event)
}

// Sender delivers one rendered message. Implemented over SMTP in
// infrastructure/mail.
type Sender interface {
	Send(to, subject, htmlBody, plainBody string, attachments []string) error
}

// MissingRecipientPolicy decides what happens when an event has no
// resolvable recipient address.
type MissingRecipientPolicy string

const (
	// PolicySkip logs a warning and drops the message.
	PolicySkip MissingRecipientPolicy = "skip"
	// PolicyAlert additionally redirects the message to the admin address.
	PolicyAlert MissingRecipientPolicy = "alert"
)

type Dispatcher struct {
	sender     Sender
	policy     MissingRecipientPolicy
	adminEmail string
	log        *slog.Logger

	ch   chan Event
	wg   sync.WaitGroup
	once sync.Once
}

func NewDispatcher(sender Sender, policy MissingRecipientPolicy, adminEmail string, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender:     sender,
		policy:     policy,
		adminEmail: adminEmail,
		log:        log,
		ch:         make(chan Event, 64),
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start() {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for ev := range d.ch {
			d.deliver(ev)
		}
	}()
}

// Stop drains the queue and waits for in-flight sends.
func (d *Dispatcher) Stop() {
	d.once.Do(func() { close(d.ch) })
	d.wg.Wait()
}

// Notify resolves the recipient and enqueues the event. A missing recipient
// is handled per policy; a full queue drops the event with a warning. Neither
// case surfaces an error to the caller.
func (d *Dispatcher) Notify(ctx context.Context, ev Event) {
	if ev.RecipientEmail == "" {
		switch d.policy {
		case PolicyAlert:
			if d.adminEmail == "" {
				d.log.Warn("notification recipient unresolvable and no admin address configured, skipping",
					"event", ev.Type, "application_id", ev.ApplicationID)
				return
			}
			d.log.Warn("notification recipient unresolvable, redirecting to admin",
				"event", ev.Type, "application_id", ev.ApplicationID)
			ev.RecipientEmail = d.adminEmail
		default:
			d.log.Warn("notification recipient unresolvable, skipping send",
				"event", ev.Type, "application_id", ev.ApplicationID)
			return
		}
	}
	select {
	case d.ch <- ev:
	default:
		d.log.Warn("notification queue full, dropping event",
			"event", ev.Type, "application_id", ev.ApplicationID)
	}
}

func (d *Dispatcher) deliver(ev Event) {
	subject, htmlBody, plainBody := BuildMessage(ev)
	if err := d.sender.Send(ev.RecipientEmail, subject, htmlBody, plainBody, ev.Attachments); err != nil {
		d.log.Warn("notification send failed",
			"event", ev.Type, "application_id", ev.ApplicationID, "to", ev.RecipientEmail, "error", err)
		return
	}
	d.log.Info("notification sent", "event", ev.Type, "application_id", ev.ApplicationID, "to", ev.RecipientEmail)
}

// BuildMessage renders subject and both bodies for an event.
func BuildMessage(ev Event) (subject, htmlBody, plainBody string) {
	switch ev.Type {
	case EventSubmission:
		subject = fmt.Sprintf("Application #%s submitted by %s: action required", ev.ApplicationID, ev.ApplicantName)
		plainBody = fmt.Sprintf("Application #%s from %s is awaiting your review.", ev.ApplicationID, ev.ApplicantName)
	case EventApproval:
		subject = fmt.Sprintf("Application #%s approved", ev.ApplicationID)
		plainBody = fmt.Sprintf("Dear %s,\n\nYour application #%s has been approved and moves to the next processing stage.", ev.ApplicantName, ev.ApplicationID)
	case EventRejection:
		subject = fmt.Sprintf("Application #%s rejected", ev.ApplicationID)
		plainBody = fmt.Sprintf("Dear %s,\n\nYour application #%s was rejected.\nReason: %s", ev.ApplicantName, ev.ApplicationID, ev.Detail)
	case EventIssuance:
		subject = fmt.Sprintf("Equipment issued for loan application #%s", ev.ApplicationID)
		plainBody = fmt.Sprintf("Dear %s,\n\nEquipment for loan application #%s has been issued.\n%s", ev.ApplicantName, ev.ApplicationID, ev.Detail)
	case EventReturn:
		subject = fmt.Sprintf("Equipment return recorded for loan application #%s", ev.ApplicationID)
		plainBody = fmt.Sprintf("Dear %s,\n\nThe return for loan application #%s has been recorded.\n%s", ev.ApplicantName, ev.ApplicationID, ev.Detail)
	case EventOverdueReminder:
		due := ""
		if ev.DueDate != nil {
			due = ev.DueDate.Format("2006-01-02")
		}
		subject = fmt.Sprintf("Loan application #%s is overdue", ev.ApplicationID)
		plainBody = fmt.Sprintf("Dear %s,\n\nEquipment borrowed under loan application #%s was due on %s. Please arrange its return.", ev.ApplicantName, ev.ApplicationID, due)
	case EventProvisioningFailure:
		subject = fmt.Sprintf("Email provisioning failed for application #%s", ev.ApplicationID)
		plainBody = fmt.Sprintf("Provisioning for email application #%s (%s) failed.\nDetail: %s", ev.ApplicationID, ev.ApplicantName, ev.Detail)
	case EventWelcome:
		subject = fmt.Sprintf("Your MOTAC email account is ready (application #%s)", ev.ApplicationID)
		plainBody = fmt.Sprintf("Dear %s,\n\nYour email account has been created: %s", ev.ApplicantName, ev.Detail)
	default:
		subject = fmt.Sprintf("Notification for application #%s", ev.ApplicationID)
		plainBody = ev.Detail
	}
	htmlBody = fmt.Sprintf("<html><body><p>%s</p></body></html>", plainBody)
	return subject, htmlBody, plainBody
}
