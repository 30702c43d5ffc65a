package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/civictrack/civictrack/internal/domain/complaint"
	vo "github.com/civictrack/civictrack/internal/domain/complaint/valueobjects"
	"github.com/civictrack/civictrack/internal/domain/user"
	"github.com/civictrack/civictrack/internal/shared/biztime"
	"github.com/civictrack/civictrack/internal/shared/goroutine"
	"github.com/civictrack/civictrack/internal/shared/logger"
	"github.com/civictrack/civictrack/internal/shared/services/markdown"
)

// ComplaintNotifier mails the citizen when their complaint reaches an
// outcome. Messages are rendered on the caller's goroutine and delivered
// in the background; delivery failures are only logged.
type ComplaintNotifier struct {
	sender   Sender
	renderer markdown.Service
	baseURL  string
	logger   logger.Interface
}

func NewComplaintNotifier(sender Sender, renderer markdown.Service, baseURL string, logger logger.Interface) *ComplaintNotifier {
	return &ComplaintNotifier{
		sender:   sender,
		renderer: renderer,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}
}

func (n *ComplaintNotifier) NotifyStatusChanged(ctx context.Context, recipient *user.User, c *complaint.Complaint) error {
	if recipient == nil || c == nil {
		return fmt.Errorf("recipient and complaint are required")
	}
	if !c.Status().IsFinal() {
		return nil
	}

	msg, err := n.render(recipient, c)
	if err != nil {
		return err
	}

	to := recipient.Email().String()
	goroutine.SafeGo(n.logger, "complaint-status-email", func() {
		err := n.sender.Send(to, msg.subject, msg.html, msg.plain)
		if err != nil {
			n.logger.Errorw("failed to send complaint status email",
				"complaint_id", c.HumanID(),
				"to", to,
				"error", err,
			)
		} else {
			n.logger.Infow("complaint status email sent",
				"complaint_id", c.HumanID(),
				"status", c.Status().String(),
			)
		}
	})

	return nil
}

type message struct {
	subject string
	html    string
	plain   string
}

func (n *ComplaintNotifier) render(recipient *user.User, c *complaint.Complaint) (*message, error) {
	outcome := "resolved"
	if c.Status() == vo.StatusRejected {
		outcome = "rejected"
	}

	name := recipient.Name().DisplayName()
	subject := fmt.Sprintf("Your complaint %s has been %s", c.HumanID(), outcome)

	notes := ""
	notesHTML := ""
	if c.ResolutionNotes() != nil && *c.ResolutionNotes() != "" {
		notes = *c.ResolutionNotes()
		rendered, err := n.renderer.ToHTMLSanitized(notes)
		if err != nil {
			return nil, fmt.Errorf("failed to render resolution notes: %w", err)
		}
		notesHTML = rendered
	}

	when := ""
	if c.CompletedAt() != nil {
		when = biztime.FormatInBizTimezone(*c.CompletedAt(), "02 Jan 2006 15:04 MST")
	}

	link := fmt.Sprintf("%s/complaints/%s", n.baseURL, c.SID())

	var hb strings.Builder
	hb.WriteString("<html><body>")
	fmt.Fprintf(&hb, "<p>Dear %s,</p>", html.EscapeString(name))
	fmt.Fprintf(&hb, "<p>Your %s complaint <strong>%s</strong> has been <strong>%s</strong>.</p>",
		html.EscapeString(c.IssueType().String()), html.EscapeString(c.HumanID()), outcome)
	if when != "" {
		fmt.Fprintf(&hb, "<p>Completed on %s.</p>", html.EscapeString(when))
	}
	if notesHTML != "" {
		hb.WriteString("<h3>Notes from the department</h3>")
		hb.WriteString(notesHTML)
	}
	fmt.Fprintf(&hb, `<p><a href="%s">View your complaint</a></p>`, html.EscapeString(link))
	hb.WriteString("<p>Thank you for helping improve your city.</p></body></html>")

	var pb strings.Builder
	fmt.Fprintf(&pb, "Dear %s,\n\n", name)
	fmt.Fprintf(&pb, "Your %s complaint %s has been %s.\n", c.IssueType().String(), c.HumanID(), outcome)
	if when != "" {
		fmt.Fprintf(&pb, "Completed on %s.\n", when)
	}
	if notes != "" {
		fmt.Fprintf(&pb, "\nNotes from the department:\n%s\n", notes)
	}
	fmt.Fprintf(&pb, "\nView your complaint: %s\n\nThank you for helping improve your city.\n", link)

	return &message{subject: subject, html: hb.String(), plain: pb.String()}, nil
}

// NoopNotifier is used when SMTP is not configured.
type NoopNotifier struct {
	logger logger.Interface
}

func NewNoopNotifier(logger logger.Interface) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

func (n *NoopNotifier) NotifyStatusChanged(ctx context.Context, recipient *user.User, c *complaint.Complaint) error {
	n.logger.Debugw("email disabled, skipping complaint status notification",
		"complaint_id", c.HumanID(),
		"status", c.Status().String(),
	)
	return nil
}
