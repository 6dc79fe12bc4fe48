package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"crmdesk/internal/domain/shared/events"
	"crmdesk/internal/shared/logger"
)

// maxListedFailures caps the per-ticket lines in one message.
const maxListedFailures = 20

var failureTemplate = template.Must(template.New("sync").Parse(`<html><body>
<h2>Closed-ticket sync {{.Status}}</h2>
<p>Run <code>{{.RunID}}</code> ({{.Trigger}}) since {{.Since}}: {{.Imported}} imported, {{.Failed}} failed.</p>
{{if .Error}}<p><strong>Error:</strong> {{.Error}}</p>{{end}}
{{if .Failures}}<ul>{{range .Failures}}<li>#{{.TicketID}}: {{.Error}}</li>{{end}}</ul>{{end}}
{{if .More}}<p>and {{.More}} more</p>{{end}}
</body></html>`))

type mailSender interface {
	Send(to []string, subject, plainBody, htmlBody string) error
}

// SyncNotifier mails the configured recipients when a sync run fails or
// finishes with per-ticket failures. Clean runs are silent.
type SyncNotifier struct {
	sender     mailSender
	recipients []string
	log        logger.Interface
}

func NewSyncNotifier(sender mailSender, recipients []string, log logger.Interface) *SyncNotifier {
	return &SyncNotifier{
		sender:     sender,
		recipients: recipients,
		log:        log.Named("sync-notifier"),
	}
}

func (n *SyncNotifier) Subscribe(bus *events.Bus) error {
	if _, err := bus.Subscribe(events.KindSyncFailed, n.handle); err != nil {
		return err
	}
	_, err := bus.Subscribe(events.KindSyncCompleted, n.handle)
	return err
}

func (n *SyncNotifier) handle(e events.Event) error {
	p, ok := e.Payload.(events.SyncFinished)
	if !ok {
		return nil
	}
	if e.Kind == events.KindSyncCompleted && !p.Partial() {
		return nil
	}

	subject := fmt.Sprintf("[crmdesk] sync run %s: %s", shortID(p.RunID), p.Status)
	plain, html, err := renderBodies(p)
	if err != nil {
		return err
	}

	if err := n.sender.Send(n.recipients, subject, plain, html); err != nil {
		return err
	}
	n.log.Infow("sync notification sent", "run_id", p.RunID, "status", p.Status, "recipients", len(n.recipients))
	return nil
}

func renderBodies(p events.SyncFinished) (string, string, error) {
	listed := p.Failures
	more := 0
	if len(listed) > maxListedFailures {
		more = len(listed) - maxListedFailures
		listed = listed[:maxListedFailures]
	}

	var plain strings.Builder
	fmt.Fprintf(&plain, "Closed-ticket sync %s\n\nRun %s (%s) since %s\nImported: %d\nFailed: %d\n",
		p.Status, p.RunID, p.Trigger, p.Since.Format("2006-01-02T15:04:05Z07:00"), p.Imported, p.Failed)
	if p.Error != "" {
		fmt.Fprintf(&plain, "Error: %s\n", p.Error)
	}
	for _, f := range listed {
		fmt.Fprintf(&plain, "  #%d: %s\n", f.TicketID, f.Error)
	}
	if more > 0 {
		fmt.Fprintf(&plain, "  and %d more\n", more)
	}

	var html bytes.Buffer
	err := failureTemplate.Execute(&html, map[string]any{
		"Status":   p.Status,
		"RunID":    p.RunID,
		"Trigger":  p.Trigger,
		"Since":    p.Since.Format("2006-01-02T15:04:05Z07:00"),
		"Imported": p.Imported,
		"Failed":   p.Failed,
		"Error":    p.Error,
		"Failures": listed,
		"More":     more,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render sync notification: %w", err)
	}
	return plain.String(), html.String(), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
