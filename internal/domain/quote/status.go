package quote

import (
	"fmt"
	"slices"

	"crmdesk/internal/shared/errors"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// accepted and rejected are terminal
var statusTransitions = map[Status][]Status{
	StatusDraft: {StatusSent},
	StatusSent:  {StatusAccepted, StatusRejected, StatusDraft},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected:
		return st, nil
	default:
		return "", errors.NewValidationError(fmt.Sprintf("invalid quote status: %s", s))
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

func (s Status) CanTransitionTo(target Status) bool {
	return slices.Contains(statusTransitions[s], target)
}
