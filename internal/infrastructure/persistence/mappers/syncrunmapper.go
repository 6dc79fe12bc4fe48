package mappers

import (
	"time"

	"crmdesk/internal/domain/syncrun"
	"crmdesk/internal/infrastructure/persistence/models"
)

func SyncRunToModel(r *syncrun.Run) *models.SyncRunModel {
	failures := make([]models.SyncFailure, 0, len(r.Failures()))
	for _, f := range r.Failures() {
		failures = append(failures, models.SyncFailure{TicketID: f.TicketID, Error: f.Error, Permanent: f.Permanent})
	}
	return &models.SyncRunModel{
		ID:         r.ID(),
		Trigger:    string(r.Trigger()),
		Since:      r.Since(),
		Status:     string(r.Status()),
		Imported:   r.Imported(),
		Failed:     r.FailedCount(),
		Pages:      r.Pages(),
		Failures:   failures,
		Error:      r.ErrorMessage(),
		StartedAt:  r.StartedAt(),
		FinishedAt: r.FinishedAt(),
	}
}

func SyncRunToDomain(m *models.SyncRunModel) *syncrun.Run {
	failures := make([]syncrun.Failure, 0, len(m.Failures))
	for _, f := range m.Failures {
		failures = append(failures, syncrun.Failure{TicketID: f.TicketID, Error: f.Error, Permanent: f.Permanent})
	}
	return syncrun.ReconstructRun(m.ID, syncrun.Trigger(m.Trigger), m.Since.UTC(), syncrun.Status(m.Status),
		m.Imported, m.Pages, failures, m.Error, m.StartedAt.UTC(), utcPtr(m.FinishedAt))
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
