package ticketsync

import (
	"context"
	"time"

	"crmdesk/internal/domain/syncrun"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/mapper"
	"crmdesk/internal/shared/query"
)

type RunDTO struct {
	ID         string            `json:"id"`
	Trigger    string            `json:"trigger"`
	Since      time.Time         `json:"since"`
	Status     string            `json:"status"`
	Imported   int               `json:"imported"`
	Failed     int               `json:"failed"`
	Pages      int               `json:"pages"`
	Failures   []syncrun.Failure `json:"failures,omitempty"`
	Error      string            `json:"error,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt *time.Time        `json:"finished_at"`
}

type CursorDTO struct {
	Name      string     `json:"name"`
	Position  time.Time  `json:"position"`
	UpdatedAt *time.Time `json:"updated_at"`
	// Saved is false while the scheduler has not completed a clean run yet
	// and Position is the default lookback.
	Saved bool `json:"saved"`
}

type ListRunsResponse struct {
	Runs     []*RunDTO
	Total    int64
	Page     int
	PageSize int
}

func ToRunDTO(r *syncrun.Run, withFailures bool) *RunDTO {
	d := &RunDTO{
		ID:         r.ID(),
		Trigger:    string(r.Trigger()),
		Since:      r.Since(),
		Status:     string(r.Status()),
		Imported:   r.Imported(),
		Failed:     r.FailedCount(),
		Pages:      r.Pages(),
		Error:      r.ErrorMessage(),
		StartedAt:  r.StartedAt(),
		FinishedAt: r.FinishedAt(),
	}
	if withFailures {
		d.Failures = r.Failures()
	}
	return d
}

// RunsService answers questions about past runs and the scheduler cursor.
type RunsService struct {
	runs            syncrun.Repository
	defaultLookback time.Duration
	logger          logger.Interface
	nowFn           func() time.Time
}

func NewRunsService(runs syncrun.Repository, defaultLookback time.Duration, logger logger.Interface) *RunsService {
	if defaultLookback <= 0 {
		defaultLookback = defaultCursorLookback
	}
	return &RunsService{runs: runs, defaultLookback: defaultLookback, logger: logger, nowFn: time.Now}
}

func (s *RunsService) ListRuns(ctx context.Context, page query.PageFilter) (*ListRunsResponse, error) {
	page = page.Normalize()
	runs, total, err := s.runs.List(ctx, page)
	if err != nil {
		s.logger.Errorw("failed to list sync runs", "error", err)
		return nil, err
	}

	items := mapper.MapSlice(runs, func(r *syncrun.Run) *RunDTO {
		return ToRunDTO(r, false)
	})
	return &ListRunsResponse{Runs: items, Total: total, Page: page.Page, PageSize: page.PageSize}, nil
}

func (s *RunsService) GetRun(ctx context.Context, id string) (*RunDTO, error) {
	if id == "" {
		return nil, errors.NewValidationError("run id is required")
	}
	r, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToRunDTO(r, true), nil
}

func (s *RunsService) GetCursor(ctx context.Context) (*CursorDTO, error) {
	c, err := s.runs.GetCursor(ctx, syncrun.CursorClosedTickets)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return &CursorDTO{
			Name:     syncrun.CursorClosedTickets,
			Position: s.nowFn().UTC().Add(-s.defaultLookback),
		}, nil
	}
	updated := c.UpdatedAt
	return &CursorDTO{Name: c.Name, Position: c.Position, UpdatedAt: &updated, Saved: true}, nil
}
