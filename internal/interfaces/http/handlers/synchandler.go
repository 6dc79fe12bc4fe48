package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"crmdesk/internal/application/ticketsync"
	"crmdesk/internal/domain/syncrun"
	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/constants"
	"crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
	"crmdesk/internal/shared/query"
	"crmdesk/internal/shared/utils"
)

type closedTicketsSyncer interface {
	Execute(ctx context.Context, cmd ticketsync.SyncClosedTicketsCommand) (*ticketsync.SyncResult, error)
}

type syncRunsService interface {
	ListRuns(ctx context.Context, page query.PageFilter) (*ticketsync.ListRunsResponse, error)
	GetRun(ctx context.Context, id string) (*ticketsync.RunDTO, error)
	GetCursor(ctx context.Context) (*ticketsync.CursorDTO, error)
}

// SyncResponse is the body of /api/sync/closed-tickets. It deliberately does
// not use the APIResponse envelope; callers key on "ok".
type SyncResponse struct {
	OK       bool              `json:"ok"`
	Partial  bool              `json:"partial,omitempty"`
	Imported int               `json:"imported"`
	Failed   int               `json:"failed,omitempty"`
	Failures []syncrun.Failure `json:"failures,omitempty"`
	Since    string            `json:"since,omitempty"`
	RunID    string            `json:"run_id,omitempty"`
	Error    string            `json:"error,omitempty"`
}

type SyncHandler struct {
	syncer          closedTicketsSyncer
	runs            syncRunsService
	defaultLookback time.Duration
	logger          logger.Interface
	nowFn           func() time.Time
}

func NewSyncHandler(syncer closedTicketsSyncer, runs syncRunsService, defaultLookback time.Duration, logger logger.Interface) *SyncHandler {
	if defaultLookback <= 0 {
		defaultLookback = 7 * 24 * time.Hour
	}
	return &SyncHandler{
		syncer:          syncer,
		runs:            runs,
		defaultLookback: defaultLookback,
		logger:          logger,
		nowFn:           time.Now,
	}
}

// SyncClosedTickets godoc
// @Summary Import closed Freshdesk tickets
// @Description Fetches tickets closed and updated after since, and reconciles them into the local store. Tickets that fail individually are reported and do not abort the run.
// @Tags sync
// @Produce json
// @Param since query string false "RFC3339 or YYYY-MM-DD; defaults to 7 days ago"
// @Success 200 {object} SyncResponse "All tickets imported"
// @Success 207 {object} SyncResponse "Some tickets failed"
// @Failure 400 {object} SyncResponse "Bad since"
// @Failure 409 {object} SyncResponse "Another sync is running"
// @Failure 429 {object} SyncResponse "Freshdesk rate limit"
// @Failure 502 {object} SyncResponse "Freshdesk unavailable or rejected the request"
// @Failure 500 {object} SyncResponse "Internal error"
// @Router /sync/closed-tickets [post]
// @Router /sync/closed-tickets [get]
func (h *SyncHandler) SyncClosedTickets(c *gin.Context) {
	rawSince := c.Query("since")

	var since time.Time
	if rawSince == "" {
		since = h.nowFn().UTC().Add(-h.defaultLookback)
		rawSince = since.Format(time.RFC3339)
	} else {
		t, _, err := biztime.ParseTimestamp(rawSince)
		if err != nil {
			c.JSON(http.StatusBadRequest, SyncResponse{Error: err.Error()})
			return
		}
		since = t
	}

	result, err := h.syncer.Execute(c.Request.Context(), ticketsync.SyncClosedTicketsCommand{
		Since:   since,
		Trigger: syncrun.TriggerHTTP,
	})
	if err != nil {
		h.writeSyncError(c, err)
		return
	}

	if result.Partial() {
		c.JSON(http.StatusMultiStatus, SyncResponse{
			Partial:  true,
			Imported: result.Imported,
			Failed:   len(result.Failures),
			Failures: result.Failures,
			Since:    rawSince,
			RunID:    result.RunID,
		})
		return
	}

	c.JSON(http.StatusOK, SyncResponse{
		OK:       true,
		Imported: result.Imported,
		Since:    rawSince,
		RunID:    result.RunID,
	})
}

func (h *SyncHandler) writeSyncError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	if appErr := errors.GetAppError(err); appErr != nil {
		message = appErr.Message
		switch appErr.Type {
		case errors.ErrorTypeSyncInProgress:
			status = http.StatusConflict
		case errors.ErrorTypeRateLimited:
			status = http.StatusTooManyRequests
			if appErr.RetryAfter > 0 {
				secs := int(math.Ceil(appErr.RetryAfter.Seconds()))
				c.Header(constants.HeaderRetryAfter, strconv.Itoa(secs))
			}
		case errors.ErrorTypeRemoteUnavailable, errors.ErrorTypeRemoteRejected:
			status = http.StatusBadGateway
		case errors.ErrorTypeValidation:
			status = http.StatusBadRequest
		}
	}

	if status >= http.StatusInternalServerError {
		h.logger.Errorw("closed ticket sync failed", "status", status, "error", err)
	} else {
		h.logger.Warnw("closed ticket sync rejected", "status", status, "error", err)
	}
	c.JSON(status, SyncResponse{Error: message})
}

// ListRuns godoc
// @Summary List sync runs, newest first
// @Tags sync
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse{items=[]ticketsync.RunDTO}}
// @Router /sync/runs [get]
func (h *SyncHandler) ListRuns(c *gin.Context) {
	result, err := h.runs.ListRuns(c.Request.Context(), utils.ParsePagination(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Runs, result.Total, result.Page, result.PageSize)
}

// GetRun godoc
// @Summary Get one sync run with its failures
// @Tags sync
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} utils.APIResponse{data=ticketsync.RunDTO}
// @Failure 404 {object} utils.APIResponse "Run not found"
// @Router /sync/runs/{id} [get]
func (h *SyncHandler) GetRun(c *gin.Context) {
	result, err := h.runs.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetCursor godoc
// @Summary Scheduler cursor
// @Tags sync
// @Produce json
// @Success 200 {object} utils.APIResponse{data=ticketsync.CursorDTO}
// @Router /sync/cursor [get]
func (h *SyncHandler) GetCursor(c *gin.Context) {
	result, err := h.runs.GetCursor(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}
