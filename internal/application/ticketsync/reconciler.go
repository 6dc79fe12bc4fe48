package ticketsync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crmdesk/internal/domain/organization"
	"crmdesk/internal/domain/requester"
	"crmdesk/internal/domain/ticket"
	"crmdesk/internal/infrastructure/freshdesk"
	"crmdesk/internal/shared/db"
	apperrors "crmdesk/internal/shared/errors"
	"crmdesk/internal/shared/logger"
)

// htmlSanitizer strips unsafe markup from remote ticket descriptions.
type htmlSanitizer interface {
	SanitizeHTML(html string) string
}

// Failure is one ticket left behind by a run.
type Failure struct {
	TicketID int64
	Err      error
}

// Synced is one ticket written by the reconciler.
type Synced struct {
	TicketID       int64
	OrganizationID *uint
}

type ReconcileResult struct {
	Synced   []Synced
	Failures []Failure
}

type Reconciler struct {
	tx         db.Runner
	orgs       organization.Repository
	requesters requester.Repository
	tickets    ticket.Repository
	aliases    organization.Aliases
	sanitizer  htmlSanitizer
	log        logger.Interface
}

func NewReconciler(
	tx db.Runner,
	orgs organization.Repository,
	requesters requester.Repository,
	tickets ticket.Repository,
	aliases organization.Aliases,
	sanitizer htmlSanitizer,
	log logger.Interface,
) *Reconciler {
	if aliases == nil {
		aliases = organization.NewAliases(nil)
	}
	return &Reconciler{
		tx:         tx,
		orgs:       orgs,
		requesters: requesters,
		tickets:    tickets,
		aliases:    aliases,
		sanitizer:  sanitizer,
		log:        log.Named("reconciler"),
	}
}

// Reconcile writes each record in its own transaction, in order. A record
// that fails is reported and skipped; the rest of the batch still lands.
func (r *Reconciler) Reconcile(ctx context.Context, records []*freshdesk.Ticket) ReconcileResult {
	var result ReconcileResult

	for _, rec := range records {
		if rec == nil {
			continue
		}

		var orgID *uint
		err := r.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
			var err error
			orgID, err = r.reconcileOne(txCtx, rec)
			return err
		})
		if err != nil {
			if apperrors.IsType(err, apperrors.ErrorTypeDataContractViolation) {
				r.log.Warnw("skipping malformed ticket record", "ticket_id", rec.ID, "error", err)
			} else {
				r.log.Errorw("failed to reconcile ticket", "ticket_id", rec.ID, "error", err)
			}
			result.Failures = append(result.Failures, Failure{TicketID: rec.ID, Err: err})
			continue
		}
		result.Synced = append(result.Synced, Synced{TicketID: rec.ID, OrganizationID: orgID})
	}

	return result
}

func (r *Reconciler) reconcileOne(ctx context.Context, rec *freshdesk.Ticket) (*uint, error) {
	if rec.ID <= 0 {
		return nil, apperrors.NewDataContractViolation("ticket record has no id")
	}

	orgID, err := r.resolveOrganization(ctx, rec)
	if err != nil {
		return nil, err
	}

	requesterID, err := r.resolveRequester(ctx, rec, orgID)
	if err != nil {
		return nil, err
	}

	var requesterEmail string
	if rec.Requester != nil {
		requesterEmail = requester.NormalizeEmail(rec.Requester.Email)
	}

	t, err := ticket.NewTicket(ticket.Snapshot{
		ID:             rec.ID,
		Subject:        rec.Subject,
		Status:         ticket.Status(rec.Status),
		Priority:       rec.Priority,
		Type:           rec.Type,
		Source:         rec.Source,
		RequesterEmail: requesterEmail,
		RequesterID:    requesterID,
		OrganizationID: orgID,
		Description:    r.sanitizer.SanitizeHTML(rec.Description),
		CustomFields:   rec.CustomFields,
		Stats:          rec.Stats,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	})
	if err != nil {
		return nil, apperrors.NewDataContractViolation("ticket record is incomplete", err.Error()).WithCause(err)
	}

	if err := r.tickets.Upsert(ctx, t); err != nil {
		return nil, err
	}
	return orgID, nil
}

func (r *Reconciler) resolveOrganization(ctx context.Context, rec *freshdesk.Ticket) (*uint, error) {
	if rec.Company == nil {
		return nil, nil
	}

	name := r.aliases.Resolve(rec.Company.Name)
	if name == "" {
		return nil, apperrors.NewDataContractViolation("company has no name", fmt.Sprintf("company_id=%d", rec.Company.ID))
	}

	org, err := r.orgs.EnsureByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve organization %q: %w", name, err)
	}
	id := org.ID()
	return &id, nil
}

// resolveRequester links by email first, then by remote id, and creates a
// stub when neither matches. A record without either has no requester link.
func (r *Reconciler) resolveRequester(ctx context.Context, rec *freshdesk.Ticket, orgID *uint) (*uint, error) {
	var name, email, phone string
	var remoteID *int64

	if rec.Requester != nil {
		name = rec.Requester.Name
		email = requester.NormalizeEmail(rec.Requester.Email)
		phone = firstNonEmpty(rec.Requester.Phone, rec.Requester.Mobile)
		if rec.Requester.ID > 0 {
			id := rec.Requester.ID
			remoteID = &id
		}
	}
	if remoteID == nil && rec.RequesterID != nil && *rec.RequesterID > 0 {
		remoteID = rec.RequesterID
	}
	if email == "" && remoteID == nil {
		return nil, nil
	}

	existing, err := r.findRequester(ctx, email, remoteID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := r.backfillRemoteID(ctx, rec.ID, existing, remoteID); err != nil {
			return nil, err
		}
		id := existing.ID()
		return &id, nil
	}

	if name == "" && email == "" {
		name = stubName(name, *remoteID)
	}
	stub, err := requester.NewRequester(name, email, phone, remoteID, orgID)
	if err != nil && email != "" {
		// keep the link through the remote id when the address is unusable
		r.log.Warnw("ignoring invalid requester email", "ticket_id", rec.ID, "email", email)
		email = ""
		if remoteID == nil {
			return nil, nil
		}
		stub, err = requester.NewRequester(stubName(name, *remoteID), "", phone, remoteID, orgID)
	}
	if err != nil {
		return nil, apperrors.NewDataContractViolation("requester is unusable", err.Error()).WithCause(err)
	}

	if err := r.requesters.Create(ctx, stub); err != nil {
		if !apperrors.IsConflictError(err) {
			return nil, err
		}
		// created concurrently by someone else; take theirs
		existing, findErr := r.findRequester(ctx, email, remoteID)
		if findErr != nil || existing == nil {
			return nil, errors.Join(err, findErr)
		}
		id := existing.ID()
		return &id, nil
	}

	id := stub.ID()
	return &id, nil
}

// backfillRemoteID records remoteID on an email match that has none. When
// another requester already holds that remote id the email match is kept
// unchanged; the unique index would reject the update on every run.
func (r *Reconciler) backfillRemoteID(ctx context.Context, ticketID int64, matched *requester.Requester, remoteID *int64) error {
	if remoteID == nil || matched.RemoteID() != nil {
		return nil
	}

	owner, err := r.requesters.GetByRemoteID(ctx, *remoteID)
	if err != nil {
		return fmt.Errorf("failed to look up requester remote id: %w", err)
	}
	if owner != nil && owner.ID() != matched.ID() {
		r.log.Warnw("remote id already linked to another requester, keeping email match",
			"ticket_id", ticketID,
			"remote_id", *remoteID,
			"requester_id", matched.ID(),
			"owner_id", owner.ID(),
		)
		return nil
	}

	if !matched.LinkRemote(*remoteID) {
		return nil
	}
	if err := r.requesters.Update(ctx, matched); err != nil {
		return fmt.Errorf("failed to backfill requester remote id: %w", err)
	}
	return nil
}

func (r *Reconciler) findRequester(ctx context.Context, email string, remoteID *int64) (*requester.Requester, error) {
	if email != "" {
		found, err := r.requesters.GetByEmail(ctx, email)
		if err != nil || found != nil {
			return found, err
		}
	}
	if remoteID != nil {
		return r.requesters.GetByRemoteID(ctx, *remoteID)
	}
	return nil, nil
}

func stubName(name string, remoteID int64) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("Freshdesk contact %d", remoteID)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
