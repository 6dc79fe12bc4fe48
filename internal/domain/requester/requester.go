package requester

import (
	"net/mail"
	"strings"
	"time"

	"crmdesk/internal/shared/errors"
)

// Requester is a person who raises tickets. Email and the Freshdesk contact
// ID are both optional, and each is unique when present.
type Requester struct {
	id             uint
	name           string
	email          string
	phone          string
	remoteID       *int64
	organizationID *uint
	createdAt      time.Time
	updatedAt      time.Time
}

// NormalizeEmail lowercases and trims; lookups always go through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NewRequester(name, email, phone string, remoteID *int64, organizationID *uint) (*Requester, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)

	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, errors.NewValidationError("invalid requester email", email)
		}
	}
	if name == "" {
		// remote stubs may arrive without a display name
		name = email
	}
	if name == "" && remoteID == nil {
		return nil, errors.NewValidationError("requester needs a name, an email or a remote id")
	}

	now := time.Now().UTC()
	return &Requester{
		name:           name,
		email:          email,
		phone:          strings.TrimSpace(phone),
		remoteID:       remoteID,
		organizationID: organizationID,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructRequester(id uint, name, email, phone string, remoteID *int64, organizationID *uint, createdAt, updatedAt time.Time) *Requester {
	return &Requester{
		id:             id,
		name:           name,
		email:          email,
		phone:          phone,
		remoteID:       remoteID,
		organizationID: organizationID,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

func (r *Requester) ID() uint              { return r.id }
func (r *Requester) Name() string          { return r.name }
func (r *Requester) Email() string         { return r.email }
func (r *Requester) Phone() string         { return r.phone }
func (r *Requester) RemoteID() *int64      { return r.remoteID }
func (r *Requester) OrganizationID() *uint { return r.organizationID }
func (r *Requester) CreatedAt() time.Time  { return r.createdAt }
func (r *Requester) UpdatedAt() time.Time  { return r.updatedAt }

func (r *Requester) SetID(id uint) { r.id = id }

// Update applies the non-nil fields.
func (r *Requester) Update(name, email, phone *string, organizationID *uint) error {
	if email != nil {
		e := NormalizeEmail(*email)
		if e != "" {
			if _, err := mail.ParseAddress(e); err != nil {
				return errors.NewValidationError("invalid requester email", e)
			}
		}
		r.email = e
	}
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return errors.NewValidationError("requester name cannot be empty")
		}
		r.name = n
	}
	if phone != nil {
		r.phone = strings.TrimSpace(*phone)
	}
	if organizationID != nil {
		r.organizationID = organizationID
	}
	r.updatedAt = time.Now().UTC()
	return nil
}

// LinkRemote records the Freshdesk contact id when it was not known yet.
// It reports whether anything changed.
func (r *Requester) LinkRemote(remoteID int64) bool {
	if r.remoteID != nil || remoteID == 0 {
		return false
	}
	r.remoteID = &remoteID
	r.updatedAt = time.Now().UTC()
	return true
}
