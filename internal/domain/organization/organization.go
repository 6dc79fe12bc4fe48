// Package organization models customer companies. The normalized name is the
// identity that Freshdesk companies are matched on.
package organization

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"crmdesk/internal/shared/errors"
)

const maxNameLength = 200

// NormalizeName is the single normalization used by CRUD writes and by ticket
// sync: Unicode NFC, trimmed, inner whitespace collapsed to one space, upper case.
// "Alianz ", "ALIANZ" and " alianz" all become "ALIANZ".
func NormalizeName(name string) string {
	fields := strings.FieldsFunc(norm.NFC.String(name), unicode.IsSpace)
	// a Caser is stateful, so each call gets its own
	return cases.Upper(language.Und).String(strings.Join(fields, " "))
}

type Organization struct {
	id        uint
	name      string
	domain    string
	phone     string
	notes     string
	createdAt time.Time
	updatedAt time.Time
}

func NewOrganization(name, domain, phone, notes string) (*Organization, error) {
	o := &Organization{
		domain:    strings.ToLower(strings.TrimSpace(domain)),
		phone:     strings.TrimSpace(phone),
		notes:     notes,
		createdAt: time.Now().UTC(),
	}
	if err := o.Rename(name); err != nil {
		return nil, err
	}
	o.updatedAt = o.createdAt
	return o, nil
}

func ReconstructOrganization(id uint, name, domain, phone, notes string, createdAt, updatedAt time.Time) *Organization {
	return &Organization{
		id:        id,
		name:      name,
		domain:    domain,
		phone:     phone,
		notes:     notes,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (o *Organization) ID() uint             { return o.id }
func (o *Organization) Name() string         { return o.name }
func (o *Organization) Domain() string       { return o.domain }
func (o *Organization) Phone() string        { return o.phone }
func (o *Organization) Notes() string        { return o.notes }
func (o *Organization) CreatedAt() time.Time { return o.createdAt }
func (o *Organization) UpdatedAt() time.Time { return o.updatedAt }

func (o *Organization) SetID(id uint) { o.id = id }

// Rename normalizes and validates the new name.
func (o *Organization) Rename(name string) error {
	normalized := NormalizeName(name)
	if normalized == "" {
		return errors.NewValidationError("organization name is required")
	}
	if len([]rune(normalized)) > maxNameLength {
		return errors.NewValidationError("organization name exceeds maximum length of 200 characters")
	}
	o.name = normalized
	o.updatedAt = time.Now().UTC()
	return nil
}

func (o *Organization) UpdateContact(domain, phone, notes *string) {
	if domain != nil {
		o.domain = strings.ToLower(strings.TrimSpace(*domain))
	}
	if phone != nil {
		o.phone = strings.TrimSpace(*phone)
	}
	if notes != nil {
		o.notes = *notes
	}
	o.updatedAt = time.Now().UTC()
}
