package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"crmdesk/internal/shared/biztime"
	"crmdesk/internal/shared/errors"
)

// Kind is the value type of a filterable field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindTime
)

// Field is a filterable attribute: the name clients use and the column it maps to.
type Field struct {
	Name   string
	Column string
	Kind   Kind
}

// Fields is the whitelist of filterable fields for one entity, keyed by Field.Name.
type Fields map[string]Field

func NewFields(fields ...Field) Fields {
	m := make(Fields, len(fields))
	for _, f := range fields {
		m[f.Name] = f
	}
	return m
}

// Predicate is one of Equals, Contains, InSet or DateRange.
type Predicate interface {
	Target() Field
	apply(db *gorm.DB) *gorm.DB
}

type Equals struct {
	Field Field
	Value any
}

type Contains struct {
	Field Field
	Text  string
}

type InSet struct {
	Field  Field
	Values []any
}

// DateRange matches From <= column < Before. Either bound may be nil.
type DateRange struct {
	Field  Field
	From   *time.Time
	Before *time.Time
}

func (p Equals) Target() Field    { return p.Field }
func (p Contains) Target() Field  { return p.Field }
func (p InSet) Target() Field     { return p.Field }
func (p DateRange) Target() Field { return p.Field }

func (p Equals) apply(db *gorm.DB) *gorm.DB {
	return db.Where(p.Field.Column+" = ?", p.Value)
}

// likeEscaper escapes LIKE wildcards with '!', which every supported dialect accepts.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (p Contains) apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(p.Text)) + "%"
	return db.Where("LOWER("+p.Field.Column+") LIKE ? ESCAPE '!'", pattern)
}

func (p InSet) apply(db *gorm.DB) *gorm.DB {
	if len(p.Values) == 0 {
		return db.Where("1 = 0")
	}
	return db.Where(p.Field.Column+" IN ?", p.Values)
}

func (p DateRange) apply(db *gorm.DB) *gorm.DB {
	if p.From != nil {
		db = db.Where(p.Field.Column+" >= ?", *p.From)
	}
	if p.Before != nil {
		db = db.Where(p.Field.Column+" < ?", *p.Before)
	}
	return db
}

// Set is a conjunction of predicates.
type Set []Predicate

// Scope applies every predicate as a gorm scope.
func (s Set) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, p := range s {
			db = p.apply(db)
		}
		return db
	}
}

const (
	suffixContains = "__contains"
	suffixIn       = "__in"
	suffixFrom     = "__from"
	suffixTo       = "__to"
)

// reserved query keys belong to paging and sorting, not to filters.
var reserved = map[string]bool{
	"page": true, "page_size": true, "sort_by": true, "sort_order": true,
}

// Parse builds predicates from query-string values:
//
//	status=5            Equals
//	subject__contains=x Contains
//	status__in=4,5      InSet
//	updated__from=...   DateRange lower bound (inclusive)
//	updated__to=...     DateRange upper bound (inclusive day or instant)
//
// Unknown fields and values that do not fit the field kind are validation errors.
func Parse(values url.Values, fields Fields) (Set, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		if !reserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var set Set
	ranges := map[string]*DateRange{}
	var rangeOrder []string

	for _, key := range keys {
		raw := values.Get(key)
		name, op := splitKey(key)

		field, ok := fields[name]
		if !ok {
			return nil, errors.NewValidationError(fmt.Sprintf("unknown filter field %q", name))
		}

		switch op {
		case suffixContains:
			if field.Kind != KindString {
				return nil, errors.NewValidationError(fmt.Sprintf("field %q does not support contains", name))
			}
			set = append(set, Contains{Field: field, Text: raw})
		case suffixIn:
			parts := strings.Split(raw, ",")
			vals := make([]any, 0, len(parts))
			for _, part := range parts {
				v, err := convert(field, strings.TrimSpace(part))
				if err != nil {
					return nil, err
				}
				vals = append(vals, v)
			}
			set = append(set, InSet{Field: field, Values: vals})
		case suffixFrom, suffixTo:
			if field.Kind != KindTime {
				return nil, errors.NewValidationError(fmt.Sprintf("field %q does not support date ranges", name))
			}
			t, dateOnly, err := biztime.ParseTimestamp(raw)
			if err != nil {
				return nil, errors.NewValidationError(fmt.Sprintf("invalid value for %s", key), err.Error())
			}
			r, seen := ranges[name]
			if !seen {
				r = &DateRange{Field: field}
				ranges[name] = r
				rangeOrder = append(rangeOrder, name)
			}
			if op == suffixFrom {
				r.From = &t
			} else {
				end := t.Add(time.Nanosecond)
				if dateOnly {
					end = t.AddDate(0, 0, 1)
				}
				r.Before = &end
			}
		default:
			v, err := convert(field, raw)
			if err != nil {
				return nil, err
			}
			set = append(set, Equals{Field: field, Value: v})
		}
	}

	for _, name := range rangeOrder {
		set = append(set, *ranges[name])
	}
	return set, nil
}

func splitKey(key string) (string, string) {
	for _, suffix := range []string{suffixContains, suffixIn, suffixFrom, suffixTo} {
		if strings.HasSuffix(key, suffix) {
			return strings.TrimSuffix(key, suffix), suffix
		}
	}
	return key, ""
}

func convert(field Field, raw string) (any, error) {
	switch field.Kind {
	case KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("field %q expects an integer", field.Name))
		}
		return n, nil
	case KindTime:
		t, _, err := biztime.ParseTimestamp(raw)
		if err != nil {
			return nil, errors.NewValidationError(fmt.Sprintf("field %q expects a timestamp", field.Name))
		}
		return t, nil
	default:
		return raw, nil
	}
}
