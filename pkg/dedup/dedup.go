// Package dedup decides whether an incoming submission repeats one already stored.
//
// Each endpoint owns its own ordered list of policies; they are deliberately not unified.
// The check runs as a single existence query before the insert and is not atomic with it,
// so two identical submissions racing each other can both pass. Collections that cannot
// tolerate that (newsletter email) carry a unique index instead.
package dedup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldCreatedAt = "created_at"
)

type ContactMatch int

const (
	// Joint requires both email and phone to match.
	Joint ContactMatch = iota
	// Either matches on email or phone.
	Either
	EmailOnly
)

func (m ContactMatch) String() string {
	switch m {
	case Joint:
		return "joint"
	case Either:
		return "either"
	case EmailOnly:
		return "email_only"
	default:
		return fmt.Sprintf("ContactMatch(%d)", int(m))
	}
}

type Policy struct {
	Name    string
	Window  time.Duration
	Contact ContactMatch
	// Narrow lists extra fields that must match exactly, applied only when the
	// candidate carries a value for them.
	Narrow  []string
	Message string
}

type Candidate struct {
	Email  string
	Phone  string
	Fields map[string]string
}

// Record is a stored submission as seen by Matches.
type Record struct {
	Email     string
	Phone     string
	Fields    map[string]string
	CreatedAt time.Time
}

type Finder interface {
	Exists(ctx context.Context, filter bson.M) (bool, error)
}

// Filter builds the store query for c. It returns nil when the candidate has no contact
// value the policy can key on.
func (p Policy) Filter(c Candidate, now time.Time) bson.M {
	email, phone := NormalizeEmail(c.Email), NormalizePhone(c.Phone)

	filter := bson.M{}
	switch p.Contact {
	case Joint:
		if email == "" || phone == "" {
			return nil
		}
		filter[FieldEmail] = email
		filter[FieldPhone] = phone
	case Either:
		var or bson.A
		if email != "" {
			or = append(or, bson.M{FieldEmail: email})
		}
		if phone != "" {
			or = append(or, bson.M{FieldPhone: phone})
		}
		if len(or) == 0 {
			return nil
		}
		filter["$or"] = or
	case EmailOnly:
		if email == "" {
			return nil
		}
		filter[FieldEmail] = email
	default:
		return nil
	}

	for _, field := range p.Narrow {
		if v := c.Fields[field]; v != "" {
			filter[field] = v
		}
	}

	if p.Window > 0 {
		filter[FieldCreatedAt] = bson.M{"$gte": now.Add(-p.Window), "$lte": now}
	}
	return filter
}

// Matches evaluates the same predicate as Filter against an in-memory record.
func (p Policy) Matches(r Record, c Candidate, now time.Time) bool {
	email, phone := NormalizeEmail(c.Email), NormalizePhone(c.Phone)
	recEmail, recPhone := NormalizeEmail(r.Email), NormalizePhone(r.Phone)

	switch p.Contact {
	case Joint:
		if email == "" || phone == "" || email != recEmail || phone != recPhone {
			return false
		}
	case Either:
		emailHit := email != "" && email == recEmail
		phoneHit := phone != "" && phone == recPhone
		if !emailHit && !phoneHit {
			return false
		}
	case EmailOnly:
		if email == "" || email != recEmail {
			return false
		}
	default:
		return false
	}

	for _, field := range p.Narrow {
		if v := c.Fields[field]; v != "" && r.Fields[field] != v {
			return false
		}
	}

	if p.Window > 0 && (r.CreatedAt.Before(now.Add(-p.Window)) || r.CreatedAt.After(now)) {
		return false
	}
	return true
}

func IsDuplicate(ctx context.Context, finder Finder, p Policy, c Candidate, now time.Time) (bool, error) {
	filter := p.Filter(c, now)
	if filter == nil {
		return false, nil
	}
	found, err := finder.Exists(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("dedup %s: %w", p.Name, err)
	}
	return found, nil
}

// Check runs policies in order and returns the first one that matched, or nil.
func Check(ctx context.Context, finder Finder, policies []Policy, c Candidate, now time.Time) (*Policy, error) {
	for i := range policies {
		dup, err := IsDuplicate(ctx, finder, policies[i], c, now)
		if err != nil {
			return nil, err
		}
		if dup {
			return &policies[i], nil
		}
	}
	return nil, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
