package dedup

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type mockFinder struct {
	existsFunc func(ctx context.Context, filter bson.M) (bool, error)
	filters    []bson.M
}

func (m *mockFinder) Exists(ctx context.Context, filter bson.M) (bool, error) {
	m.filters = append(m.filters, filter)
	return m.existsFunc(ctx, filter)
}

// memoryFinder answers Exists by replaying Matches over stored records, so the
// filter-building and in-memory predicates are exercised together.
type memoryFinder struct {
	records  []Record
	policy   Policy
	cand     Candidate
	clockNow time.Time
}

func (m *memoryFinder) Exists(_ context.Context, _ bson.M) (bool, error) {
	for _, r := range m.records {
		if m.policy.Matches(r, m.cand, m.clockNow) {
			return true, nil
		}
	}
	return false, nil
}

func TestPolicyFilter(t *testing.T) {
	since := now.Add(-WindowRecent)

	tests := []struct {
		name   string
		policy Policy
		cand   Candidate
		want   bson.M
	}{
		{
			name:   "joint normalizes contact",
			policy: InquiryPolicies[0],
			cand:   Candidate{Email: " Jo@X.com ", Phone: "98765-43210"},
			want: bson.M{
				"email":      "jo@x.com",
				"phone":      "9876543210",
				"created_at": bson.M{"$gte": since, "$lte": now},
			},
		},
		{
			name:   "either uses $or",
			policy: BuilderInquiryPolicies[0],
			cand:   Candidate{Email: "jo@x.com", Phone: "9876543210"},
			want: bson.M{
				"$or":        bson.A{bson.M{"email": "jo@x.com"}, bson.M{"phone": "9876543210"}},
				"created_at": bson.M{"$gte": since, "$lte": now},
			},
		},
		{
			name:   "narrow fields only when present",
			policy: SearchBoxPolicies[0],
			cand:   Candidate{Email: "jo@x.com", Phone: "9876543210", Fields: map[string]string{FieldProjectName: "ATS Pious"}},
			want: bson.M{
				"email":        "jo@x.com",
				"phone":        "9876543210",
				"project_name": "ATS Pious",
				"created_at":   bson.M{"$gte": since, "$lte": now},
			},
		},
		{
			name:   "unbounded window has no time clause",
			policy: NewsletterPolicies[0],
			cand:   Candidate{Email: "jo@x.com", Fields: map[string]string{FieldStatus: "active"}},
			want:   bson.M{"email": "jo@x.com", "status": "active"},
		},
		{
			name:   "joint without phone cannot match",
			policy: InquiryPolicies[0],
			cand:   Candidate{Email: "jo@x.com"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.policy.Filter(tt.cand, now)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %#v\nwant %#v", got, tt.want)
			}
		})
	}
}

func TestPolicyMatches_JointVersusEither(t *testing.T) {
	stored := Record{Email: "jo@x.com", Phone: "9876543210", CreatedAt: now.Add(-time.Hour)}
	otherPhone := Candidate{Email: "JO@x.com", Phone: "9876543211"}

	if InquiryPolicies[0].Matches(stored, otherPhone, now) {
		t.Error("joint policy must not match when only the email repeats")
	}
	if !BuilderInquiryPolicies[0].Matches(stored, otherPhone, now) {
		t.Error("either policy must match when the email repeats")
	}
}

func TestPolicyMatches_Window(t *testing.T) {
	p := InquiryPolicies[0]
	cand := Candidate{Email: "jo@x.com", Phone: "9876543210"}

	inside := Record{Email: "jo@x.com", Phone: "9876543210", CreatedAt: now.Add(-23 * time.Hour)}
	outside := Record{Email: "jo@x.com", Phone: "9876543210", CreatedAt: now.Add(-25 * time.Hour)}

	if !p.Matches(inside, cand, now) {
		t.Error("record inside the window should match")
	}
	if p.Matches(outside, cand, now) {
		t.Error("record outside the window should not match")
	}

	future := Record{Email: "jo@x.com", Phone: "9876543210", CreatedAt: now.Add(48 * time.Hour)}
	if p.Matches(future, cand, now) {
		t.Error("record dated after now should not match a bounded window")
	}

	forever := NewsletterPolicies[0]
	old := Record{Email: "jo@x.com", Fields: map[string]string{FieldStatus: "active"}, CreatedAt: now.AddDate(-5, 0, 0)}
	if !forever.Matches(old, Candidate{Email: "jo@x.com", Fields: map[string]string{FieldStatus: "active"}}, now) {
		t.Error("unbounded window should match any age")
	}
}

func TestPolicyMatches_Narrow(t *testing.T) {
	p := LocationInquiryPolicies[0]
	stored := Record{Email: "jo@x.com", Phone: "9876543210", Fields: map[string]string{FieldLocation: "Noida"}, CreatedAt: now.AddDate(0, 0, -10)}

	same := Candidate{Email: "jo@x.com", Phone: "9876543210", Fields: map[string]string{FieldLocation: "Noida"}}
	other := Candidate{Email: "jo@x.com", Phone: "9876543210", Fields: map[string]string{FieldLocation: "Dhulera"}}

	if !p.Matches(stored, same, now) {
		t.Error("same location within 30 days should match")
	}
	if p.Matches(stored, other, now) {
		t.Error("different location should not match the location policy")
	}
	if LocationInquiryPolicies[1].Matches(stored, other, now) {
		t.Error("10 day old record is outside the 24h fallback window")
	}
}

func TestCheck_ReturnsFirstMatchingPolicy(t *testing.T) {
	finder := &mockFinder{existsFunc: func(_ context.Context, filter bson.M) (bool, error) {
		_, narrowed := filter[FieldLocation]
		return !narrowed, nil
	}}

	cand := Candidate{Email: "jo@x.com", Phone: "9876543210", Fields: map[string]string{FieldLocation: "Noida"}}
	matched, err := Check(context.Background(), finder, LocationInquiryPolicies, cand, now)
	if err != nil {
		t.Fatal(err)
	}
	if matched == nil || matched.Message != MsgContactSoon {
		t.Fatalf("expected the 24h fallback policy, got %+v", matched)
	}
	if len(finder.filters) != 2 {
		t.Errorf("expected two queries, got %d", len(finder.filters))
	}
}

func TestCheck_StopsAtFirstHit(t *testing.T) {
	finder := &mockFinder{existsFunc: func(context.Context, bson.M) (bool, error) { return true, nil }}

	matched, err := Check(context.Background(), finder, CareerPolicies("Sales Executive"), Candidate{Email: "jo@x.com", Fields: map[string]string{FieldPosition: "Sales Executive"}}, now)
	if err != nil {
		t.Fatal(err)
	}
	if matched == nil || !strings.Contains(matched.Message, "position of Sales Executive") {
		t.Fatalf("unexpected match %+v", matched)
	}
	if len(finder.filters) != 1 {
		t.Errorf("expected one query, got %d", len(finder.filters))
	}
}

func TestCheck_NoPolicies(t *testing.T) {
	finder := &mockFinder{existsFunc: func(context.Context, bson.M) (bool, error) { return true, nil }}
	matched, err := Check(context.Background(), finder, nil, Candidate{Email: "jo@x.com"}, now)
	if err != nil || matched != nil {
		t.Fatalf("got %+v, %v", matched, err)
	}
}

func TestIsDuplicate_PropagatesStoreError(t *testing.T) {
	storeErr := errors.New("connection reset")
	finder := &mockFinder{existsFunc: func(context.Context, bson.M) (bool, error) { return false, storeErr }}

	_, err := IsDuplicate(context.Background(), finder, InquiryPolicies[0], Candidate{Email: "jo@x.com", Phone: "9876543210"}, now)
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestIsDuplicate_SkipsQueryWithoutContact(t *testing.T) {
	finder := &mockFinder{existsFunc: func(context.Context, bson.M) (bool, error) { return true, nil }}
	dup, err := IsDuplicate(context.Background(), finder, BuilderInquiryPolicies[0], Candidate{}, now)
	if err != nil || dup {
		t.Fatalf("got %v, %v", dup, err)
	}
	if len(finder.filters) != 0 {
		t.Error("no query expected")
	}
}

// Jo Lee submits, resubmits, then resubmits with a new phone number.
func TestJointPolicyScenario(t *testing.T) {
	p := InquiryPolicies[0]
	first := Candidate{Email: "jo@x.com", Phone: "9876543210"}
	finder := &memoryFinder{policy: p, clockNow: now}

	finder.cand = first
	if dup, _ := IsDuplicate(context.Background(), finder, p, first, now); dup {
		t.Fatal("first submission flagged")
	}
	finder.records = append(finder.records, Record{Email: first.Email, Phone: first.Phone, CreatedAt: now})

	again := now.Add(2 * time.Hour)
	finder.clockNow = again
	if dup, _ := IsDuplicate(context.Background(), finder, p, first, again); !dup {
		t.Fatal("identical resubmission not flagged")
	}

	changed := Candidate{Email: "jo@x.com", Phone: "9876543211"}
	finder.cand = changed
	if dup, _ := IsDuplicate(context.Background(), finder, p, changed, again); dup {
		t.Fatal("changed phone flagged under joint policy")
	}

	later := now.Add(25 * time.Hour)
	finder.cand, finder.clockNow = first, later
	if dup, _ := IsDuplicate(context.Background(), finder, p, first, later); dup {
		t.Fatal("resubmission after the window flagged")
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("+91 (987) 654-3210"); got != "919876543210" {
		t.Errorf("got %q", got)
	}
}

func TestWindowConstants(t *testing.T) {
	if WindowRecent != 24*time.Hour || WindowLocationRepeat != 720*time.Hour || WindowCareerRepeat != 720*time.Hour || WindowForever != 0 {
		t.Fatal("lookback windows changed")
	}
}
