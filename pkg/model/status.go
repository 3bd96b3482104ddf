package model

type LeadStatus string

const (
	StatusPending       LeadStatus = "pending"
	StatusContacted     LeadStatus = "contacted"
	StatusConverted     LeadStatus = "converted"
	StatusNotInterested LeadStatus = "not_interested"
)

var leadTransitions = map[LeadStatus][]LeadStatus{
	StatusPending:   {StatusContacted, StatusConverted, StatusNotInterested},
	StatusContacted: {StatusConverted, StatusNotInterested},
}

func (s LeadStatus) Valid() bool {
	switch s {
	case StatusPending, StatusContacted, StatusConverted, StatusNotInterested:
		return true
	}
	return false
}

func (s LeadStatus) Terminal() bool {
	return s == StatusConverted || s == StatusNotInterested
}

// CanTransition allows forward moves only. Setting the current status again is a no-op
// and allowed; any move back, including to pending, is refused.
func (s LeadStatus) CanTransition(to LeadStatus) bool {
	if !to.Valid() {
		return false
	}
	if s == to {
		return true
	}
	for _, next := range leadTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
)

// Valid is the only guard on application status: admins may move between any two states.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewed, ApplicationShortlisted, ApplicationRejected, ApplicationHired:
		return true
	}
	return false
}

type SubscriptionStatus string

const (
	SubscriptionActive       SubscriptionStatus = "active"
	SubscriptionUnsubscribed SubscriptionStatus = "unsubscribed"
)
