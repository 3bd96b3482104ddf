package dedup

import (
	"fmt"
	"time"
)

// Lookback windows.
const (
	WindowRecent         = 24 * time.Hour
	WindowLocationRepeat = 30 * 24 * time.Hour
	WindowCareerRepeat   = 30 * 24 * time.Hour
	WindowForever        = time.Duration(0)
)

const (
	FieldLocation    = "location"
	FieldProjectName = "project_name"
	FieldPosition    = "position"
	FieldStatus      = "status"
)

const (
	MsgInquiryRecent      = "You have already submitted an inquiry recently"
	MsgContactSoon        = "You have already submitted an inquiry recently. We will contact you soon."
	MsgLocationRepeat     = "You have already submitted an inquiry for this location. Our team will contact you soon."
	MsgSearchBoxRecent    = "You have already submitted a similar enquiry recently"
	MsgNewsletterExists   = "This email is already subscribed to our newsletter"
	MsgApplicationRecent  = "You have already submitted an application recently. We will review it soon."
	msgApplicationRepeatf = "You have already applied for the position of %s recently. We will review your application soon."
)

var (
	InquiryPolicies = []Policy{
		{Name: "inquiry_recent", Window: WindowRecent, Contact: Joint, Message: MsgInquiryRecent},
	}

	BuilderInquiryPolicies = []Policy{
		{Name: "builder_inquiry_recent", Window: WindowRecent, Contact: Either, Message: MsgContactSoon},
	}

	LocationInquiryPolicies = []Policy{
		{Name: "location_inquiry_repeat", Window: WindowLocationRepeat, Contact: Either, Narrow: []string{FieldLocation}, Message: MsgLocationRepeat},
		{Name: "location_inquiry_recent", Window: WindowRecent, Contact: Either, Message: MsgContactSoon},
	}

	SearchBoxPolicies = []Policy{
		{Name: "search_box_recent", Window: WindowRecent, Contact: Joint, Narrow: []string{FieldProjectName, FieldLocation}, Message: MsgSearchBoxRecent},
	}

	NewsletterPolicies = []Policy{
		{Name: "newsletter_subscribed", Window: WindowForever, Contact: EmailOnly, Narrow: []string{FieldStatus}, Message: MsgNewsletterExists},
	}
)

// CareerPolicies carries the position in its first message, so it is built per request.
func CareerPolicies(position string) []Policy {
	return []Policy{
		{Name: "career_position_repeat", Window: WindowCareerRepeat, Contact: EmailOnly, Narrow: []string{FieldPosition}, Message: fmt.Sprintf(msgApplicationRepeatf, position)},
		{Name: "career_recent", Window: WindowRecent, Contact: EmailOnly, Message: MsgApplicationRecent},
	}
}
