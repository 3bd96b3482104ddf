package sanitizer

import (
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	defaultRegion      = "IN"
	defaultCountryCode = 91
)

// Phone reduces an Indian number to its 10-digit national form, so "+91 98765 43210",
// "098765-43210" and "9876543210" all become "9876543210". Numbers from other countries
// and unparsable input fall back to their digits, which the mobile rule then rejects.
func Phone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, defaultRegion)
	if err != nil || parsed.GetCountryCode() != defaultCountryCode {
		return Digits(phone)
	}
	return strconv.FormatUint(parsed.GetNationalNumber(), 10)
}

func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
