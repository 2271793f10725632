package enums

import "fmt"

// NoticeSeverity classifies shopper-facing notices.
type NoticeSeverity string

const (
	NoticeSeverityError   NoticeSeverity = "error"
	NoticeSeveritySuccess NoticeSeverity = "success"
	NoticeSeverityNotice  NoticeSeverity = "notice"
)

var validNoticeSeverities = []NoticeSeverity{
	NoticeSeverityError,
	NoticeSeveritySuccess,
	NoticeSeverityNotice,
}

// String implements fmt.Stringer.
func (s NoticeSeverity) String() string {
	return string(s)
}

// IsValid reports whether the value is a known NoticeSeverity.
func (s NoticeSeverity) IsValid() bool {
	for _, candidate := range validNoticeSeverities {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseNoticeSeverity converts raw input into a NoticeSeverity.
func ParseNoticeSeverity(value string) (NoticeSeverity, error) {
	for _, candidate := range validNoticeSeverities {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notice severity %q", value)
}
