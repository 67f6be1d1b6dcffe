package filter

import (
	"strings"
)

// Reason identifies why a message was blocked.
type Reason int

const (
	// None means the message passed every rule.
	None Reason = iota
	// ForbiddenWord means the message contained a forbidden term.
	ForbiddenWord
	// UnauthorizedLink means the message contained a link outside the allowed domains.
	UnauthorizedLink
)

// String returns the human-readable description used in moderation logs.
func (r Reason) String() string {
	switch r {
	case None:
		return "none"
	case ForbiddenWord:
		return "forbidden words"
	case UnauthorizedLink:
		return "unauthorized links"
	default:
		return "unknown"
	}
}

// linkMarker is the rough check used to decide whether a message carries a link.
const linkMarker = "http"

// Rules holds the forbidden terms and allowed link domains.
// Rules is read-only after construction and safe for concurrent use.
type Rules struct {
	forbidden []string
	allowed   []string
}

// NewRules creates a rule set. Terms and domains are lowercased and
// empty entries are dropped so that matching stays case-insensitive.
func NewRules(forbiddenWords, allowedDomains []string) *Rules {
	return &Rules{
		forbidden: normalize(forbiddenWords),
		allowed:   normalize(allowedDomains),
	}
}

// Check evaluates text against the rules. The first matching rule wins:
// forbidden terms are checked before links.
func (r *Rules) Check(text string) Reason {
	lowered := strings.ToLower(text)

	for _, term := range r.forbidden {
		if strings.Contains(lowered, term) {
			return ForbiddenWord
		}
	}

	if strings.Contains(lowered, linkMarker) && !r.containsAllowedDomain(lowered) {
		return UnauthorizedLink
	}

	return None
}

// ForbiddenWords returns a copy of the forbidden term list.
func (r *Rules) ForbiddenWords() []string {
	return append([]string(nil), r.forbidden...)
}

// AllowedDomains returns a copy of the allowed domain list.
func (r *Rules) AllowedDomains() []string {
	return append([]string(nil), r.allowed...)
}

// containsAllowedDomain reports whether any allowed domain appears in text.
func (r *Rules) containsAllowedDomain(text string) bool {
	for _, domain := range r.allowed {
		if strings.Contains(text, domain) {
			return true
		}
	}

	return false
}

func normalize(values []string) []string {
	result := make([]string, 0, len(values))

	for _, value := range values {
		value = strings.ToLower(strings.TrimSpace(value))
		if value != "" {
			result = append(result, value)
		}
	}

	return result
}
