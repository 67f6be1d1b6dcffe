package utils

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/disgoorg/snowflake/v2"
)

// ErrInvalidMention is returned when an argument is neither a user mention nor an ID.
var ErrInvalidMention = errors.New("invalid user mention")

var mentionPattern = regexp.MustCompile(`^<@!?(\d+)>$|^(\d+)$`)

// ParseUserMention extracts the user ID from "<@id>", "<@!id>" or a raw ID.
func ParseUserMention(s string) (snowflake.ID, error) {
	match := mentionPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMention, s)
	}

	raw := match[1]
	if raw == "" {
		raw = match[2]
	}

	id, err := snowflake.Parse(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidMention, s, err)
	}

	return id, nil
}

// UserMention formats a user ID as a mention.
func UserMention(id snowflake.ID) string {
	return "<@" + id.String() + ">"
}
