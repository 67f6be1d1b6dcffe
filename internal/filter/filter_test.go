package filter_test

import (
	"testing"

	"github.com/robalyx/turbo/internal/filter"
	"github.com/stretchr/testify/assert"
)

func TestRulesCheck(t *testing.T) {
	t.Parallel()

	rules := filter.NewRules(
		[]string{"7mar", "kelb", "bghel"},
		[]string{"youtube.com", "discord.com"},
	)

	tests := []struct {
		name string
		text string
		want filter.Reason
	}{
		{
			name: "plain message",
			text: "hello everyone",
			want: filter.None,
		},
		{
			name: "forbidden word exact",
			text: "kelb",
			want: filter.ForbiddenWord,
		},
		{
			name: "forbidden word mixed case inside text",
			text: "you are a KeLb!!",
			want: filter.ForbiddenWord,
		},
		{
			name: "forbidden word as substring of a longer word",
			text: "xx7marxx",
			want: filter.ForbiddenWord,
		},
		{
			name: "forbidden word wins over link rule",
			text: "bghel https://evil.example",
			want: filter.ForbiddenWord,
		},
		{
			name: "unauthorized link",
			text: "check https://evil.example/page",
			want: filter.UnauthorizedLink,
		},
		{
			name: "uppercase scheme",
			text: "HTTP://EVIL.EXAMPLE",
			want: filter.UnauthorizedLink,
		},
		{
			name: "allowed domain",
			text: "watch https://www.youtube.com/watch?v=1",
			want: filter.None,
		},
		{
			name: "allowed domain anywhere alongside another link",
			text: "https://evil.example and discord.com",
			want: filter.None,
		},
		{
			name: "allowed domain without http is fine",
			text: "youtube.com is great",
			want: filter.None,
		},
		{
			name: "http substring without a domain",
			text: "httpd is a daemon",
			want: filter.UnauthorizedLink,
		},
		{
			name: "empty text",
			text: "",
			want: filter.None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rules.Check(tt.text))
		})
	}
}

func TestRulesForbiddenAlwaysBlocks(t *testing.T) {
	t.Parallel()

	rules := filter.NewRules([]string{"kelb"}, []string{"discord.com"})
	surroundings := []string{"", " ", "a", "https://discord.com ", "!!", "\n", "KELB"}

	for _, prefix := range surroundings {
		for _, suffix := range surroundings {
			assert.Equal(t, filter.ForbiddenWord, rules.Check(prefix+"kElB"+suffix))
		}
	}
}

func TestNewRulesNormalizes(t *testing.T) {
	t.Parallel()

	rules := filter.NewRules([]string{" KELB ", ""}, []string{"Discord.COM", "  "})

	assert.Equal(t, []string{"kelb"}, rules.ForbiddenWords())
	assert.Equal(t, []string{"discord.com"}, rules.AllowedDomains())
	assert.Equal(t, filter.None, rules.Check("https://DISCORD.com/invite"))
}

func TestReasonString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "forbidden words", filter.ForbiddenWord.String())
	assert.Equal(t, "unauthorized links", filter.UnauthorizedLink.String())
	assert.Equal(t, "none", filter.None.String())
}
