// Package platformtest provides an in-memory platform.Client for tests.
package platformtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/turbo/internal/platform"
)

// SentMessage is a message posted through the fake.
type SentMessage struct {
	ChannelID snowflake.ID
	MessageID snowflake.ID
	Message   discord.MessageCreate
}

// RoleChange is a role grant or revocation.
type RoleChange struct {
	UserID snowflake.ID
	RoleID snowflake.ID
	Added  bool
}

// Moderation is a ban, unban, kick or timeout call.
type Moderation struct {
	Action string
	UserID snowflake.ID
	Reason string
	Until  time.Time
}

// Reaction is a reaction added by the bot.
type Reaction struct {
	ChannelID snowflake.ID
	MessageID snowflake.ID
	Emoji     string
}

// Fake is a platform.Client that records every mutating call and serves
// lookups from its exported maps. Populate the maps before use.
type Fake struct {
	mu sync.Mutex

	GuildNameValue string
	Channels       map[string]snowflake.ID
	ChannelNames   map[snowflake.ID]string
	Roles          map[string]snowflake.ID
	Users          map[snowflake.ID]discord.User
	Members        map[snowflake.ID]discord.Member
	Permissions    map[snowflake.ID]discord.Permissions
	Audit          map[discord.AuditLogEvent]platform.AuditEntry
	// Errors makes the named method fail with the given error.
	Errors map[string]error

	Sent        []SentMessage
	DirectSent  []SentMessage
	Deleted     []snowflake.ID
	Purged      int
	Reactions   []Reaction
	RoleChanges []RoleChange
	Moderations []Moderation

	nextID snowflake.ID
}

// New creates an empty fake.
func New() *Fake {
	return &Fake{
		GuildNameValue: "Test Guild",
		Channels:       make(map[string]snowflake.ID),
		ChannelNames:   make(map[snowflake.ID]string),
		Roles:          make(map[string]snowflake.ID),
		Users:          make(map[snowflake.ID]discord.User),
		Members:        make(map[snowflake.ID]discord.Member),
		Permissions:    make(map[snowflake.ID]discord.Permissions),
		Audit:          make(map[discord.AuditLogEvent]platform.AuditEntry),
		Errors:         make(map[string]error),
		nextID:         1_000_000,
	}
}

// AddChannel registers a text channel under both lookups.
func (f *Fake) AddChannel(id snowflake.ID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Channels[name] = id
	f.ChannelNames[id] = name
}

// AddUser registers a user and a matching guild member.
func (f *Fake) AddUser(user discord.User) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Users[user.ID] = user
	f.Members[user.ID] = discord.Member{User: user}
}

// SentTo returns the contents of messages posted in a channel, in order.
func (f *Fake) SentTo(channelID snowflake.ID) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var contents []string
	for _, sent := range f.Sent {
		if sent.ChannelID == channelID {
			contents = append(contents, sent.Message.Content)
		}
	}
	return contents
}

// EmbedsTo returns the embeds of messages posted in a channel, in order.
func (f *Fake) EmbedsTo(channelID snowflake.ID) []discord.Embed {
	f.mu.Lock()
	defer f.mu.Unlock()

	var embeds []discord.Embed
	for _, sent := range f.Sent {
		if sent.ChannelID == channelID {
			embeds = append(embeds, sent.Message.Embeds...)
		}
	}
	return embeds
}

// Mutations counts calls that change guild or member state.
func (f *Fake) Mutations() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.RoleChanges) + len(f.Moderations) + len(f.Deleted) + f.Purged
}

func (f *Fake) fail(method string) error {
	if err, ok := f.Errors[method]; ok {
		return err
	}
	return nil
}

// SendMessage implements platform.Client.
func (f *Fake) SendMessage(_ context.Context, channelID snowflake.ID, msg discord.MessageCreate) (*discord.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail("SendMessage"); err != nil {
		return nil, err
	}

	f.nextID++
	f.Sent = append(f.Sent, SentMessage{ChannelID: channelID, MessageID: f.nextID, Message: msg})

	return &discord.Message{ID: f.nextID, ChannelID: channelID, Content: msg.Content}, nil
}

// SendDirectMessage implements platform.Client.
func (f *Fake) SendDirectMessage(_ context.Context, userID snowflake.ID, msg discord.MessageCreate) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail("SendDirectMessage"); err != nil {
		return fmt.Errorf("%w: %w", platform.ErrDirectMessageFailed, err)
	}

	f.DirectSent = append(f.DirectSent, SentMessage{ChannelID: userID, Message: msg})
	return nil
}

// DeleteMessage implements platform.Client.
func (f *Fake) DeleteMessage(_ context.Context, _, messageID snowflake.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail("DeleteMessage"); err != nil {
		return err
	}

	f.Deleted = append(f.Deleted, messageID)
	return nil
}

// PurgeMessages implements platform.Client.
func (f *Fake) PurgeMessages(_ context.Context, _ snowflake.ID, limit int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail("PurgeMessages"); err != nil {
		return 0, err
	}

	f.Purged += limit
	return limit, nil
}

// AddReaction implements platform.Client.
func (f *Fake) AddReaction(_ context.Context, channelID, messageID snowflake.ID, emoji string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail("AddReaction"); err != nil {
		return err
	}

	f.Reactions = append(f.Reactions, Reaction{ChannelID: channelID, MessageID: messageID, Emoji: emoji})
	return nil
}

// AddMemberRole implements platform.Client.
func (f *Fake) AddMemberRole(_ context.Context, _, userID, roleID snowflake.ID) error {
	return f.roleChange(userID, roleID, true)
}

// RemoveMemberRole implements platform.Client.
func (f *Fake) RemoveMemberRole(_ context.Context, _, userID, roleID snowflake.ID) error {
	return f.roleChange(userID, roleID, false)
}

func (f *Fake) roleChange(userID, roleID snowflake.ID, added bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail("RoleChange"); err != nil {
		return err
	}

	f.RoleChanges = append(f.RoleChanges, RoleChange{UserID: userID, RoleID: roleID, Added: added})
	return nil
}

// Ban implements platform.Client.
func (f *Fake) Ban(_ context.Context, _, userID snowflake.ID, reason string) error {
	return f.moderate(Moderation{Action: "ban", UserID: userID, Reason: reason})
}

// Unban implements platform.Client.
func (f *Fake) Unban(_ context.Context, _, userID snowflake.ID, reason string) error {
	return f.moderate(Moderation{Action: "unban", UserID: userID, Reason: reason})
}

// Kick implements platform.Client.
func (f *Fake) Kick(_ context.Context, _, userID snowflake.ID, reason string) error {
	return f.moderate(Moderation{Action: "kick", UserID: userID, Reason: reason})
}

// Timeout implements platform.Client.
func (f *Fake) Timeout(_ context.Context, _, userID snowflake.ID, until time.Time, reason string) error {
	return f.moderate(Moderation{Action: "timeout", UserID: userID, Reason: reason, Until: until})
}

func (f *Fake) moderate(m Moderation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.fail("Moderate"); err != nil {
		return err
	}

	f.Moderations = append(f.Moderations, m)
	return nil
}

// Member implements platform.Client.
func (f *Fake) Member(_ context.Context, _, userID snowflake.ID) (*discord.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	member, ok := f.Members[userID]
	if !ok {
		return nil, fmt.Errorf("%w: member %s", platform.ErrNotFound, userID)
	}
	return &member, nil
}

// User implements platform.Client.
func (f *Fake) User(_ context.Context, userID snowflake.ID) (*discord.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := f.Users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: user %s", platform.ErrNotFound, userID)
	}
	return &user, nil
}

// MemberPermissions implements platform.Client.
func (f *Fake) MemberPermissions(_ context.Context, _, userID snowflake.ID) (discord.Permissions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.Permissions[userID], nil
}

// LatestAuditEntry implements platform.Client.
func (f *Fake) LatestAuditEntry(
	_ context.Context, _ snowflake.ID, action discord.AuditLogEvent,
) (platform.AuditEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.Audit[action]
	if !ok {
		return platform.AuditEntry{}, platform.ErrNotFound
	}
	return entry, nil
}

// TextChannelByName implements platform.Client.
func (f *Fake) TextChannelByName(_ context.Context, _ snowflake.ID, name string) (snowflake.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.Channels[name]
	if !ok {
		return 0, fmt.Errorf("%w: channel %q", platform.ErrNotFound, name)
	}
	return id, nil
}

// RoleByName implements platform.Client.
func (f *Fake) RoleByName(_ context.Context, _ snowflake.ID, name string) (snowflake.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.Roles[name]
	if !ok {
		return 0, fmt.Errorf("%w: role %q", platform.ErrNotFound, name)
	}
	return id, nil
}

// ChannelName implements platform.Client.
func (f *Fake) ChannelName(_ context.Context, channelID snowflake.ID) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.ChannelNames[channelID], nil
}

// GuildName implements platform.Client.
func (f *Fake) GuildName(context.Context, snowflake.ID) (string, error) {
	return f.GuildNameValue, nil
}

var _ platform.Client = (*Fake)(nil)
