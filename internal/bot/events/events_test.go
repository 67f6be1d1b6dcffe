package events_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/robalyx/turbo/internal/bot/commands"
	"github.com/robalyx/turbo/internal/bot/events"
	"github.com/robalyx/turbo/internal/filter"
	"github.com/robalyx/turbo/internal/leveling"
	"github.com/robalyx/turbo/internal/platform"
	"github.com/robalyx/turbo/internal/platform/platformtest"
	"github.com/robalyx/turbo/internal/roles"
	"github.com/robalyx/turbo/internal/setup/config"
	"github.com/robalyx/turbo/internal/storage"
	"github.com/robalyx/turbo/internal/trivia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	guildID   snowflake.ID = 1
	logsID    snowflake.ID = 10
	levelID   snowflake.ID = 11
	welcomeID snowflake.ID = 12
	quizID    snowflake.ID = 13
	generalID snowflake.ID = 20

	memberRoleID snowflake.ID = 600
	femaleRoleID snowflake.ID = 500
)

var (
	alice     = discord.User{ID: 42, Username: "alice"}
	moderator = discord.User{ID: 7, Username: "mod"}
	botUser   = discord.User{ID: 99, Username: "turbo", Bot: true}

	fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

type recordingDispatcher struct {
	mu   sync.Mutex
	invs []commands.Invocation
}

func (d *recordingDispatcher) Dispatch(_ context.Context, inv commands.Invocation) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.invs = append(d.invs, inv)
}

type failingStore struct{}

func (failingStore) Load(context.Context) (storage.Table, error) { return storage.Table{}, nil }
func (failingStore) Save(context.Context, storage.Table) error  { return errors.New("disk full") }
func (failingStore) Close() error                                { return nil }

type staticSource struct {
	questions []trivia.RawQuestion
}

func (s staticSource) Questions(context.Context, trivia.Options) ([]trivia.RawQuestion, error) {
	return s.questions, nil
}

type fixture struct {
	fake       *platformtest.Fake
	handler    *events.Handler
	tracker    *leveling.Tracker
	quiz       *trivia.Session
	dispatcher *recordingDispatcher
}

func newFixture(t *testing.T, store storage.Store) *fixture {
	t.Helper()

	if store == nil {
		store = storage.NewJSONStore(filepath.Join(t.TempDir(), "levels.json"))
	}

	tracker, err := leveling.NewTracker(t.Context(), store)
	require.NoError(t, err)

	fake := platformtest.New()
	channels := config.Default().Channels
	fake.AddChannel(logsID, channels.Logs)
	fake.AddChannel(levelID, channels.Level)
	fake.AddChannel(welcomeID, channels.Welcome)
	fake.AddChannel(quizID, channels.Quiz)
	fake.AddChannel(generalID, "general")
	fake.Roles[channels.MemberRole] = memberRoleID
	fake.Roles["female"] = femaleRoleID
	fake.AddUser(alice)
	fake.AddUser(moderator)
	fake.AddUser(botUser)

	session := trivia.NewSession(trivia.WithShuffle(func(int, func(i, j int)) {}))
	dispatcher := &recordingDispatcher{}
	defaults := config.Default()

	handler := events.New(events.Dependencies{
		Platform: fake,
		Rules:    filter.NewRules(defaults.Filter.ForbiddenWords, defaults.Filter.AllowedDomains),
		Tracker:  tracker,
		Quiz:     session,
		Roles:    roles.DefaultTable(),
		Commands: dispatcher,
		Channels: channels,
		Prefix:   defaults.Bot.Prefix,
		Logger:   zaptest.NewLogger(t),
		Now:      func() time.Time { return fixedNow },
	})

	return &fixture{
		fake:       fake,
		handler:    handler,
		tracker:    tracker,
		quiz:       session,
		dispatcher: dispatcher,
	}
}

func message(id snowflake.ID, channelID snowflake.ID, author discord.User, content string) events.Message {
	return events.Message{
		ID:        id,
		ChannelID: channelID,
		GuildID:   guildID,
		Author:    author,
		Content:   content,
	}
}

func TestMessageFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		filtered bool
		wantLog  string
	}{
		{
			name:     "forbidden word",
			content:  "you are a KELB",
			filtered: true,
			wantLog:  "🚨 A message from <@42> was deleted for containing forbidden words.",
		},
		{
			name:     "unauthorized link",
			content:  "see http://evil.example",
			filtered: true,
			wantLog:  "🚨 A message from <@42> was deleted for containing unauthorized links.",
		},
		{name: "allowed link", content: "watch https://youtube.com/watch?v=1"},
		{name: "clean text", content: "good morning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, nil)
			f.handler.OnMessageCreate(t.Context(), message(500, generalID, alice, tt.content))

			if !tt.filtered {
				assert.Empty(t, f.fake.Deleted)
				assert.Empty(t, f.fake.SentTo(logsID))
				assert.Equal(t, 1, f.tracker.Len())
				return
			}

			assert.Equal(t, []snowflake.ID{500}, f.fake.Deleted)
			assert.Equal(t, []string{tt.wantLog}, f.fake.SentTo(logsID))
			assert.Zero(t, f.tracker.Len())
			assert.Empty(t, f.dispatcher.invs)
		})
	}
}

func TestMessageFromBotIgnored(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.handler.OnMessageCreate(t.Context(), message(500, generalID, botUser, "kelb !hello"))

	assert.Empty(t, f.fake.Deleted)
	assert.Empty(t, f.fake.Sent)
	assert.Zero(t, f.tracker.Len())
	assert.Empty(t, f.dispatcher.invs)
}

func TestLevelUpNotifications(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	// First message crosses into level 1
	f.handler.OnMessageCreate(t.Context(), message(500, generalID, alice, "hello everyone"))

	assert.Equal(t, []string{"🎉 <@42>, you have leveled up to **Level 1!** 🌟"}, f.fake.SentTo(levelID))
	require.Len(t, f.fake.DirectSent, 1)
	assert.Equal(t, alice.ID, f.fake.DirectSent[0].ChannelID)
	assert.Contains(t, f.fake.DirectSent[0].Message.Content, "**Level 1** in Test Guild")

	// Points 2 and 3 stay at level 1, point 4 reaches level 2
	for i := range 3 {
		f.handler.OnMessageCreate(t.Context(), message(snowflake.ID(501+i), generalID, alice, "more"))
	}

	assert.Equal(t, []string{
		"🎉 <@42>, you have leveled up to **Level 1!** 🌟",
		"🎉 <@42>, you have leveled up to **Level 2!** 🌟",
	}, f.fake.SentTo(levelID))

	record, ok := f.tracker.Get("42")
	require.True(t, ok)
	assert.Equal(t, storage.PointRecord{Points: 4, Level: 2}, record)
}

func TestLevelUpSurvivesFailures(t *testing.T) {
	t.Parallel()

	t.Run("direct message blocked", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		f.fake.Errors["SendDirectMessage"] = errors.New("cannot send messages to this user")

		f.handler.OnMessageCreate(t.Context(), message(500, generalID, alice, "hi"))

		assert.Len(t, f.fake.SentTo(levelID), 1)
		assert.Empty(t, f.fake.DirectSent)
	})

	t.Run("save failure", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, failingStore{})

		f.handler.OnMessageCreate(t.Context(), message(500, generalID, alice, "hi"))

		assert.Len(t, f.fake.SentTo(levelID), 1)
		record, ok := f.tracker.Get("42")
		require.True(t, ok)
		assert.Equal(t, 1, record.Points)
	})
}

func TestEmptyMessageEarnsNoPoints(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	for i, content := range []string{"", "   \n"} {
		f.handler.OnMessageCreate(t.Context(), message(snowflake.ID(500+i), generalID, alice, content))
	}

	assert.Zero(t, f.tracker.Len())
	assert.Empty(t, f.fake.SentTo(levelID))
	assert.Empty(t, f.fake.DirectSent)
	assert.Empty(t, f.dispatcher.invs)
}

func TestCommandDispatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.handler.OnMessageCreate(t.Context(), message(500, generalID, alice, "!weather New York"))

	require.Len(t, f.dispatcher.invs, 1)
	assert.Equal(t, commands.Invocation{
		GuildID:   guildID,
		ChannelID: generalID,
		MessageID: 500,
		Author:    alice,
		Name:      "weather",
		Args:      []string{"New", "York"},
	}, f.dispatcher.invs[0])

	// Commands still earn points
	assert.Equal(t, 1, f.tracker.Len())
}

func TestMessageEdit(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	f.handler.OnMessageUpdate(t.Context(), message(500, generalID, alice, "edited to bghel"))
	assert.Equal(t, []snowflake.ID{500}, f.fake.Deleted)
	assert.Len(t, f.fake.SentTo(logsID), 1)

	f.handler.OnMessageUpdate(t.Context(), message(501, generalID, alice, "!hello"))
	require.Len(t, f.dispatcher.invs, 1)
	assert.Equal(t, "hello", f.dispatcher.invs[0].Name)

	// Edits never earn points
	assert.Zero(t, f.tracker.Len())
}

func TestQuizAnswers(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	_, err := f.quiz.Start(t.Context(), staticSource{questions: []trivia.RawQuestion{
		{Prompt: "2 + 2?", CorrectAnswer: "4", IncorrectAnswers: []string{"3", "5", "22"}},
		{Prompt: "Capital of France?", CorrectAnswer: "Paris", IncorrectAnswers: []string{"Rome"}},
	}}, trivia.Options{})
	require.NoError(t, err)

	// Options are 3, 5, 22, 4. Answers outside the quiz channel are ignored
	f.handler.OnMessageCreate(t.Context(), message(500, generalID, alice, "4"))
	assert.Empty(t, f.fake.SentTo(quizID))

	f.handler.OnMessageCreate(t.Context(), message(501, quizID, alice, "3"))
	f.handler.OnMessageCreate(t.Context(), message(502, quizID, alice, "9"))
	f.handler.OnMessageCreate(t.Context(), message(503, quizID, alice, "4"))
	f.handler.OnMessageCreate(t.Context(), message(504, quizID, alice, "PARIS"))

	assert.Equal(t, []string{
		"❌ Wrong answer, <@42>. Try again!",
		"⚠️ Invalid option, <@42>. Please choose a valid number.",
		"✅ **Correct!** Well done, <@42>. 🎉 You earned 1 point!",
		"❓ **Question:** Capital of France?\n\n1. rome\n2. paris",
		"✅ **Correct!** Well done, <@42>. 🎉 You earned 1 point!",
		"🎉 **Quiz finished!** No more questions available.",
	}, f.fake.SentTo(quizID))

	assert.True(t, f.quiz.Active())

	standings, err := f.quiz.End()
	require.NoError(t, err)
	assert.Equal(t, []trivia.Standing{{UserID: "42", Score: 2}}, standings)
}

func TestFilteredMessageSkipsQuiz(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	_, err := f.quiz.Start(t.Context(), staticSource{questions: []trivia.RawQuestion{
		{Prompt: "Name an animal", CorrectAnswer: "kelb", IncorrectAnswers: []string{"cat"}},
	}}, trivia.Options{})
	require.NoError(t, err)

	f.handler.OnMessageCreate(t.Context(), message(500, quizID, alice, "kelb"))

	assert.Equal(t, []snowflake.ID{500}, f.fake.Deleted)
	assert.Len(t, f.fake.SentTo(logsID), 1)
	assert.Empty(t, f.fake.SentTo(quizID))
	assert.Zero(t, f.tracker.Len())

	current, ok := f.quiz.Current()
	require.True(t, ok)
	assert.Equal(t, "Name an animal", current.Prompt)

	standings, err := f.quiz.End()
	require.NoError(t, err)
	assert.Empty(t, standings)
}

func TestQuizIgnoresCommands(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	_, err := f.quiz.Start(t.Context(), staticSource{questions: []trivia.RawQuestion{
		{Prompt: "2 + 2?", CorrectAnswer: "4", IncorrectAnswers: []string{"3"}},
	}}, trivia.Options{})
	require.NoError(t, err)

	f.handler.OnMessageCreate(t.Context(), message(500, quizID, alice, "!end_quiz"))

	assert.Empty(t, f.fake.SentTo(quizID))
	require.Len(t, f.dispatcher.invs, 1)
	assert.Equal(t, "end_quiz", f.dispatcher.invs[0].Name)
}

func TestReactionRoles(t *testing.T) {
	t.Parallel()

	aliceMember := &discord.Member{User: alice}
	botMember := &discord.Member{User: botUser}

	tests := []struct {
		name   string
		emoji  string
		member *discord.Member
		want   []platformtest.RoleChange
	}{
		{
			name:   "bound emoji",
			emoji:  "🎀",
			member: aliceMember,
			want:   []platformtest.RoleChange{{UserID: alice.ID, RoleID: femaleRoleID, Added: true}},
		},
		{name: "bot member", emoji: "🎀", member: botMember},
		{name: "unbound emoji", emoji: "🍕", member: aliceMember},
		{name: "role missing in guild", emoji: "💼", member: aliceMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, nil)
			f.handler.OnReactionAdd(t.Context(), events.Reaction{
				GuildID: guildID,
				UserID:  tt.member.User.ID,
				Emoji:   tt.emoji,
				Member:  tt.member,
			})

			assert.Equal(t, tt.want, f.fake.RoleChanges)
		})
	}
}

func TestReactionRemove(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	// Members that left the guild are ignored
	f.handler.OnReactionRemove(t.Context(), events.Reaction{GuildID: guildID, UserID: 12345, Emoji: "🎀"})
	assert.Empty(t, f.fake.RoleChanges)

	f.handler.OnReactionRemove(t.Context(), events.Reaction{GuildID: guildID, UserID: botUser.ID, Emoji: "🎀"})
	assert.Empty(t, f.fake.RoleChanges)

	f.handler.OnReactionRemove(t.Context(), events.Reaction{GuildID: guildID, UserID: alice.ID, Emoji: "🎀"})
	assert.Equal(t, []platformtest.RoleChange{{UserID: alice.ID, RoleID: femaleRoleID}}, f.fake.RoleChanges)
}

func TestMemberJoin(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.handler.OnMemberJoin(t.Context(), guildID, alice)

	assert.Equal(t,
		[]string{"Welcome to the server, <@42>! We're glad to have you here. 🎉"},
		f.fake.SentTo(welcomeID))
	assert.Equal(t,
		[]platformtest.RoleChange{{UserID: alice.ID, RoleID: memberRoleID, Added: true}},
		f.fake.RoleChanges)
}

func TestMemberJoinWithoutChannelOrRole(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	delete(f.fake.Channels, config.Default().Channels.Welcome)
	delete(f.fake.Roles, config.Default().Channels.MemberRole)

	f.handler.OnMemberJoin(t.Context(), guildID, alice)

	assert.Empty(t, f.fake.Sent)
	assert.Empty(t, f.fake.RoleChanges)
}

func TestBanRelay(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.fake.Audit[discord.AuditLogEventMemberBanAdd] = platform.AuditEntry{
		ID:          snowflake.New(fixedNow),
		ModeratorID: moderator.ID,
		TargetID:    alice.ID,
	}
	f.fake.Audit[discord.AuditLogEventMemberBanRemove] = platform.AuditEntry{
		ID:          snowflake.New(fixedNow),
		ModeratorID: 777,
		TargetID:    alice.ID,
	}

	f.handler.OnMemberBan(t.Context(), guildID, alice)
	f.handler.OnMemberUnban(t.Context(), guildID, alice)

	assert.Equal(t, []string{
		"🚨 **BAN**: alice was banned by mod. Reason: No reason provided.",
		"✅ **UNBAN**: alice was unbanned by <@777>.",
	}, f.fake.SentTo(logsID))
}

func TestKickRelay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry platform.AuditEntry
		want  []string
	}{
		{
			name: "recent kick",
			entry: platform.AuditEntry{
				ID:          snowflake.New(fixedNow.Add(-2 * time.Second)),
				ModeratorID: moderator.ID,
				TargetID:    alice.ID,
				Reason:      "spam",
			},
			want: []string{"🚨 **KICK**: alice was kicked by mod. Reason: spam"},
		},
		{
			name: "stale kick",
			entry: platform.AuditEntry{
				ID:          snowflake.New(fixedNow.Add(-30 * time.Second)),
				ModeratorID: moderator.ID,
				TargetID:    alice.ID,
			},
		},
		{
			name: "other target",
			entry: platform.AuditEntry{
				ID:          snowflake.New(fixedNow),
				ModeratorID: moderator.ID,
				TargetID:    botUser.ID,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, nil)
			f.fake.Audit[discord.AuditLogEventMemberKick] = tt.entry

			f.handler.OnMemberLeave(t.Context(), guildID, alice)

			assert.Equal(t, tt.want, f.fake.SentTo(logsID))
		})
	}
}

func TestTimeoutRelay(t *testing.T) {
	t.Parallel()

	until := time.Date(2024, 5, 1, 14, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	same := until

	tests := []struct {
		name   string
		before *time.Time
		after  *time.Time
		want   []string
	}{
		{
			name:  "timed out",
			after: &until,
			want:  []string{"⏱️ **TIMEOUT**: alice was timed out until 2024-05-01 12:30:00 UTC."},
		},
		{
			name:   "timeout lifted",
			before: &until,
			want:   []string{"✅ **TIMEOUT REMOVED**: alice's timeout was lifted."},
		},
		{name: "unchanged", before: &until, after: &same},
		{name: "never timed out"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, nil)
			f.handler.OnMemberUpdate(t.Context(), guildID, alice, tt.before, tt.after)

			assert.Equal(t, tt.want, f.fake.SentTo(logsID))
		})
	}
}

func TestRelayWithoutLogChannel(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	delete(f.fake.Channels, config.Default().Channels.Logs)
	f.fake.Audit[discord.AuditLogEventMemberBanAdd] = platform.AuditEntry{ModeratorID: moderator.ID}

	f.handler.OnMemberBan(t.Context(), guildID, alice)

	assert.Empty(t, f.fake.Sent)
}
