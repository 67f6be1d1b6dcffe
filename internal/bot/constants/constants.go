package constants

const (
	// Bot.
	BotName       = "TURBO"
	CommandPrefix = "!"

	// Channels.
	WelcomeChannelName = "👋welcome"
	LogsChannelName    = "📬logs"
	LevelChannelName   = "📈level"
	RolesChannelName   = "⭕roles"
	QuizChannelName    = "🤔quiz"

	// Roles.
	MemberRoleName = "Member"

	// Colors.
	WeatherEmbedColor = 0x3498DB

	// Leaderboard.
	LeaderboardSize    = 10
	UnknownUserName    = "[Unknown User]"
	LeaderboardFile    = "leaderboard.png"
	ClearConfirmTTLSec = 5

	// Kick audit entries older than this are not attributed to a member leave.
	KickAuditWindowSec = 10

	// Timestamps.
	TimeoutExpiryLayout = "2006-01-02 15:04:05 UTC"
)

// Centralized command error replies.
const (
	MissingPermissionsMessage = "You don't have the necessary permissions to run this command. 🚫"
	MissingArgumentMessage    = "Please provide all required arguments for the command. 🤔"
	BadArgumentMessage        = "Please provide valid arguments for the command. 🤔"
	CommandNotFoundMessage    = "Command not found. Try `!help` to see the available commands. 🤔"
	CommandFailedMessage      = "An error occurred while running the command. 😢"
)

// Event pipeline messages. Format verbs are filled with mentions or names.
const (
	WelcomeMessage           = "Welcome to the server, %s! We're glad to have you here. 🎉"
	FilteredMessage          = "🚨 A message from %s was deleted for containing %s."
	LevelUpBroadcastMessage  = "🎉 %s, you have leveled up to **Level %d!** 🌟"
	LevelUpDirectMessage     = "🚀 Congratulations! You've reached **Level %d** in %s! Keep it up! 🌟"
	BanLogMessage            = "🚨 **BAN**: %s was banned by %s. Reason: %s"
	UnbanLogMessage          = "✅ **UNBAN**: %s was unbanned by %s."
	KickLogMessage           = "🚨 **KICK**: %s was kicked by %s. Reason: %s"
	TimeoutLogMessage        = "⏱️ **TIMEOUT**: %s was timed out until %s."
	TimeoutRemovedLogMessage = "✅ **TIMEOUT REMOVED**: %s's timeout was lifted."
	NoReasonProvided         = "No reason provided."
)

// Quiz messages.
const (
	QuizChannelOnlyMessage    = "⚠️ This command can only be used in the `%s` channel."
	QuizAlreadyRunningMessage = "🚨 A quiz is already running! Use `!end_quiz` to stop the current quiz."
	QuizNotRunningMessage     = "⚠️ No quiz is currently running!"
	QuizFetchFailedMessage    = "⚠️ Failed to fetch quiz questions. Please try again later."
	QuizUnreachableMessage    = "⚠️ Unable to connect to the trivia API. Please try again later."
	QuizStartedMessage        = "🎉 **Quiz started!** Mods or Admins can end it using `!end_quiz`. Get ready!"
	QuizQuestionMessage       = "❓ **Question:** %s\n\n%s"
	QuizFinishedMessage       = "🎉 **Quiz finished!** No more questions available."
	QuizEndedMessage          = "🚨 **Quiz ended!** Here are the final scores:"
	QuizLeaderboardMessage    = "🏆 **Final Leaderboard** 🏆\n%s"
	QuizNoParticipantsMessage = "No one participated in the quiz. 😢"
	QuizCorrectMessage        = "✅ **Correct!** Well done, %s. 🎉 You earned 1 point!"
	QuizWrongMessage          = "❌ Wrong answer, %s. Try again!"
	QuizInvalidOptionMessage  = "⚠️ Invalid option, %s. Please choose a valid number."
)

// Command replies.
const (
	HelloMessage            = "Hello! TURBO is online and ready!"
	BannedMessage           = "%s has been banned. 🚫"
	KickedMessage           = "%s has been kicked. 👢"
	UnbannedMessage         = "%s has been unbanned. ✅"
	TimedOutMessage         = "%s has been timed out for %s. Timeout ends at %s. ⏱️"
	InvalidDurationMessage  = "⛔ Invalid duration format. Use something like `10m` (minutes), `2h` (hours)."
	ClearedMessage          = "Cleared %d messages. 🧹"
	JokeFailedMessage       = "Désolé, je n'ai pas pu récupérer une blague pour le moment. 😢"
	MemeFailedMessage       = "Désolé, je n'ai pas pu récupérer un meme pour le moment. 😢"
	MemeFooter              = "Source: r/memes"
	UnknownActionMessage    = "🤔 I don't know how to do that. Try one of these: %s."
	NoPointsMessage         = "%s, you have no points yet. Start chatting to earn points! 🌟"
	PointsMessage           = "%s, you currently have **%d points** and are at **Level %d!** 🚀"
	NoLeaderboardMessage    = "No data available yet. Start chatting to earn points! 🌟"
	LeaderboardHeader       = "**🏆 Leaderboard 🏆**\n"
	LeaderboardLine         = "%d. %s: %d points (Level %d)\n"
	QuizCategoriesHeader    = "**Available Quiz Categories**\n"
	RolesChannelMissing     = "Roles channel not found!"
	RolesSetupComplete      = "Reaction roles setup complete!"
	WeatherCityNotFound     = "City not found. Please check the spelling and try again. 🌍"
	WeatherFailedMessage    = "Sorry, I couldn't fetch the weather data right now. Please try again later. 😢"
	WeatherFooter           = "Data provided by OpenWeather"
	WeatherTitle            = "Weather in %s"
	LeaderboardChartMessage = "Top %d by points"
)

// Action replies keyed by action name.
const (
	ActionDance = "💃 TURBO is dancing to the rhythm!"
	ActionLaugh = "😂 TURBO is laughing uncontrollably!"
	ActionSing  = "🎤 TURBO is singing a beautiful melody!"
	ActionRun   = "🏃 TURBO is running at lightning speed!"
	ActionSleep = "😴 TURBO is taking a nap!"
)

// HelpMessage lists every command.
const HelpMessage = `
**Available Commands**

**General:**
- ` + "`!hello`" + `: Displays a welcome message.
- ` + "`!blague`" + `: Fetches a random joke.
- ` + "`!meme`" + `: Fetches a random meme.
- ` + "`!action [action]`" + `: Simulates an action (e.g., dance, laugh).

**Services:**
- ` + "`!weather [city]`" + `: Fetches the current weather for a city.

**Moderation:**
- ` + "`!ban [member] [reason]`" + `: Bans a member.
- ` + "`!kick [member] [reason]`" + `: Kicks a member.
- ` + "`!unban [user] [reason]`" + `: Unbans a user.
- ` + "`!timeout [member] [duration] [reason]`" + `: Times out a member for a specified duration.
- ` + "`!clear [amount]`" + `: Clears a specified number of messages.

**Reaction Roles:**
- ` + "`!setup_roles`" + `: Sets up reaction role messages in the roles channel.

**Levels:**
- ` + "`!mon_niveau`" + `: Displays your current points and level.
- ` + "`!leaderboard`" + `: Displays the top users by points.

**Quiz:**
- ` + "`!start_quiz [category] [difficulty]`" + `: Starts a quiz with optional arguments:
  - **Category (optional)**: Specify a category ID. Use ` + "`!quiz_categories`" + ` to view available categories.
  - **Difficulty (optional)**: Specify 'easy', 'medium', or 'hard'.
  - Example: ` + "`!start_quiz 18 medium`" + `
- ` + "`!end_quiz`" + `: Ends the current quiz.
- ` + "`!quiz_categories`" + `: Displays a list of quiz categories and their IDs.

**Miscellaneous:**
- ` + "`!help`" + `: Displays this help message.

Use each command with the specified arguments if needed! 🚀
`
