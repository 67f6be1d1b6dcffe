package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robalyx/turbo/internal/bot/constants"
)

var (
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
	ErrMissingSecret         = errors.New("required secret is not set")
)

// CurrentVersion is the version of the bot.toml layout.
const CurrentVersion = 1

// ConfigFileName is the file searched for in every config path.
const ConfigFileName = "bot.toml"

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version  int      `koanf:"version"`
	Debug    Debug    `koanf:"debug"`
	Bot      Bot      `koanf:"bot"`
	Channels Channels `koanf:"channels"`
	Filter   Filter   `koanf:"filter"`
	Quiz     Quiz     `koanf:"quiz"`
	Storage  Storage  `koanf:"storage"`
	API      API      `koanf:"api"`
	// Secrets are read from the environment only.
	Secrets Secrets `koanf:"-"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log sessions to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
	// Maximum lines kept in each log file.
	MaxLogLines int `koanf:"max_log_lines"`
}

// Bot contains Discord bot configuration.
type Bot struct {
	// Command prefix.
	Prefix string `koanf:"prefix"`
	// Request timeout in milliseconds for outbound API calls.
	RequestTimeout int `koanf:"request_timeout"`
}

// Timeout returns the request timeout as a duration.
func (b Bot) Timeout() time.Duration {
	return time.Duration(b.RequestTimeout) * time.Millisecond
}

// Channels contains the names of the channels and roles the bot works with.
type Channels struct {
	Welcome string `koanf:"welcome"`
	Logs    string `koanf:"logs"`
	Level   string `koanf:"level"`
	Roles   string `koanf:"roles"`
	Quiz    string `koanf:"quiz"`
	// Role granted to every new member.
	MemberRole string `koanf:"member_role"`
}

// Filter contains the message filter rules.
type Filter struct {
	ForbiddenWords []string `koanf:"forbidden_words"`
	AllowedDomains []string `koanf:"allowed_domains"`
}

// Quiz contains trivia configuration.
type Quiz struct {
	// Number of questions per quiz.
	Amount int `koanf:"amount"`
}

// Storage contains point table persistence configuration.
type Storage struct {
	// Backend is "json" or "sqlite".
	Backend string `koanf:"backend"`
	// Path of the JSON file or SQLite database.
	Path string `koanf:"path"`
}

// API contains the endpoints of the external services.
type API struct {
	TriviaURL  string `koanf:"trivia_url"`
	JokeURL    string `koanf:"joke_url"`
	MemeURL    string `koanf:"meme_url"`
	WeatherURL string `koanf:"weather_url"`
}

// Secrets holds the credentials read from the environment.
type Secrets struct {
	// Discord bot token.
	Token string `env:"TURBO_TOKEN,required,notEmpty"`
	// OpenWeather API key.
	WeatherKey string `env:"OPENWEATHER_API_KEY,required,notEmpty"`
}

// Default returns the configuration used when no config file overrides it.
func Default() Config {
	return Config{
		Version: CurrentVersion,
		Debug: Debug{
			LogLevel:      "info",
			MaxLogsToKeep: 10,
			MaxLogLines:   10000,
		},
		Bot: Bot{
			Prefix:         constants.CommandPrefix,
			RequestTimeout: 10000,
		},
		Channels: Channels{
			Welcome:    constants.WelcomeChannelName,
			Logs:       constants.LogsChannelName,
			Level:      constants.LevelChannelName,
			Roles:      constants.RolesChannelName,
			Quiz:       constants.QuizChannelName,
			MemberRole: constants.MemberRoleName,
		},
		Filter: Filter{
			ForbiddenWords: []string{"7mar", "kelb", "bghel"},
			AllowedDomains: []string{"youtube.com", "discord.com"},
		},
		Quiz: Quiz{
			Amount: 5,
		},
		Storage: Storage{
			Backend: "json",
			Path:    "levels.json",
		},
	}
}

// SearchPaths lists the directories searched for bot.toml, with configDir first
// when set.
func SearchPaths(configDir string) ([]string, error) {
	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	paths := []string{
		".turbo",
		homeDir + "/.turbo/config",
		"/etc/turbo/config",
		"config",
		".",
	}

	if configDir != "" {
		paths = append([]string{configDir}, paths...)
	}

	return paths, nil
}

// LoadConfig loads the configuration from bot.toml, the optional wordlist
// and the environment. Returns the config along with the used config
// directory, which is empty when no file was found.
func LoadConfig(configDir string) (*Config, string, error) {
	paths, err := SearchPaths(configDir)
	if err != nil {
		return nil, "", err
	}

	return Load(paths, env.Options{})
}

// Load reads the first bot.toml found in paths over the defaults, merges the
// wordlist next to it and reads secrets with the given env options.
func Load(paths []string, envOpts env.Options) (*Config, string, error) {
	k := koanf.New(".")

	// Load the first config file found
	var usedConfigPath string

	for _, path := range paths {
		configPath := fmt.Sprintf("%s/%s", path, ConfigFileName)
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, "", fmt.Errorf("error loading %s: %w", configPath, err)
		}

		usedConfigPath = path

		break
	}

	config := Default()
	if usedConfigPath != "" {
		config.Version = 0

		// Lists from the file replace the defaults instead of overlaying them
		if k.Exists("filter.forbidden_words") {
			config.Filter.ForbiddenWords = nil
		}
		if k.Exists("filter.allowed_domains") {
			config.Filter.AllowedDomains = nil
		}

		if err := k.Unmarshal("", &config); err != nil {
			return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
		}

		if err := checkConfigVersion(config.Version); err != nil {
			return nil, "", err
		}

		// Merge the optional wordlist next to the config file
		wordlist, err := LoadWordlist(usedConfigPath)
		if err != nil {
			return nil, "", err
		}

		wordlist.MergeInto(&config.Filter)
	}

	// Read secrets from the environment
	if err := env.ParseWithOptions(&config.Secrets, envOpts); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrMissingSecret, err)
	}

	return &config, usedConfigPath, nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(current int) error {
	if current == 0 {
		return fmt.Errorf("%w: %s", ErrConfigVersionMissing, ConfigFileName)
	}

	if current != CurrentVersion {
		return fmt.Errorf("%w: %s (got: %d, expected: %d)",
			ErrConfigVersionMismatch, ConfigFileName, current, CurrentVersion)
	}

	return nil
}
