package setup

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/robalyx/turbo/internal/api"
	"github.com/robalyx/turbo/internal/filter"
	"github.com/robalyx/turbo/internal/leveling"
	"github.com/robalyx/turbo/internal/roles"
	"github.com/robalyx/turbo/internal/setup/config"
	"github.com/robalyx/turbo/internal/setup/telemetry"
	"github.com/robalyx/turbo/internal/storage"
	"github.com/robalyx/turbo/internal/trivia"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config     *config.Config     // Application configuration
	Logger     *zap.Logger        // Main application logger
	LogManager *telemetry.Manager // Log management system
	Store      storage.Store      // Point table persistence
	Tracker    *leveling.Tracker  // Points and levels
	Quiz       *trivia.Session    // Trivia quiz state
	Rules      *filter.Rules      // Message filter
	Roles      *roles.Table       // Reaction role bindings
	APIs       *api.Clients       // External service clients
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, configDir, logDir string, console bool) (*App, error) {
	// Load app configuration
	cfg, usedDir, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(logDir, &cfg.Debug, console)

	logger, err := logManager.GetLogger()
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("instance_id", logManager.GetInstanceID()))
	logger.Info("Logging session started", zap.String("session_dir", logManager.GetCurrentSessionDir()))

	if usedDir == "" {
		logger.Info("No config file found, using defaults")
	} else {
		logger.Info("Loaded configuration", zap.String("dir", usedDir))
	}

	// Load the point table
	store, err := storage.New(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		_ = logManager.Close()
		return nil, err
	}

	tracker, err := leveling.NewTracker(ctx, store)
	if err != nil {
		_ = store.Close()
		_ = logManager.Close()
		return nil, err
	}

	logger.Info("Loaded point table",
		zap.String("backend", cfg.Storage.Backend),
		zap.Int("users", tracker.Len()))

	roleTable := roles.DefaultTable()
	for emoji, names := range roleTable.Collisions() {
		logger.Warn("Emoji bound to several roles, the first category wins",
			zap.String("emoji", emoji),
			zap.Strings("roles", names))
	}

	rules := filter.NewRules(cfg.Filter.ForbiddenWords, cfg.Filter.AllowedDomains)
	logger.Info("Loaded filter rules",
		zap.Int("forbidden_words", len(rules.ForbiddenWords())),
		zap.Strings("allowed_domains", rules.AllowedDomains()))

	apis := api.New(api.Config{
		TriviaURL:  cfg.API.TriviaURL,
		JokeURL:    cfg.API.JokeURL,
		MemeURL:    cfg.API.MemeURL,
		WeatherURL: cfg.API.WeatherURL,
		WeatherKey: cfg.Secrets.WeatherKey,
		Timeout:    cfg.Bot.Timeout(),
	}, logger)

	// Bundle all initialized components
	return &App{
		Config:     cfg,
		Logger:     logger,
		LogManager: logManager,
		Store:      store,
		Tracker:    tracker,
		Quiz:       trivia.NewSession(trivia.WithAmount(cfg.Quiz.Amount)),
		Rules:      rules,
		Roles:      roleTable,
		APIs:       apis,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup() {
	if err := s.Store.Close(); err != nil {
		s.Logger.Error("Failed to close point store", zap.Error(err))
	}

	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.LogManager.Close(); err != nil {
		log.Printf("Failed to close log files: %v", err)
	}
}
