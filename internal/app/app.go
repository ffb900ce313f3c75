// Package app builds the meeting pipeline and its backends from
// configuration. The API server and the CLI share it.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/adapter/repository"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/gateways"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/external/assemblyai"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/external/gemini"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/external/groq"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/external/whisper"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/messaging"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
	"github.com/johnquangdev/meeting-summarizer/pkg/jwt"
)

// App owns the pipeline and every connection opened for it
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Service meeting.Service
	// Tokens is nil when API authentication is disabled
	Tokens *jwt.Manager

	closers []func() error
}

// New connects the configured backends and builds the pipeline. On error
// every connection opened so far is closed.
func New(cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	meetings, err := a.newMeetingRepository()
	if err != nil {
		return nil, err
	}

	audio, err := a.newAudioRepository()
	if err != nil {
		return nil, err
	}

	transcriber, err := NewTranscriber(cfg, logger)
	if err != nil {
		return nil, err
	}

	summarizer, err := NewSummarizer(cfg, logger)
	if err != nil {
		return nil, err
	}

	notifier, err := a.newNotifier()
	if err != nil {
		return nil, err
	}

	a.Service = meeting.NewService(meetings, audio, transcriber, summarizer, notifier, meeting.Options{
		AllowedExtensions: cfg.Pipeline.AllowedExtensions,
		MaxUploadBytes:    cfg.Pipeline.MaxUploadBytes,
		DefaultLanguage:   cfg.Pipeline.DefaultLanguage,
	}, logger)

	if cfg.AuthEnabled() {
		a.Tokens = jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenExpiry)
	}

	logger.Info("✅ Pipeline ready",
		zap.String("store", cfg.StoreBackend),
		zap.String("audio", cfg.AudioBackend),
		zap.String("transcription_engine", transcriber.Name()),
		zap.String("summary_engine", summarizer.Name()),
		zap.Bool("auth", a.Tokens != nil),
	)

	return a, nil
}

// Close releases every connection in reverse order of opening
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *App) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

func (a *App) newMeetingRepository() (repositories.MeetingRepository, error) {
	cfg := a.Config

	switch cfg.StoreBackend {
	case config.StoreMemory:
		a.Logger.Warn("⚠️ Using in-memory meeting store, records are lost on exit")
		return repository.NewMemoryMeetingRepository(), nil

	case config.StorePostgres:
		a.Logger.Info("📦 Connecting to database...", zap.String("host", cfg.Database.Host))
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.onClose(func() error { return database.CloseDB(db) })

		if cfg.Database.AutoMigrate {
			a.Logger.Info("🔄 Applying database migrations...")
			if err := database.Migrate(db); err != nil {
				return nil, err
			}
		}
		return repository.NewPostgresMeetingRepository(db), nil

	case config.StoreRedis:
		a.Logger.Info("📦 Connecting to Redis...", zap.String("addr", cfg.GetRedisAddr()))
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		a.onClose(client.Close)
		return repository.NewRedisMeetingRepository(client, cfg.Redis.KeyPrefix), nil

	case config.StoreFile, "":
		repo, err := repository.NewFileMeetingRepository(cfg.Pipeline.DataDir)
		if err != nil {
			return nil, err
		}
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func (a *App) newAudioRepository() (repositories.AudioRepository, error) {
	cfg := a.Config

	switch cfg.AudioBackend {
	case config.AudioMinIO:
		a.Logger.Info("🪣 Connecting to object storage...",
			zap.String("endpoint", cfg.Storage.Endpoint),
			zap.String("bucket", cfg.Storage.BucketName),
		)
		store, err := storage.NewMinIOStore(&cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to object storage: %w", err)
		}
		return store, nil

	case config.AudioLocal, "":
		store, err := storage.NewLocalStore(cfg.Pipeline.UploadDir)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown audio backend %q", cfg.AudioBackend)
	}
}

func (a *App) newNotifier() (gateways.StageNotifier, error) {
	cfg := a.Config
	if cfg.NATS.URL == "" {
		return gateways.NopNotifier{}, nil
	}

	a.Logger.Info("📣 Connecting to NATS...", zap.String("url", cfg.NATS.URL))
	conn, err := messaging.Connect(&cfg.NATS, a.Logger)
	if err != nil {
		return nil, err
	}
	a.onClose(func() error {
		return conn.Drain()
	})
	return messaging.NewNATSNotifier(conn, cfg.NATS.SubjectPrefix, a.Logger), nil
}

// NewTranscriber returns the configured speech-to-text engine. Missing
// credentials surface on the first call, not here.
func NewTranscriber(cfg *config.Config, logger *zap.Logger) (gateways.TranscriptionGateway, error) {
	switch cfg.TranscriptionEngine {
	case config.EngineWhisper:
		return whisper.NewClient(&cfg.Whisper, logger), nil
	case config.EngineAssemblyAI, "":
		return assemblyai.NewClient(&cfg.AssemblyAI, logger), nil
	default:
		return nil, fmt.Errorf("unknown transcription engine %q", cfg.TranscriptionEngine)
	}
}

// NewSummarizer returns the configured generative engine
func NewSummarizer(cfg *config.Config, logger *zap.Logger) (gateways.SummaryGateway, error) {
	switch cfg.SummaryEngine {
	case config.EngineGroq:
		return groq.NewClient(&cfg.Groq, logger), nil
	case config.EngineGemini, "":
		return gemini.NewClient(&cfg.Gemini, logger), nil
	default:
		return nil, fmt.Errorf("unknown summary engine %q", cfg.SummaryEngine)
	}
}
