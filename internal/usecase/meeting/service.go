package meeting

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/gateways"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/pkg/jobcontext"
)

const meetingIDLayout = "20060102_150405"

var meetingIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type meetingService struct {
	meetings    repositories.MeetingRepository
	audio       repositories.AudioRepository
	transcriber gateways.TranscriptionGateway
	summarizer  gateways.SummaryGateway
	notifier    gateways.StageNotifier
	parser      *Parser
	opts        Options
	allowed     map[string]struct{}
	logger      *zap.Logger
	now         func() time.Time
	newID       func(time.Time) string
}

// NewService constructs the meeting pipeline. A nil notifier disables stage
// events.
func NewService(
	meetings repositories.MeetingRepository,
	audio repositories.AudioRepository,
	transcriber gateways.TranscriptionGateway,
	summarizer gateways.SummaryGateway,
	notifier gateways.StageNotifier,
	opts Options,
	logger *zap.Logger,
) Service {
	if notifier == nil {
		notifier = gateways.NopNotifier{}
	}
	if len(opts.AllowedExtensions) == 0 {
		opts.AllowedExtensions = DefaultAllowedExtensions
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = DefaultMaxUploadBytes
	}

	allowed := make(map[string]struct{}, len(opts.AllowedExtensions))
	for _, ext := range opts.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	return &meetingService{
		meetings:    meetings,
		audio:       audio,
		transcriber: transcriber,
		summarizer:  summarizer,
		notifier:    notifier,
		parser:      NewParser(),
		opts:        opts,
		allowed:     allowed,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       NewMeetingID,
	}
}

// NewMeetingID builds a time-prefixed id with a random suffix, so that two
// ids never share a prefix
func NewMeetingID(at time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return at.Format(meetingIDLayout) + "_" + suffix
}

// CreateMeeting validates and stores the audio, then persists an empty record
func (s *meetingService) CreateMeeting(ctx context.Context, in UploadInput) (*entities.MeetingRecord, error) {
	ext, err := s.checkUpload(in.Filename, in.Size)
	if err != nil {
		return nil, err
	}
	if in.Reader == nil {
		return nil, fmt.Errorf("%w: no audio content", entities.ErrMalformedUpload)
	}

	now := s.now()
	meetingID := s.newID(now)
	audioName := meetingID + "." + ext

	if err := s.audio.Save(ctx, audioName, in.Reader, in.Size, in.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store audio for meeting %s: %w", meetingID, err)
	}

	rec, err := s.meetings.Put(ctx, meetingID, entities.MeetingPatch{CreatedAt: &now})
	if err != nil {
		// an audio file without a record would still match a prefix lookup
		if delErr := s.audio.Delete(context.WithoutCancel(ctx), audioName); delErr != nil && s.logger != nil {
			s.logger.Warn("⚠️ Failed to remove orphaned audio",
				zap.String("meeting_id", meetingID),
				zap.String("audio_file", audioName),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("failed to create meeting %s: %w", meetingID, err)
	}

	if s.logger != nil {
		s.logger.Info("📥 Meeting created",
			zap.String("meeting_id", meetingID),
			zap.String("audio_file", audioName),
			zap.Int64("size_bytes", in.Size),
		)
	}
	s.notify(ctx, meetingID, entities.MeetingStageUpload)

	return rec, nil
}

// Transcribe locates the meeting audio by id prefix and persists the
// transcription stage
func (s *meetingService) Transcribe(ctx context.Context, meetingID string, opts TranscribeOptions) (*TranscribeResult, error) {
	if err := checkMeetingID(meetingID, entities.ErrSourceNotFound); err != nil {
		return nil, err
	}
	ctx = jobcontext.Begin(ctx, meetingID, string(entities.MeetingStageTranscription))

	obj, err := s.audio.FindByPrefix(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up audio for meeting %s: %w", meetingID, err)
	}
	if obj == nil {
		return nil, fmt.Errorf("no audio for meeting %s: %w", meetingID, entities.ErrSourceNotFound)
	}
	if obj.Size > s.opts.MaxUploadBytes {
		return nil, fmt.Errorf("%w: audio %s is %d bytes, limit is %d", entities.ErrMalformedUpload, obj.Name, obj.Size, s.opts.MaxUploadBytes)
	}

	language := opts.Language
	if language == "" {
		language = s.opts.DefaultLanguage
	}

	if s.logger != nil {
		s.logger.Info("🎙️ Starting transcription",
			zap.String("meeting_id", meetingID),
			zap.String("audio_file", obj.Name),
			zap.String("engine", s.transcriber.Name()),
		)
	}

	var result *entities.Transcription
	err = jobcontext.Run(ctx, func(ctx context.Context) error {
		rc, err := s.audio.Open(ctx, obj.Name)
		if err != nil {
			return err
		}
		defer rc.Close()

		result, err = s.transcriber.Transcribe(ctx, rc, obj.Name, language)
		return err
	})
	if err != nil {
		s.logStageFailure(ctx, err)
		return nil, fmt.Errorf("transcription failed for meeting %s: %w", meetingID, stageError(err))
	}
	if result == nil {
		return nil, fmt.Errorf("transcription failed for meeting %s: %w: empty result", meetingID, entities.ErrEngineUnavailable)
	}
	if result.Language == "" {
		result.Language = entities.UnknownLanguage
	}
	if result.Segments == nil {
		result.Segments = []entities.Segment{}
	}

	if _, err := s.meetings.Put(ctx, meetingID, entities.TranscriptionPatch(result)); err != nil {
		return nil, fmt.Errorf("failed to persist transcript for meeting %s: %w", meetingID, err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Transcription completed",
			zap.String("meeting_id", meetingID),
			zap.String("language", result.Language),
			zap.Int("segments", len(result.Segments)),
			zap.Duration("elapsed", jobcontext.Elapsed(ctx)),
		)
	}
	s.notify(ctx, meetingID, entities.MeetingStageTranscription)

	return &TranscribeResult{
		MeetingID:  meetingID,
		Transcript: result.Text,
		Language:   result.Language,
		Segments:   result.Segments,
		AudioFile:  obj.Name,
	}, nil
}

// Summarize reads the persisted transcript, asks the summary engine for a
// three-section answer and persists the parsed result
func (s *meetingService) Summarize(ctx context.Context, meetingID string) (*SummarizeResult, error) {
	if err := checkMeetingID(meetingID, entities.ErrPreconditionFailed); err != nil {
		return nil, err
	}
	ctx = jobcontext.Begin(ctx, meetingID, string(entities.MeetingStageSummarization))

	transcript, err := s.persistedTranscript(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Info("📝 Generating summary",
			zap.String("meeting_id", meetingID),
			zap.String("engine", s.summarizer.Name()),
			zap.Int("transcript_chars", len(transcript)),
		)
	}

	var raw string
	err = jobcontext.Run(ctx, func(ctx context.Context) error {
		var err error
		raw, err = s.summarizer.Generate(ctx, BuildSummaryPrompt(transcript))
		return err
	})
	if err != nil {
		s.logStageFailure(ctx, err)
		return nil, fmt.Errorf("summarization failed for meeting %s: %w", meetingID, stageError(err))
	}

	parsed := s.parser.Parse(raw)
	completedAt := s.now()

	if _, err := s.meetings.Put(ctx, meetingID, entities.SummaryPatch(parsed, completedAt)); err != nil {
		return nil, fmt.Errorf("failed to persist summary for meeting %s: %w", meetingID, err)
	}

	if s.logger != nil {
		s.logger.Info("✅ Summary completed",
			zap.String("meeting_id", meetingID),
			zap.Int("key_decisions", len(parsed.KeyDecisions)),
			zap.Int("action_items", len(parsed.ActionItems)),
			zap.Duration("elapsed", jobcontext.Elapsed(ctx)),
		)
	}
	s.notify(ctx, meetingID, entities.MeetingStageSummarization)

	return &SummarizeResult{
		MeetingID:        meetingID,
		Summary:          parsed.Summary,
		KeyDecisions:     parsed.KeyDecisions,
		ActionItems:      parsed.ActionItems,
		RawResponse:      parsed.RawResponse,
		SummaryTimestamp: completedAt,
	}, nil
}

// Process runs transcription then summarization, each persisted on its own
func (s *meetingService) Process(ctx context.Context, meetingID string, opts TranscribeOptions) (*ProcessResult, error) {
	transcription, err := s.Transcribe(ctx, meetingID, opts)
	if err != nil {
		return nil, err
	}

	result := &ProcessResult{Transcription: transcription}

	summary, err := s.Summarize(ctx, meetingID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Summarization failed, transcript kept",
				zap.String("meeting_id", meetingID),
				zap.Error(err),
			)
		}
		return result, err
	}
	result.Summary = summary

	return result, nil
}

// CustomSummary runs caller instructions against the persisted transcript.
// The answer is returned as-is and not stored.
func (s *meetingService) CustomSummary(ctx context.Context, meetingID, instructions string) (string, error) {
	if strings.TrimSpace(instructions) == "" {
		return "", errors.New("custom instructions cannot be empty")
	}
	if err := checkMeetingID(meetingID, entities.ErrPreconditionFailed); err != nil {
		return "", err
	}
	ctx = jobcontext.Begin(ctx, meetingID, "custom_summary")

	transcript, err := s.persistedTranscript(ctx, meetingID)
	if err != nil {
		return "", err
	}

	var answer string
	err = jobcontext.Run(ctx, func(ctx context.Context) error {
		var err error
		answer, err = s.summarizer.Generate(ctx, BuildCustomPrompt(instructions, transcript))
		return err
	})
	if err != nil {
		s.logStageFailure(ctx, err)
		return "", fmt.Errorf("custom summary failed for meeting %s: %w", meetingID, stageError(err))
	}

	return answer, nil
}

// GetMeeting returns the full record
func (s *meetingService) GetMeeting(ctx context.Context, meetingID string) (*entities.MeetingRecord, error) {
	if err := checkMeetingID(meetingID, entities.ErrMeetingNotFound); err != nil {
		return nil, err
	}

	rec, err := s.meetings.Get(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load meeting %s: %w", meetingID, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("meeting %s: %w", meetingID, entities.ErrMeetingNotFound)
	}
	return rec, nil
}

// ListMeetings returns every meeting in store order
func (s *meetingService) ListMeetings(ctx context.Context) ([]entities.MeetingListItem, error) {
	records, err := s.meetings.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	items := make([]entities.MeetingListItem, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.ListItem())
	}
	return items, nil
}

func (s *meetingService) persistedTranscript(ctx context.Context, meetingID string) (string, error) {
	rec, err := s.meetings.Get(ctx, meetingID)
	if err != nil {
		return "", fmt.Errorf("failed to load meeting %s: %w", meetingID, err)
	}
	if rec == nil || !rec.HasTranscript() {
		return "", fmt.Errorf("meeting %s: %w", meetingID, entities.ErrPreconditionFailed)
	}
	return *rec.Transcript, nil
}

// checkUpload returns the lower-cased extension of an acceptable upload
func (s *meetingService) checkUpload(filename string, size int64) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no file extension", entities.ErrMalformedUpload, filename)
	}
	if _, ok := s.allowed[ext]; !ok {
		return "", fmt.Errorf("%w: file type %q not allowed, allowed types: %s",
			entities.ErrMalformedUpload, ext, strings.Join(s.opts.AllowedExtensions, ", "))
	}
	if size <= 0 {
		return "", fmt.Errorf("%w: %q is empty", entities.ErrMalformedUpload, filename)
	}
	if size > s.opts.MaxUploadBytes {
		return "", fmt.Errorf("%w: %q is %d bytes, limit is %d", entities.ErrMalformedUpload, filename, size, s.opts.MaxUploadBytes)
	}
	return ext, nil
}

func (s *meetingService) notify(ctx context.Context, meetingID string, stage entities.MeetingStage) {
	if err := s.notifier.Notify(ctx, meetingID, stage); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to publish stage event",
			zap.String("meeting_id", meetingID),
			zap.String("stage", string(stage)),
			zap.Error(err),
		)
	}
}

func (s *meetingService) logStageFailure(ctx context.Context, err error) {
	if s.logger == nil {
		return
	}
	meta := jobcontext.GetStageMetadata(ctx)
	s.logger.Error("❌ Stage failed",
		zap.String("meeting_id", meta.MeetingID),
		zap.String("stage", meta.Stage),
		zap.String("run_id", meta.RunID.String()),
		zap.Duration("elapsed", jobcontext.Elapsed(ctx)),
		zap.Error(err),
	)
}

// stageError maps a recovered panic onto the engine taxonomy
func stageError(err error) error {
	var panicErr *jobcontext.PanicError
	if errors.As(err, &panicErr) {
		return fmt.Errorf("%w: %v", entities.ErrEngineUnavailable, panicErr)
	}
	return err
}

// checkMeetingID rejects ids that cannot name a stored meeting
func checkMeetingID(meetingID string, sentinel error) error {
	if !meetingIDPattern.MatchString(meetingID) {
		return fmt.Errorf("invalid meeting id %q: %w", meetingID, sentinel)
	}
	return nil
}
