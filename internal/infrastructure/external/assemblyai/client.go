package assemblyai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/external"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

const engineName = "assemblyai"

// maxSegmentWords bounds a word-grouped segment when no sentence end appears
const maxSegmentWords = 40

// Client transcribes audio with the official AssemblyAI SDK
type Client struct {
	sdk           *aai.Client
	hasKey        bool
	speakerLabels bool
	logger        *zap.Logger
}

// NewClient creates an AssemblyAI client from config
func NewClient(cfg *config.AssemblyAIConfig, logger *zap.Logger) *Client {
	opts := []aai.ClientOption{aai.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, aai.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		sdk:           aai.NewClientWithOptions(opts...),
		hasKey:        cfg.APIKey != "",
		speakerLabels: cfg.SpeakerLabels,
		logger:        logger,
	}
}

// Name identifies the engine in logs
func (c *Client) Name() string {
	return engineName
}

// Transcribe uploads the audio, waits for the transcript and maps it onto
// time-stamped segments
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename, languageHint string) (*entities.Transcription, error) {
	if !c.hasKey {
		return nil, external.MissingKey(engineName)
	}
	if audio == nil {
		return nil, fmt.Errorf("%s: %w", filename, entities.ErrSourceNotFound)
	}

	params := &aai.TranscriptOptionalParams{
		SpeakerLabels: aai.Bool(c.speakerLabels),
	}
	if languageHint != "" {
		params.LanguageCode = aai.TranscriptLanguageCode(languageHint)
	} else {
		params.LanguageDetection = aai.Bool(true)
	}

	if c.logger != nil {
		c.logger.Info("📤 Uploading audio to AssemblyAI",
			zap.String("file", filename),
			zap.Bool("speaker_labels", c.speakerLabels),
		)
	}

	transcript, err := c.sdk.Transcripts.TranscribeFromReader(ctx, audio, params)
	if err != nil {
		return nil, classifyError(err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "transcription failed"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, external.Unavailable(engineName, errors.New(msg))
	}

	return toTranscription(transcript), nil
}

// classifyError prefers the HTTP status of an aai.APIError over the message
func classifyError(err error) error {
	var apiErr aai.APIError
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		return external.StatusError(engineName, apiErr.Status, []byte(apiErr.Message))
	}
	return external.ClassifySDKError(engineName, err)
}

func toTranscription(t aai.Transcript) *entities.Transcription {
	var text string
	if t.Text != nil {
		text = *t.Text
	}

	language := string(t.LanguageCode)
	if language == "" {
		language = entities.UnknownLanguage
	}

	segments := utteranceSegments(t.Utterances)
	if len(segments) == 0 {
		segments = wordSegments(t.Words)
	}

	return &entities.Transcription{
		Text:     text,
		Segments: segments,
		Language: language,
	}
}

func utteranceSegments(utterances []aai.TranscriptUtterance) []entities.Segment {
	segments := make([]entities.Segment, 0, len(utterances))
	for _, utt := range utterances {
		seg := entities.Segment{}
		if utt.Text != nil {
			seg.Text = *utt.Text
		}
		if utt.Start != nil {
			seg.Start = msToSeconds(*utt.Start)
		}
		if utt.End != nil {
			seg.End = msToSeconds(*utt.End)
		}
		segments = append(segments, seg)
	}
	return segments
}

// wordSegments groups words into sentence-like segments, closing a segment
// at terminal punctuation or after maxSegmentWords words
func wordSegments(words []aai.TranscriptWord) []entities.Segment {
	segments := make([]entities.Segment, 0)

	var (
		current []string
		start   float64
		end     float64
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		segments = append(segments, entities.Segment{
			Start: start,
			End:   end,
			Text:  strings.Join(current, " "),
		})
		current = current[:0]
	}

	for _, w := range words {
		if w.Text == nil {
			continue
		}
		if len(current) == 0 && w.Start != nil {
			start = msToSeconds(*w.Start)
		}
		if w.End != nil {
			end = msToSeconds(*w.End)
		}
		current = append(current, *w.Text)

		if endsSentence(*w.Text) || len(current) >= maxSegmentWords {
			flush()
		}
	}
	flush()

	return segments
}

func endsSentence(word string) bool {
	return strings.HasSuffix(word, ".") || strings.HasSuffix(word, "?") || strings.HasSuffix(word, "!")
}

func msToSeconds(ms int64) float64 {
	return float64(ms) / 1000.0
}
