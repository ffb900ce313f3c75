package whisper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/external"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

const engineName = "whisper"

// Client calls an OpenAI-compatible /audio/transcriptions endpoint (Groq,
// OpenAI or a self-hosted whisper server)
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a whisper client from config
func NewClient(cfg *config.WhisperConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// verboseResponse is the verbose_json transcription payload
type verboseResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
	Segments []struct {
		ID    int     `json:"id"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// Name identifies the engine in logs
func (c *Client) Name() string {
	return engineName
}

// Transcribe streams the audio as a multipart upload and maps the
// verbose_json answer onto a transcription
func (c *Client) Transcribe(ctx context.Context, audio io.Reader, filename, languageHint string) (*entities.Transcription, error) {
	if c.apiKey == "" {
		return nil, external.MissingKey(engineName)
	}
	if audio == nil {
		return nil, fmt.Errorf("%s: %w", filename, entities.ErrSourceNotFound)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(c.writeForm(mw, audio, filename, languageHint))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("failed to build transcription request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		pr.Close()
		return nil, external.Unavailable(engineName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if c.logger != nil {
			c.logger.Warn("⚠️ Transcription request rejected",
				zap.Int("status", resp.StatusCode),
				zap.String("model", c.model),
				zap.String("file", filename),
			)
		}
		return nil, external.StatusError(engineName, resp.StatusCode, body)
	}

	var vr verboseResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, external.Unavailable(engineName, fmt.Errorf("decode response: %w", err))
	}

	return toTranscription(&vr), nil
}

func (c *Client) writeForm(mw *multipart.Writer, audio io.Reader, filename, languageHint string) error {
	fields := map[string]string{
		"model":                     c.model,
		"response_format":           "verbose_json",
		"timestamp_granularities[]": "segment",
	}
	if languageHint != "" {
		fields["language"] = languageHint
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return err
		}
	}

	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, audio); err != nil {
		return err
	}
	return mw.Close()
}

func toTranscription(vr *verboseResponse) *entities.Transcription {
	segments := make([]entities.Segment, 0, len(vr.Segments))
	for _, s := range vr.Segments {
		segments = append(segments, entities.Segment{
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
		})
	}

	return &entities.Transcription{
		Text:     strings.TrimSpace(vr.Text),
		Segments: segments,
		Language: normalizeLanguage(vr.Language),
	}
}

// languageCodes maps the language names some servers report to ISO codes
var languageCodes = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"dutch":      "nl",
	"japanese":   "ja",
	"chinese":    "zh",
	"korean":     "ko",
	"russian":    "ru",
	"vietnamese": "vi",
	"hindi":      "hi",
	"arabic":     "ar",
}

func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return entities.UnknownLanguage
	}
	if code, ok := languageCodes[lang]; ok {
		return code
	}
	return lang
}
