package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-summarizer/internal/adapter/repository"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

type stubTranscriber struct{}

func (stubTranscriber) Name() string { return "stub" }

func (stubTranscriber) Transcribe(_ context.Context, audio io.Reader, _ string, lang string) (*entities.Transcription, error) {
	io.Copy(io.Discard, audio)
	if lang == "" {
		lang = "en"
	}
	return &entities.Transcription{
		Text: "Welcome. Ship it.",
		Segments: []entities.Segment{
			{Start: 0, End: 2, Text: "Welcome."},
			{Start: 65, End: 67, Text: "Ship it."},
		},
		Language: lang,
	}, nil
}

type stubSummarizer struct {
	err error
}

func (stubSummarizer) Name() string { return "stub" }

func (s stubSummarizer) Generate(_ context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if strings.HasPrefix(prompt, "List risks") {
		return "No risks.", nil
	}
	return "SUMMARY:\nShort sync.\nKEY DECISIONS:\n- Ship it\nACTION ITEMS:\nNone identified.", nil
}

type envelope struct {
	Code    interface{}     `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, summarizer stubSummarizer) *echo.Echo {
	t.Helper()

	audio, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	svc := meeting.NewService(
		repository.NewMemoryMeetingRepository(),
		audio,
		stubTranscriber{},
		summarizer,
		nil,
		meeting.Options{MaxUploadBytes: 1024},
		nil,
	)

	e := echo.New()
	cfg := &config.Config{Server: config.ServerConfig{Version: "test", Environment: "test"}}
	NewRouter(cfg, NewMeeting(svc, nil), nil).Setup(e)
	return e
}

func do(e *echo.Echo, method, path string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	if data != nil {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("decode data %s: %v", env.Data, err)
		}
	}
	return env
}

func upload(t *testing.T, e *echo.Echo, field, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte(content))
	mw.Close()
	return do(e, http.MethodPost, "/v1/meetings", &buf, mw.FormDataContentType())
}

func createMeeting(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := upload(t, e, "audio", "standup.wav", "RIFF....")
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status = %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		MeetingID string `json:"meeting_id"`
		Filename  string `json:"filename"`
		Status    string `json:"status"`
	}
	decode(t, rec, &created)
	if created.MeetingID == "" || created.Filename != "standup.wav" || created.Status != "uploaded" {
		t.Fatalf("created = %+v", created)
	}
	return created.MeetingID
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, stubSummarizer{})
	rec := do(e, http.MethodGet, "/health", nil, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"version":"test"`) {
		t.Errorf("health = %d %s", rec.Code, rec.Body.String())
	}
}

func TestCreateMeetingValidation(t *testing.T) {
	e := newTestServer(t, stubSummarizer{})

	tests := []struct {
		name     string
		field    string
		filename string
		content  string
	}{
		{"wrong field", "file", "a.wav", "x"},
		{"bad extension", "audio", "notes.txt", "x"},
		{"empty file", "audio", "a.wav", ""},
		{"too large", "audio", "a.wav", strings.Repeat("x", 2048)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := upload(t, e, tt.field, tt.filename, tt.content)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPipelineOverHTTP(t *testing.T) {
	e := newTestServer(t, stubSummarizer{})
	id := createMeeting(t, e)

	rec := do(e, http.MethodPost, "/v1/meetings/"+id+"/summarize", nil, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("summarize before transcribe = %d", rec.Code)
	}

	rec = do(e, http.MethodPost, "/v1/meetings/"+id+"/transcribe", strings.NewReader(`{"language":"fr"}`), echo.MIMEApplicationJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("transcribe = %d: %s", rec.Code, rec.Body.String())
	}
	var tr struct {
		Language string `json:"language"`
		Segments []struct {
			Start float64 `json:"start"`
		} `json:"segments"`
		AudioFile string `json:"audio_file"`
	}
	decode(t, rec, &tr)
	if tr.Language != "fr" || len(tr.Segments) != 2 || tr.AudioFile != id+".wav" {
		t.Errorf("transcription = %+v", tr)
	}

	rec = do(e, http.MethodPost, "/v1/meetings/"+id+"/summarize", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("summarize = %d: %s", rec.Code, rec.Body.String())
	}
	var sum struct {
		Summary      string   `json:"summary"`
		KeyDecisions []string `json:"key_decisions"`
		ActionItems  []string `json:"action_items"`
	}
	decode(t, rec, &sum)
	if sum.Summary != "Short sync." || len(sum.KeyDecisions) != 1 || sum.ActionItems == nil || len(sum.ActionItems) != 0 {
		t.Errorf("summary = %+v", sum)
	}

	rec = do(e, http.MethodGet, "/v1/meetings/"+id, nil, "")
	var full map[string]interface{}
	decode(t, rec, &full)
	if full["status"] != "summarized" || full["transcript"] != "Welcome. Ship it." {
		t.Errorf("meeting = %v", full)
	}

	rec = do(e, http.MethodGet, "/v1/meetings/"+id+"/transcript?format=timestamped", nil, "")
	var transcript struct {
		Transcript string `json:"transcript"`
	}
	decode(t, rec, &transcript)
	if transcript.Transcript != "[00:00] Welcome.\n[01:05] Ship it." {
		t.Errorf("timestamped = %q", transcript.Transcript)
	}

	rec = do(e, http.MethodGet, "/v1/meetings/"+id+"/transcript?format=srt", nil, "")
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), `"format":"oneof=text timestamped"`) {
		t.Errorf("bad format = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(e, http.MethodGet, "/v1/meetings", nil, "")
	var list struct {
		Total    int `json:"total"`
		Meetings []struct {
			MeetingID  string `json:"meeting_id"`
			HasSummary bool   `json:"has_summary"`
		} `json:"meetings"`
	}
	decode(t, rec, &list)
	if list.Total != 1 || list.Meetings[0].MeetingID != id || !list.Meetings[0].HasSummary {
		t.Errorf("list = %+v", list)
	}
}

func TestCustomSummaryOverHTTP(t *testing.T) {
	e := newTestServer(t, stubSummarizer{})
	id := createMeeting(t, e)
	path := "/v1/meetings/" + id + "/custom-summary"

	rec := do(e, http.MethodPost, path, strings.NewReader(`{"prompt":"  "}`), echo.MIMEApplicationJSON)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank prompt status = %d", rec.Code)
	}

	rec = do(e, http.MethodPost, path, strings.NewReader(`{"prompt":"List risks"}`), echo.MIMEApplicationJSON)
	if rec.Code != http.StatusConflict {
		t.Errorf("no transcript status = %d", rec.Code)
	}

	do(e, http.MethodPost, "/v1/meetings/"+id+"/transcribe", nil, "")
	rec = do(e, http.MethodPost, path, strings.NewReader(`{"prompt":"List risks"}`), echo.MIMEApplicationJSON)
	var out struct {
		Summary string `json:"summary"`
	}
	decode(t, rec, &out)
	if rec.Code != http.StatusOK || out.Summary != "No risks." {
		t.Errorf("custom summary = %d %+v", rec.Code, out)
	}
}

func TestProcessReturnsTranscriptOnSummaryFailure(t *testing.T) {
	e := newTestServer(t, stubSummarizer{err: fmt.Errorf("quota: %w", entities.ErrEngineUnavailable)})
	id := createMeeting(t, e)

	rec := do(e, http.MethodPost, "/v1/meetings/"+id+"/process", nil, "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var partial struct {
		Transcription *struct {
			Transcript string `json:"transcript"`
		} `json:"transcription"`
		Summary interface{} `json:"summary"`
	}
	decode(t, rec, &partial)
	if partial.Transcription == nil || partial.Transcription.Transcript == "" || partial.Summary != nil {
		t.Errorf("partial = %s", rec.Body.String())
	}
}

func TestErrorStatuses(t *testing.T) {
	e := newTestServer(t, stubSummarizer{})

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/v1/meetings/20990101_000000_abcdef12", http.StatusNotFound},
		{http.MethodPost, "/v1/meetings/20990101_000000_abcdef12/transcribe", http.StatusNotFound},
		{http.MethodPost, "/v1/meetings/20990101_000000_abcdef12/summarize", http.StatusConflict},
		{http.MethodGet, "/v1/meetings/20990101_000000_abcdef12/transcript", http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := do(e, tt.method, tt.path, nil, "")
		if rec.Code != tt.want {
			t.Errorf("%s %s = %d, want %d", tt.method, tt.path, rec.Code, tt.want)
		}
	}
}

func TestFromDomain(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{entities.ErrMalformedUpload, http.StatusBadRequest},
		{entities.ErrSourceNotFound, http.StatusNotFound},
		{entities.ErrPreconditionFailed, http.StatusConflict},
		{entities.ErrMeetingNotFound, http.StatusNotFound},
		{entities.ErrAuthentication, http.StatusBadGateway},
		{entities.ErrEngineUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("disk full"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		HandleError(nil, c, FromDomain(fmt.Errorf("wrapped: %w", tt.err), "m1"))
		if rec.Code != tt.want {
			t.Errorf("%v -> %d, want %d", tt.err, rec.Code, tt.want)
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	e := newTestServer(t, stubSummarizer{})
	rec := do(e, http.MethodGet, "/v1/recordings", nil, "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Route /v1/recordings not found") {
		t.Errorf("unknown route = %d %s", rec.Code, rec.Body.String())
	}
}
