package handler

import (
	stdErrors "errors"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/errors"
	dto "github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-summarizer/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
	"github.com/johnquangdev/meeting-summarizer/pkg/validator"
)

const (
	uploadField       = "audio"
	formatText        = "text"
	formatTimestamped = "timestamped"
)

// Meeting handles meeting pipeline endpoints
type Meeting struct {
	svc    meeting.Service
	logger *zap.Logger
}

// NewMeeting creates a new meeting handler
func NewMeeting(svc meeting.Service, logger *zap.Logger) *Meeting {
	return &Meeting{svc: svc, logger: logger}
}

// CreateMeeting uploads an audio file and registers a meeting
// @Summary      Upload meeting audio
// @Description  Stores an audio file (wav, mp3, m4a, flac, ogg, webm) and assigns a meeting ID
// @Tags         Meetings
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        audio  formData  file  true  "Audio file"
// @Success      201  {object}  dto.CreateMeetingResponse
// @Failure      400  {object}  map[string]interface{}  "Missing file, disallowed type or oversize"
// @Failure      401  {object}  map[string]interface{}  "Missing or invalid token"
// @Failure      500  {object}  map[string]interface{}  "Storage failure"
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	file, err := c.FormFile(uploadField)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("No audio file provided"))
	}
	if file.Filename == "" {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("No file selected"))
	}

	src, err := file.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	defer src.Close()

	filename := filepath.Base(file.Filename)
	rec, err := h.svc.CreateMeeting(c.Request().Context(), meeting.UploadInput{
		Filename:    filename,
		Size:        file.Size,
		ContentType: file.Header.Get(echo.HeaderContentType),
		Reader:      src,
	})
	if err != nil {
		if stdErrors.Is(err, entities.ErrMalformedUpload) {
			return HandleError(h.logger, c, FromDomain(err, ""))
		}
		return HandleError(h.logger, c, errors.ErrStorageFailed("save upload", err))
	}

	return HandleCreated(h.logger, c, presenter.ToCreateMeetingResponse(rec, filename))
}

// Transcribe runs speech-to-text on the meeting audio
// @Summary      Transcribe meeting
// @Description  Transcribes the stored audio and persists transcript, segments and language
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true   "Meeting ID"
// @Param        request  body      dto.TranscribeRequest  false  "Optional language hint"
// @Success      200  {object}  dto.TranscriptionResponse
// @Failure      404  {object}  map[string]interface{}  "Audio file not found"
// @Failure      502  {object}  map[string]interface{}  "Engine credential missing or rejected"
// @Failure      503  {object}  map[string]interface{}  "Engine unavailable"
// @Router       /meetings/{id}/transcribe [post]
func (h *Meeting) Transcribe(c echo.Context) error {
	meetingID := c.Param("id")
	req, err := h.bindTranscribe(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.svc.Transcribe(c.Request().Context(), meetingID, meeting.TranscribeOptions{Language: req.Language})
	if err != nil {
		return HandleError(h.logger, c, FromDomain(err, meetingID))
	}

	return HandleSuccess(h.logger, c, presenter.ToTranscriptionResponse(result))
}

// Summarize generates the structured summary from the persisted transcript
// @Summary      Summarize meeting
// @Description  Generates summary, key decisions and action items from the persisted transcript
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      409  {object}  map[string]interface{}  "Transcript not found"
// @Failure      502  {object}  map[string]interface{}  "Engine credential missing or rejected"
// @Failure      503  {object}  map[string]interface{}  "Engine unavailable"
// @Router       /meetings/{id}/summarize [post]
func (h *Meeting) Summarize(c echo.Context) error {
	meetingID := c.Param("id")

	result, err := h.svc.Summarize(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, FromDomain(err, meetingID))
	}

	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(result))
}

// Process runs transcription and summarization back to back
// @Summary      Process meeting
// @Description  Transcribes then summarizes. If summarization fails the persisted transcription is returned in data.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true   "Meeting ID"
// @Param        request  body      dto.TranscribeRequest  false  "Optional language hint"
// @Success      200  {object}  dto.ProcessResponse
// @Failure      404  {object}  map[string]interface{}  "Audio file not found"
// @Failure      503  {object}  map[string]interface{}  "Engine unavailable"
// @Router       /meetings/{id}/process [post]
func (h *Meeting) Process(c echo.Context) error {
	meetingID := c.Param("id")
	req, err := h.bindTranscribe(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	result, err := h.svc.Process(c.Request().Context(), meetingID, meeting.TranscribeOptions{Language: req.Language})
	if err != nil {
		if result != nil && result.Transcription != nil {
			return HandleErrorWithData(h.logger, c, FromDomain(err, meetingID), presenter.ToProcessResponse(meetingID, result))
		}
		return HandleError(h.logger, c, FromDomain(err, meetingID))
	}

	return HandleSuccess(h.logger, c, presenter.ToProcessResponse(meetingID, result))
}

// CustomSummary answers free-form instructions against the transcript
// @Summary      Custom summary
// @Description  Runs custom instructions against the persisted transcript. The answer is not stored.
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Meeting ID"
// @Param        request  body      dto.CustomSummaryRequest  true  "Instructions"
// @Success      200  {object}  dto.CustomSummaryResponse
// @Failure      400  {object}  map[string]interface{}  "Missing prompt"
// @Failure      409  {object}  map[string]interface{}  "Transcript not found"
// @Router       /meetings/{id}/custom-summary [post]
func (h *Meeting) CustomSummary(c echo.Context) error {
	meetingID := c.Param("id")

	var req dto.CustomSummaryRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, invalidArgument("prompt is required", err))
	}

	answer, err := h.svc.CustomSummary(c.Request().Context(), meetingID, req.Prompt)
	if err != nil {
		return HandleError(h.logger, c, FromDomain(err, meetingID))
	}

	return HandleSuccess(h.logger, c, &dto.CustomSummaryResponse{MeetingID: meetingID, Summary: answer})
}

// ListMeetings lists every meeting
// @Summary      List meetings
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.MeetingListResponse
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	items, err := h.svc.ListMeetings(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, FromDomain(err, ""))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(items))
}

// GetMeeting returns the full meeting record
// @Summary      Get meeting
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting ID"
// @Success      200  {object}  dto.MeetingResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	meetingID := c.Param("id")

	rec, err := h.svc.GetMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, FromDomain(err, meetingID))
	}

	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(rec))
}

// GetTranscript renders the persisted transcript
// @Summary      Get transcript
// @Description  Returns the transcript as plain text or as [MM:SS] timestamped lines
// @Tags         Meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      string  true   "Meeting ID"
// @Param        format  query     string  false  "text or timestamped"  Enums(text, timestamped)
// @Success      200  {object}  dto.TranscriptResponse
// @Failure      404  {object}  map[string]interface{}  "Meeting not found"
// @Failure      409  {object}  map[string]interface{}  "Transcript not found"
// @Router       /meetings/{id}/transcript [get]
func (h *Meeting) GetTranscript(c echo.Context) error {
	meetingID := c.Param("id")

	var q dto.TranscriptQuery
	if err := c.Bind(&q); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&q); err != nil {
		return HandleError(h.logger, c, invalidArgument("format must be text or timestamped", err))
	}
	if q.Format == "" {
		q.Format = formatText
	}

	rec, err := h.svc.GetMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, FromDomain(err, meetingID))
	}
	if !rec.HasTranscript() {
		return HandleError(h.logger, c, errors.ErrPreconditionFailed(meetingID, nil))
	}

	text := *rec.Transcript
	if q.Format == formatTimestamped {
		text = meeting.FormatTimestamped(rec.Segments)
	}

	language := ""
	if rec.Language != nil {
		language = *rec.Language
	}

	return HandleSuccess(h.logger, c, &dto.TranscriptResponse{
		MeetingID:  meetingID,
		Format:     q.Format,
		Language:   language,
		Transcript: text,
	})
}

func (h *Meeting) bindTranscribe(c echo.Context) (*dto.TranscribeRequest, error) {
	var req dto.TranscribeRequest
	if err := c.Bind(&req); err != nil {
		return nil, errors.ErrInvalidPayload()
	}
	req.Language = strings.TrimSpace(req.Language)
	if err := c.Validate(&req); err != nil {
		return nil, invalidArgument("language must be a short language code", err)
	}
	return &req, nil
}

// invalidArgument attaches the failed validation rules as details
func invalidArgument(message string, err error) errors.AppError {
	appErr := errors.ErrInvalidArgument(message)
	for field, rule := range validator.FieldErrors(err) {
		appErr = appErr.WithDetail(field, rule)
	}
	return appErr
}
