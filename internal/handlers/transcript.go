package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/nfrund/parley/internal/domain"
	"github.com/nfrund/parley/internal/middleware"
	"github.com/nfrund/parley/internal/rendering"
	"github.com/nfrund/parley/internal/transcript"
	"github.com/nfrund/parley/internal/ui/message"
	"github.com/nfrund/parley/internal/view"
)

// TranscriptService is the part of transcript.Service the handler uses.
type TranscriptService interface {
	Post(ctx context.Context, in transcript.PostInput) (domain.Message, error)
	Recent(ctx context.Context, limit int) ([]domain.Message, error)
	Get(ctx context.Context, id string) (domain.Message, error)
}

// TranscriptHandler serves the transcript page, fragments and JSON API.
type TranscriptHandler struct {
	service  TranscriptService
	renderer rendering.Renderer
}

// NewTranscriptHandler creates a new TranscriptHandler.
func NewTranscriptHandler(service TranscriptService, renderer rendering.Renderer) *TranscriptHandler {
	return &TranscriptHandler{service: service, renderer: renderer}
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func wantsJSON(c echo.Context) bool {
	req := c.Request()
	return strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) ||
		strings.Contains(req.Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

// Page handles GET /.
func (th *TranscriptHandler) Page(c echo.Context) error {
	msgs, err := th.service.Recent(c.Request().Context(), 0)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load messages").SetInternal(err)
	}
	return th.renderer.RenderPage(c, http.StatusOK, view.Page(view.PageData{
		Flash:    view.GetFlashData(c),
		Messages: msgs,
	}))
}

// List handles GET /messages.
func (th *TranscriptHandler) List(c echo.Context) error {
	var req ListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter").SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter").SetInternal(err)
	}

	msgs, err := th.service.Recent(c.Request().Context(), req.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve messages").SetInternal(err)
	}
	if wantsJSON(c) {
		return c.JSON(http.StatusOK, NewMessageResponses(msgs))
	}
	return th.renderer.RenderPage(c, http.StatusOK, view.Transcript(msgs))
}

// Get handles GET /messages/:id.
func (th *TranscriptHandler) Get(c echo.Context) error {
	m, err := th.service.Get(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Message not found").SetInternal(err)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve message").SetInternal(err)
	}
	if wantsJSON(c) {
		return c.JSON(http.StatusOK, NewMessageResponse(m))
	}
	return th.renderer.RenderPage(c, http.StatusOK, view.MessageItem(m))
}

// Create handles POST /messages. HTMX requests get the rendered row, JSON
// requests get the message, plain form posts are redirected back to the page.
func (th *TranscriptHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	logger := middleware.FromContext(ctx)
	plainForm := !isHTMX(c) && !wantsJSON(c)

	var req PostMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body").SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		if plainForm {
			view.SetFlashError(c, validationMessage(err))
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err)).SetInternal(err)
	}

	m, err := th.service.Post(ctx, transcript.PostInput{Role: req.Role, Author: req.Author, Content: req.Content})
	if err != nil {
		status, text := http.StatusInternalServerError, "Failed to send message"
		if errors.Is(err, domain.ErrEmptyContent) || errors.Is(err, domain.ErrInvalidRole) {
			status, text = http.StatusBadRequest, err.Error()
		}
		logger.Warn("Message rejected", "status", status, "error", err)
		if plainForm {
			view.SetFlashError(c, text)
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return echo.NewHTTPError(status, text).SetInternal(err)
	}
	logger.Info("Message posted", "id", m.ID, "role", m.Role)

	switch {
	case wantsJSON(c):
		return c.JSON(http.StatusCreated, NewMessageResponse(m))
	case isHTMX(c):
		return th.renderer.RenderPage(c, http.StatusCreated, view.MessageItem(m))
	default:
		view.SetFlashSuccess(c, "Message sent")
		return c.Redirect(http.StatusSeeOther, "/")
	}
}

// Preview handles GET /preview and renders a single message body, which is
// handy when styling the component.
func (th *TranscriptHandler) Preview(c echo.Context) error {
	var req PreviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid preview parameters").SetInternal(err)
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, validationMessage(err)).SetInternal(err)
	}

	props := message.ContentProps{IsUser: req.User, Class: req.Class}
	if req.ID != "" {
		props.Attrs = append(props.Attrs, h.ID(req.ID))
	}
	return th.renderer.RenderPage(c, http.StatusOK, message.Content(props, g.Text(req.Content)))
}

// Health handles GET /healthz.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "max":
		return field + " is too long"
	case "oneof":
		return field + " must be one of " + fe.Param()
	default:
		return field + " is invalid"
	}
}
