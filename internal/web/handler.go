package web

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/pvf-customer-form/internal/form"
	"github.com/BerylCAtieno/pvf-customer-form/internal/logger"
	"github.com/BerylCAtieno/pvf-customer-form/internal/models"
	"github.com/BerylCAtieno/pvf-customer-form/internal/profiler"
)

type FormHandler struct {
	form *form.Controller
	log  *logger.Logger
}

func NewFormHandler(controller *form.Controller, log *logger.Logger) *FormHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &FormHandler{
		form: controller,
		log:  log.With("component", "web"),
	}
}

// ServePage renders the form with the current state.
func (h *FormHandler) ServePage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", newPageView(h.form.Snapshot()))
}

// SubmitProfile applies every known field present in the posted form.
func (h *FormHandler) SubmitProfile(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		h.log.Warn("failed to parse form", "error", err)
		c.String(http.StatusBadRequest, "invalid form submission")
		return
	}
	for _, name := range models.FieldNames {
		if values, ok := c.Request.PostForm[name]; ok && len(values) > 0 {
			_ = h.form.EditField(name, values[0])
		}
	}
	h.backToPage(c)
}

func (h *FormHandler) SmartFill(c *gin.Context) {
	// Failure shows up as the notice on the page; a click while a fill is
	// running gets ErrInFlight and just redraws.
	_ = h.form.TriggerSmartFill(detach(c))
	h.backToPage(c)
}

func (h *FormHandler) Analyze(c *gin.Context) {
	_ = h.form.TriggerAnalyze(detach(c))
	h.backToPage(c)
}

func (h *FormHandler) Reset(c *gin.Context) {
	h.form.Reset()
	h.backToPage(c)
}

func (h *FormHandler) DismissNotice(c *gin.Context) {
	h.form.DismissNotice()
	h.backToPage(c)
}

func (h *FormHandler) GetState(c *gin.Context) {
	h.sendState(c)
}

func (h *FormHandler) EditField(c *gin.Context) {
	var req EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "request body must be {\"value\": string}"})
		return
	}
	name := c.Param("name")
	if err := h.form.EditField(name, *req.Value); err != nil {
		h.sendError(c, err)
		return
	}
	h.sendState(c)
}

func (h *FormHandler) APISmartFill(c *gin.Context) {
	if err := h.form.TriggerSmartFill(detach(c)); err != nil {
		h.sendError(c, err)
		return
	}
	h.sendState(c)
}

// APIAnalyze only reports readiness and overlap problems. Gateway failures
// are logged by the controller and the unchanged state is returned.
func (h *FormHandler) APIAnalyze(c *gin.Context) {
	err := h.form.TriggerAnalyze(detach(c))
	if errors.Is(err, form.ErrNotReady) || errors.Is(err, form.ErrInFlight) {
		h.sendError(c, err)
		return
	}
	h.sendState(c)
}

func (h *FormHandler) APIReset(c *gin.Context) {
	h.form.Reset()
	h.sendState(c)
}

// Events streams the state after every change as server-sent events.
func (h *FormHandler) Events(c *gin.Context) {
	updates, cancel := h.form.Subscribe()
	defer cancel()

	c.Header("Cache-Control", "no-cache")
	c.SSEvent("state", h.form.Snapshot())
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case s, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("state", s)
			return true
		case <-ctx.Done():
			return false
		}
	})
}

func (h *FormHandler) backToPage(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *FormHandler) sendState(c *gin.Context) {
	c.JSON(http.StatusOK, StateResponse{State: h.form.Snapshot(), Timestamp: Timestamp()})
}

func (h *FormHandler) sendError(c *gin.Context, err error) {
	code := statusFor(err)
	state := h.form.Snapshot()
	h.log.Warn("request failed", "path", c.Request.URL.Path, "status", code, "error", err)
	c.JSON(code, ErrorResponse{Error: err.Error(), State: &state})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, form.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, form.ErrNotReady), errors.Is(err, form.ErrInFlight):
		return http.StatusConflict
	case errors.Is(err, profiler.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, profiler.ErrParse):
		return http.StatusBadGateway
	case errors.Is(err, profiler.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// detach keeps request values such as the trace span but drops cancellation;
// a gateway call runs to completion even if the browser goes away.
func detach(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
