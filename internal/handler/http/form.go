package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"textsum/internal/usecase/form"
)

//go:embed templates/form.html
var templateFS embed.FS

var formTemplate = template.Must(template.ParseFS(templateFS, "templates/form.html"))

// formField is the name of the input textarea.
const formField = "text"

// formView is the template data for the form page.
type formView struct {
	form.State
	Elapsed string
}

// FormHandler serves the summarization form: GET renders it, POST submits
// the text area and re-renders it with the new state.
type FormHandler struct {
	Controller *form.Controller
	Limiter    *SubmitLimiter
	Logger     *slog.Logger
}

// Show renders the current form state.
func (h *FormHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.Controller.State())
}

// Submit handles a form post.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		status := http.StatusBadRequest
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			status = http.StatusRequestEntityTooLarge
			err = errors.New("request body too large")
		}
		state := h.Controller.State()
		state.Dialog = form.DialogFor(err)
		h.render(w, status, state)
		return
	}

	if !h.Limiter.Allow(r) {
		state := h.Controller.State()
		state.Input = r.PostForm.Get(formField)
		state.Dialog = form.DialogFor(ErrRateLimited)
		w.Header().Set("Retry-After", "1")
		h.render(w, http.StatusTooManyRequests, state)
		return
	}

	res, err := h.Controller.Submit(r.Context(), r.PostForm.Get(formField))
	h.render(w, submitStatus(err), res.State)
}

// submitStatus maps a submit outcome to the response status of the page.
func submitStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if form.DialogFor(err).Kind == form.DialogWarning {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func (h *FormHandler) render(w http.ResponseWriter, status int, state form.State) {
	view := formView{State: state}
	if state.Duration > 0 {
		view.Elapsed = state.Duration.Round(time.Millisecond).String()
	}

	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, view); err != nil {
		h.logger().Error("failed to render form", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger().Warn("failed to write form", slog.Any("error", err))
	}
}

func (h *FormHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
