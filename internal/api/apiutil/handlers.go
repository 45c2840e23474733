package apiutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/turnero/internal/schedule"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// IsJSONRequest reports whether the caller sent or asked for JSON.
func IsJSONRequest(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Content-Type"), "application/json") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}

// WriteHTMLFeedback writes a small escaped status fragment for htmx swaps.
func WriteHTMLFeedback(w http.ResponseWriter, status int, message string) {
	class := "feedback-ok"
	if status >= http.StatusBadRequest {
		class = "feedback-error"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `<div class="%s" role="status">%s</div>`, class, html.EscapeString(message))
}

// RenderHTMLComponent renders into a buffer first so a failed render never
// leaves a half-written page. It returns false after reporting the failure.
func RenderHTMLComponent(ctx context.Context, w http.ResponseWriter, component templ.Component, headers map[string]string, logMessage, errorMessage string) bool {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg(logMessage)
		http.Error(w, errorMessage, http.StatusInternalServerError)
		return false
	}

	for key, value := range headers {
		w.Header().Set(key, value)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to write HTML response")
	}
	return true
}

// ScheduleErrorStatus maps a schedule error kind to an HTTP status.
func ScheduleErrorStatus(err error) int {
	switch schedule.KindOf(err) {
	case schedule.KindValidation:
		return http.StatusBadRequest
	case schedule.KindNotFound:
		return http.StatusNotFound
	case schedule.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteScheduleError reports err as JSON or an HTML fragment depending on the
// caller. Unclassified errors are logged and hidden behind fallback.
func WriteScheduleError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := ScheduleErrorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Msg(fallback)
		message = fallback
	}

	if IsJSONRequest(r) {
		writeJSONError(w, r, status, message)
		return
	}
	WriteHTMLFeedback(w, status, message)
}

// WriteScheduleErrorJSON is WriteScheduleError for JSON-only endpoints.
func WriteScheduleErrorJSON(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := ScheduleErrorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).Msg(fallback)
		message = fallback
	}
	writeJSONError(w, r, status, message)
}

// WriteBadRequest reports a malformed request as JSON or an HTML fragment
// depending on the caller.
func WriteBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	if IsJSONRequest(r) {
		writeJSONError(w, r, http.StatusBadRequest, message)
		return
	}
	WriteHTMLFeedback(w, http.StatusBadRequest, message)
}

// WriteJSONError writes {"error": message} with status.
func WriteJSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSONError(w, r, status, message)
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := WriteJSON(w, status, map[string]string{"error": message}); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write error response")
	}
}
