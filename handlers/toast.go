package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// Toast types understood by the front end.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// QuotesChangedEvent is fired after a quotation is created, updated or
// deleted so open lists can refresh.
const QuotesChangedEvent = "quotesChanged"

// mergeTrigger adds event to the JSON object in existing. An empty or
// non-JSON existing value is replaced.
func mergeTrigger(existing, event string, payload any) (string, error) {
	merged := map[string]any{}
	if existing != "" {
		if err := json.Unmarshal([]byte(existing), &merged); err != nil {
			merged = map[string]any{}
		}
	}
	merged[event] = payload
	data, err := json.Marshal(merged)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SetTrigger adds an HTMX event to the HX-Trigger response header, keeping
// any events already set.
func SetTrigger(e *core.RequestEvent, event string, payload any) {
	value, err := mergeTrigger(e.Response.Header().Get("HX-Trigger"), event, payload)
	if err != nil {
		eventLogger(e).Warn("toast: marshal HX-Trigger failed", zap.String("event", event), zap.Error(err))
		return
	}
	e.Response.Header().Set("HX-Trigger", value)
}

// SetToast fires a showToast event through HX-Trigger. It also sets a
// short-lived flash cookie so the toast survives a regular redirect.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	toast := map[string]string{"message": message, "type": toastType}
	SetTrigger(e, "showToast", toast)

	cookieVal, err := json.Marshal(toast)
	if err != nil {
		return
	}
	http.SetCookie(e.Response, &http.Cookie{
		Name:     "flash_toast",
		Value:    url.QueryEscape(string(cookieVal)),
		Path:     "/",
		MaxAge:   10,
		HttpOnly: false, // read by the page script
		SameSite: http.SameSiteLaxMode,
	})
}

// ErrorToast sets an error toast and answers with message as plain text.
// HX-Reswap: none keeps HTMX from swapping the text into the page.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, ToastError, message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}

func eventLogger(e *core.RequestEvent) *zap.Logger {
	if e.Request == nil {
		return zap.NewNop()
	}
	return GetLogger(e.Request, nil)
}
