package sms

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"leadflow_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

func newTestRouter(completer Completer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := NewService(
		newFakeStore(),
		&fakeResolver{tenants: nil},
		&fakeTransport{},
		NewDialogueEngine(completer),
		NewExtractor(completer),
		&fakeQueue{},
		&recordingBus{},
		logger.New("test"),
	)
	handler := NewHandler(service, logger.New("test"))

	engine := gin.New()
	engine.POST("/api/v1/sms/incoming", handler.HandleIncoming)
	return engine
}

func TestWebhookAlwaysReturns200(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		body        string
		want        string
	}{
		{"garbage body", "text/plain", "not a payload", `{"ok":false}`},
		{"malformed json", "application/json", `{"data":{}}`, `{"ok":false}`},
		{"unknown destination", "application/x-www-form-urlencoded",
			"From=%2B16502530000&Body=hi&To=%2B16502530001", `{"ok":false}`},
	}

	engine := newTestRouter(&fakeCompleter{err: errors.New("unused")})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/sms/incoming", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", tc.contentType)
			rec := httptest.NewRecorder()

			engine.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tc.want {
				t.Fatalf("body = %s, want %s", got, tc.want)
			}
		})
	}
}
