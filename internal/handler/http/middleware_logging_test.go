package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// loggedRequest builds a request carrying a logger that writes JSON lines to
// buf, the same way withTraceID injects one for downstream middleware.
func loggedRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	l := zerolog.New(buf)
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name            string
		method          string
		path            string
		handlerStatus   int
		handlerResponse string
		wantLogContains []string
	}{
		{
			name:            "GET 200",
			method:          http.MethodGet,
			path:            "/api/records",
			handlerStatus:   http.StatusOK,
			handlerResponse: "OK",
			wantLogContains: []string{
				`"method":"GET"`,
				`"uri":"/api/records"`,
				`"status":200`,
				`"duration":`,
				`"size":2`,
			},
		},
		{
			name:            "POST 201",
			method:          http.MethodPost,
			path:            "/api/records",
			handlerStatus:   http.StatusCreated,
			handlerResponse: "Created",
			wantLogContains: []string{
				`"method":"POST"`,
				`"status":201`,
			},
		},
		{
			name:          "DELETE 204 no body",
			method:        http.MethodDelete,
			path:          "/api/requests/req-1",
			handlerStatus: http.StatusNoContent,
			wantLogContains: []string{
				`"method":"DELETE"`,
				`"status":204`,
				`"size":0`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{}
			var buf bytes.Buffer

			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.handlerStatus)
				if tt.handlerResponse != "" {
					w.Write([]byte(tt.handlerResponse))
				}
			})

			req := loggedRequest(tt.method, tt.path, &buf)
			rec := httptest.NewRecorder()
			h.withLogging(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.handlerStatus, rec.Code)
			for _, fragment := range tt.wantLogContains {
				assert.Contains(t, buf.String(), fragment)
			}
		})
	}
}
