package log

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(buf *bytes.Buffer) *log.Logger {
	logger := log.New()
	logger.SetOutput(buf)
	logger.SetLevel(log.DebugLevel)
	logger.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})
	return logger
}

func TestHTTPLogger(t *testing.T) {
	t.Run("LogRequest logs HTTP request details", func(t *testing.T) {
		var logBuffer bytes.Buffer
		httpLogger := NewHTTPLogger(newBufferLogger(&logBuffer))

		req, _ := http.NewRequest("POST", "https://api.github.com/graphql?x=1", nil)
		httpLogger.LogRequest(req)

		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, "method=POST")
		assert.Contains(t, logOutput, "https://api.github.com/graphql?x=1")
		assert.Contains(t, logOutput, "host=api.github.com")
		assert.Contains(t, logOutput, "path=/graphql")
		assert.Contains(t, logOutput, "HTTP request")
	})

	t.Run("LogResponse logs successful HTTP response details", func(t *testing.T) {
		var logBuffer bytes.Buffer
		httpLogger := NewHTTPLogger(newBufferLogger(&logBuffer))

		req, _ := http.NewRequest("POST", "https://api.github.com/graphql", nil)
		res := &http.Response{
			StatusCode: 200,
			Request:    req,
		}

		httpLogger.LogResponse(req, res, nil, 150*time.Millisecond)

		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, "method=POST")
		assert.Contains(t, logOutput, "status=200")
		assert.Contains(t, logOutput, "durationMs=150")
		assert.Contains(t, logOutput, "HTTP response")
	})

	t.Run("LogResponse logs error HTTP response details", func(t *testing.T) {
		var logBuffer bytes.Buffer
		httpLogger := NewHTTPLogger(newBufferLogger(&logBuffer))

		req, _ := http.NewRequest("POST", "https://api.github.com/graphql", nil)
		testErr := &url.Error{
			Op:  "Post",
			URL: "https://api.github.com/graphql",
			Err: assert.AnError,
		}

		httpLogger.LogResponse(req, nil, testErr, 75*time.Millisecond)

		logOutput := logBuffer.String()
		assert.Contains(t, logOutput, "method=POST")
		assert.Contains(t, logOutput, "durationMs=75")
		assert.Contains(t, logOutput, "error=")
		assert.Contains(t, logOutput, "HTTP response error")
	})
}

func TestLoggedTransport(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	var logBuffer bytes.Buffer
	client := &http.Client{Transport: NewLoggedTransport(nil, newBufferLogger(&logBuffer))}

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/graphql", strings.NewReader(`{}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "bearer secret-token")

	resp, err := client.Do(req)
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "HTTP request")
	assert.Contains(t, logOutput, "status=418")
	assert.Contains(t, logOutput, "path=/graphql")
	assert.NotContains(t, logOutput, "secret-token")
}
