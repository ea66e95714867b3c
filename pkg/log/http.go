package log

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// HTTPLogger writes one structured entry per GitHub API request and response.
type HTTPLogger struct {
	logger *log.Logger
}

// NewHTTPLogger creates a new HTTPLogger instance
func NewHTTPLogger(logger *log.Logger) *HTTPLogger {
	return &HTTPLogger{
		logger: logger,
	}
}

// LogRequest logs information about an HTTP request
func (l *HTTPLogger) LogRequest(req *http.Request) {
	l.logger.WithFields(log.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
		"host":   req.URL.Host,
		"path":   req.URL.Path,
	}).Debug("HTTP request")
}

// LogResponse logs information about an HTTP response
func (l *HTTPLogger) LogResponse(req *http.Request, res *http.Response, err error, duration time.Duration) {
	fields := log.Fields{
		"method":     req.Method,
		"url":        req.URL.String(),
		"host":       req.URL.Host,
		"path":       req.URL.Path,
		"durationMs": duration.Milliseconds(),
	}

	if err != nil {
		fields["error"] = err.Error()
		l.logger.WithFields(fields).Error("HTTP response error")
		return
	}
	fields["status"] = res.StatusCode
	l.logger.WithFields(fields).Info("HTTP response")
}

// LoggedTransport is an http.RoundTripper that reports every round trip to an
// HTTPLogger. Headers are never logged, so credentials stay out of the log.
type LoggedTransport struct {
	Base   http.RoundTripper
	Logger *HTTPLogger
}

// NewLoggedTransport wraps base, falling back to http.DefaultTransport.
func NewLoggedTransport(base http.RoundTripper, logger *log.Logger) *LoggedTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &LoggedTransport{
		Base:   base,
		Logger: NewHTTPLogger(logger),
	}
}

func (t *LoggedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.Logger.LogRequest(req)
	start := time.Now()
	res, err := t.Base.RoundTrip(req)
	t.Logger.LogResponse(req, res, err, time.Since(start))
	return res, err
}
