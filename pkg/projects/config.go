package projects

import (
	ghErrors "github.com/github/projects-mcp-server/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Config is the per-call configuration. Owner and Repo are only consulted
// when a call does not name a project explicitly.
type Config struct {
	Token string
	Owner string
	Repo  string
}

// ResolveToken returns the configured access token or a MissingCredential
// error. Only the token's presence and length are logged.
func ResolveToken(cfg Config, logger logrus.FieldLogger) (string, error) {
	if cfg.Token == "" {
		logger.WithField("present", false).Warn("GitHub PAT not configured")
		return "", ghErrors.NewMissingCredential()
	}
	logger.WithFields(logrus.Fields{
		"present": true,
		"length":  len(cfg.Token),
	}).Debug("GitHub PAT found")
	return cfg.Token, nil
}
