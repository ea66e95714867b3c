package projects

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	mcplog "github.com/github/projects-mcp-server/pkg/log"
	"github.com/google/go-github/v69/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// ClientFactory returns an executor authenticated with token. It is called
// once per operation, after the token has been resolved.
type ClientFactory func(ctx context.Context, token string) (Executor, error)

const defaultAPIURL = "https://api.github.com/"

// ParseAPIHost maps a --gh-host value to the base URL that "graphql" is
// resolved against. Empty means github.com; *.ghe.com tenants use api.<host>;
// any other host is GitHub Enterprise Server, served under /api/.
func ParseAPIHost(host string) (*url.URL, error) {
	if host == "" {
		return url.Parse(defaultAPIURL)
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("could not parse host as URL: %s", host)
	}
	if u.Scheme == "" || u.Hostname() == "" {
		return nil, fmt.Errorf("host must include a hostname: %s", host)
	}

	switch hostname := strings.ToLower(u.Hostname()); {
	case hostname == "github.com" || hostname == "api.github.com":
		return url.Parse(defaultAPIURL)
	case strings.HasSuffix(hostname, ".ghe.com"):
		if !strings.HasPrefix(hostname, "api.") {
			u.Host = "api." + u.Host
		}
		return url.Parse(fmt.Sprintf("%s://%s/", u.Scheme, u.Host))
	default:
		return url.Parse(fmt.Sprintf("%s://%s/api/", u.Scheme, u.Host))
	}
}

// NewGitHubClient builds a go-github client whose requests carry token as a
// bearer credential and are logged through logger.
func NewGitHubClient(token string, baseURL *url.URL, logger *logrus.Logger) *github.Client {
	logged := &http.Client{Transport: mcplog.NewLoggedTransport(http.DefaultTransport, logger)}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, logged)
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: token,
		TokenType:   "bearer",
	}))

	client := github.NewClient(httpClient)
	if baseURL != nil {
		client.BaseURL = baseURL
	}
	return client
}

// NewClientFactory returns a ClientFactory talking to host.
func NewClientFactory(host, userAgent string, logger *logrus.Logger) (ClientFactory, error) {
	baseURL, err := ParseAPIHost(host)
	if err != nil {
		return nil, err
	}
	return func(_ context.Context, token string) (Executor, error) {
		client := NewGitHubClient(token, baseURL, logger)
		if userAgent != "" {
			client.UserAgent = userAgent
		}
		return NewTransport(client, logger), nil
	}, nil
}
