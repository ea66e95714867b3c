package main

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/github/projects-mcp-server/pkg/projects"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// hostname reduces the --gh-host value to the bare hostname the gh CLI
// stores credentials under.
func hostname(host string) string {
	if host == "" {
		return "github.com"
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	u, err := url.Parse(host)
	if err != nil || u.Hostname() == "" {
		return "github.com"
	}
	return u.Hostname()
}

type tokenForHostFunc func(host string) (string, string)

// configProvider reads the project configuration from viper on every call so
// that tokens and repository settings can change without a restart.
type configProvider struct {
	v            *viper.Viper
	tokenForHost tokenForHostFunc
	currentRepo  func() (repository.Repository, error)
}

func newConfigProvider(v *viper.Viper) *configProvider {
	return &configProvider{
		v:            v,
		tokenForHost: auth.TokenForHost,
		currentRepo:  sync.OnceValues(repository.Current),
	}
}

func (p *configProvider) token() string {
	for _, key := range []string{"pat", "personal_access_token"} {
		if token := p.v.GetString(key); token != "" {
			return token
		}
	}
	if p.v.GetBool("gh_auth") {
		token, source := p.tokenForHost(hostname(p.v.GetString("host")))
		if token != "" {
			logrus.WithField("source", source).Debug("using token from gh auth")
		}
		return token
	}
	return ""
}

func (p *configProvider) repository() (string, string) {
	owner, repo := p.v.GetString("owner"), p.v.GetString("repo")
	if (owner == "" || repo == "") && p.v.GetBool("infer_repo") {
		current, err := p.currentRepo()
		if err != nil {
			logrus.WithError(err).Debug("could not infer repository from the working directory")
			return owner, repo
		}
		if owner == "" {
			owner = current.Owner
		}
		if repo == "" {
			repo = current.Name
		}
	}
	return owner, repo
}

// Config implements ghmcp.ConfigProvider.
func (p *configProvider) Config(_ context.Context) projects.Config {
	owner, repo := p.repository()
	return projects.Config{
		Token: p.token(),
		Owner: owner,
		Repo:  repo,
	}
}
