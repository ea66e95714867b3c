package projects

import (
	"context"

	ghErrors "github.com/github/projects-mcp-server/pkg/errors"
)

// ProjectLookup returns the ID of the first project linked to owner/repo, or
// an empty string when the repository has none.
type ProjectLookup func(ctx context.Context, owner, repo string) (string, error)

// ResolveProjectID picks the project a call targets. An explicit ID is
// returned as is and lookup is not called; otherwise both owner and repo are
// required and the repository's first linked project is used.
func ResolveProjectID(ctx context.Context, explicit, owner, repo string, lookup ProjectLookup) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if owner == "" || repo == "" {
		return "", ghErrors.NewMissingProjectContext(owner, repo)
	}

	id, err := lookup(ctx, owner, repo)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", ghErrors.NewProjectNotFound(owner, repo)
	}
	return id, nil
}

// RepositoryLookup returns a ProjectLookup that queries through exec.
func RepositoryLookup(exec Executor) ProjectLookup {
	return func(ctx context.Context, owner, repo string) (string, error) {
		data, err := exec.Execute(ctx, RepositoryProjectQuery(owner, repo))
		if err != nil {
			return "", err
		}
		return NormalizeRepositoryProject(data)
	}
}
