// Package projects implements the GitHub Projects V2 operations behind the
// MCP tools: project resolution, GraphQL documents, response normalization
// and the tagged failures they produce.
package projects

import (
	"context"
	"fmt"

	ghErrors "github.com/github/projects-mcp-server/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Stage names one step of an operation.
type Stage string

const (
	StageResolvingCredential Stage = "ResolvingCredential"
	StageResolvingProject    Stage = "ResolvingProject"
	StageBuildingQuery       Stage = "BuildingQuery"
	StageAwaitingTransport   Stage = "AwaitingTransport"
	StageNormalizing         Stage = "Normalizing"
	StageDone                Stage = "Done"
	StageFailed              Stage = "Failed"
)

// Service runs the three project operations. It holds no per-call state, so a
// single Service is safe for concurrent use.
type Service struct {
	newClient ClientFactory
	logger    logrus.FieldLogger
}

func NewService(newClient ClientFactory, logger logrus.FieldLogger) *Service {
	return &Service{
		newClient: newClient,
		logger:    logger,
	}
}

// call tracks one operation through its stages.
type call struct {
	logger logrus.FieldLogger
	stage  Stage
}

func (s *Service) begin(op string) *call {
	return &call{logger: s.logger.WithField("operation", op)}
}

func (c *call) enter(stage Stage) {
	c.stage = stage
	c.logger.WithField("stage", stage).Debug("entering stage")
}

// finish converts the outcome into a tagged error and logs it. It must be
// deferred so that it also catches panics.
func (c *call) finish(err *error) {
	if r := recover(); r != nil {
		*err = ghErrors.NewUnknownFailure(fmt.Errorf("panic in stage %s: %v", c.stage, r))
	}
	if *err == nil {
		c.enter(StageDone)
		return
	}
	tagged := ghErrors.AsError(*err)
	*err = tagged
	c.logger.WithFields(logrus.Fields{
		"stage": StageFailed,
		"from":  c.stage,
		"kind":  tagged.Kind,
	}).WithError(tagged).Error("operation failed")
}

// connect resolves the credential and builds a client for it. No client is
// built when the credential is missing.
func (s *Service) connect(ctx context.Context, c *call, cfg Config) (Executor, error) {
	c.enter(StageResolvingCredential)
	token, err := ResolveToken(cfg, c.logger)
	if err != nil {
		return nil, err
	}
	exec, err := s.newClient(ctx, token)
	if err != nil {
		return nil, ghErrors.NewUnknownFailure(fmt.Errorf("failed to create GitHub client: %w", err))
	}
	return exec, nil
}

func (s *Service) resolveProject(ctx context.Context, c *call, exec Executor, explicit string, cfg Config) (string, error) {
	c.enter(StageResolvingProject)
	return ResolveProjectID(ctx, explicit, cfg.Owner, cfg.Repo, RepositoryLookup(exec))
}

// ListProjects returns the first page of the authenticated user's projects.
func (s *Service) ListProjects(ctx context.Context, cfg Config) (projects []Project, err error) {
	c := s.begin("listProjects")
	defer c.finish(&err)

	exec, err := s.connect(ctx, c, cfg)
	if err != nil {
		return nil, err
	}

	c.enter(StageBuildingQuery)
	req := ListProjectsQuery()

	c.enter(StageAwaitingTransport)
	data, err := exec.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	c.enter(StageNormalizing)
	return NormalizeProjects(data)
}

// GetProjectDetails returns the project named by projectID or, when it is
// empty, the first project linked to the configured repository.
func (s *Service) GetProjectDetails(ctx context.Context, cfg Config, projectID string) (details *ProjectDetails, err error) {
	c := s.begin("getProjectDetails")
	defer c.finish(&err)

	exec, err := s.connect(ctx, c, cfg)
	if err != nil {
		return nil, err
	}
	id, err := s.resolveProject(ctx, c, exec, projectID, cfg)
	if err != nil {
		return nil, err
	}

	c.enter(StageBuildingQuery)
	req := ProjectDetailsQuery(id)

	c.enter(StageAwaitingTransport)
	data, err := exec.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	c.enter(StageNormalizing)
	return NormalizeProjectDetails(id, data)
}

// AddDraftIssue creates a draft issue in the requested or configured project.
func (s *Service) AddDraftIssue(ctx context.Context, cfg Config, in DraftIssueRequest) (result *DraftIssueResult, err error) {
	c := s.begin("addDraftIssue")
	defer c.finish(&err)

	exec, err := s.connect(ctx, c, cfg)
	if err != nil {
		return nil, err
	}
	id, err := s.resolveProject(ctx, c, exec, in.ProjectID, cfg)
	if err != nil {
		return nil, err
	}

	c.enter(StageBuildingQuery)
	req := AddDraftIssueMutation(id, in.Title, in.Body)

	c.enter(StageAwaitingTransport)
	data, err := exec.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	c.enter(StageNormalizing)
	return NormalizeDraftIssue(id, data)
}
