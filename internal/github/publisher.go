// Package github publishes a finished release: it pushes the release refs
// and creates the GitHub release entry for the tag.
package github

import (
	"context"
	"fmt"
	"strings"

	gogithub "github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/git"
)

// Publisher creates remote releases via the GitHub API
type Publisher struct {
	client *gogithub.Client
	owner  string
	repo   string
}

// NewPublisher creates a Publisher from a token and an "owner/repo" slug
// (the GITHUB_REPOSITORY format)
func NewPublisher(ctx context.Context, token, repoSlug string) (*Publisher, error) {
	if token == "" {
		return nil, shipiterrors.NewRemoteAPIError("publisher setup", fmt.Errorf("github token is required"))
	}

	owner, repo, ok := strings.Cut(repoSlug, "/")
	if !ok || owner == "" || repo == "" {
		return nil, shipiterrors.NewRemoteAPIError("publisher setup",
			fmt.Errorf("invalid repository slug %q, expected owner/repo", repoSlug))
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := gogithub.NewClient(oauth2.NewClient(ctx, ts))

	return &Publisher{client: client, owner: owner, repo: repo}, nil
}

// Publish pushes the major-line branch and the release tag to origin, then
// creates the GitHub release for the tag with generated notes. It returns
// the release URL. A failure here is fatal for the run's status, but the
// local commit and tag already exist.
func (p *Publisher) Publish(ctx context.Context, repo *git.Repository, branch, tag string) (string, error) {
	refspecs := []string{
		fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch),
		fmt.Sprintf("refs/tags/%s:refs/tags/%s", tag, tag),
	}
	if err := repo.Push(ctx, "origin", refspecs...); err != nil {
		return "", shipiterrors.NewRemoteAPIError("push", err)
	}

	rel, _, err := p.client.Repositories.CreateRelease(ctx, p.owner, p.repo, &gogithub.RepositoryRelease{
		TagName:              gogithub.String(tag),
		Name:                 gogithub.String(tag),
		GenerateReleaseNotes: gogithub.Bool(true),
	})
	if err != nil {
		return "", shipiterrors.NewRemoteAPIError("create release", err)
	}

	return rel.GetHTMLURL(), nil
}
