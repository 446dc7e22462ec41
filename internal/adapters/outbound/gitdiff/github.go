package gitdiff

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	gh "github.com/google/go-github/v80/github"

	"github.com/flaggate/flaggate/internal/domain"
)

// GitHubProvider implements domain.ChangeSource via the GitHub compare API,
// for CI runners that do not have the full repository history available.
type GitHubProvider struct {
	client *gh.Client
	owner  string
	repo   string
}

type authTransport struct {
	token string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

// NewGitHub builds a provider for an "owner/name" repository slug.
func NewGitHub(token, ownerRepo string) (*GitHubProvider, error) {
	owner, repo, ok := strings.Cut(ownerRepo, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("repository %q: want owner/name", ownerRepo)
	}

	var httpClient *http.Client
	if token != "" {
		httpClient = &http.Client{Transport: &authTransport{token: token}}
	}
	return &GitHubProvider{
		client: gh.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
	}, nil
}

func (p *GitHubProvider) Changes(ctx context.Context, before, after string) ([]domain.ChangedFile, error) {
	changed, err := p.compareFiles(ctx, before, after)
	if err != nil {
		return nil, err
	}

	var files []domain.ChangedFile
	for _, cf := range changed {
		if cf.GetStatus() == "removed" {
			continue
		}
		path := cf.GetFilename()
		content, err := p.contentAt(ctx, path, after)
		if err != nil {
			return nil, err
		}
		files = append(files, domain.ChangedFile{
			Path:      path,
			Extension: filepath.Ext(path),
			Content:   content,
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// compareFiles walks every page of the compare endpoint; the API caps the
// file list per page, so a single request would silently truncate large
// change sets.
func (p *GitHubProvider) compareFiles(ctx context.Context, before, after string) ([]*gh.CommitFile, error) {
	var changed []*gh.CommitFile
	opts := &gh.ListOptions{PerPage: 100}
	for {
		cmp, resp, err := p.client.Repositories.CompareCommits(ctx, p.owner, p.repo, before, after, opts)
		if err != nil {
			return nil, fmt.Errorf("comparing %s...%s on %s/%s: %w", before, after, p.owner, p.repo, err)
		}
		changed = append(changed, cmp.Files...)
		if resp.NextPage == 0 {
			return changed, nil
		}
		opts.Page = resp.NextPage
	}
}

func (p *GitHubProvider) contentAt(ctx context.Context, path, ref string) (string, error) {
	fc, _, _, err := p.client.Repositories.GetContents(ctx, p.owner, p.repo, path,
		&gh.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return "", fmt.Errorf("fetching %s at %s: %w", path, ref, err)
	}
	if fc == nil {
		return "", fmt.Errorf("fetching %s at %s: not a file", path, ref)
	}
	content, err := fc.GetContent()
	if err != nil {
		return "", fmt.Errorf("decoding %s at %s: %w", path, ref, err)
	}
	return content, nil
}
