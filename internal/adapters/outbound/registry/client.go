// Package registry implements the flag-registry boundary over its admin
// HTTP API. A fetch failure is fatal to the run by contract; the one
// recoverable condition is a missing target environment, surfaced as a
// snapshot warning so staleness checks simply have no data to judge.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/flaggate/flaggate/internal/domain"
)

// fetchTimeout bounds the only network-bound step of a run.
const fetchTimeout = 30 * time.Second

// Client fetches one project's flag snapshot, including the target
// environment's rollout state.
type Client struct {
	baseURL     string
	account     string
	org         string
	project     string
	environment string
	http        *http.Client
}

type apiTransport struct {
	token string
}

func (t *apiTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("x-api-key", t.token)
	return http.DefaultTransport.RoundTrip(req)
}

func NewClient(baseURL, token, account, org, project, environment string) *Client {
	return &Client{
		baseURL:     baseURL,
		account:     account,
		org:         org,
		project:     project,
		environment: environment,
		http: &http.Client{
			Timeout:   fetchTimeout,
			Transport: &apiTransport{token: token},
		},
	}
}

// Wire shapes of the admin API.
type flagMeta struct {
	Name string `json:"name"`
	Tags []struct {
		Name string `json:"name"`
	} `json:"tags"`
}

type flagDefinition struct {
	Name                  string `json:"name"`
	LastUpdateTime        int64  `json:"lastUpdateTime"`        // epoch millis
	LastTrafficReceivedAt int64  `json:"lastTrafficReceivedAt"` // epoch millis
	TrafficAllocation     int    `json:"trafficAllocation"`
}

type flagListResponse struct {
	Flags []flagMeta `json:"flags"`
}

type definitionListResponse struct {
	Flags []flagDefinition `json:"flags"`
}

// Fetch retrieves flag metadata and the target environment's definitions
// and joins them into one snapshot.
func (c *Client) Fetch(ctx context.Context) (*domain.Registry, error) {
	var metaResp flagListResponse
	if err := c.get(ctx, c.projectPath("flags"), &metaResp); err != nil {
		return nil, err
	}

	reg := &domain.Registry{}
	byName := make(map[string]int, len(metaResp.Flags))
	for _, meta := range metaResp.Flags {
		record := domain.FlagRecord{Name: meta.Name}
		for _, tag := range meta.Tags {
			record.Tags = append(record.Tags, tag.Name)
		}
		byName[meta.Name] = len(reg.Flags)
		reg.Flags = append(reg.Flags, record)
	}

	var defResp definitionListResponse
	err := c.get(ctx, c.projectPath("environments/"+url.PathEscape(c.environment)+"/flags"), &defResp)
	switch {
	case isNotFound(err):
		reg.Warnings = append(reg.Warnings,
			fmt.Sprintf("environment %q not found in registry; staleness checks have no data", c.environment))
		return reg, nil
	case err != nil:
		return nil, err
	}

	for _, def := range defResp.Flags {
		idx, ok := byName[def.Name]
		if !ok {
			continue
		}
		if reg.Flags[idx].Environments == nil {
			reg.Flags[idx].Environments = make(map[string]domain.EnvironmentState, 1)
		}
		reg.Flags[idx].Environments[c.environment] = domain.EnvironmentState{
			LastModified: fromMillis(def.LastUpdateTime),
			LastTraffic:  fromMillis(def.LastTrafficReceivedAt),
			Allocation:   def.TrafficAllocation,
		}
	}

	return reg, nil
}

func (c *Client) projectPath(suffix string) string {
	return fmt.Sprintf("%s/api/v2/projects/%s/%s", c.baseURL, url.PathEscape(c.project), suffix)
}

// statusError distinguishes HTTP status failures, in particular the
// environment-not-found condition.
type statusError struct {
	code int
	url  string
}

func (e *statusError) Error() string {
	hint := "verify account, org, and project identifiers"
	switch e.code {
	case http.StatusUnauthorized:
		hint = "verify FLAGGATE_API_TOKEN is valid and not expired"
	case http.StatusForbidden:
		hint = "the API token lacks permission for this project"
	}
	return fmt.Sprintf("registry returned HTTP %d for %s (%s)", e.code, e.url, hint)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusNotFound
}

func (c *Client) get(ctx context.Context, rawURL string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("building registry request: %w", err)
	}
	q := req.URL.Query()
	q.Set("account", c.account)
	if c.org != "" {
		q.Set("org", c.org)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("registry unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &statusError{code: resp.StatusCode, url: rawURL}
	}

	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return fmt.Errorf("malformed registry response from %s: %w", rawURL, err)
	}
	return nil
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
