package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"resumehub/internal/logger"
	"resumehub/internal/models"
)

const (
	githubFetchFailed   = "Failed to fetch GitHub data. Please check the username and try again."
	githubNoDescription = "No description provided"
	githubProjectLimit  = 10
)

var githubUsernamePattern = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)

type githubRepo struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	HTMLURL         string   `json:"html_url"`
	UpdatedAt       string   `json:"updated_at"`
	Fork            bool     `json:"fork"`
	Private         bool     `json:"private"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Language        *string  `json:"language"`
	Topics          []string `json:"topics"`
}

type GitHubAdapter struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

func NewGitHubAdapter(baseURL string, client *http.Client) *GitHubAdapter {
	if client == nil {
		client = http.DefaultClient
	}
	return &GitHubAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     logger.New("adapters").File("github"),
	}
}

func (a *GitHubAdapter) Platform() models.Platform {
	return models.PlatformGitHub
}

// Fetch maps the user's ten most recently updated non-fork repositories to
// project records.
func (a *GitHubAdapter) Fetch(ctx context.Context, username string) ([]models.IntegrationRecord, error) {
	log := a.log.Function("Fetch")

	username = strings.TrimSpace(username)
	if !githubUsernamePattern.MatchString(username) {
		return nil, a.failure(fmt.Errorf("invalid github username %q", username))
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=100", a.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, a.failure(err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := a.client.Do(req)
	if err != nil {
		log.Warn("github request failed", "username", username, "error", err)
		return nil, a.failure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("github returned non-200", "username", username, "status", resp.StatusCode)
		return nil, a.failure(fmt.Errorf("github responded with status %d", resp.StatusCode))
	}

	var repos []githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, a.failure(fmt.Errorf("decode github repositories: %w", err))
	}

	records := make([]models.IntegrationRecord, 0, githubProjectLimit)
	for _, repo := range repos {
		if repo.Fork {
			continue
		}
		if len(records) == githubProjectLimit {
			break
		}
		records = append(records, repo.toRecord())
	}

	log.Info("Fetched github repositories", "username", username, "repos", len(repos), "records", len(records))
	return records, nil
}

func (repo githubRepo) toRecord() models.IntegrationRecord {
	description := githubNoDescription
	if repo.Description != nil && *repo.Description != "" {
		description = *repo.Description
	}

	date, _, _ := strings.Cut(repo.UpdatedAt, "T")

	var language any
	if repo.Language != nil {
		language = *repo.Language
	}

	topics := repo.Topics
	if topics == nil {
		topics = []string{}
	}

	return models.IntegrationRecord{
		Platform:       models.PlatformGitHub,
		DataType:       models.DataTypeProject,
		Title:          repo.Name,
		Description:    description,
		Date:           date,
		CertificateURL: repo.HTMLURL,
		Metadata: map[string]any{
			"stars":     repo.StargazersCount,
			"forks":     repo.ForksCount,
			"language":  language,
			"topics":    topics,
			"isPrivate": repo.Private,
		},
	}
}

func (a *GitHubAdapter) failure(cause error) *AdapterError {
	return &AdapterError{
		Platform: models.PlatformGitHub,
		Message:  githubFetchFailed,
		Cause:    cause,
	}
}
