package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"resumehub/internal/logger"
	"resumehub/internal/models"
)

const (
	devfolioFetchFailed = "Failed to fetch Devfolio data. Please check the username and try again."
	devfolioFallback    = "You can add hackathon projects manually in Resume Builder"
	devfolioParticipant = "Participant"
)

type devfolioProfile struct {
	Hackathons []devfolioHackathon `json:"hackathons"`
	Projects   []devfolioProject   `json:"projects"`
}

type devfolioHackathon struct {
	Name         string   `json:"name"`
	Position     *string  `json:"position"`
	Description  string   `json:"description"`
	Date         string   `json:"date"`
	URL          string   `json:"url"`
	TeamSize     *int     `json:"teamSize"`
	Technologies []string `json:"technologies"`
}

type devfolioProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	CreatedAt    string   `json:"createdAt"`
	URL          string   `json:"url"`
	Likes        *int     `json:"likes"`
	Views        *int     `json:"views"`
	Technologies []string `json:"technologies"`
}

type DevfolioAdapter struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

func NewDevfolioAdapter(baseURL string, client *http.Client) *DevfolioAdapter {
	if client == nil {
		client = http.DefaultClient
	}
	return &DevfolioAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		log:     logger.New("adapters").File("devfolio"),
	}
}

func (a *DevfolioAdapter) Platform() models.Platform {
	return models.PlatformDevfolio
}

// Fetch maps the public profile's hackathons and projects to records.
func (a *DevfolioAdapter) Fetch(ctx context.Context, username string) ([]models.IntegrationRecord, error) {
	log := a.log.Function("Fetch")

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, a.failure(fmt.Errorf("empty devfolio username"))
	}

	endpoint := fmt.Sprintf("%s/api/users/%s", a.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, a.failure(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		log.Warn("devfolio request failed", "username", username, "error", err)
		return nil, a.failure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("devfolio returned non-200", "username", username, "status", resp.StatusCode)
		return nil, a.failure(fmt.Errorf("devfolio responded with status %d", resp.StatusCode))
	}

	var profile devfolioProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, a.failure(fmt.Errorf("decode devfolio profile: %w", err))
	}

	records := make([]models.IntegrationRecord, 0, len(profile.Hackathons)+len(profile.Projects))
	for _, hackathon := range profile.Hackathons {
		records = append(records, hackathon.toRecord())
	}
	for _, project := range profile.Projects {
		records = append(records, project.toRecord())
	}

	log.Info("Fetched devfolio profile",
		"username", username,
		"hackathons", len(profile.Hackathons),
		"projects", len(profile.Projects),
	)
	return records, nil
}

func (h devfolioHackathon) toRecord() models.IntegrationRecord {
	position := devfolioParticipant
	var rawPosition any
	if h.Position != nil {
		rawPosition = *h.Position
		if *h.Position != "" {
			position = *h.Position
		}
	}

	var teamSize any
	if h.TeamSize != nil {
		teamSize = *h.TeamSize
	}

	return models.IntegrationRecord{
		Platform:       models.PlatformDevfolio,
		DataType:       models.DataTypeHackathon,
		Title:          fmt.Sprintf("%s - %s", h.Name, position),
		Description:    h.Description,
		Date:           h.Date,
		CertificateURL: h.URL,
		Metadata: map[string]any{
			"position":     rawPosition,
			"teamSize":     teamSize,
			"technologies": nonNilStrings(h.Technologies),
		},
	}
}

func (p devfolioProject) toRecord() models.IntegrationRecord {
	var likes, views any
	if p.Likes != nil {
		likes = *p.Likes
	}
	if p.Views != nil {
		views = *p.Views
	}

	return models.IntegrationRecord{
		Platform:       models.PlatformDevfolio,
		DataType:       models.DataTypeProject,
		Title:          p.Name,
		Description:    p.Description,
		Date:           p.CreatedAt,
		CertificateURL: p.URL,
		Metadata: map[string]any{
			"likes":        likes,
			"views":        views,
			"technologies": nonNilStrings(p.Technologies),
		},
	}
}

func (a *DevfolioAdapter) failure(cause error) *AdapterError {
	return &AdapterError{
		Platform: models.PlatformDevfolio,
		Message:  devfolioFetchFailed,
		Fallback: devfolioFallback,
		Cause:    cause,
	}
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
