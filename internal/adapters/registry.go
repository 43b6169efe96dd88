package adapters

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"resumehub/internal/logger"
	"resumehub/internal/models"
)

type SourceMode string

const (
	ModeLive    SourceMode = "live"
	ModeFixture SourceMode = "fixture"
)

const DefaultTimeout = 15 * time.Second

type Options struct {
	Timeout         time.Duration
	GitHubBaseURL   string
	DevfolioBaseURL string
	HTTPClient      *http.Client
}

// adapterPlatforms is the fixed order used by Platforms and sync-all.
var adapterPlatforms = []models.Platform{
	models.PlatformCoursera,
	models.PlatformGitHub,
	models.PlatformDevfolio,
}

// Registry resolves one adapter per platform. The source mode of each
// platform is fixed at construction.
type Registry struct {
	adapters map[models.Platform]Adapter
	modes    map[models.Platform]SourceMode
	timeout  time.Duration
	log      logger.Logger
}

// NewRegistry builds live or fixture adapters per platform; platforms absent
// from modes default to live.
func NewRegistry(modes map[models.Platform]SourceMode, options Options) (*Registry, error) {
	if options.Timeout <= 0 {
		options.Timeout = DefaultTimeout
	}
	if options.GitHubBaseURL == "" {
		options.GitHubBaseURL = "https://api.github.com"
	}
	if options.DevfolioBaseURL == "" {
		options.DevfolioBaseURL = "https://api.devfolio.co"
	}

	registry := &Registry{
		adapters: make(map[models.Platform]Adapter, len(adapterPlatforms)),
		modes:    make(map[models.Platform]SourceMode, len(adapterPlatforms)),
		timeout:  options.Timeout,
		log:      logger.New("adapters").File("registry"),
	}

	for _, platform := range adapterPlatforms {
		mode, ok := modes[platform]
		if !ok {
			mode = ModeLive
		}

		switch mode {
		case ModeFixture:
			registry.adapters[platform] = NewFixtureAdapter(platform)
		case ModeLive:
			registry.adapters[platform] = newLiveAdapter(platform, options)
		default:
			return nil, fmt.Errorf("unsupported source mode %q for %s", mode, platform)
		}
		registry.modes[platform] = mode
	}

	return registry, nil
}

func newLiveAdapter(platform models.Platform, options Options) Adapter {
	switch platform {
	case models.PlatformGitHub:
		return NewGitHubAdapter(options.GitHubBaseURL, options.HTTPClient)
	case models.PlatformDevfolio:
		return NewDevfolioAdapter(options.DevfolioBaseURL, options.HTTPClient)
	default:
		return NewCourseraAdapter()
	}
}

// Register replaces the adapter for a platform.
func (r *Registry) Register(adapter Adapter) {
	r.adapters[adapter.Platform()] = adapter
}

func (r *Registry) Get(platform models.Platform) (Adapter, bool) {
	adapter, ok := r.adapters[platform]
	return adapter, ok
}

func (r *Registry) Mode(platform models.Platform) SourceMode {
	return r.modes[platform]
}

func (r *Registry) Platforms() []models.Platform {
	platforms := make([]models.Platform, 0, len(adapterPlatforms))
	for _, platform := range adapterPlatforms {
		if _, ok := r.adapters[platform]; ok {
			platforms = append(platforms, platform)
		}
	}
	return platforms
}

// Fetch runs the platform's adapter under the registry timeout. Every
// failure comes back as an *AdapterError.
func (r *Registry) Fetch(
	ctx context.Context,
	platform models.Platform,
	credential string,
) ([]models.IntegrationRecord, error) {
	log := r.log.Function("Fetch")

	adapter, ok := r.Get(platform)
	if !ok {
		return nil, &AdapterError{
			Platform: platform,
			Message:  "unsupported platform",
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	records, err := adapter.Fetch(fetchCtx, credential)
	if err == nil {
		return records, nil
	}

	if errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
		log.Warn("adapter timed out", "platform", platform, "timeout", r.timeout)
		return nil, &AdapterError{
			Platform: platform,
			Message:  fmt.Sprintf("%s did not respond in time. Please try again later.", platform),
			Cause:    err,
		}
	}

	var adapterErr *AdapterError
	if errors.As(err, &adapterErr) {
		return nil, adapterErr
	}

	return nil, &AdapterError{
		Platform: platform,
		Message:  fmt.Sprintf("Failed to fetch %s data.", platform),
		Cause:    err,
	}
}
