package llmprovider

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"conversational-task-assistant/pkg/deepseek"
	"conversational-task-assistant/pkg/gemini"
	"conversational-task-assistant/pkg/qwen"
)

// ProviderConfig describes one configured backend.
type ProviderConfig struct {
	Name     string
	Enabled  bool
	Priority int
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// InitializeProviders builds the enabled providers sorted by priority, lowest first.
// A provider that fails to initialize is skipped; the returned error lists the skipped ones
// and is non-nil only when none could be built.
func InitializeProviders(cfgs []ProviderConfig) ([]Provider, []error, error) {
	var enabled []ProviderConfig
	for _, p := range cfgs {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	if len(enabled) == 0 {
		return nil, nil, ErrNoProvidersConfigured
	}

	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	var providers []Provider
	var skipped []error
	for _, p := range enabled {
		provider, err := createProvider(p)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("provider %s (priority %d): %w", p.Name, p.Priority, err))
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		msgs := make([]string, len(skipped))
		for i, err := range skipped {
			msgs[i] = err.Error()
		}
		return nil, skipped, fmt.Errorf("no providers successfully initialized: %s", strings.Join(msgs, "; "))
	}
	return providers, skipped, nil
}

func createProvider(cfg ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	switch strings.ToLower(cfg.Name) {
	case providerGemini:
		client, err := gemini.New(gemini.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			APIURL:     cfg.BaseURL,
			HTTPClient: httpClient(cfg.Timeout),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeminiAdapter(client), nil

	case providerQwen:
		client, err := qwen.New(qwen.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			HTTPClient: httpClient(cfg.Timeout),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create qwen client: %w", err)
		}
		return NewQwenAdapter(client), nil

	case providerDeepSeek:
		client, err := deepseek.New(deepseek.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			HTTPClient: httpClient(cfg.Timeout),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create deepseek client: %w", err)
		}
		return NewDeepSeekAdapter(client), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}
}

// httpClient returns nil for a zero timeout so each client applies its own default.
func httpClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		return nil
	}
	return &http.Client{Timeout: timeout}
}
