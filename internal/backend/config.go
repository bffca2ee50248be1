package backend

import (
	"fmt"

	"compras/internal/config"
)

// FromAppConfig converts the application config to backend config.
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := Type(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:           backendType,
		WebhookURL:     appConfig.WebhookURL,
		WebhookTimeout: appConfig.WebhookTimeout,
	}, nil
}

// Validate validates the backend configuration.
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == N8NBackend && c.WebhookURL == "" {
		return fmt.Errorf("webhook URL is required for the n8n backend")
	}
	return nil
}
