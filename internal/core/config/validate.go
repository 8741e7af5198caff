package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/canteen/internal/core/styles"
)

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("gateway.base_url", c.Gateway.BaseURL, validBaseURL),
		criterio.Run("tui.theme", c.TUI.Theme, validTheme),
	)
}

func validBaseURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("base url is required")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url is missing a host")
	}
	return nil
}

func validTheme(name string) error {
	if name == "" {
		return nil // falls back to default
	}
	if _, ok := styles.GetPalette(name); !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(styles.ThemeNames(), ", "))
	}
	return nil
}
