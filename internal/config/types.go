// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config types define the configuration structures used throughout
// envreport. These types represent settings that can be loaded from YAML
// configuration files, environment variables, or command-line flags.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete configuration for envreport. It
// consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	AzureDevOps AzureDevOpsConfig `yaml:"azure_devops"`
	Defaults    DefaultsConfig    `yaml:"defaults"`
}

// AzureDevOpsConfig contains service-specific settings. BaseURL allows
// pointing the tool at Azure DevOps Server installations; the organization
// name supplied at run time is appended to it.
type AzureDevOpsConfig struct {
	BaseURL  string `yaml:"base_url"`
	TokenEnv string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to every run unless
// overridden by command-line flags. Delays are in seconds; the retry delay
// and page delay exist to stay clear of service rate limits and should not
// be zeroed casually.
type DefaultsConfig struct {
	PageSize       int    `yaml:"page_size"`
	RetryAttempts  int    `yaml:"retry_attempts"`
	RetryDelaySecs int    `yaml:"retry_delay_seconds"`
	PageDelaySecs  int    `yaml:"page_delay_seconds"`
	ReportDir      string `yaml:"report_dir"`
	RunTimeoutMins int    `yaml:"run_timeout_minutes"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. The defaults target the hosted dev.azure.com service.
func DefaultConfig() *Config {
	return &Config{
		AzureDevOps: AzureDevOpsConfig{
			BaseURL:  "https://dev.azure.com",
			TokenEnv: "AZDO_PAT",
		},
		Defaults: DefaultsConfig{
			PageSize:       100,
			RetryAttempts:  3,
			RetryDelaySecs: 5,
			PageDelaySecs:  1,
			ReportDir:      "",
			RunTimeoutMins: 60,
		},
	}
}

// OrganizationURL returns the API root for the given organization.
func (c *Config) OrganizationURL(organization string) string {
	return fmt.Sprintf("%s/%s", c.AzureDevOps.BaseURL, organization)
}

// RetryDelay returns the inter-attempt delay for page fetch retries.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Defaults.RetryDelaySecs) * time.Second
}

// PageDelay returns the throttle pause between successful pages.
func (c *Config) PageDelay() time.Duration {
	return time.Duration(c.Defaults.PageDelaySecs) * time.Second
}

// RunTimeout returns the whole-run deadline.
func (c *Config) RunTimeout() time.Duration {
	return time.Duration(c.Defaults.RunTimeoutMins) * time.Minute
}

// Validate checks if the configuration contains valid values. This should
// be called after loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got: %d", c.Defaults.PageSize)
	}
	if c.Defaults.PageSize > 1000 {
		return fmt.Errorf("page size %d exceeds the environments API limit of 1000", c.Defaults.PageSize)
	}
	if c.Defaults.RetryAttempts <= 0 {
		return fmt.Errorf("retry attempts must be positive, got: %d", c.Defaults.RetryAttempts)
	}
	if c.Defaults.RetryDelaySecs < 0 || c.Defaults.PageDelaySecs < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	if c.AzureDevOps.BaseURL == "" {
		return fmt.Errorf("azure devops base URL cannot be empty")
	}
	return nil
}
