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

package azdevops

import (
	"context"
	"fmt"
	"os"
	"time"
)

// RetryConfig configures the retry behavior for environment page fetches.
// The policy is a fixed inter-attempt delay, not exponential backoff: the
// target is a single well-behaved service and the page is retried as-is.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts per page, including the
	// first one.
	MaxAttempts int
	// Delay is the fixed wait between attempts.
	Delay time.Duration
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		Delay:       5 * time.Second,
	}
}

// RetryClient wraps a Client with retry logic for environment page fetches.
// Every transport or HTTP failure is retried: the pagination loop treats
// exhaustion as "stop and keep what we have", so erring on the side of
// retrying cannot turn a transient blip into a lost run.
//
// Project resolution and check queries pass through untouched. Resolution
// failure is fatal by contract, and check queries have their own
// skip-and-continue policy at the enrichment layer.
type RetryClient struct {
	client Client
	config *RetryConfig
}

// NewRetryClient creates a new RetryClient with the given configuration.
func NewRetryClient(client Client, config *RetryConfig) Client {
	if config == nil {
		config = DefaultRetryConfig()
	}
	return &RetryClient{
		client: client,
		config: config,
	}
}

// ResolveProject implements the Client interface without retry.
func (r *RetryClient) ResolveProject(ctx context.Context, projectName string) (*ProjectRef, error) {
	return r.client.ResolveProject(ctx, projectName)
}

// FetchEnvironments implements the Client interface with retry logic.
func (r *RetryClient) FetchEnvironments(ctx context.Context, projectID string, opts FetchOptions) (*EnvironmentPage, error) {
	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		page, err := r.client.FetchEnvironments(ctx, projectID, opts)
		if err == nil {
			return page, nil
		}

		lastErr = err

		if attempt == r.config.MaxAttempts {
			break
		}

		// Don't retry if context is cancelled
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		fmt.Fprintf(os.Stderr, "⚠️  Failed to fetch environments page: %v. Retrying in %v (attempt %d/%d)...\n",
			err, r.config.Delay, attempt, r.config.MaxAttempts)

		// Wait with context cancellation support
		select {
		case <-time.After(r.config.Delay):
			// Continue to next attempt
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", r.config.MaxAttempts, lastErr)
}

// QueryCheckConfigurations implements the Client interface without retry.
func (r *RetryClient) QueryCheckConfigurations(ctx context.Context, projectID string, envID int, envName string) ([]CheckConfiguration, error) {
	return r.client.QueryCheckConfigurations(ctx, projectID, envID, envName)
}

// GetCheckApprovers implements the Client interface without retry.
func (r *RetryClient) GetCheckApprovers(ctx context.Context, checkURL string) ([]IdentityRef, error) {
	return r.client.GetCheckApprovers(ctx, checkURL)
}
