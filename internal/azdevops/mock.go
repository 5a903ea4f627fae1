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
	"strconv"

	reporterrors "github.com/sirseerhq/azdo-envreport/internal/errors"
)

// MockClient is a mock implementation of the Client interface for testing.
// Pages are served in order; the continuation token handed back after page
// N is the decimal index of page N+1, mimicking the opaque header token.
type MockClient struct {
	// Project to return from ResolveProject
	Project *ProjectRef

	// Pages of environments to serve in order
	Pages [][]Environment

	// Checks per environment id
	Checks map[int][]CheckConfiguration

	// Approvers per check URL
	Approvers map[string][]IdentityRef

	// Behavior flags
	ShouldFailAuth    bool
	ShouldFailProject bool

	// FailFetchTimes makes the first N FetchEnvironments calls fail
	FailFetchTimes int

	// FailChecksFor makes QueryCheckConfigurations fail for these env ids
	FailChecksFor map[int]bool

	// FailApproversFor makes GetCheckApprovers fail for these URLs
	FailApproversFor map[string]bool

	// Track calls for verification
	ResolveCalls int
	FetchCalls   int
	CheckCalls   int
	DetailCalls  int
	LastOpts     FetchOptions
}

// NewMockClient creates a new mock client with a resolvable default project.
func NewMockClient() *MockClient {
	return &MockClient{
		Project: &ProjectRef{ID: "project-guid", Name: "Contoso"},
	}
}

// ResolveProject implements the Client interface
func (m *MockClient) ResolveProject(ctx context.Context, projectName string) (*ProjectRef, error) {
	m.ResolveCalls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.ShouldFailAuth {
		return nil, fmt.Errorf("authentication failed: %w", reporterrors.ErrInvalidToken)
	}
	if m.ShouldFailProject {
		return nil, fmt.Errorf("project %q not found: %w", projectName, reporterrors.ErrProjectNotFound)
	}

	return m.Project, nil
}

// FetchEnvironments implements the Client interface
func (m *MockClient) FetchEnvironments(ctx context.Context, projectID string, opts FetchOptions) (*EnvironmentPage, error) {
	m.FetchCalls++
	m.LastOpts = opts

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.FailFetchTimes > 0 {
		m.FailFetchTimes--
		return nil, fmt.Errorf("transient failure: %w", reporterrors.ErrNetworkFailure)
	}

	index := 0
	if opts.ContinuationToken != "" {
		i, err := strconv.Atoi(opts.ContinuationToken)
		if err != nil {
			return nil, fmt.Errorf("unknown continuation token %q", opts.ContinuationToken)
		}
		index = i
	}

	if index >= len(m.Pages) {
		return &EnvironmentPage{}, nil
	}

	page := &EnvironmentPage{Environments: m.Pages[index]}
	if index+1 < len(m.Pages) {
		page.ContinuationToken = strconv.Itoa(index + 1)
	}

	return page, nil
}

// QueryCheckConfigurations implements the Client interface
func (m *MockClient) QueryCheckConfigurations(ctx context.Context, projectID string, envID int, envName string) ([]CheckConfiguration, error) {
	m.CheckCalls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.FailChecksFor[envID] {
		return nil, fmt.Errorf("check query failed for environment %d", envID)
	}

	return m.Checks[envID], nil
}

// GetCheckApprovers implements the Client interface
func (m *MockClient) GetCheckApprovers(ctx context.Context, checkURL string) ([]IdentityRef, error) {
	m.DetailCalls++

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.FailApproversFor[checkURL] {
		return nil, fmt.Errorf("check detail failed for %s", checkURL)
	}

	return m.Approvers[checkURL], nil
}
