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

import "context"

// Client defines the interface for interacting with the Azure DevOps API.
// This interface allows for easy mocking in tests.
type Client interface {
	// ResolveProject resolves a project name to its stable identifier and
	// canonical name. Failure here is fatal for the run: no report can be
	// produced without a project id.
	ResolveProject(ctx context.Context, projectName string) (*ProjectRef, error)

	// FetchEnvironments retrieves one page of environments for the project.
	// It supports cursor-based pagination through opts.ContinuationToken;
	// the page size can be configured via opts.PageSize.
	FetchEnvironments(ctx context.Context, projectID string, opts FetchOptions) (*EnvironmentPage, error)

	// QueryCheckConfigurations returns all check configurations attached to
	// the given environment, with settings expanded. Callers filter for
	// approval checks.
	QueryCheckConfigurations(ctx context.Context, projectID string, envID int, envName string) ([]CheckConfiguration, error)

	// GetCheckApprovers fetches one check configuration's detail by its
	// self URL and returns the configured approvers.
	GetCheckApprovers(ctx context.Context, checkURL string) ([]IdentityRef, error)
}
