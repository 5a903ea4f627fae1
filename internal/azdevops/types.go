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

import "time"

// ProjectRef identifies a resolved team project. The name is the server's
// canonical spelling, which may differ from the user-supplied name in case.
// Resolved once per run and immutable thereafter.
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IdentityRef is the subset of the Azure DevOps identity reference shape
// that the report needs. UniqueName carries the user's email address for
// AAD-backed organizations.
type IdentityRef struct {
	DisplayName string `json:"displayName"`
	UniqueName  string `json:"uniqueName"`
}

// Environment represents one record from the environments list endpoint.
// Pointer fields may be absent in the response; the record builder maps
// absent values to explicit defaults.
type Environment struct {
	ID             int          `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	CreatedBy      *IdentityRef `json:"createdBy"`
	CreatedOn      *time.Time   `json:"createdOn"`
	LastModifiedBy *IdentityRef `json:"lastModifiedBy"`
	LastModifiedOn *time.Time   `json:"lastModifiedOn"`
}

// EnvironmentPage represents one page of the environments list. The
// continuation token is delivered via the x-ms-continuationtoken response
// header, not the body; an empty token means there are no further pages.
type EnvironmentPage struct {
	Environments      []Environment
	ContinuationToken string
}

// FetchOptions configures how environment pages are fetched.
type FetchOptions struct {
	// PageSize controls how many environments to request per page via $top.
	// Defaults to defaultPageSize if not specified.
	PageSize int

	// ContinuationToken is the opaque cursor for pagination. Empty string
	// fetches from the beginning. Use EnvironmentPage.ContinuationToken
	// from the previous response for the next page.
	ContinuationToken string
}

// Default values for fetch operations
const (
	defaultPageSize = 100
)

// CheckType names the kind of a configured check. Approval gates report
// the name "Approval".
type CheckType struct {
	Name string `json:"name"`
}

// CheckConfiguration is one configured check on a resource, as returned by
// the queryconfigurations endpoint. URL is the self link; fetching it with
// expanded settings yields the approver list for approval checks.
type CheckConfiguration struct {
	ID   int       `json:"id"`
	Type CheckType `json:"type"`
	URL  string    `json:"url"`
}

// ApprovalCheckName is the type name of approval checks. Matching is exact
// and case-sensitive.
const ApprovalCheckName = "Approval"

// IsApproval reports whether the configuration is an approval gate.
func (c CheckConfiguration) IsApproval() bool {
	return c.Type.Name == ApprovalCheckName
}

// resourceRef is one entry of the queryconfigurations filter body. The id
// is a string even for numeric resources; that is the wire contract.
type resourceRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// listResponse is the Azure DevOps list envelope shared by the environments
// and queryconfigurations endpoints.
type listResponse[T any] struct {
	Count int `json:"count"`
	Value []T `json:"value"`
}

// approvalSettings is the expanded settings payload of a single approval
// check detail response.
type approvalSettings struct {
	Settings struct {
		Approvers []IdentityRef `json:"approvers"`
	} `json:"settings"`
}
