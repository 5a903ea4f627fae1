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

package report

import (
	"context"
	"fmt"
	"os"

	"github.com/sirseerhq/azdo-envreport/internal/azdevops"
)

// Enricher resolves the approval-gate approvers of single environments.
// Every failure is contained to the environment (or the single check)
// that caused it: a run never aborts because one environment's checks
// could not be read.
type Enricher struct {
	client azdevops.Client

	approvalChecks int
}

// NewEnricher creates an Enricher using the given client.
func NewEnricher(client azdevops.Client) *Enricher {
	return &Enricher{client: client}
}

// ApprovalChecksSeen returns how many approval checks the enricher has
// encountered across all environments so far.
func (e *Enricher) ApprovalChecksSeen() int {
	return e.approvalChecks
}

// ResolveApprovers returns the approvers of every approval check configured
// on the environment, in API return order, duplicates preserved. It never
// returns an error: failures are logged and degrade to an empty (or
// shorter) approver list.
func (e *Enricher) ResolveApprovers(ctx context.Context, projectID string, env azdevops.Environment) []azdevops.IdentityRef {
	checks, err := e.client.QueryCheckConfigurations(ctx, projectID, env.ID, env.Name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠️  Could not query checks for environment %q (id %d): %v. Reporting it without approvers.\n",
			env.Name, env.ID, err)
		return nil
	}

	var approvers []azdevops.IdentityRef
	for _, check := range checks {
		if !check.IsApproval() {
			continue
		}
		e.approvalChecks++

		checkApprovers, err := e.client.GetCheckApprovers(ctx, check.URL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  Could not fetch approval check %d for environment %q: %v. Skipping this check.\n",
				check.ID, env.Name, err)
			continue
		}

		approvers = append(approvers, checkApprovers...)
	}

	return approvers
}
