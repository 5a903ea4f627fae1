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
	"regexp"
	"strings"
	"time"

	"github.com/sirseerhq/azdo-envreport/internal/azdevops"
)

const (
	// notAvailable is the default for absent scalar fields.
	notAvailable = "N/A"

	// noApprovers is the default when an environment resolved zero
	// approvers, whether none are configured or enrichment failed.
	noApprovers = "No approvers"

	// approverSeparator joins approver names and emails.
	approverSeparator = "; "

	// timestampLayout renders timestamps as M/d/yyyy h:mm:ss tt in the
	// invariant culture: 12-hour clock, AM/PM, no leading zeros on
	// month, day, or hour.
	timestampLayout = "1/2/2006 3:04:05 PM"
)

// applicationIDPattern extracts the leading digit run of environment names
// like "042-billing". The digits are kept verbatim, leading zeros included.
var applicationIDPattern = regexp.MustCompile(`^(\d+)-`)

// BuildRecord flattens one environment plus its resolved approvers into a
// Record. It is a pure function: no I/O, no failure modes. Absent, nil,
// and empty-string inputs all map to the documented defaults, never to an
// empty cell.
func BuildRecord(project *azdevops.ProjectRef, env azdevops.Environment, approvers []azdevops.IdentityRef) Record {
	return Record{
		TeamProjectName: project.Name,
		EnvironmentID:   env.ID,
		EnvironmentName: env.Name,
		ApplicationID:   applicationID(env.Name),
		ApproverNames:   joinApprovers(approvers, func(a azdevops.IdentityRef) string { return a.DisplayName }),
		ApproverEmails:  joinApprovers(approvers, func(a azdevops.IdentityRef) string { return a.UniqueName }),
		CreatedBy:       identityName(env.CreatedBy),
		CreatedOn:       formatTimestamp(env.CreatedOn),
		LastModifiedBy:  identityName(env.LastModifiedBy),
		LastModifiedOn:  formatTimestamp(env.LastModifiedOn),
		Description:     orDefault(env.Description),
	}
}

// applicationID returns the leading digit run of an environment name
// matching the <digits>- convention, or the default for names that don't
// follow it. No numeric parsing happens: "042" stays "042".
func applicationID(name string) string {
	m := applicationIDPattern.FindStringSubmatch(name)
	if m == nil {
		return notAvailable
	}
	return m[1]
}

// joinApprovers joins one field of each approver. Duplicates across
// multiple approval checks are preserved as-is.
func joinApprovers(approvers []azdevops.IdentityRef, field func(azdevops.IdentityRef) string) string {
	if len(approvers) == 0 {
		return noApprovers
	}

	values := make([]string, 0, len(approvers))
	for _, a := range approvers {
		values = append(values, field(a))
	}
	return strings.Join(values, approverSeparator)
}

func identityName(ref *azdevops.IdentityRef) string {
	if ref == nil {
		return notAvailable
	}
	return orDefault(ref.DisplayName)
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return notAvailable
	}
	return t.Format(timestampLayout)
}

func orDefault(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
