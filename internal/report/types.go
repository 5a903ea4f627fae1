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

import "strconv"

// Record is one flattened report row: an environment, its approval-gate
// approvers, and its audit fields, with every absent value replaced by an
// explicit default so no cell is ever empty.
type Record struct {
	TeamProjectName string
	EnvironmentID   int
	EnvironmentName string
	ApplicationID   string
	ApproverNames   string
	ApproverEmails  string
	CreatedBy       string
	CreatedOn       string
	LastModifiedBy  string
	LastModifiedOn  string
	Description     string
}

// Header returns the report column names in output order. The names and
// their order are part of the report contract; downstream spreadsheets
// key on them.
func Header() []string {
	return []string{
		"TeamProjectName",
		"EnvironmentId",
		"EnvironmentName",
		"ApplicationID",
		"ApproverNames",
		"ApproverEmails",
		"CreatedBy",
		"CreatedOn",
		"LastModifiedBy",
		"LastModifiedOn",
		"Description",
	}
}

// Row returns the record's values in Header order.
func (r Record) Row() []string {
	return []string{
		r.TeamProjectName,
		strconv.Itoa(r.EnvironmentID),
		r.EnvironmentName,
		r.ApplicationID,
		r.ApproverNames,
		r.ApproverEmails,
		r.CreatedBy,
		r.CreatedOn,
		r.LastModifiedBy,
		r.LastModifiedOn,
		r.Description,
	}
}
