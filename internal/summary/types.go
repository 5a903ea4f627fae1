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

// Package summary types define the structures used for recording what a
// report run did: its parameters, counts, and timings. These records
// provide an audit trail and make "why is this report shorter than
// yesterday's" questions answerable.
package summary

import "time"

// RunMetadata represents the complete metadata record for a single report
// run. It is written as JSON next to the report when metadata saving is
// enabled.
type RunMetadata struct {
	ToolVersion string     `json:"tool_version"`
	RunID       string     `json:"run_id"`
	Parameters  RunParams  `json:"parameters"`
	Results     RunResults `json:"results"`
}

// RunParams captures the input parameters of a run. They are preserved to
// make a report reproducible and to debug unexpected output.
type RunParams struct {
	Organization string `json:"organization"`
	Project      string `json:"project"`
	PageSize     int    `json:"page_size"`
}

// RunResults contains the counts and timings of a completed run. When the
// run was healthy, EnvironmentsSeen equals RecordsExported.
type RunResults struct {
	EnvironmentsSeen  int       `json:"environments_seen"`
	ApprovalChecks    int       `json:"approval_checks"`
	ApproversResolved int       `json:"approvers_resolved"`
	RecordsExported   int       `json:"records_exported"`
	ReportPath        string    `json:"report_path,omitempty"`
	Duration          string    `json:"duration"`
	StartedAt         time.Time `json:"started_at"`
	CompletedAt       time.Time `json:"completed_at"`
}
