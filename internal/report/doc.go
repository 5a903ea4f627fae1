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

// Package report turns Azure DevOps environments into flat report records.
//
// It has three pieces, mirroring the data flow of a run:
//   - Collector: paginates the environments list, tolerating page-fetch
//     failures by keeping the pages already accumulated
//   - Enricher: resolves the approval-check approvers of one environment,
//     best effort, never failing the run
//   - BuildRecord: a pure function flattening one environment plus its
//     approvers into a Record with explicit defaults
//
// An enrichment failure degrades the affected environment to "No approvers";
// it never drops the row. One output record exists per collected
// environment, always.
package report
