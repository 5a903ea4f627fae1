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

// Package main implements the envreport command-line interface. The tool
// enumerates the deployment environments of an Azure DevOps project,
// resolves each environment's approval-gate configuration, and writes a
// flat CSV report.
//
// The CLI supports:
//   - Personal access token authentication via flag, environment
//     variable, or .env file
//   - YAML configuration for endpoints, paging, and delays
//   - Best-effort enrichment: one environment's failure never aborts
//     the run
//   - Graceful error handling with appropriate exit codes
//
// Usage:
//
//	envreport report --organization <org> --project <project> [flags]
//
// Example:
//
//	export AZDO_PAT=your_token
//	envreport report --organization contoso --project Tailwind
//
// Exit codes:
//   - 0: Success (including runs that found zero environments)
//   - 1: General error
//   - 2: Authentication/authorization error
//   - 3: Network error
package main
