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

// Package azdevops provides a client for the Azure DevOps REST endpoints
// used by envreport: project lookup, environment listing with continuation
// token pagination, and pipeline check configuration queries.
//
// The package exposes:
//   - Client: the interface consumed by the report pipeline, allowing
//     easy mocking in tests
//   - RESTClient: the production implementation with basic-auth transport,
//     User-Agent identification, and response size limiting
//   - RetryClient: a wrapper adding fixed-delay retry to environment page
//     fetches
//
// All endpoint paths and api-version values are a compatibility contract
// with the Azure DevOps service and must not be changed casually.
package azdevops
