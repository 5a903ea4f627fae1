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

package testutil

import (
	"fmt"
	"time"
)

// Identity builds an identityRef object for mock responses.
func Identity(displayName, uniqueName string) map[string]interface{} {
	return map[string]interface{}{
		"displayName": displayName,
		"uniqueName":  uniqueName,
	}
}

// Environment builds a full environment object for mock responses.
func Environment(id int, name string) map[string]interface{} {
	created := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC).Add(time.Duration(id) * time.Hour)
	return map[string]interface{}{
		"id":          id,
		"name":        name,
		"description": fmt.Sprintf("Environment %s", name),
		"createdBy":   Identity(fmt.Sprintf("Creator %d", id), fmt.Sprintf("creator%d@example.com", id)),
		"createdOn":   created.Format(time.RFC3339),
		"lastModifiedBy": Identity(fmt.Sprintf("Modifier %d", id),
			fmt.Sprintf("modifier%d@example.com", id)),
		"lastModifiedOn": created.Add(24 * time.Hour).Format(time.RFC3339),
	}
}

// GenerateEnvironments builds count environments with ids starting at 1 and
// names carrying a numeric application prefix.
func GenerateEnvironments(count int) []map[string]interface{} {
	envs := make([]map[string]interface{}, 0, count)
	for i := 1; i <= count; i++ {
		envs = append(envs, Environment(i, fmt.Sprintf("%03d-app-%d", i, i)))
	}
	return envs
}

// DefaultFixture returns an OrgFixture with one project and the given
// environments, with no approval checks configured.
func DefaultFixture(envs []map[string]interface{}) OrgFixture {
	return OrgFixture{
		ProjectName:      "WebPlatform",
		ProjectID:        "proj-0001",
		Environments:     envs,
		ApproversByEnvID: map[int][][]map[string]interface{}{},
	}
}
