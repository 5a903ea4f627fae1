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

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirseerhq/azdo-envreport/test/testutil"
)

func TestMetadataFlagWritesRunMetadata(t *testing.T) {
	fixture := testutil.DefaultFixture(testutil.GenerateEnvironments(2))
	fixture.ApproversByEnvID[1] = [][]map[string]interface{}{
		{testutil.Identity("Alice Smith", "alice@example.com")},
	}
	server := testutil.NewOrgServer(t, fixture)
	defer server.Close()

	reportDir := t.TempDir()
	result := testutil.RunReport(t, server, "WebPlatform", reportDir, "--metadata")
	testutil.AssertCLISuccess(t, result)

	path := findMetadataFile(t, reportDir)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read metadata file: %v", err)
	}

	var metadata struct {
		RunID      string `json:"run_id"`
		Parameters struct {
			Organization string `json:"organization"`
			Project      string `json:"project"`
		} `json:"parameters"`
		Results struct {
			EnvironmentsSeen int `json:"environments_seen"`
			RecordsExported  int `json:"records_exported"`
		} `json:"results"`
	}
	if err := json.Unmarshal(data, &metadata); err != nil {
		t.Fatalf("Failed to parse metadata JSON: %v", err)
	}

	if metadata.Parameters.Project != "WebPlatform" {
		t.Errorf("metadata project = %q, want WebPlatform", metadata.Parameters.Project)
	}
	if metadata.Results.EnvironmentsSeen != 2 {
		t.Errorf("environments seen = %d, want 2", metadata.Results.EnvironmentsSeen)
	}
	if metadata.Results.RecordsExported != 2 {
		t.Errorf("records exported = %d, want 2", metadata.Results.RecordsExported)
	}
	if !strings.HasPrefix(metadata.RunID, "envreport-") {
		t.Errorf("run id = %q, want envreport- prefix", metadata.RunID)
	}
}

func TestNoMetadataFileWithoutFlag(t *testing.T) {
	fixture := testutil.DefaultFixture(testutil.GenerateEnvironments(1))
	server := testutil.NewOrgServer(t, fixture)
	defer server.Close()

	reportDir := t.TempDir()
	result := testutil.RunReport(t, server, "WebPlatform", reportDir)
	testutil.AssertCLISuccess(t, result)

	entries, err := os.ReadDir(reportDir)
	if err != nil {
		t.Fatalf("Failed to read report dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "run-metadata-") {
			t.Errorf("Unexpected metadata file %s", entry.Name())
		}
	}
}

func findMetadataFile(t *testing.T, dir string) string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read report dir: %v", err)
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "run-metadata-") && strings.HasSuffix(entry.Name(), ".json") {
			return filepath.Join(dir, entry.Name())
		}
	}

	t.Fatal("No run-metadata file found")
	return ""
}
