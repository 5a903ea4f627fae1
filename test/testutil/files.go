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
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFastConfig writes a config file with zeroed delays and a low run
// timeout, and returns its path. Tests pass it via --config.
func WriteFastConfig(t *testing.T) string {
	t.Helper()

	content := `defaults:
  page_size: 100
  retry_attempts: 3
  retry_delay_seconds: 0
  page_delay_seconds: 0
  run_timeout_minutes: 5
`

	path := filepath.Join(t.TempDir(), "envreport.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

// ReadCSV reads a CSV file and returns all rows including the header.
func ReadCSV(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open CSV %s: %v", path, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse CSV %s: %v", path, err)
	}
	return rows
}

// FindReportFile returns the single CSV file in dir, failing the test if
// there is not exactly one.
func FindReportFile(t *testing.T, dir string) string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read report dir %s: %v", dir, err)
	}

	var reports []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".csv") {
			reports = append(reports, filepath.Join(dir, entry.Name()))
		}
	}

	if len(reports) != 1 {
		t.Fatalf("Expected exactly one report in %s, found %d", dir, len(reports))
	}
	return reports[0]
}

// AssertNoReportFile fails the test if dir contains any CSV file. A missing
// directory counts as no report.
func AssertNoReportFile(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		t.Fatalf("Failed to read report dir %s: %v", dir, err)
	}

	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".csv") {
			t.Errorf("Expected no report, found %s", entry.Name())
		}
	}
}
