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

package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestCSVWriter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")

	w := NewCSVWriter([]string{"EnvironmentName", "ApproverNames"})
	w.Append([]string{"101-dev", "A; B"})
	w.Append([]string{"shared-prod", "No approvers"})

	if w.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", w.Count())
	}

	if err := w.Flush(path); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse report: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("report has %d lines, want header + 2 rows", len(records))
	}
	if records[0][0] != "EnvironmentName" || records[0][1] != "ApproverNames" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][1] != "A; B" {
		t.Errorf("first row approvers = %q, want %q", records[1][1], "A; B")
	}
	if records[2][0] != "shared-prod" {
		t.Errorf("second row environment = %q, want shared-prod", records[2][0])
	}
}

func TestCSVWriter_QuotesEmbeddedDelimiters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.csv")

	w := NewCSVWriter([]string{"EnvironmentName", "Description"})
	w.Append([]string{"101-dev", `gates for "dev", east region`})

	if err := w.Flush(path); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open report: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse report: %v", err)
	}
	if records[1][1] != `gates for "dev", east region` {
		t.Errorf("description round-trip = %q", records[1][1])
	}
}

func TestCSVWriter_FlushToMissingDirectory(t *testing.T) {
	w := NewCSVWriter([]string{"a"})
	w.Append([]string{"1"})

	if err := w.Flush(filepath.Join(t.TempDir(), "missing", "report.csv")); err == nil {
		t.Fatal("Flush() should fail when the directory does not exist")
	}
}
