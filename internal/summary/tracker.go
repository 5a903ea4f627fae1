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

package summary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Tracker collects statistics during a report run. Create one at the start
// of the run and record activity as the pipeline progresses; Generate
// produces the final metadata record.
type Tracker struct {
	startTime time.Time
	results   RunResults
}

// New creates a new run tracker initialized with the current time.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// SetEnvironmentsSeen records how many environments pagination collected.
func (t *Tracker) SetEnvironmentsSeen(n int) {
	t.results.EnvironmentsSeen = n
}

// AddApprovalChecks records approval checks found for one environment.
func (t *Tracker) AddApprovalChecks(n int) {
	t.results.ApprovalChecks += n
}

// AddApprovers records approvers resolved for one environment.
func (t *Tracker) AddApprovers(n int) {
	t.results.ApproversResolved += n
}

// SetRecordsExported records the final report row count.
func (t *Tracker) SetRecordsExported(n int) {
	t.results.RecordsExported = n
}

// SetReportPath records where the report was written, if it was.
func (t *Tracker) SetReportPath(path string) {
	t.results.ReportPath = path
}

// Results returns a snapshot of the counts recorded so far.
func (t *Tracker) Results() RunResults {
	return t.results
}

// Generate creates the RunMetadata record for a completed run.
func (t *Tracker) Generate(toolVersion string, params RunParams) *RunMetadata {
	completedAt := time.Now()

	results := t.results
	results.StartedAt = t.startTime
	results.CompletedAt = completedAt
	results.Duration = completedAt.Sub(t.startTime).String()

	return &RunMetadata{
		ToolVersion: toolVersion,
		RunID:       fmt.Sprintf("envreport-%d", t.startTime.Unix()),
		Parameters:  params,
		Results:     results,
	}
}

// Save persists a RunMetadata record as JSON in the specified directory.
// The file is written atomically using a temporary file and rename to
// prevent corruption. The filename includes a timestamp for easy sorting.
func Save(metadata *RunMetadata, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create metadata directory: %w", err)
	}

	filename := fmt.Sprintf("run-metadata-%d.json", metadata.Results.StartedAt.Unix())
	path := filepath.Join(dir, filename)

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create metadata file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(metadata); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close metadata file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		return fmt.Errorf("failed to save metadata file: %w", err)
	}

	return nil
}
