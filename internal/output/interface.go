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

// ReportWriter defines the interface for accumulating and writing report
// rows. This abstraction allows for different output formats (CSV, NDJSON,
// etc.) to be implemented in the future without changing the core logic.
type ReportWriter interface {
	// Append buffers one row for the final write.
	Append(row []string)

	// Count returns the number of rows appended so far.
	Count() int

	// Flush writes header and rows to the given path in a single pass.
	// Callers decide whether to flush at all; an empty report is normally
	// not written.
	Flush(path string) error
}
