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

// Package output writes the accumulated report to disk. The report is
// buffered in memory and written in one pass when the run completes; a
// run that produced no records writes no file at all, so a report file
// on disk always has at least one data row.
//
// The primary type is CSVWriter, which renders a header plus one
// comma-delimited row per record, UTF-8 encoded.
//
// Example usage:
//
//	w := output.NewCSVWriter(report.Header())
//	for _, record := range records {
//	    w.Append(record.Row())
//	}
//	if err := w.Flush("reports/environments.csv"); err != nil {
//	    log.Fatal(err)
//	}
package output
