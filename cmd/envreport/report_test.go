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

package main

import (
	goerrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirseerhq/azdo-envreport/internal/errors"
)

func TestResolveReportFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{
			name:  "bare name with extension",
			input: "environments.csv",
			want:  "environments.csv",
		},
		{
			name:  "extension appended when missing",
			input: "environments",
			want:  "environments.csv",
		},
		{
			name:  "uppercase extension accepted",
			input: "environments.CSV",
			want:  "environments.CSV",
		},
		{
			name:    "forward slash rejected",
			input:   "sub/environments.csv",
			wantErr: errors.ErrInvalidFilename,
		},
		{
			name:    "backslash rejected",
			input:   `sub\environments.csv`,
			wantErr: errors.ErrInvalidFilename,
		},
		{
			name:    "absolute path rejected",
			input:   "/tmp/environments.csv",
			wantErr: errors.ErrInvalidFilename,
		},
		{
			name:    "parent traversal rejected",
			input:   "../environments.csv",
			wantErr: errors.ErrInvalidFilename,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveReportFilename(tt.input, time.Now())
			if tt.wantErr != nil {
				if !goerrors.Is(err, tt.wantErr) {
					t.Fatalf("resolveReportFilename(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveReportFilename(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("resolveReportFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveReportFilenameDefault(t *testing.T) {
	now := time.Date(2025, 3, 7, 14, 30, 52, 0, time.UTC)

	got, err := resolveReportFilename("", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "AzureDevOpsEnvironments_20250307_143052.csv"
	if got != want {
		t.Errorf("default filename = %q, want %q", got, want)
	}
}

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, 0},
		{"invalid token", errors.ErrInvalidToken, 2},
		{"project not found", errors.ErrProjectNotFound, 2},
		{"rate limit", errors.ErrRateLimit, 2},
		{"network failure", errors.ErrNetworkFailure, 3},
		{"invalid filename", errors.ErrInvalidFilename, 1},
		{"generic error", goerrors.New("boom"), 1},
		{"wrapped token error", fmt.Errorf("auth check: %w", errors.ErrInvalidToken), 2},
		{"wrapped network error", fmt.Errorf("page 3: %w", errors.ErrNetworkFailure), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapErrorToExitCode(tt.err); got != tt.want {
				t.Errorf("mapErrorToExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetToken(t *testing.T) {
	t.Setenv("AZDO_PAT", "env-token")

	if got := getToken("flag-token", "AZDO_PAT"); got != "flag-token" {
		t.Errorf("flag token should win, got %q", got)
	}
	if got := getToken("", "AZDO_PAT"); got != "env-token" {
		t.Errorf("env token expected, got %q", got)
	}

	t.Setenv("AZDO_PAT", "")
	if got := getToken("", "AZDO_PAT"); got != "" {
		t.Errorf("expected empty token, got %q", got)
	}
}

func TestResolveReportDirConfigured(t *testing.T) {
	dir, err := resolveReportDir("/var/reports")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dir != "/var/reports" {
		t.Errorf("resolveReportDir = %q, want /var/reports", dir)
	}
}
