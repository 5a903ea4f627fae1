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

package report

import (
	"testing"
	"time"

	"github.com/sirseerhq/azdo-envreport/internal/azdevops"
)

var testProject = &azdevops.ProjectRef{ID: "project-guid", Name: "Contoso"}

func TestApplicationID(t *testing.T) {
	tests := []struct {
		name    string
		envName string
		want    string
	}{
		{
			name:    "simple numeric prefix",
			envName: "101-dev",
			want:    "101",
		},
		{
			name:    "leading zeros preserved verbatim",
			envName: "042-billing",
			want:    "042",
		},
		{
			name:    "no numeric prefix",
			envName: "shared-prod",
			want:    "N/A",
		},
		{
			name:    "digits without hyphen",
			envName: "1234",
			want:    "N/A",
		},
		{
			name:    "digits not at start",
			envName: "env-042-billing",
			want:    "N/A",
		},
		{
			name:    "empty name",
			envName: "",
			want:    "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := applicationID(tt.envName); got != tt.want {
				t.Errorf("applicationID(%q) = %q, want %q", tt.envName, got, tt.want)
			}
		})
	}
}

func TestBuildRecord_Approvers(t *testing.T) {
	env := azdevops.Environment{ID: 1, Name: "101-dev"}

	t.Run("two approvers joined in order", func(t *testing.T) {
		approvers := []azdevops.IdentityRef{
			{DisplayName: "A", UniqueName: "a@x.com"},
			{DisplayName: "B", UniqueName: "b@x.com"},
		}

		record := BuildRecord(testProject, env, approvers)
		if record.ApproverNames != "A; B" {
			t.Errorf("ApproverNames = %q, want %q", record.ApproverNames, "A; B")
		}
		if record.ApproverEmails != "a@x.com; b@x.com" {
			t.Errorf("ApproverEmails = %q, want %q", record.ApproverEmails, "a@x.com; b@x.com")
		}
	})

	t.Run("zero approvers", func(t *testing.T) {
		record := BuildRecord(testProject, env, nil)
		if record.ApproverNames != "No approvers" {
			t.Errorf("ApproverNames = %q, want %q", record.ApproverNames, "No approvers")
		}
		if record.ApproverEmails != "No approvers" {
			t.Errorf("ApproverEmails = %q, want %q", record.ApproverEmails, "No approvers")
		}
	})

	t.Run("duplicates across checks preserved", func(t *testing.T) {
		approvers := []azdevops.IdentityRef{
			{DisplayName: "A", UniqueName: "a@x.com"},
			{DisplayName: "A", UniqueName: "a@x.com"},
		}

		record := BuildRecord(testProject, env, approvers)
		if record.ApproverNames != "A; A" {
			t.Errorf("ApproverNames = %q, want %q", record.ApproverNames, "A; A")
		}
	})
}

func TestBuildRecord_Defaults(t *testing.T) {
	// Every optional field absent: each cell gets its literal default,
	// never an empty string.
	record := BuildRecord(testProject, azdevops.Environment{ID: 9, Name: "bare"}, nil)

	if record.TeamProjectName != "Contoso" {
		t.Errorf("TeamProjectName = %q, want Contoso", record.TeamProjectName)
	}
	if record.EnvironmentID != 9 {
		t.Errorf("EnvironmentID = %d, want 9", record.EnvironmentID)
	}
	if record.EnvironmentName != "bare" {
		t.Errorf("EnvironmentName = %q, want bare", record.EnvironmentName)
	}

	defaults := map[string]string{
		"ApplicationID":  record.ApplicationID,
		"CreatedBy":      record.CreatedBy,
		"CreatedOn":      record.CreatedOn,
		"LastModifiedBy": record.LastModifiedBy,
		"LastModifiedOn": record.LastModifiedOn,
		"Description":    record.Description,
	}
	for field, got := range defaults {
		if got != "N/A" {
			t.Errorf("%s = %q, want N/A", field, got)
		}
	}

	for i, cell := range record.Row() {
		if cell == "" {
			t.Errorf("column %d (%s) is empty; defaults must always fill cells", i, Header()[i])
		}
	}
}

func TestBuildRecord_EmptyStringIdentity(t *testing.T) {
	// An identity present on the wire but with an empty display name
	// still maps to the default.
	env := azdevops.Environment{
		ID:        3,
		Name:      "noid",
		CreatedBy: &azdevops.IdentityRef{DisplayName: ""},
	}

	record := BuildRecord(testProject, env, nil)
	if record.CreatedBy != "N/A" {
		t.Errorf("CreatedBy = %q, want N/A", record.CreatedBy)
	}
}

func TestBuildRecord_TimestampFormat(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{
			name: "afternoon with single-digit month day and hour",
			ts:   time.Date(2024, 3, 5, 14, 30, 45, 0, time.UTC),
			want: "3/5/2024 2:30:45 PM",
		},
		{
			name: "morning",
			ts:   time.Date(2024, 11, 21, 9, 5, 3, 0, time.UTC),
			want: "11/21/2024 9:05:03 AM",
		},
		{
			name: "midnight renders as 12 AM",
			ts:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			want: "1/1/2023 12:00:00 AM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := azdevops.Environment{ID: 1, Name: "x", CreatedOn: &tt.ts}
			record := BuildRecord(testProject, env, nil)
			if record.CreatedOn != tt.want {
				t.Errorf("CreatedOn = %q, want %q", record.CreatedOn, tt.want)
			}
		})
	}
}

func TestBuildRecord_FullEnvironment(t *testing.T) {
	created := time.Date(2024, 3, 5, 14, 30, 45, 0, time.UTC)
	modified := time.Date(2024, 6, 1, 8, 15, 0, 0, time.UTC)

	env := azdevops.Environment{
		ID:             42,
		Name:           "042-billing",
		Description:    "billing deployment gates",
		CreatedBy:      &azdevops.IdentityRef{DisplayName: "Ana Lopez"},
		CreatedOn:      &created,
		LastModifiedBy: &azdevops.IdentityRef{DisplayName: "Ben King"},
		LastModifiedOn: &modified,
	}

	record := BuildRecord(testProject, env, []azdevops.IdentityRef{
		{DisplayName: "Ana Lopez", UniqueName: "ana@contoso.com"},
	})

	want := Record{
		TeamProjectName: "Contoso",
		EnvironmentID:   42,
		EnvironmentName: "042-billing",
		ApplicationID:   "042",
		ApproverNames:   "Ana Lopez",
		ApproverEmails:  "ana@contoso.com",
		CreatedBy:       "Ana Lopez",
		CreatedOn:       "3/5/2024 2:30:45 PM",
		LastModifiedBy:  "Ben King",
		LastModifiedOn:  "6/1/2024 8:15:00 AM",
		Description:     "billing deployment gates",
	}

	if record != want {
		t.Errorf("BuildRecord() = %+v, want %+v", record, want)
	}
}

func TestHeaderAndRowAlignment(t *testing.T) {
	record := BuildRecord(testProject, azdevops.Environment{ID: 1, Name: "101-dev"}, nil)

	if len(Header()) != len(record.Row()) {
		t.Fatalf("Header has %d columns, Row has %d", len(Header()), len(record.Row()))
	}
	if Header()[1] != "EnvironmentId" {
		t.Errorf("second column = %q, want EnvironmentId", Header()[1])
	}
	if record.Row()[1] != "1" {
		t.Errorf("EnvironmentId cell = %q, want 1", record.Row()[1])
	}
}
