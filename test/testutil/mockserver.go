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

// Package testutil provides common test helpers for envreport
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
)

// MockServer simulates an Azure DevOps organization for testing. Tests
// point the CLI at it via the AZDO_BASE_URL environment variable.
type MockServer struct {
	*httptest.Server

	// FailEnvPages makes the first N environments page requests return 500.
	FailEnvPages int32

	// FailEnvPagesAfter makes every environments page request after the
	// first N return 500. Zero disables it.
	FailEnvPagesAfter int32

	envRequests int32
}

// OrgFixture describes the organization state a MockServer serves.
type OrgFixture struct {
	ProjectName string
	ProjectID   string

	// Environments in API return order. Pagination follows the $top and
	// continuationToken query parameters, with the next cursor returned in
	// the x-ms-continuationtoken response header.
	Environments []map[string]interface{}

	// ApproversByEnvID maps environment id to the approver lists of its
	// approval checks, one list per check.
	ApproversByEnvID map[int][][]map[string]interface{}
}

// NewOrgServer creates a mock server backed by the given fixture.
func NewOrgServer(t *testing.T, fixture OrgFixture) *MockServer {
	t.Helper()

	ms := &MockServer{}
	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/_apis/projects/"):
			ms.handleProject(w, r, fixture)
		case strings.HasSuffix(r.URL.Path, "/_apis/distributedtask/environments"):
			ms.handleEnvironments(w, r, fixture)
		case strings.HasSuffix(r.URL.Path, "/_apis/pipelines/checks/queryconfigurations"):
			ms.handleCheckQuery(w, r, fixture)
		case strings.Contains(r.URL.Path, "/_apis/checkdetail/"):
			ms.handleCheckDetail(w, r, fixture)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message": "no route"}`))
		}
	}))
	return ms
}

// EnvRequestCount returns how many environments page requests the server
// has seen, including failed ones.
func (ms *MockServer) EnvRequestCount() int {
	return int(atomic.LoadInt32(&ms.envRequests))
}

func (ms *MockServer) handleProject(w http.ResponseWriter, r *http.Request, fixture OrgFixture) {
	name := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	if name != fixture.ProjectName {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(fmt.Sprintf(`{"message": "TF200016: The following project does not exist: %s"}`, name)))
		return
	}

	writeJSON(w, map[string]interface{}{
		"id":   fixture.ProjectID,
		"name": fixture.ProjectName,
	})
}

func (ms *MockServer) handleEnvironments(w http.ResponseWriter, r *http.Request, fixture OrgFixture) {
	count := atomic.AddInt32(&ms.envRequests, 1)
	failAfter := atomic.LoadInt32(&ms.FailEnvPagesAfter)
	if count <= atomic.LoadInt32(&ms.FailEnvPages) || (failAfter > 0 && count > failAfter) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "internal error"}`))
		return
	}

	top, err := strconv.Atoi(r.URL.Query().Get("$top"))
	if err != nil || top <= 0 {
		top = 100
	}

	start := 0
	if token := r.URL.Query().Get("continuationToken"); token != "" {
		start, err = strconv.Atoi(token)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message": "bad continuation token"}`))
			return
		}
	}

	end := start + top
	if end > len(fixture.Environments) {
		end = len(fixture.Environments)
	}
	page := fixture.Environments[start:end]

	if end < len(fixture.Environments) {
		w.Header().Set("x-ms-continuationtoken", strconv.Itoa(end))
	}
	writeJSON(w, map[string]interface{}{
		"count": len(page),
		"value": page,
	})
}

func (ms *MockServer) handleCheckQuery(w http.ResponseWriter, r *http.Request, fixture OrgFixture) {
	var filter []struct {
		Type string `json:"type"`
		ID   string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&filter); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "bad filter body"}`))
		return
	}

	envID := -1
	for _, res := range filter {
		if res.Type == "environment" {
			envID, _ = strconv.Atoi(res.ID)
		}
	}

	checks := make([]map[string]interface{}, 0)
	for i := range fixture.ApproversByEnvID[envID] {
		checks = append(checks, map[string]interface{}{
			"id":   envID*100 + i,
			"type": map[string]interface{}{"name": "Approval"},
			"url":  fmt.Sprintf("%s/_apis/checkdetail/%d/%d", ms.URL, envID, i),
		})
	}

	writeJSON(w, map[string]interface{}{
		"count": len(checks),
		"value": checks,
	})
}

func (ms *MockServer) handleCheckDetail(w http.ResponseWriter, r *http.Request, fixture OrgFixture) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	envID, _ := strconv.Atoi(parts[len(parts)-2])
	idx, _ := strconv.Atoi(parts[len(parts)-1])

	lists := fixture.ApproversByEnvID[envID]
	if idx >= len(lists) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "check not found"}`))
		return
	}

	writeJSON(w, map[string]interface{}{
		"settings": map[string]interface{}{
			"approvers": lists[idx],
		},
	})
}

// NewErrorServer creates a mock server that always returns the specified
// status code and body.
func NewErrorServer(t *testing.T, statusCode int, body string) *MockServer {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
	return &MockServer{Server: server}
}

// NewRateLimitServer creates a mock server that simulates rate limiting.
func NewRateLimitServer(t *testing.T) *MockServer {
	t.Helper()
	return NewErrorServer(t, http.StatusTooManyRequests,
		`{"message": "Request was blocked due to exceeding usage of resource 'Count' in namespace 'User'."}`)
}

// NewAuthErrorServer creates a mock server that rejects every request as
// unauthenticated.
func NewAuthErrorServer(t *testing.T) *MockServer {
	t.Helper()
	return NewErrorServer(t, http.StatusUnauthorized,
		`{"message": "TF400813: The user is not authorized to access this resource."}`)
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
