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
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirseerhq/azdo-envreport/internal/azdevops"
)

func makePage(start, count int) []azdevops.Environment {
	envs := make([]azdevops.Environment, 0, count)
	for i := 0; i < count; i++ {
		id := start + i
		envs = append(envs, azdevops.Environment{
			ID:   id,
			Name: fmt.Sprintf("%d-app", id),
		})
	}
	return envs
}

func TestCollectEnvironments_ThreePages(t *testing.T) {
	mock := azdevops.NewMockClient()
	mock.Pages = [][]azdevops.Environment{
		makePage(1, 100),
		makePage(101, 100),
		makePage(201, 37),
	}

	collector := NewCollector(mock, 100, time.Millisecond)
	envs, err := collector.CollectEnvironments(context.Background(), "project-guid")
	if err != nil {
		t.Fatalf("CollectEnvironments() error = %v", err)
	}

	if len(envs) != 237 {
		t.Fatalf("collected %d environments, want 237", len(envs))
	}
	if mock.FetchCalls != 3 {
		t.Errorf("fetch requests = %d, want 3", mock.FetchCalls)
	}

	// Order must follow API return order across page boundaries.
	for i, env := range envs {
		if env.ID != i+1 {
			t.Fatalf("environment at index %d has id %d, want %d", i, env.ID, i+1)
		}
	}

	if mock.LastOpts.PageSize != 100 {
		t.Errorf("page size = %d, want 100", mock.LastOpts.PageSize)
	}
}

func TestCollectEnvironments_Empty(t *testing.T) {
	mock := azdevops.NewMockClient()

	collector := NewCollector(mock, 100, time.Millisecond)
	envs, err := collector.CollectEnvironments(context.Background(), "project-guid")
	if err != nil {
		t.Fatalf("CollectEnvironments() error = %v", err)
	}

	if len(envs) != 0 {
		t.Errorf("collected %d environments, want 0", len(envs))
	}
	if mock.FetchCalls != 1 {
		t.Errorf("fetch requests = %d, want 1", mock.FetchCalls)
	}
}

func TestCollectEnvironments_RetrySucceeds(t *testing.T) {
	mock := azdevops.NewMockClient()
	mock.Pages = [][]azdevops.Environment{makePage(1, 10)}
	mock.FailFetchTimes = 2

	retrying := azdevops.NewRetryClient(mock, &azdevops.RetryConfig{
		MaxAttempts: 3,
		Delay:       time.Millisecond,
	})

	collector := NewCollector(retrying, 100, time.Millisecond)
	envs, err := collector.CollectEnvironments(context.Background(), "project-guid")
	if err != nil {
		t.Fatalf("CollectEnvironments() error = %v", err)
	}

	if len(envs) != 10 {
		t.Errorf("collected %d environments, want 10", len(envs))
	}
	if mock.FetchCalls != 3 {
		t.Errorf("fetch attempts = %d, want 3 (two failures then success)", mock.FetchCalls)
	}
}

func TestCollectEnvironments_RetryExhaustionKeepsPartialResult(t *testing.T) {
	mock := azdevops.NewMockClient()
	mock.Pages = [][]azdevops.Environment{
		makePage(1, 100),
		makePage(101, 100),
	}

	// First page succeeds; every attempt at the second page fails.
	firstPageDone := false
	failing := &flakySecondPage{mock: mock, firstPageDone: &firstPageDone}

	retrying := azdevops.NewRetryClient(failing, &azdevops.RetryConfig{
		MaxAttempts: 3,
		Delay:       time.Millisecond,
	})

	collector := NewCollector(retrying, 100, time.Millisecond)
	envs, err := collector.CollectEnvironments(context.Background(), "project-guid")
	if err != nil {
		t.Fatalf("CollectEnvironments() error = %v; partial results must not error", err)
	}

	if len(envs) != 100 {
		t.Errorf("collected %d environments, want the 100 from the first page", len(envs))
	}
}

// flakySecondPage delegates to the mock but fails every fetch after the
// first page has been served.
type flakySecondPage struct {
	mock          *azdevops.MockClient
	firstPageDone *bool
}

func (f *flakySecondPage) ResolveProject(ctx context.Context, name string) (*azdevops.ProjectRef, error) {
	return f.mock.ResolveProject(ctx, name)
}

func (f *flakySecondPage) FetchEnvironments(ctx context.Context, projectID string, opts azdevops.FetchOptions) (*azdevops.EnvironmentPage, error) {
	if *f.firstPageDone {
		return nil, fmt.Errorf("simulated outage")
	}
	page, err := f.mock.FetchEnvironments(ctx, projectID, opts)
	if err == nil {
		*f.firstPageDone = true
	}
	return page, err
}

func (f *flakySecondPage) QueryCheckConfigurations(ctx context.Context, projectID string, envID int, envName string) ([]azdevops.CheckConfiguration, error) {
	return f.mock.QueryCheckConfigurations(ctx, projectID, envID, envName)
}

func (f *flakySecondPage) GetCheckApprovers(ctx context.Context, checkURL string) ([]azdevops.IdentityRef, error) {
	return f.mock.GetCheckApprovers(ctx, checkURL)
}

func TestCollectEnvironments_ContextCancellation(t *testing.T) {
	mock := azdevops.NewMockClient()
	mock.Pages = [][]azdevops.Environment{makePage(1, 10), makePage(11, 10)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	collector := NewCollector(mock, 100, time.Millisecond)
	if _, err := collector.CollectEnvironments(ctx, "project-guid"); err == nil {
		t.Fatal("CollectEnvironments() should propagate context cancellation")
	}
}
