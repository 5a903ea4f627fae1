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
	"os"
	"time"

	"github.com/sirseerhq/azdo-envreport/internal/azdevops"
)

// Collector accumulates all environments of a project by following the
// continuation token across pages. The client is expected to carry its own
// per-page retry (see azdevops.RetryClient); when even the retried fetch
// fails, the collector stops paginating and keeps the pages it already has
// rather than failing the run.
type Collector struct {
	client    azdevops.Client
	pageSize  int
	pageDelay time.Duration
}

// NewCollector creates a Collector fetching pageSize environments per
// request and sleeping pageDelay between successful pages. The delay is a
// rate-limit courtesy, not a correctness requirement.
func NewCollector(client azdevops.Client, pageSize int, pageDelay time.Duration) *Collector {
	return &Collector{
		client:    client,
		pageSize:  pageSize,
		pageDelay: pageDelay,
	}
}

// CollectEnvironments returns every environment of the project, in API
// return order. The only error it returns is context cancellation; a page
// fetch that fails after retries is logged and degrades to a partial
// result.
func (c *Collector) CollectEnvironments(ctx context.Context, projectID string) ([]azdevops.Environment, error) {
	var (
		environments []azdevops.Environment
		token        = ""
		pageNum      = 0
	)

	for {
		pageNum++
		opts := azdevops.FetchOptions{
			PageSize:          c.pageSize,
			ContinuationToken: token,
		}

		page, err := c.client.FetchEnvironments(ctx, projectID, opts)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Fprintf(os.Stderr, "⚠️  Giving up on page %d: %v. Continuing with the %d environments fetched so far.\n",
				pageNum, err, len(environments))
			break
		}

		if len(page.Environments) == 0 {
			break
		}

		environments = append(environments, page.Environments...)
		fmt.Fprintf(os.Stderr, "\rFetching environments... %d found", len(environments))

		if page.ContinuationToken == "" {
			break
		}
		token = page.ContinuationToken

		// Small pause between pages to stay clear of service rate limits.
		select {
		case <-time.After(c.pageDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if len(environments) > 0 {
		fmt.Fprintf(os.Stderr, "\r\033[K")
	}

	return environments, nil
}
