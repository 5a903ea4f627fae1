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

package azdevops

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirseerhq/azdo-envreport/internal/adoerror"
	reporterrors "github.com/sirseerhq/azdo-envreport/internal/errors"
	"github.com/sirseerhq/azdo-envreport/pkg/version"
)

// continuationTokenHeader is the response header carrying the opaque cursor
// for the next environments page. Its absence signals the end of results.
const continuationTokenHeader = "x-ms-continuationtoken"

// RESTClient implements the Client interface against the Azure DevOps REST API.
// It is configured with:
//   - Basic authentication built from the personal access token (empty
//     username, token as password), the scheme Azure DevOps expects for PATs
//   - User-Agent header for API compliance
//   - Response size limiting to prevent memory issues
//   - Optimized connection pooling for API performance
type RESTClient struct {
	httpClient *http.Client
	baseURL    string
	inspector  adoerror.Inspector
}

// NewRESTClient creates a new Azure DevOps REST client for the given
// organization base URL (e.g. https://dev.azure.com/contoso) and personal
// access token.
func NewRESTClient(baseURL, token string) *RESTClient {
	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10, // Increased from default 2
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		ForceAttemptHTTP2:   true,
	}

	httpClient := &http.Client{
		Transport: &authTransport{
			token: token,
			base:  transport,
		},
	}

	return &RESTClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		inspector:  adoerror.NewInspector(),
	}
}

// ResolveProject resolves a project name via the projects endpoint. An
// empty id in an otherwise successful response is treated as a resolution
// failure: everything downstream needs the id to build request paths.
func (c *RESTClient) ResolveProject(ctx context.Context, projectName string) (*ProjectRef, error) {
	reqURL := fmt.Sprintf("%s/_apis/projects/%s?api-version=6.0", c.baseURL, url.PathEscape(projectName))

	var project ProjectRef
	if _, err := c.getJSON(ctx, reqURL, &project); err != nil {
		return nil, c.mapError(err, projectName)
	}

	if project.ID == "" {
		return nil, fmt.Errorf("project %q resolved without an id: %w", projectName, reporterrors.ErrProjectNotFound)
	}

	return &project, nil
}

// FetchEnvironments fetches one page of environments for the project. The
// continuation token for the next page is read from the response header,
// never from the body.
func (c *RESTClient) FetchEnvironments(ctx context.Context, projectID string, opts FetchOptions) (*EnvironmentPage, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	query := url.Values{}
	query.Set("api-version", "7.1")
	query.Set("$top", strconv.Itoa(pageSize))
	if opts.ContinuationToken != "" {
		query.Set("continuationToken", opts.ContinuationToken)
	}

	reqURL := fmt.Sprintf("%s/%s/_apis/distributedtask/environments?%s", c.baseURL, projectID, query.Encode())

	var body listResponse[Environment]
	header, err := c.getJSON(ctx, reqURL, &body)
	if err != nil {
		return nil, c.mapError(err, projectID)
	}

	return &EnvironmentPage{
		Environments:      body.Value,
		ContinuationToken: header.Get(continuationTokenHeader),
	}, nil
}

// QueryCheckConfigurations queries the checks attached to an environment.
// The filter body names the fixed default queue resource alongside the
// environment resource; that pairing is what the endpoint expects.
func (c *RESTClient) QueryCheckConfigurations(ctx context.Context, projectID string, envID int, envName string) ([]CheckConfiguration, error) {
	reqURL := fmt.Sprintf("%s/%s/_apis/pipelines/checks/queryconfigurations?$expand=settings&api-version=7.2-preview.1", c.baseURL, projectID)

	filter := []resourceRef{
		{Type: "queue", ID: "1", Name: "Default"},
		{Type: "environment", ID: strconv.Itoa(envID), Name: envName},
	}

	payload, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to encode check query for environment %q: %w", envName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build check query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var body listResponse[CheckConfiguration]
	if err := c.doJSON(req, &body); err != nil {
		return nil, c.mapError(err, envName)
	}

	return body.Value, nil
}

// GetCheckApprovers fetches a single check configuration's detail via its
// self URL and returns the approver list from the expanded settings.
func (c *RESTClient) GetCheckApprovers(ctx context.Context, checkURL string) ([]IdentityRef, error) {
	var detail approvalSettings
	if _, err := c.getJSON(ctx, checkURL, &detail); err != nil {
		return nil, c.mapError(err, checkURL)
	}

	return detail.Settings.Approvers, nil
}

// getJSON issues a GET and decodes the JSON response body into out. It
// returns the response headers so callers can read pagination headers.
func (c *RESTClient) getJSON(ctx context.Context, reqURL string, out interface{}) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := decodeResponse(resp, out); err != nil {
		return nil, err
	}

	return resp.Header, nil
}

// doJSON executes a prepared request and decodes the JSON response into out.
func (c *RESTClient) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

// decodeResponse checks the status code and decodes a JSON body. Non-2xx
// responses become errors carrying the status and a body excerpt, which is
// what the inspector classifies on.
func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("azure devops API returned %d %s: %s", resp.StatusCode, http.StatusText(resp.StatusCode), bytes.TrimSpace(excerpt))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// mapError maps raw API errors to our domain errors with actionable messages
func (c *RESTClient) mapError(err error, subject string) error {
	if err == nil {
		return nil
	}

	// Check rate limit first, as 403 can be both auth and rate limit
	if c.inspector.IsRateLimitError(err) {
		return fmt.Errorf("azure devops rate limit exceeded. Please wait before retrying: %w", reporterrors.ErrRateLimit)
	}

	if c.inspector.IsAuthError(err) {
		return fmt.Errorf("azure devops authentication failed. Please provide a valid PAT via --token flag or AZDO_PAT environment variable: %w", reporterrors.ErrInvalidToken)
	}

	if c.inspector.IsNotFoundError(err) {
		return fmt.Errorf("%q not found. Please check the project name and your access permissions: %w", subject, reporterrors.ErrProjectNotFound)
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to Azure DevOps. Please check your internet connection and try again: %w", reporterrors.ErrNetworkFailure)
	}

	return fmt.Errorf("azure devops request failed: %w", err)
}

// limitedReader wraps a ReadCloser with a size limit to prevent excessive memory usage.
type limitedReader struct {
	io.ReadCloser
	limit int64
	read  int64
}

// Read implements io.Reader with size limit enforcement.
func (lr *limitedReader) Read(p []byte) (n int, err error) {
	if lr.read >= lr.limit {
		return 0, fmt.Errorf("response size exceeded limit of %d bytes", lr.limit)
	}

	remaining := lr.limit - lr.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err = lr.ReadCloser.Read(p)
	lr.read += int64(n)

	return n, err
}

// authTransport adds authentication header and safety limits to HTTP requests
type authTransport struct {
	token string
	base  http.RoundTripper
}

// RoundTrip implements http.RoundTripper
func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = req.Clone(req.Context())

	// PATs authenticate as basic auth with an empty username
	credentials := base64.StdEncoding.EncodeToString([]byte(":" + t.token))
	req.Header.Set("Authorization", "Basic "+credentials)

	// Add user agent for identification
	req.Header.Set("User-Agent", fmt.Sprintf("envreport/%s", version.Version))

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Apply response size limit (10MB)
	if resp.Body != nil {
		resp.Body = &limitedReader{
			ReadCloser: resp.Body,
			limit:      10 * 1024 * 1024, // 10MB
		}
	}

	return resp, nil
}
