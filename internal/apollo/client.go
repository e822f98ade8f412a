// Package apollo is a minimal client for the Apollo.io people-search
// and sequence APIs, covering the two calls the enrichment pipeline needs.
package apollo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the Apollo.io v1 API root.
const DefaultBaseURL = "https://api.apollo.io/v1"

// defaultTimeout bounds individual API calls.
const defaultTimeout = 30 * time.Second

// TargetTitles is the fixed set of decision-maker titles every people
// search filters on.
var TargetTitles = []string{"CEO", "CTO", "CFO", "CMO", "President", "VP", "Director"}

// Person is one contact candidate returned by a people search.
type Person struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Email string `json:"email"`
}

// CallError reports a failed Apollo API call. Op names the call
// ("search" or "enroll"); Company is set for per-company searches.
type CallError struct {
	Op         string
	Company    string
	StatusCode int
	Cause      error
}

func (e *CallError) Error() string {
	msg := fmt.Sprintf("apollo %s call failed", e.Op)
	if e.Company != "" {
		msg += fmt.Sprintf(" for %s", e.Company)
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": HTTP status %d", e.StatusCode)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *CallError) Unwrap() error {
	return e.Cause
}

// Client calls the Apollo.io API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an Apollo client. An empty baseURL selects the
// public API endpoint.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

type searchRequest struct {
	APIKey           string   `json:"api_key"`
	OrganizationName string   `json:"q_organization_name"`
	PersonTitles     []string `json:"person_titles"`
	Seniority        []string `json:"seniority"`
}

type searchResponse struct {
	People []Person `json:"people"`
}

// SearchPeople queries contacts at a company, filtered to the fixed
// target titles and the supplied seniority levels.
func (c *Client) SearchPeople(ctx context.Context, companyName string, seniorityLevels []string) ([]Person, error) {
	body := searchRequest{
		APIKey:           c.apiKey,
		OrganizationName: companyName,
		PersonTitles:     TargetTitles,
		Seniority:        seniorityLevels,
	}

	var resp searchResponse
	if err := c.post(ctx, "/mixed_people/search", "search", companyName, body, &resp); err != nil {
		return nil, err
	}
	return resp.People, nil
}

type enrollRequest struct {
	APIKey     string   `json:"api_key"`
	SequenceID string   `json:"sequence_id"`
	ContactIDs []string `json:"contact_ids"`
}

// AddToSequence enrolls the given contacts into an outbound sequence.
func (c *Client) AddToSequence(ctx context.Context, sequenceID string, contactIDs []string) error {
	body := enrollRequest{
		APIKey:     c.apiKey,
		SequenceID: sequenceID,
		ContactIDs: contactIDs,
	}
	return c.post(ctx, "/sequences/add_contacts", "enroll", "", body, nil)
}

// post sends a JSON request and decodes the response into out when
// out is non-nil. Transport failures and non-2xx statuses come back
// as *CallError.
func (c *Client) post(ctx context.Context, path, op, company string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &CallError{Op: op, Company: company, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &CallError{Op: op, Company: company, Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &CallError{Op: op, Company: company, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &CallError{Op: op, Company: company, StatusCode: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &CallError{Op: op, Company: company, Cause: err}
	}
	return nil
}
