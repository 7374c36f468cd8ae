// Package legiscan is a small client for the LegiScan bill API, used to fetch
// the PDF of a bill text for reconstruction.
package legiscan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
)

// DefaultBaseURL is the public API endpoint.
const DefaultBaseURL = "https://api.legiscan.com/"

type Client struct {
	BaseURL string
	Key     string
	HTTP    *http.Client
}

// NewClient returns a client for the public API, normally keyed with
// LEGISCAN_API_KEY.
func NewClient(key string) (*Client, error) {
	if key == "" {
		return nil, errors.New("missing LEGISCAN_API_KEY")
	}
	return &Client{
		BaseURL: DefaultBaseURL,
		Key:     key,
		HTTP:    &http.Client{Transport: &userAgentTransport{}},
	}, nil
}

// APIError is a response with status "ERROR".
type APIError struct {
	Op      string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("legiscan %s: %s", e.Op, e.Message)
}

// userAgentTransport names the client on every request.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", "redline")
	}
	return base.RoundTrip(req)
}

// get calls op and decodes the field named key of the response into out.
func (c *Client) get(ctx context.Context, op string, params url.Values, key string, out any) error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return err
	}
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("key", c.Key)
	q.Set("op", op)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("legiscan %s: %w", op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("legiscan %s: unexpected status %s", op, resp.Status)
	}

	var body map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("legiscan %s: decode response: %w", op, err)
	}
	var status string
	_ = json.Unmarshal(body["status"], &status)
	if status != "OK" {
		var alert struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body["alert"], &alert)
		if alert.Message == "" {
			alert.Message = "status " + strconv.Quote(status)
		}
		return &APIError{Op: op, Message: alert.Message}
	}
	raw, ok := body[key]
	if !ok {
		return fmt.Errorf("legiscan %s: response has no %q", op, key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("legiscan %s: decode %s: %w", op, key, err)
	}
	return nil
}

type Session struct {
	ID        int    `json:"session_id"`
	StateID   int    `json:"state_id"`
	YearStart int    `json:"year_start"`
	YearEnd   int    `json:"year_end"`
	Name      string `json:"session_name"`
}

// Sessions lists the legislative sessions of a state ("TX"), or of every
// state when state is empty.
func (c *Client) Sessions(ctx context.Context, state string) ([]Session, error) {
	params := url.Values{}
	if state != "" {
		params.Set("state", state)
	}
	var out []Session
	if err := c.get(ctx, "getSessionList", params, "sessions", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type MasterListEntry struct {
	BillID      int    `json:"bill_id"`
	Number      string `json:"number"`
	Status      int    `json:"status"`
	StatusDate  string `json:"status_date"`
	LastAction  string `json:"last_action"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// MasterList lists the bills of a session, or of the current session of
// state when sessionID is 0. Entries come back ordered by bill ID.
func (c *Client) MasterList(ctx context.Context, state string, sessionID int) ([]MasterListEntry, error) {
	params := url.Values{}
	if sessionID != 0 {
		params.Set("id", strconv.Itoa(sessionID))
	}
	if state != "" {
		params.Set("state", state)
	}
	if len(params) == 0 {
		return nil, errors.New("either a session ID or a state is required")
	}

	// the master list is an object keyed "session", "0", "1", ...
	var raw map[string]json.RawMessage
	if err := c.get(ctx, "getMasterList", params, "masterlist", &raw); err != nil {
		return nil, err
	}
	out := make([]MasterListEntry, 0, len(raw))
	for k, v := range raw {
		if k == "session" {
			continue
		}
		var e MasterListEntry
		if err := json.Unmarshal(v, &e); err != nil {
			return nil, fmt.Errorf("legiscan getMasterList: entry %s: %w", k, err)
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BillID < out[j].BillID })
	return out, nil
}

type TextRef struct {
	DocID int    `json:"doc_id"`
	Date  string `json:"date"`
	Type  string `json:"type"`
	MIME  string `json:"mime"`
	URL   string `json:"url"`
}

type Bill struct {
	ID          int       `json:"bill_id"`
	Number      string    `json:"bill_number"`
	State       string    `json:"state"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Texts       []TextRef `json:"texts"`
}

// Latest returns the most recent text version of b.
func (b Bill) Latest() (TextRef, bool) {
	if len(b.Texts) == 0 {
		return TextRef{}, false
	}
	return b.Texts[len(b.Texts)-1], true
}

func (c *Client) Bill(ctx context.Context, id int) (Bill, error) {
	var out Bill
	err := c.get(ctx, "getBill", url.Values{"id": {strconv.Itoa(id)}}, "bill", &out)
	return out, err
}

type Text struct {
	DocID  int    `json:"doc_id"`
	BillID int    `json:"bill_id"`
	Date   string `json:"date"`
	Type   string `json:"type"`
	MIME   string `json:"mime"`
	// Doc is the document itself; the API sends it base64 encoded.
	Doc []byte `json:"doc"`
}

func (c *Client) BillText(ctx context.Context, docID int) (Text, error) {
	var out Text
	err := c.get(ctx, "getBillText", url.Values{"id": {strconv.Itoa(docID)}}, "text", &out)
	return out, err
}
