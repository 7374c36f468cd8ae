package legiscan

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient("secret")
	require.NoError(t, err)
	c.BaseURL = srv.URL + "/"
	return c
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("")
	assert.Error(t, err)
}

func TestBill(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "getBill", r.URL.Query().Get("op"))
		assert.Equal(t, "42", r.URL.Query().Get("id"))
		assert.Equal(t, "redline", r.Header.Get("User-Agent"))
		fmt.Fprint(w, `{"status":"OK","bill":{"bill_id":42,"bill_number":"HB1","state":"TX","title":"Relating to things",
			"texts":[{"doc_id":1,"type":"Introduced","mime":"application/pdf"},{"doc_id":7,"type":"Engrossed","mime":"application/pdf"}]}}`)
	})

	b, err := c.Bill(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "HB1", b.Number)
	latest, ok := b.Latest()
	require.True(t, ok)
	assert.Equal(t, 7, latest.DocID)

	_, ok = Bill{}.Latest()
	assert.False(t, ok)
}

func TestBillTextDecodesDocument(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"status":"OK","text":{"doc_id":7,"bill_id":42,"mime":"application/pdf","doc":%q}}`,
			base64.StdEncoding.EncodeToString(pdf))
	})

	txt, err := c.BillText(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, pdf, txt.Doc)
	assert.Equal(t, "application/pdf", txt.MIME)
}

func TestMasterListSkipsSessionAndSorts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "IN", r.URL.Query().Get("state"))
		fmt.Fprint(w, `{"status":"OK","masterlist":{"session":{"session_id":2000},
			"1":{"bill_id":30,"number":"SB2"},"0":{"bill_id":10,"number":"HB1"}}}`)
	})

	list, err := c.MasterList(context.Background(), "IN", 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "HB1", list[0].Number)
	assert.Equal(t, "SB2", list[1].Number)

	_, err = c.MasterList(context.Background(), "", 0)
	assert.Error(t, err)
}

func TestSessions(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OK","sessions":[{"session_id":1,"year_start":2025,"year_end":2026,"session_name":"89th"}]}`)
	})
	s, err := c.Sessions(context.Background(), "TX")
	require.NoError(t, err)
	assert.Equal(t, []Session{{ID: 1, YearStart: 2025, YearEnd: 2026, Name: "89th"}}, s)
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"ERROR","alert":{"message":"Unknown bill id"}}`)
	})
	_, err := c.Bill(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "getBill", apiErr.Op)
	assert.Equal(t, "legiscan getBill: Unknown bill id", err.Error())
}

func TestHTTPErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	_, err := c.Sessions(context.Background(), "")
	assert.ErrorContains(t, err, "503")

	c = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	})
	_, err = c.Sessions(context.Background(), "")
	assert.ErrorContains(t, err, "decode response")
}
