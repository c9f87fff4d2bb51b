package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(Options{APIKey: "key", BaseURL: srv.URL})
}

func TestPage_ForwardsQuery(t *testing.T) {
	var got *http.Request

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"page":3,"results":[]}`))
	})

	body, err := c.Page(context.Background(), "/movie/popular", "3")
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":3,"results":[]}`, string(body))

	assert.Equal(t, "/movie/popular", got.URL.Path)
	assert.Equal(t, "key", got.URL.Query().Get("api_key"))
	assert.Equal(t, "en-US", got.URL.Query().Get("language"))
	assert.Equal(t, "3", got.URL.Query().Get("page"))
}

func TestRaw_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, `{"status_message":"nope"}`, ErrStatus},
		{"server error", http.StatusInternalServerError, ``, ErrStatus},
		{"not json", http.StatusOK, `<html>`, ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Raw(context.Background(), "/movie/1", nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRaw_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(Options{APIKey: "key", BaseURL: srv.URL, Timeout: time.Second})
	_, err := c.Raw(context.Background(), "/movie/1", nil)
	assert.ErrorIs(t, err, ErrRequest)
}

func TestTrailerKey(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "first youtube trailer",
			body: `{"results":[
				{"key":"teaser","site":"YouTube","type":"Teaser"},
				{"key":"vimeo","site":"Vimeo","type":"Trailer"},
				{"key":"abc","site":"YouTube","type":"Trailer"},
				{"key":"def","site":"YouTube","type":"Trailer"}]}`,
			want: "abc",
		},
		{"no trailer", `{"results":[{"key":"x","site":"YouTube","type":"Clip"}]}`, ""},
		{"no results", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var path string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				path = r.URL.Path
				w.Write([]byte(tt.body))
			})

			key, err := c.TrailerKey(context.Background(), "tv", 42)
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
			assert.Equal(t, "/tv/42/videos", path)
		})
	}
}

func TestPersonCast(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/person/1/combined_credits" {
			w.Write([]byte(`{"cast":[{"id":1},{"id":2}],"crew":[]}`))
			return
		}
		w.Write([]byte(`{"crew":[]}`))
	})

	cast, err := c.PersonCast(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, cast, 2)

	cast, err = c.PersonCast(context.Background(), 2)
	require.NoError(t, err)
	assert.NotNil(t, cast)
	assert.Empty(t, cast)
}

func TestSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/multi", r.URL.Path)
		assert.Equal(t, "star wars", r.URL.Query().Get("query"))
		w.Write([]byte(`{"page":1,"results":[{"id":11}]}`))
	})

	res, err := c.Search(context.Background(), "star wars", "1")
	require.NoError(t, err)
	require.Len(t, res, 1)

	var item map[string]int
	require.NoError(t, json.Unmarshal(res[0], &item))
	assert.Equal(t, 11, item["id"])
}

func TestParseID(t *testing.T) {
	for in, want := range map[string]bool{"550": true, "0": false, "-1": false, "abc": false, "": false} {
		_, ok := ParseID(in)
		assert.Equal(t, want, ok, in)
	}
}
