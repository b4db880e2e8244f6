package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mancalaweb/internal/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostsRequestBody(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/board", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = io.WriteString(w, `{"id":"xyz","currentPlayer":"PLAYER_2","boardSizePerPlayer":7,"isOpen":true,"board":[0,4,4,4,4,4,4,0,4,4,4,4,4,4]}`)
	}))
	defer srv.Close()

	size, stones := 6, 4
	c := NewClient(srv.URL+"/", time.Second)
	b, err := c.Create(context.Background(), board.CreateRequest{BoardSize: &size, StonesPerPit: &stones})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"boardSize": float64(6), "stonesPerPit": float64(4)}, gotBody)
	assert.Equal(t, "xyz", b.ID)
	assert.Equal(t, board.Player2, b.CurrentPlayer)
	assert.Len(t, b.Stones, 14)
	assert.Nil(t, b.Winner)
}

func TestCreateOmitsUnsetFields(t *testing.T) {
	var raw []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ = io.ReadAll(r.Body)
		_, _ = io.WriteString(w, `{"id":"d","boardSizePerPlayer":7,"isOpen":true,"board":[]}`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Create(context.Background(), board.CreateRequest{})
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestGetAndTargetPaths(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		_, _ = io.WriteString(w, `{"id":"abc","currentPlayer":"PLAYER_1","boardSizePerPlayer":7,"isOpen":false,"winner":"PLAYER_1","board":[30,0,0,0,0,0,0,18,0,0,0,0,0,0]}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Get(context.Background(), "abc")
	require.NoError(t, err)
	b, err := c.Target(context.Background(), "abc", 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /board/abc", "PUT /board/abc/target/3"}, calls)
	require.NotNil(t, b.Winner)
	assert.Equal(t, board.Player1, *b.Winner)
	assert.True(t, b.Finished())
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		target  error
		message string
	}{
		{"not found", http.StatusNotFound, `{"message":"board.not_found"}`, ErrNotFound, "board.not_found"},
		{"rejected", http.StatusBadRequest, `{"message":"player.board.field.zero.invalid"}`, ErrRejected, "player.board.field.zero.invalid"},
		{"plain text", http.StatusConflict, "nope", ErrRejected, "nope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Target(context.Background(), "abc", 1)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.target)

			var se *StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.status, se.Code)
			assert.Equal(t, tc.message, se.Message)
		})
	}
}

func TestServerErrorIsNotRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Get(context.Background(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRejected)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, 0).Get(ctx, "abc")
	assert.ErrorIs(t, err, context.Canceled)
}
