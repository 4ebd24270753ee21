package studio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocal-hub/vocal-studio-hub/internal/calendar"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/shared"
	"github.com/vocal-hub/vocal-studio-hub/pkg/retry"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *calendar.Session, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	session := calendar.NewSession("test-token", nil)
	client := NewClient(DefaultClientConfig(server.URL), session)
	return client, session, server
}

func TestClient_Login(t *testing.T) {
	client, session, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/auth/token", r.URL.Path)

		var req TokenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "teacher", req.Username)

		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "fresh", TokenType: "bearer"})
	})

	require.NoError(t, client.Login(context.Background(), "teacher", "secret"))

	tok, err := session.Token()
	require.NoError(t, err)
	assert.Equal(t, "fresh", tok)
}

func TestClient_LoginBadCredentials(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "invalid username or password"})
	})

	err := client.Login(context.Background(), "teacher", "wrong")
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]LessonDTO{})
	})

	_, err := client.ListLessons(context.Background(), time.Now(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestClient_ListLessonsMapsDomain(t *testing.T) {
	start := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("from"))
		assert.NotEmpty(t, r.URL.Query().Get("to"))
		json.NewEncoder(w).Encode([]LessonDTO{
			{
				ID:              7,
				StudentID:       3,
				Date:            start,
				DurationMinutes: 60,
				IsCancelled:     true,
				Notes:           "распевка",
			},
		})
	})

	lessons, err := client.ListLessons(context.Background(), start, start.Add(7*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, lessons, 1)

	l := lessons[0]
	assert.Equal(t, int64(7), l.ID)
	assert.Equal(t, int64(3), l.StudentID)
	assert.True(t, start.Equal(l.Date))
	assert.True(t, l.IsCancelled)
	assert.Equal(t, "распевка", l.Notes)
}

func TestClient_UnauthorizedInvalidatesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	fired := false
	session := calendar.NewSession("stale", func() { fired = true })
	client := NewClient(DefaultClientConfig(server.URL), session)

	_, err := client.ListLessons(context.Background(), time.Now(), time.Now().Add(time.Hour))

	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
	assert.True(t, retry.IsPermanent(err) || !retry.IsRetryable(err), "401 must not be retried")
	assert.True(t, fired, "session hook fires on 401")
	assert.False(t, session.Valid())
}

func TestClient_ServerErrorIsRetryable(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.ListLessons(context.Background(), time.Now(), time.Now().Add(time.Hour))

	require.Error(t, err)
	assert.True(t, retry.IsRetryable(err))
}

func TestClient_NotFoundIsPermanent(t *testing.T) {
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.CompleteLesson(context.Background(), 99)

	require.Error(t, err)
	assert.True(t, retry.IsPermanent(err))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestClient_CompleteLessonPath(t *testing.T) {
	var gotPath, gotMethod string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		json.NewEncoder(w).Encode(LessonDTO{ID: 5, StudentID: 1, DurationMinutes: 60, IsCompleted: true})
	})

	l, err := client.CompleteLesson(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, "/api/lessons/5/complete", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.True(t, l.IsCompleted)
}

func TestClient_DeleteLesson(t *testing.T) {
	var gotMethod string
	client, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteLesson(context.Background(), 5))
	assert.Equal(t, http.MethodDelete, gotMethod)
}
