package forecast

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/demand-flow/internal/credentials"
	"github.com/Veraticus/demand-flow/internal/model"
)

func TestWithAuthRetry(t *testing.T) {
	t.Run("expired token refreshed once and call retried once", func(t *testing.T) {
		env := newTestEnv(t)
		var calls atomic.Int64
		var retryToken string

		env.mux.HandleFunc("/presigned_url", func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) == 1 {
				assert.Equal(t, "Bearer initial-token", r.Header.Get("Authorization"))
				w.WriteHeader(http.StatusForbidden)
				return
			}
			retryToken = r.Header.Get("Authorization")
			writeJSON(w, http.StatusOK, PresignedURL{URL: "http://upload", JobID: "job-1", Message: "ok"})
		})

		presigned, err := env.client.GetPresignedURL(context.Background(), "t1")
		require.NoError(t, err)
		assert.Equal(t, "job-1", presigned.JobID)
		assert.Equal(t, int64(2), calls.Load())
		assert.Equal(t, int64(1), env.idpCalls.Load(), "expected exactly one refresh")
		// The retry must carry the refreshed token, not a stale copy.
		assert.Equal(t, "Bearer refreshed-1", retryToken)
		assert.Equal(t, "refreshed-1", env.store.Token())
	})

	t.Run("second expiry propagates without another refresh", func(t *testing.T) {
		env := newTestEnv(t)
		var calls atomic.Int64

		env.mux.HandleFunc("/presigned_url", func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := env.client.GetPresignedURL(context.Background(), "t1")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAuthExpired)
		assert.Equal(t, int64(2), calls.Load(), "the call must not be attempted a third time")
		assert.Equal(t, int64(1), env.idpCalls.Load(), "refresh must not be attempted a second time")
	})

	t.Run("non-auth failure propagates without refresh", func(t *testing.T) {
		env := newTestEnv(t)
		var calls atomic.Int64

		env.mux.HandleFunc("/presigned_url", func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			writeJSON(w, http.StatusBadRequest, model.FailureResponse{Error: "BadRequest", Message: "nope"})
		})

		_, err := env.client.GetPresignedURL(context.Background(), "t1")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, int64(1), calls.Load())
		assert.Zero(t, env.idpCalls.Load())
	})

	t.Run("refresh failure aborts the retry", func(t *testing.T) {
		env := newTestEnv(t)
		env.mux.HandleFunc("/presigned_url", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		})

		// Point the client at a dead identity provider.
		env.client.refresher = newFailingRefresher(t, env)

		_, err := env.client.GetPresignedURL(context.Background(), "t1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token refresh for presigned_url failed")
	})
}

// newFailingRefresher returns a refresher whose identity provider always
// rejects the grant.
func newFailingRefresher(t *testing.T, env *testEnv) *credentials.Refresher {
	t.Helper()
	idp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "identity provider down", http.StatusInternalServerError)
	}))
	t.Cleanup(idp.Close)

	refresher, err := credentials.NewRefresher(env.store, credentials.RefresherConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		TokenURL:     idp.URL,
	})
	require.NoError(t, err)
	return refresher
}
