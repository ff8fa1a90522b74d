package arrivelah

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bus-arrival-server/api"
	"bus-arrival-server/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *ArrivelahApiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewArrivelahApiClient(api.NewHTTPClient(srv.URL, time.Second), nil)
}

func TestFetchArrivals_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("expected GET; got %s", r.Method)
		}
		if got := r.URL.Query().Get("id"); got != "10009" {
			t.Errorf("id = %q; want 10009", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"services":[
			{"no":"10","operator":"SBST",
			 "next":{"time":"2026-10-14T12:03:00+08:00","destination_code":"75009"},
			 "next2":{"time":"2026-10-14T12:10:00+08:00","destination_code":"75009"},
			 "next3":null}
		]}`))
	})

	result := client.FetchArrivals(context.Background(), "10009")

	require.True(t, result.Success)
	assert.Empty(t, result.Message)
	require.Len(t, result.Services, 1)
	svc := result.Services[0]
	assert.Equal(t, "10", svc.Number)
	assert.Equal(t, "SBST", svc.Operator)
	assert.Equal(t, "75009", svc.Next.DestinationCode)
	require.NotNil(t, svc.Next2)
	assert.Nil(t, svc.Next3)
}

func TestFetchArrivals_EmptyServicesIsSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"services":[]}`))
	})

	result := client.FetchArrivals(context.Background(), "10009")

	assert.True(t, result.Success)
	assert.NotNil(t, result.Services)
	assert.Empty(t, result.Services)
}

func TestFetchArrivals_MissingServicesField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"no such stop"}`))
	})

	result := client.FetchArrivals(context.Background(), "10009")

	assert.False(t, result.Success)
	assert.Equal(t, "Missing bus ID field. Unable to retrieve services.", result.Message)
	assert.Equal(t, models.FailureMalformed, result.Failure)
}

func TestFetchArrivals_BodyNotJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`oops`))
	})

	result := client.FetchArrivals(context.Background(), "10009")

	assert.False(t, result.Success)
	assert.Equal(t, models.MISSING_SERVICES_MESSAGE, result.Message)
}

func TestFetchArrivals_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	result := client.FetchArrivals(context.Background(), "100000")

	assert.False(t, result.Success)
	assert.Equal(t, "Failed to retrieve data from source.", result.Message)
	assert.Equal(t, models.FailureTransport, result.Failure)
}

func TestFetchArrivals_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()
	client := NewArrivelahApiClient(api.NewHTTPClient(baseURL, time.Second), nil)

	result := client.FetchArrivals(context.Background(), "10009")

	assert.False(t, result.Success)
	assert.Equal(t, models.FAILED_TO_RETRIEVE_MESSAGE, result.Message)
}
