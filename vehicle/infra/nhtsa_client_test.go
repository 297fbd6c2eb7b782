package infra

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vin-gateway/vehicle/domain"
)

const accordPayload = `{
  "Count": 4,
  "Message": "Results returned successfully",
  "Results": [
    {"Value": null, "ValueId": "", "Variable": "Suggested VIN", "VariableId": 142},
    {"Value": "HONDA", "ValueId": "474", "Variable": "Manufacturer Name", "VariableId": 27},
    {"Value": "Accord", "ValueId": "1861", "Variable": "Model", "VariableId": 28},
    {"Value": "2003", "ValueId": "", "Variable": "Model Year", "VariableId": 29}
  ]
}`

func newUpstream(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func TestNHTSAClient_DecodeExtractsLabels(t *testing.T) {
	var path, query string
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		path, query = r.URL.Path, r.URL.RawQuery
		_, _ = w.Write([]byte(accordPayload))
	})

	c := NewNHTSAClient(srv.URL + "/")
	got, err := c.Decode(context.Background(), testVIN)
	require.NoError(t, err)

	assert.Equal(t, domain.DecodedVehicle{Manufacturer: "HONDA", Model: "Accord", Year: "2003"}, got)
	assert.Equal(t, "/DecodeVin/1HGCM82633A123456", path)
	assert.Equal(t, "format=json", query)
}

func TestNHTSAClient_MissingOrEmptyFieldsDefaultToUnknown(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Results":[{"Variable":"Model","Value":""},{"Variable":"Model Year","Value":null},{"Variable":"Make","Value":"HONDA"}]}`))
	})

	got, err := NewNHTSAClient(srv.URL).Decode(context.Background(), testVIN)
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownVehicle(), got)
}

func TestNHTSAClient_EmptyResultsIsNotFound(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Count":0,"Results":[]}`))
	})

	_, err := NewNHTSAClient(srv.URL).Decode(context.Background(), testVIN)
	require.ErrorIs(t, err, domain.ErrNotFoundUpstream)

	var fe *domain.FetchError
	assert.False(t, errors.As(err, &fe), "not-found must be distinct from a fetch failure")
}

func TestNHTSAClient_StatusAndPayloadFailuresAreFetchErrors(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"status 500": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
		"status 403": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusForbidden) },
		"malformed":  func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("<html>")) },
	}
	for name, h := range cases {
		t.Run(name, func(t *testing.T) {
			srv := newUpstream(t, h)
			_, err := NewNHTSAClient(srv.URL).Decode(context.Background(), testVIN)

			var fe *domain.FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, testVIN, fe.VIN)
		})
	}
}

func TestNHTSAClient_NetworkFailureIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewNHTSAClient(url, WithTimeout(time.Second)).Decode(context.Background(), testVIN)
	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.StatusCode)
}

func TestNHTSAClient_NoRetryByDefault(t *testing.T) {
	var calls atomic.Int64
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := NewNHTSAClient(srv.URL).Decode(context.Background(), testVIN)
	require.Error(t, err)
	assert.Equal(t, int64(1), calls.Load())
}

func TestNHTSAClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int64
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(accordPayload))
	})

	c := NewNHTSAClient(srv.URL, WithRetry(3, time.Millisecond))
	got, err := c.Decode(context.Background(), testVIN)
	require.NoError(t, err)
	assert.Equal(t, "Accord", got.Model)
	assert.Equal(t, int64(3), calls.Load())
}

func TestNHTSAClient_DoesNotRetryClientErrorsOrNotFound(t *testing.T) {
	var calls atomic.Int64
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"Results":[]}`))
	})

	_, err := NewNHTSAClient(srv.URL, WithRetry(3, time.Millisecond)).Decode(context.Background(), testVIN)
	require.ErrorIs(t, err, domain.ErrNotFoundUpstream)
	assert.Equal(t, int64(1), calls.Load())
}

func TestNHTSAClient_SlotsBoundInflight(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(accordPayload))
	})

	pool := NewChanPool(1)
	release, ok := pool.Acquire(context.Background())
	require.True(t, ok)

	c := NewNHTSAClient(srv.URL, WithSlots(pool, 10*time.Millisecond))
	_, err := c.Decode(context.Background(), testVIN)
	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.ErrorIs(t, err, domain.ErrNoSlot)

	release()
	_, err = c.Decode(context.Background(), testVIN)
	assert.NoError(t, err)
}

func TestNHTSAClient_SlotWaitDefaultsToRequestTimeout(t *testing.T) {
	srv := newUpstream(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(accordPayload))
	})

	pool := NewChanPool(1)
	release, ok := pool.Acquire(context.Background())
	require.True(t, ok)
	defer release()

	c := NewNHTSAClient(srv.URL, WithSlots(pool, 0), WithTimeout(30*time.Millisecond))

	done := make(chan error, 1)
	go func() {
		_, err := c.Decode(context.WithoutCancel(context.Background()), testVIN)
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, domain.ErrNoSlot)
	case <-time.After(2 * time.Second):
		t.Fatalf("slot wait without acquire timeout never gave up")
	}
}
