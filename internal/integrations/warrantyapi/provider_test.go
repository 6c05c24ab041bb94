package warrantyapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"warranty-console/internal/dto"
	"warranty-console/pkg/config"
	apperrors "warranty-console/pkg/errors"
)

func newTestProvider(t *testing.T, h http.HandlerFunc) *Provider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.UpstreamConfig{
		BaseURL:    srv.URL,
		Timeout:    2 * time.Second,
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
	}, zap.NewNop()).(*Provider)
}

func TestListWarranties_DecodesEnvelope(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/warranties", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"success":true,"warranties":[
			{"id":1,"uid":"W-1","status":"pending","product_type":"seat-cover","car_year":2021,"extra_field":"kept"},
			{"id":"2","uid":null,"status":"validated","product_type":"ppf"}
		]}`)
	})

	list, err := p.ListWarranties(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "W-1", list[0].Key())
	assert.Equal(t, "2021", list[0].CarYear.String())
	assert.Equal(t, "2", list[1].Key())

	b, err := json.Marshal(list[0])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"extra_field":"kept"`)
}

func TestListGrievances_UsesDataKey(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":5,"ticket_id":"GRV-5","status":"submitted","category":"other"}]}`)
	})

	list, err := p.ListGrievances(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "GRV-5", list[0].TicketID.String)
}

func TestListEntity_UnsuccessfulBodyIsUnavailable(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":false,"message":"db down"}`)
	})

	_, err := p.ListVendors(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestListEntity_MissingSuccessFlag(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"warranties":[{"id":1,"status":"pending"}]}`)
	})

	list, err := p.ListWarranties(context.Background(), "tok")
	require.Error(t, err)
	assert.Nil(t, list)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
}

func TestListEntity_MissingKey(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"items":[]}`)
	})

	_, err := p.ListCustomers(context.Background(), "tok")
	require.Error(t, err)
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"admins":[{"id":1,"email":"a@x.io"}]}`)
	})

	list, err := p.ListAdmins(context.Background(), "tok")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_GivesUpAfterRetries(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := p.ListPOSMRequests(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamUnavailable))
	assert.Equal(t, int32(3), calls.Load())
}

func TestFetch_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"success":false,"error":"Invalid token"}`)
	})

	_, err := p.ListWarranties(context.Background(), "bad")
	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	assert.Equal(t, "Invalid token", httpErr.Message)
	assert.Equal(t, int32(1), calls.Load())
}

func TestListManpower_MergesActiveAndInactive(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vendor/manpower", r.URL.Path)
		if r.URL.Query().Get("active") == "true" {
			_, _ = io.WriteString(w, `{"success":true,"manpower":[{"id":1,"name":"A","is_active":1}]}`)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"manpower":[{"id":2,"name":"B","is_active":0}]}`)
	})

	list, err := p.ListManpower(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "active", list[0].ActivityStatus())
	assert.Equal(t, "inactive", list[1].ActivityStatus())
}

func TestUpdateWarrantyStatus_SendsPayload(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/warranties/W-1/status", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "rejected", body["status"])
		assert.Equal(t, "blurry invoice", body["rejectionReason"])
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	err := p.UpdateWarrantyStatus(context.Background(), "tok", "W-1", dto.UpdateWarrantyStatusDTO{Status: "rejected", RejectionReason: "blurry invoice"})
	assert.NoError(t, err)
}

func TestDeleteCustomer_EscapesEmail(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/admin/customers/a+b@x.io", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	assert.NoError(t, p.DeleteCustomer(context.Background(), "tok", "a+b@x.io"))
}

func TestMutation_NotRetriedAndReportsRejection(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `{"success":false,"message":"Vendor has warranties"}`)
	})

	err := p.DeleteVendor(context.Background(), "tok", "7")
	var httpErr *apperrors.HttpError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "Vendor has warranties", httpErr.Message)
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamRejected))
	assert.Equal(t, int32(1), calls.Load())
}

func TestMutation_MissingSuccessFlagIsRejection(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"message":"hmm"}`)
	})

	err := p.UpdateWarrantyStatus(context.Background(), "tok", "W-1", dto.UpdateWarrantyStatusDTO{Status: "validated"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUpstreamRejected)
}
