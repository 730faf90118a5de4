package probe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportPollerPollOnce(t *testing.T) {
	var withController atomic.Bool
	withController.Store(true)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/report" {
			http.NotFound(w, r)
			return
		}
		report := Report{Model: "MacBookPro8,1"}
		if withController.Load() {
			report.BluetoothChipset = "BRCM2070 Hub"
		}
		_ = json.NewEncoder(w).Encode(report)
	}))
	defer srv.Close()

	p := NewReportPoller(srv.URL + "/")
	sub := p.Subscribe(4)
	defer sub.Close()

	report, err := p.PollOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BRCM2070 Hub", report.BluetoothChipset)

	snap, at := p.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, report.Model, snap.Model)
	assert.False(t, at.IsZero())

	select {
	case ev := <-sub.C():
		assert.Equal(t, EventControllerAttached, ev.Kind)
		assert.Equal(t, "BRCM2070 Hub", ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("no attach event")
	}

	// Controller disappears between polls.
	withController.Store(false)
	_, err = p.PollOnce(context.Background())
	require.NoError(t, err)

	select {
	case ev := <-sub.C():
		assert.Equal(t, EventControllerDetached, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("no detach event")
	}
}

func TestReportPollerServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewReportPoller(srv.URL).PollOnce(context.Background())
	require.Error(t, err)

	snap, _ := NewReportPoller(srv.URL).Snapshot()
	assert.Nil(t, snap)
}
