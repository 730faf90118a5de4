package probesim

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbinder6342/OpenCore-Legacy-Patcher/probe"
)

var cannedReport = probe.Report{
	Model:            "MacBookPro8,1",
	BluetoothChipset: "BRCM2070 Hub",
	PatcherVersion:   "2.6.8",
}

func TestStartRejectsEmptyReport(t *testing.T) {
	_, _, err := Start(context.Background(), Config{})
	require.True(t, errors.Is(err, ErrEmptyReport))
}

func TestReportHandler(t *testing.T) {
	srv := httptest.NewServer(ReportHandler(cannedReport))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got probe.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, cannedReport, got)

	post, err := http.Post(srv.URL, "application/json", nil)
	require.NoError(t, err)
	post.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, post.StatusCode)
}

func TestReportHandlerFeedsPoller(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/report", ReportHandler(cannedReport))
	srv := httptest.NewServer(mux)
	defer srv.Close()

	report, err := probe.NewReportPoller(srv.URL).PollOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BRCM2070 Hub", report.BluetoothChipset)
}
