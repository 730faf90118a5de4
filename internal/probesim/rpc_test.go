package probesim

import (
	"context"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jbinder6342/OpenCore-Legacy-Patcher/probe"
)

func TestRPCHandlerServesReport(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(cannedReport, zap.NewNop()))
	defer srv.Close()

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	u.Scheme = "ws"

	c := probe.NewRPCClient(u.String())
	require.NoError(t, c.Connect(context.Background()))
	defer c.Close()

	report, err := c.FetchReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, cannedReport, *report)
}

func TestRPCHandlerUnknownMethod(t *testing.T) {
	srv := httptest.NewServer(rpcHandler(cannedReport, zap.NewNop()))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"

	c := probe.NewRPCClient(u.String())
	require.NoError(t, c.Connect(context.Background()))
	defer c.Close()

	res, err := c.Do(context.Background(), probe.Call{Method: "probe.shutdown"})
	require.NoError(t, err)
	require.NotNil(t, res.Error)
	assert.Equal(t, -32601, res.Error.Code)
}
