package probesim

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jbinder6342/OpenCore-Legacy-Patcher/probe"
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// rpcHandler upgrades to a websocket and answers probe.report calls with the
// canned report. Unknown methods get the standard method-not-found error.
func rpcHandler(report probe.Report, log *zap.Logger) http.HandlerFunc {
	upgrader := websocket.Upgrader{}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn("rpc upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var req rpcRequest
			if err := json.Unmarshal(msg, &req); err != nil || req.ID == "" {
				continue
			}
			resp := rpcResponse{JSONRPC: "2.0", ID: req.ID}
			switch req.Method {
			case "probe.report":
				resp.Result = report
			default:
				resp.Error = rpcError{Code: -32601, Message: "method not found"}
			}
			out, _ := json.Marshal(resp)
			if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
				return
			}
		}
	}
}
