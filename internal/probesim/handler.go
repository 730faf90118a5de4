package probesim

import (
	"encoding/json"
	"net/http"

	"github.com/jbinder6342/OpenCore-Legacy-Patcher/probe"
)

// ReportHandler serves the canned report at /api/v1/report.
func ReportHandler(report probe.Report) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(report)
	}
}
