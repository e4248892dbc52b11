// internal/app/features/simulator/handler_test.go
package simulator

import (
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestHandleSimulateRejectsBadInput(t *testing.T) {
	h := &Handler{Log: zap.NewNop()}

	cases := []struct {
		name  string
		query string
	}{
		{"missing experiment", "slider=50"},
		{"malformed experiment id", "experiment=nothex&slider=50"},
		{"missing slider", "experiment=64a000000000000000000000"},
		{"slider not a number", "experiment=64a000000000000000000000&slider=abc"},
		{"slider below range", "experiment=64a000000000000000000000&slider=-1"},
		{"slider above range", "experiment=64a000000000000000000000&slider=101"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/simulate?"+tc.query, nil)
			rec := httptest.NewRecorder()

			h.HandleSimulate(rec, req)

			if rec.Code != 400 {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}
