package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/sectorsignal"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Single-host deployment; the API is not exposed cross-origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamMessage is one frame on the signal stream. Type is "update" while
// pairs complete, then a single "complete" frame carries the full result.
type StreamMessage struct {
	Type     string                          `json:"type"`
	Sector   string                          `json:"sector,omitempty"`
	Strategy string                          `json:"strategy,omitempty"`
	Result   *contracts.SectorStrategyResult `json:"result,omitempty"`
	Failure  *contracts.FailedPair           `json:"failure,omitempty"`
	Batch    *contracts.SectorSignalResult   `json:"batch,omitempty"`
	Summary  *contracts.SignalSummary        `json:"summary,omitempty"`
	Error    string                          `json:"error,omitempty"`
}

// Stream runs a batch and pushes each pair outcome over a websocket as it
// lands.
// GET /ws/signals?sectors=a,b&strategies=x,y
func (h *SignalHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("Websocket upgrade failed")
		return
	}
	defer conn.Close()

	query := r.URL.Query()
	req := sectorsignal.Request{
		Sectors:    splitParam(query.Get("sectors")),
		Strategies: splitParam(query.Get("strategies")),
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
		// Progress runs on the collection goroutine, so writes here are
		// serialized.
		Progress: func(u sectorsignal.Update) {
			msg := StreamMessage{
				Type:     "update",
				Sector:   u.Sector,
				Strategy: u.Strategy,
				Result:   u.Result,
				Failure:  u.Failure,
			}
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.WithError(err).Debug("Websocket write failed")
			}
		},
	}

	result, err := h.calculator.CalculateSectorSignals(r.Context(), req)
	if err != nil {
		_ = conn.WriteJSON(StreamMessage{Type: "error", Error: err.Error()})
		return
	}

	summary := sectorsignal.Summarize(result)
	_ = conn.WriteJSON(StreamMessage{
		Type:    "complete",
		Batch:   result,
		Summary: &summary,
	})
}

func splitParam(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
