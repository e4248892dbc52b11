// internal/app/features/stream/handler.go
package stream

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/brewlab/internal/app/features/experiments"
	"github.com/dalemusser/brewlab/internal/app/system/auth"
	"github.com/dalemusser/brewlab/internal/app/system/live"
	"go.uber.org/zap"
)

const heartbeatInterval = 25 * time.Second

// Handler serves the per-session live stream. Each connection gets its
// own mirror over the shared hub; the card list is re-rendered
// server-side on every collection change and pushed as an SSE event.
type Handler struct {
	Hub *live.Hub
	Log *zap.Logger
}

func NewHandler(hub *live.Hub, logger *zap.Logger) *Handler {
	return &Handler{Hub: hub, Log: logger}
}

// HandleStream handles GET /stream.
func (h *Handler) HandleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	u, _ := auth.CurrentUser(r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Coalescing channel: only the newest snapshot matters, so a slow
	// client skips intermediate states rather than queueing them.
	events := make(chan live.Snapshot, 1)
	mirror := live.NewMirror(h.Hub, func(s live.Snapshot) {
		select {
		case events <- s:
		default:
			select {
			case <-events:
			default:
			}
			select {
			case events <- s:
			default:
			}
		}
	})

	if err := mirror.Start(r.Context()); err != nil {
		h.Log.Error("live mirror start failed", zap.Error(err))
		http.Error(w, "stream unavailable", http.StatusInternalServerError)
		return
	}
	defer mirror.Stop()

	h.Log.Debug("stream connected", zap.String("user_id", u.ID))

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.Log.Debug("stream disconnected", zap.String("user_id", u.ID))
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case snap := <-events:
			cards := experiments.BuildCards(snap.Experiments, snap.Beans, snap.Machines, u.ID, u.Admin)
			html, err := experiments.RenderCardsHTML(cards)
			if err != nil {
				h.Log.Error("card render failed", zap.Error(err))
				continue
			}
			writeEvent(w, "cards", html)
			flusher.Flush()
		}
	}
}

// writeEvent emits one SSE event. Multi-line payloads need every line
// carried in its own data field.
func writeEvent(w http.ResponseWriter, event, data string) {
	fmt.Fprintf(w, "event: %s\n", event)
	for _, line := range strings.Split(data, "\n") {
		fmt.Fprintf(w, "data: %s\n", line)
	}
	fmt.Fprint(w, "\n")
}
