// ABOUTME: Robot-facing endpoints: SSE command stream and inbound event ingestion
// ABOUTME: Status/error reports are fire-and-forget appends to the conversation log

package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/warebot/picker-gateway/internal/store"
)

// StatusEvent is the JSON body for POST /api/robot/status.
type StatusEvent struct {
	Message string `json:"message"`
}

// ErrorEvent is the JSON body for POST /api/robot/error.
type ErrorEvent struct {
	Error string `json:"error"`
}

// handleRobotStream handles GET /api/robot/stream.
// The robot holds this connection open and receives each dispatched command
// as an SSE "robot_command" event. Delivery is best-effort: a command
// published while the robot is disconnected is gone.
func (g *Gateway) handleRobotStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		g.logger.Error("streaming not supported")
		g.sendError(w, http.StatusInternalServerError, "streaming not supported", fmt.Errorf("response writer is not a flusher"))
		return
	}

	ch, subID := g.broadcaster.Subscribe(r.Context())
	g.logger.Info("robot connected", "sub_id", subID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	g.writeSSEEvent(w, "connected", map[string]string{"subscriber_id": subID})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			g.logger.Info("robot disconnected", "sub_id", subID)
			return
		case cmd, open := <-ch:
			if !open {
				return
			}
			g.writeSSEEvent(w, "robot_command", cmd)
			flusher.Flush()
		}
	}
}

// handleRobotStatus handles POST /api/robot/status.
// Appends the status message to the conversation log as the robot. The robot
// never gets a body back, success or not; log failures are swallowed here.
func (g *Gateway) handleRobotStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var event StatusEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		g.logger.Warn("malformed robot status event", "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	g.logger.Info("robot status update", "message", event.Message)

	if _, err := g.log.AppendMessage(r.Context(), event.Message, store.SenderRobot); err != nil {
		g.logger.Error("failed to save status update", "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleRobotError handles POST /api/robot/error.
// Same contract as status events, with the text prefixed "ERROR: ".
func (g *Gateway) handleRobotError(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var event ErrorEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		g.logger.Warn("malformed robot error event", "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	g.logger.Warn("robot error reported", "error", event.Error)

	if _, err := g.log.AppendMessage(r.Context(), "ERROR: "+event.Error, store.SenderRobot); err != nil {
		g.logger.Error("failed to save error report", "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeSSEEvent writes a single SSE event to the response writer.
func (g *Gateway) writeSSEEvent(w http.ResponseWriter, event string, data any) {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		g.logger.Error("failed to marshal SSE data", "error", err)
		return
	}

	fmt.Fprintf(w, "event: %s\n", event)
	fmt.Fprintf(w, "data: %s\n\n", dataJSON)
}
