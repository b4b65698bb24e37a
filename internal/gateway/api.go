// ABOUTME: HTTP handlers for operator command requests and history reads
// ABOUTME: Sequences log -> correct -> extract -> build -> log -> dispatch

package gateway

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/warebot/picker-gateway/internal/store"
)

// CommandRequest is the JSON request body for POST /api/command.
type CommandRequest struct {
	Message string `json:"message"`
}

// CommandResponse is the JSON response for a handled command request.
type CommandResponse struct {
	Response string `json:"response"`
}

// ErrorResponse is the JSON shape for request-level failures. Trace carries
// the wrapped error chain for diagnosis; Error is the short operator-facing
// message.
type ErrorResponse struct {
	Error string `json:"error"`
	Trace string `json:"trace"`
}

// HistoryEntry is one element of the GET /api/messages response.
type HistoryEntry struct {
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// handleSendCommand handles POST /api/command.
//
// Sequencing is fixed: the raw user message is logged first, then the
// corrected text feeds extraction and command building, then the bot response
// is logged, and only after that response is durable is a built command
// dispatched. Broadcast failures never reach the operator.
func (g *Gateway) handleSendCommand(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	req, err := parseCommandRequest(r.Body)
	if err != nil {
		g.sendError(w, http.StatusBadRequest, "invalid request", err)
		return
	}

	ctx := r.Context()

	// Log the raw user message before anything can fail downstream. A later
	// failure does not roll this entry back.
	if _, err := g.log.AppendMessage(ctx, req.Message, store.SenderUser); err != nil {
		g.logger.Error("failed to log user message", "error", err)
		g.sendError(w, http.StatusInternalServerError, "failed to record message", err)
		return
	}

	corrected, err := g.corrector.Correct(ctx, req.Message)
	if err != nil {
		g.logger.Error("spell correction failed", "error", err)
		g.sendError(w, http.StatusInternalServerError, "spell correction unavailable", err)
		return
	}
	g.logger.Debug("corrected message", "raw", req.Message, "corrected", corrected)

	entities, err := g.extractor.Extract(ctx, corrected)
	if err != nil {
		g.logger.Error("entity extraction failed", "error", err)
		g.sendError(w, http.StatusInternalServerError, "entity extraction unavailable", err)
		return
	}
	g.logger.Debug("entities extracted", "count", len(entities))

	result, err := g.builder.Build(entities)
	if err != nil {
		g.logger.Error("command build failed", "error", err)
		g.sendError(w, http.StatusInternalServerError, "could not process command", err)
		return
	}

	if _, err := g.log.AppendMessage(ctx, result.Response, store.SenderBot); err != nil {
		g.logger.Error("failed to log bot response", "error", err)
		g.sendError(w, http.StatusInternalServerError, "failed to record response", err)
		return
	}

	// At most one dispatch per request, only when a product was resolved.
	if result.Cmd != nil {
		g.broadcaster.Publish(result.Cmd)
		g.logger.Info("command dispatched",
			"command_id", result.Cmd.ID,
			"product_id", result.Cmd.Payload[0].ProductID)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CommandResponse{Response: result.Response})
}

// handleListMessages handles GET /api/messages.
// Returns every conversation log entry, oldest first.
func (g *Gateway) handleListMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	messages, err := g.log.ListMessages(r.Context())
	if err != nil {
		g.logger.Error("failed to list messages", "error", err)
		g.sendError(w, http.StatusInternalServerError, "failed to read history", err)
		return
	}

	response := make([]HistoryEntry, len(messages))
	for i, msg := range messages {
		response[i] = HistoryEntry{Text: msg.Text, Sender: string(msg.Sender)}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleHealth handles GET /health (liveness).
func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleReady handles GET /health/ready, reporting connected robot count.
func (g *Gateway) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"robots": g.broadcaster.SubscriberCount(),
	})
}

// parseCommandRequest parses a CommandRequest from the given reader.
func parseCommandRequest(r io.Reader) (*CommandRequest, error) {
	var req CommandRequest
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, errors.New("invalid JSON body")
	}
	return &req, nil
}

// sendError writes a structured error response.
func (g *Gateway) sendError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message, Trace: err.Error()})
}
