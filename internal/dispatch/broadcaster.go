// ABOUTME: In-memory fan-out broadcaster for dispatching commands to robots
// ABOUTME: Fire-and-forget: no acks, no retries, drops for slow subscribers

package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/warebot/picker-gateway/internal/command"
)

// subscriberBufferSize is the channel buffer for each subscriber.
const subscriberBufferSize = 64

// Broadcaster provides in-memory pub/sub for built commands. Every connected
// robot subscribes and receives each command published while it is connected.
// Delivery is best-effort: there are no acknowledgments and a publish to zero
// subscribers is dropped.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]chan *command.Command // subID -> ch
	logger      *slog.Logger
}

// NewBroadcaster creates a broadcaster. Pass nil logger for default.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		subscribers: make(map[string]chan *command.Command),
		logger:      logger.With("component", "dispatch"),
	}
}

// Subscribe registers a robot connection. Returns a channel that receives
// published commands and a subscription ID for later unsubscription. The
// subscription is automatically cleaned up when ctx is cancelled.
func (b *Broadcaster) Subscribe(ctx context.Context) (<-chan *command.Command, string) {
	subID := uuid.New().String()
	ch := make(chan *command.Command, subscriberBufferSize)

	b.mu.Lock()
	b.subscribers[subID] = ch
	b.mu.Unlock()

	b.logger.Debug("robot subscriber added", "sub_id", subID)

	// Auto-cleanup on context cancellation
	go func() {
		<-ctx.Done()
		b.Unsubscribe(subID)
	}()

	return ch, subID
}

// Publish sends a command to every currently connected subscriber.
// Non-blocking: commands are dropped for subscribers whose channels are full.
// A publish with no subscribers connected is logged and dropped; the caller
// never sees an error either way.
func (b *Broadcaster) Publish(cmd *command.Command) {
	b.mu.RLock()
	if len(b.subscribers) == 0 {
		b.mu.RUnlock()
		b.logger.Warn("no robot connected, command dropped", "command_id", cmd.ID)
		return
	}

	// Copy subscriber channels under read lock to avoid holding lock during sends
	targets := make([]chan *command.Command, 0, len(b.subscribers))
	for _, ch := range b.subscribers {
		targets = append(targets, ch)
	}
	b.mu.RUnlock()

	for _, ch := range targets {
		select {
		case ch <- cmd:
			// Sent
		default:
			b.logger.Debug("dropped command for slow subscriber", "command_id", cmd.ID)
		}
	}
}

// SubscriberCount returns the number of currently connected subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Broadcaster) Unsubscribe(subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subscribers[subID]
	if !ok {
		return
	}

	delete(b.subscribers, subID)
	close(ch)

	b.logger.Debug("robot subscriber removed", "sub_id", subID)
}

// Close shuts down the broadcaster and closes all subscriber channels.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for subID, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, subID)
	}

	b.logger.Debug("broadcaster closed")
}
