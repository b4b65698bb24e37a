// ABOUTME: Tests for the SQLite conversation log
// ABOUTME: Covers ordering, id monotonicity, and concurrent append uniqueness

package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "log.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendMessage_AssignsIncreasingIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	m1, err := s.AppendMessage(ctx, "move the bolt", SenderUser)
	require.NoError(t, err)
	m2, err := s.AppendMessage(ctx, "Sent command", SenderBot)
	require.NoError(t, err)
	m3, err := s.AppendMessage(ctx, "picked up item", SenderRobot)
	require.NoError(t, err)

	assert.Less(t, m1.ID, m2.ID)
	assert.Less(t, m2.ID, m3.ID)
}

func TestListMessages_ReturnsAppendOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	texts := []string{"first", "second", "third", "fourth"}
	senders := []Sender{SenderUser, SenderBot, SenderRobot, SenderUser}
	for i, text := range texts {
		_, err := s.AppendMessage(ctx, text, senders[i])
		require.NoError(t, err)
	}

	messages, err := s.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 4)

	for i, msg := range messages {
		assert.Equal(t, texts[i], msg.Text)
		assert.Equal(t, senders[i], msg.Sender)
		if i > 0 {
			assert.Greater(t, msg.ID, messages[i-1].ID)
		}
	}
}

func TestListMessages_EmptyLog(t *testing.T) {
	s := newTestStore(t)

	messages, err := s.ListMessages(context.Background())
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestAppendMessage_ConcurrentWritesGetUniqueIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	const writers = 8
	const perWriter = 10

	var wg sync.WaitGroup
	ids := make(chan int64, writers*perWriter)

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				msg, err := s.AppendMessage(ctx, "concurrent", SenderUser)
				assert.NoError(t, err)
				if err == nil {
					ids <- msg.ID
				}
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, writers*perWriter)
}

func TestAppendMessage_RejectsUnknownSender(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AppendMessage(context.Background(), "hello", Sender("ghost"))
	assert.Error(t, err)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.db")

	s1, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	_, err = s1.AppendMessage(context.Background(), "durable", SenderUser)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteStore(path, nil)
	require.NoError(t, err)
	defer s2.Close()

	messages, err := s2.ListMessages(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "durable", messages[0].Text)
}
