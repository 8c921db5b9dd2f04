package hub

import (
	"context"
	"encoding/json"
	"math"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threelines/tradeboard/backend/internal/contracts"
	"github.com/threelines/tradeboard/backend/internal/dashboard"
	"github.com/threelines/tradeboard/backend/pkg/config"
	"github.com/threelines/tradeboard/backend/pkg/logger"
	"github.com/threelines/tradeboard/backend/pkg/metrics"
	"github.com/threelines/tradeboard/backend/pkg/redis"
)

func snapshot(pnl float64) *dashboard.Snapshot {
	report := contracts.EmptyReport()
	report.TotalProfitLoss = pnl
	return &dashboard.Snapshot{
		View:   contracts.ViewDaily,
		Trades: []contracts.Trade{},
		Report: report,
		Curve:  []contracts.EquityPoint{},
	}
}

func dial(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_LatestOnConnect(t *testing.T) {
	h := New(logger.Nop(), metrics.New())
	server := httptest.NewServer(h)
	defer server.Close()
	defer h.Close()

	require.NoError(t, h.Publish(context.Background(), snapshot(85)))

	conn := dial(t, server)
	msg := readMessage(t, conn)

	assert.Equal(t, "snapshot", msg.Type)
	require.NotNil(t, msg.Data)
	assert.Equal(t, 85.0, msg.Data.Report.TotalProfitLoss)
}

func TestHub_Broadcast(t *testing.T) {
	h := New(logger.Nop(), nil)
	server := httptest.NewServer(h)
	defer server.Close()
	defer h.Close()

	first := dial(t, server)
	second := dial(t, server)

	require.Eventually(t, func() bool { return h.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, h.Publish(context.Background(), snapshot(12)))

	assert.Equal(t, 12.0, readMessage(t, first).Data.Report.TotalProfitLoss)
	assert.Equal(t, 12.0, readMessage(t, second).Data.Report.TotalProfitLoss)
}

func TestHub_ClientLeaves(t *testing.T) {
	h := New(logger.Nop(), nil)
	server := httptest.NewServer(h)
	defer server.Close()

	conn := dial(t, server)
	require.Eventually(t, func() bool { return h.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	_ = conn.Close()
	require.Eventually(t, func() bool { return h.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_PublishNonFinite(t *testing.T) {
	h := New(logger.Nop(), nil)

	err := h.Publish(context.Background(), snapshot(math.NaN()))
	assert.Error(t, err)
}

func TestRedisPublisher_Disabled(t *testing.T) {
	client, err := redis.New(context.Background(), &config.Config{})
	require.NoError(t, err)

	p := NewRedisPublisher(redis.NewCache(client, "tradeboard"))
	assert.NoError(t, p.Publish(context.Background(), snapshot(1)))
}
