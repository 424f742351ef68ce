package server_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/atomiclabs/bridge/x/bridge/types"
)

func TestEventStreamDeliversLedgerEvents(t *testing.T) {
	s := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(s.ts.URL, "http") + "/v1/events"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	s.initiate(t, attachedRequest("9"))

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, bz, err := conn.ReadMessage()
	require.NoError(t, err)

	var event types.Event
	require.NoError(t, json.Unmarshal(bz, &event))
	require.Equal(t, types.EventTypeTransferInitiated, event.Type)

	amount, ok := event.AttributeValue(types.AttributeKeyAmount)
	require.True(t, ok)
	require.Equal(t, "9", amount)
}
