package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"studio-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readWS(t *testing.T, conn *websocket.Conn) services.WSMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg services.WSMessage
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestWebSocketFeed(t *testing.T) {
	srv := newTestServer(t, "")
	ts := httptest.NewServer(srv.handler)
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, services.EventConnected, readWS(t, conn).Type)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))
	assert.Equal(t, "pong", readWS(t, conn).Type)

	resp, err := http.Post(ts.URL+"/api/booking-inquiries", "application/json", strings.NewReader(
		`{"fullName":"Asha","phoneNumber":"9876543210","serviceType":"EVENT","preferredDate":"2025-03-01"}`,
	))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	msg := readWS(t, conn)
	assert.Equal(t, services.EventInquiryCreated, msg.Type)
}

func TestWebSocketRequiresTokenWhenEnabled(t *testing.T) {
	srv := newTestServer(t, "test-secret")
	ts := httptest.NewServer(srv.handler)
	defer ts.Close()

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
