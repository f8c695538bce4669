package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gin-gonic/gin"
)

func TestDonationAlertPushedToWebSocket(t *testing.T) {
	r, _ := setupTestServer(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	user, _ := registerUser(t, r, "alice", "secret1", "Alice A")
	code := user["referralCode"].(string)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/" + code
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	rec := performRequest(r, http.MethodPost, "/api/donations", jsonBody(t, gin.H{
		"amount":          100,
		"donorName":       "Bob",
		"referralCode":    code,
		"message":         "keep going",
		"charityId":       1,
		"stripePaymentId": "pi_1",
	}), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var alert map[string]any
	require.NoError(t, json.Unmarshal(data, &alert))
	assert.Equal(t, "Bob", alert["donorName"])
	assert.EqualValues(t, 100, alert["amount"])
	assert.Equal(t, "keep going", alert["message"])
	assert.EqualValues(t, 1, alert["charityId"])
}

func TestWebSocketRejectsUnknownReferralCode(t *testing.T) {
	r, _ := setupTestServer(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/ghost123"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	if conn != nil {
		conn.Close()
	}
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
