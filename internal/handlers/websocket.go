package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"fundraise-platform/internal/storage"
	ws "fundraise-platform/internal/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler streams live donation alerts to a fundraiser's dashboard.
type WebSocketHandler struct {
	Store storage.Storage
	Hub   *ws.Hub
}

func NewWebSocketHandler(store storage.Storage, hub *ws.Hub) *WebSocketHandler {
	return &WebSocketHandler{Store: store, Hub: hub}
}

func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	code := c.Param("referralCode")

	user, err := h.Store.GetUserByReferralCode(c.Request.Context(), code)
	if err != nil {
		log.Println("Failed to look up referral code:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error."})
		return
	}
	if user == nil {
		log.Println("WebSocket rejected for unknown referral code:", code)
		c.JSON(http.StatusNotFound, gin.H{"message": "Fundraiser not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("Failed to upgrade connection:", err)
		return
	}

	client := &ws.Client{
		Hub:          h.Hub,
		Conn:         conn,
		Send:         make(chan []byte, 256),
		ReferralCode: user.ReferralCode,
	}

	client.Hub.Register <- client

	go h.writePump(client)
	go h.readPump(client)
}

func (h *WebSocketHandler) writePump(client *ws.Client) {
	defer func() {
		client.Conn.Close()
	}()

	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}

	client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *WebSocketHandler) readPump(client *ws.Client) {
	defer func() {
		client.Hub.Unregister <- client
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("readPump error: %v", err)
			}
			break
		}
	}
}
