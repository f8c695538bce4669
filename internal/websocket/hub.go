package websocket

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

type Client struct {
	Hub          *Hub
	Conn         *websocket.Conn
	Send         chan []byte
	ReferralCode string
}

// DonationAlert is pushed to a fundraiser's dashboard the moment a donation
// for their referral code is recorded.
type DonationAlert struct {
	TargetReferralCode string  `json:"-"`
	DonorName          string  `json:"donorName"`
	Amount             int     `json:"amount"`
	Message            *string `json:"message"`
	CharityID          int     `json:"charityId"`
}

type Hub struct {
	Clients        map[string]*Client
	Register       chan *Client
	Unregister     chan *Client
	BroadcastAlert chan DonationAlert
}

func NewHub() *Hub {
	return &Hub{
		Clients:        make(map[string]*Client),
		Register:       make(chan *Client),
		Unregister:     make(chan *Client),
		BroadcastAlert: make(chan DonationAlert),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client.ReferralCode] = client
			log.Printf("WebSocket client registered for referral code %s", client.ReferralCode)

		case client := <-h.Unregister:
			if _, ok := h.Clients[client.ReferralCode]; ok {
				delete(h.Clients, client.ReferralCode)
				close(client.Send)
				log.Printf("WebSocket client unregistered for referral code %s", client.ReferralCode)
			}

		case alert := <-h.BroadcastAlert:
			if client, ok := h.Clients[alert.TargetReferralCode]; ok {
				jsonData, err := json.Marshal(alert)
				if err != nil {
					log.Println("Failed to marshal donation alert:", err)
					continue
				}

				select {
				case client.Send <- jsonData:
					log.Printf("Sent alert for referral code %s", client.ReferralCode)
				default:
					close(client.Send)
					delete(h.Clients, client.ReferralCode)
				}
			}
		}
	}
}
