package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// chatMessage is one assistant exchange pushed by the chat frontend
type chatMessage struct {
	UserID   string `json:"user_id"`
	Message  string `json:"message"`
	Response string `json:"response"`
}

// chatAck is sent back after each exchange has been ingested
type chatAck struct {
	Tracked  bool        `json:"tracked"`
	Analysis interface{} `json:"analysis,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// handleChatSocket ingests assistant transcript events over a WebSocket.
// The chat service streams each message/response pair as it happens instead
// of batching POSTs; every exchange flows through the same tracking path as
// the HTTP endpoint.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️ WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("✅ Chat transcript socket connected from %s", r.RemoteAddr)

	for {
		var msg chatMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("⚠️ Chat socket read error: %v", err)
			}
			return
		}

		if msg.UserID == "" || msg.Message == "" {
			s.writeChatAck(conn, chatAck{Error: "user_id and message are required"})
			continue
		}

		result, err := s.engine.TrackAiChatInteraction(r.Context(), msg.UserID, msg.Message, msg.Response)
		if err != nil {
			log.Printf("⚠️ Chat tracking failed for user %s: %v", msg.UserID, err)
			s.writeChatAck(conn, chatAck{Error: "tracking failed"})
			continue
		}

		ack := chatAck{Tracked: true}
		if result != nil {
			ack.Analysis = result
		}
		s.writeChatAck(conn, ack)
	}
}

func (s *Server) writeChatAck(conn *websocket.Conn, ack chatAck) {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if err := conn.WriteJSON(ack); err != nil {
		log.Printf("⚠️ Chat socket write error: %v", err)
	}
}
