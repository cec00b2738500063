package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"video-idea-api/internal/event"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WSHandler streams idea events to connected clients
type WSHandler struct {
	publisher *event.Publisher
	logger    *zap.Logger
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(publisher *event.Publisher, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		publisher: publisher,
		logger:    logger,
	}
}

// StreamIdeaEvents godoc
// @Summary      아이디어 이벤트 스트림
// @Description  아이디어 생성 이벤트를 WebSocket으로 실시간 전달합니다
// @Tags         ideas
// @Security     BearerAuth
// @Success      101 "Switching Protocols"
// @Failure      401 {object} response.ErrorResponse "인증 실패"
// @Router       /ideas/ws [get]
func (h *WSHandler) StreamIdeaEvents(c *gin.Context) {
	authData, ok := ExtractAuthData(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade websocket connection",
			zap.Error(err),
			zap.String("user_id", authData.UserID.String()),
		)
		return
	}

	pubsub := h.publisher.Subscribe(c.Request.Context(), authData.UserID)
	done := make(chan struct{})

	go h.readPump(conn, done)
	h.writePump(conn, pubsub.Channel(), done)

	pubsub.Close()
	conn.Close()
}

// readPump drains client frames so pong handlers run; the stream is one-way
func (h *WSHandler) readPump(conn *websocket.Conn, done chan struct{}) {
	defer close(done)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards redis events to the client and keeps the connection alive
func (h *WSHandler) writePump(conn *websocket.Conn, events <-chan *redis.Message, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-events:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
