package stream

import (
	"log/slog"
	"net/http"
	"time"

	"studyPlanner/internal/lib/api/request"
	"studyPlanner/internal/lib/api/response"
	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/realtime"

	"github.com/go-chi/render"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// CloseResync tells a client its stream was cut because it fell behind. The
// client reloads the snapshot and subscribes again.
const CloseResync = websocket.CloseTryAgainLater

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Subscriber interface {
	Subscribe(eventID int64) *realtime.Subscription
}

// New streams the vote deltas of one pending event as JSON text frames.
// Nothing is read from the client except control frames.
func New(log *slog.Logger, hub Subscriber) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.realtime.stream.New"

		log := log.With(slog.String("op", op))

		eventID, err := request.ID(r, "id", "event id")
		if err != nil {
			log.Error("bad event id", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(err.Error()))
			return
		}

		log = log.With(slog.Int64("event_id", eventID))

		// subscribe before the handshake: a client that reads a snapshot
		// right after the 101 must not miss deltas published meanwhile
		sub := hub.Subscribe(eventID)
		defer sub.Close()

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("failed to upgrade connection", sl.Err(err))
			return
		}
		defer conn.Close()

		log.Info("stream opened")

		done := make(chan struct{})
		go readPump(conn, done)

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				log.Info("stream closed by client")
				return
			case d, ok := <-sub.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if !ok {
					log.Warn("subscriber fell behind, closing stream")
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(CloseResync, "resync required"))
					return
				}
				if err = conn.WriteJSON(d); err != nil {
					log.Error("failed to write delta", sl.Err(err))
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err = conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}

// readPump drains control frames and reports when the client goes away.
func readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
