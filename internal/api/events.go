package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/idkspot/idkspot-go/internal/services/pubsub"
)

const (
	// eventBuffer bounds each per-client topic queue; slow clients
	// drop messages rather than stall the controller.
	eventBuffer = 16
	// pingInterval keeps idle connections alive through proxies.
	pingInterval = 10 * time.Second
	// writeWait is the deadline for a single frame write.
	writeWait = 10 * time.Second
)

// Event is the envelope written to WebSocket clients.
type Event struct {
	Topic   pubsub.Topic `json:"topic"`
	Payload interface{}  `json:"payload"`
}

// handleEvents upgrades the connection to a WebSocket and streams
// session, device, interface and helper-output events until the
// client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Warn("WebSocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	sessionSub := s.events.Subscribe(pubsub.TopicSessionState, "", eventBuffer)
	defer s.events.Unsubscribe(sessionSub)
	deviceSub := s.events.Subscribe(pubsub.TopicDevices, "", eventBuffer)
	defer s.events.Unsubscribe(deviceSub)
	ifaceSub := s.events.Subscribe(pubsub.TopicInterfaces, "", eventBuffer)
	defer s.events.Unsubscribe(ifaceSub)
	outputSub := s.events.Subscribe(pubsub.TopicHelperOutput, "", eventBuffer)
	defer s.events.Unsubscribe(outputSub)

	// Clients never send application data; the read loop only notices
	// disconnects and pong frames.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		var (
			topic pubsub.Topic
			msg   interface{}
			ok    bool
		)
		select {
		case <-done:
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			continue
		case msg, ok = <-sessionSub.Channel:
			topic = pubsub.TopicSessionState
		case msg, ok = <-deviceSub.Channel:
			topic = pubsub.TopicDevices
		case msg, ok = <-ifaceSub.Channel:
			topic = pubsub.TopicInterfaces
		case msg, ok = <-outputSub.Channel:
			topic = pubsub.TopicHelperOutput
		}
		if !ok {
			return
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(Event{Topic: topic, Payload: msg}); err != nil {
			return
		}
	}
}
