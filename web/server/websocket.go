package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// handleJobSocket streams a job's slice updates over a websocket. The latest
// update is sent first, and a "complete" message with the final job state
// ends the stream.
func (s *Server) handleJobSocket(w http.ResponseWriter, r *http.Request) {
	job, ok := s.jobFromRequest(w, r)
	if !ok {
		return
	}

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warningf("upgrade: %v", err)
		return
	}
	defer c.Close()

	updates, unsubscribe := s.hub.Subscribe(job.ID)
	defer unsubscribe()

	// Reading is mandatory to notice when the socket is closed client side
	clientClosed := make(chan struct{})
	go func() {
		defer close(clientClosed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if last := job.Info().Last; last != nil {
		if err := writeMessage(c, Message{Type: "slice", Data: last}); err != nil {
			return
		}
	}

	for {
		select {
		case <-clientClosed:
			logger.Debugf("job %s: watcher left", job.ID)
			return
		case msg, ok := <-updates:
			if !ok {
				// Topic closed: the job has stopped
				<-job.Done()
				info := job.Info()
				info.Last = nil
				if err := writeMessage(c, Message{Type: "complete", Data: info}); err != nil {
					return
				}
				c.SetWriteDeadline(time.Now().Add(writeWait))
				c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			c.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}
}

func writeMessage(c *websocket.Conn, msg Message) error {
	c.SetWriteDeadline(time.Now().Add(writeWait))
	return c.WriteJSON(msg)
}
