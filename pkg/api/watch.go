package api

import (
	"github.com/gin-gonic/gin"
)

// watchSnapshot is the first frame sent to a new watcher.
type watchSnapshot struct {
	DebateID  string `json:"debate_id"`
	Status    string `json:"status"`
	TurnCount int    `json:"turn_count"`
}

// handleWatchDebate upgrades the connection and streams turn and status
// events while the debate runs.
func (s *Server) handleWatchDebate(c *gin.Context) {
	id := c.Param("id")

	debate, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		s.handleError(c, err)
		return
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.WithError(err).Warn("failed to upgrade watch connection")
		return
	}
	defer conn.Close()

	events, cancel := s.orchestrator.Watch(id)
	defer cancel()

	if err := conn.WriteJSON(watchSnapshot{
		DebateID:  debate.ID,
		Status:    string(debate.Status),
		TurnCount: len(debate.Turns),
	}); err != nil {
		return
	}

	// Read pump: detect client disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				s.logger.WithError(err).Debug("failed to write watch event")
				return
			}
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
