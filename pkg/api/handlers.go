package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/parley-ai/parley/pkg/llm"
)

// CreateDebateRequest is the body of POST /debate/create.
type CreateDebateRequest struct {
	Proposition  string `json:"proposition" binding:"required"`
	ForModel     string `json:"for_model" binding:"required"`
	AgainstModel string `json:"against_model" binding:"required"`
}

// AdjudicateRequest is the body of POST /debate/:id/adjudicate.
type AdjudicateRequest struct {
	JudgeModel string `json:"judge_model" binding:"required"`
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Parley Debate API",
		"endpoints": gin.H{
			"debate":  "/debate",
			"rag":     "/rag",
			"mcp":     "/mcp",
			"metrics": "/metrics",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleCreateDebate(c *gin.Context) {
	var req CreateDebateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"kind": "invalid_request", "message": err.Error()},
		})
		return
	}

	debate, err := s.orchestrator.Create(c.Request.Context(), req.Proposition, req.ForModel, req.AgainstModel)
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.metrics.debatesCreated.Inc()
	c.JSON(http.StatusCreated, debate)
}

func (s *Server) handleGetDebate(c *gin.Context) {
	debate, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, debate)
}

func (s *Server) handleListDebates(c *gin.Context) {
	debates, err := s.store.List(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, debates)
}

func (s *Server) handleStartDebate(c *gin.Context) {
	id := c.Param("id")

	before := 0
	if existing, err := s.store.Get(c.Request.Context(), id); err == nil {
		before = len(existing.Turns)
	}

	debate, err := s.orchestrator.Run(c.Request.Context(), id)
	if err != nil {
		s.metrics.debateRuns.WithLabelValues("failed").Inc()
		s.handleError(c, err)
		return
	}

	s.metrics.turnsGenerated.Add(float64(len(debate.Turns) - before))
	s.metrics.debateRuns.WithLabelValues("completed").Inc()
	c.JSON(http.StatusOK, debate)
}

func (s *Server) handleAdjudicateDebate(c *gin.Context) {
	var req AdjudicateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"kind": "invalid_request", "message": err.Error()},
		})
		return
	}

	verdict, err := s.adjudicator.Adjudicate(c.Request.Context(), c.Param("id"), req.JudgeModel)
	if err != nil {
		s.handleError(c, err)
		return
	}

	s.metrics.adjudications.WithLabelValues(verdict.Winner).Inc()
	c.JSON(http.StatusOK, verdict)
}

func (s *Server) handleDeleteDebate(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleAvailableModels(c *gin.Context) {
	c.JSON(http.StatusOK, llm.AvailableModels())
}
