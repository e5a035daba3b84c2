// Package gin provides the HTTP server side of the abbreviation service:
// the version check, the binary dictionary payload, and the SSE
// explanation stream.
package gin

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shigekazukoya/abbr"
	"github.com/shigekazukoya/abbr/protobuf"
)

// Server serves the three-endpoint abbreviation service contract.
type Server struct {
	engine    *gin.Engine
	record    *abbr.CacheRecord
	generator abbr.ExplanationGenerator
	logger    *slog.Logger
}

// NewServer creates a Server for a seed record and an explanation
// generator. A nil logger defaults to slog.Default().
func NewServer(record *abbr.CacheRecord, generator abbr.ExplanationGenerator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:    engine,
		record:    record,
		generator: generator,
		logger:    logger,
	}

	// The original service was consumed from a browser on another origin.
	engine.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	engine.GET("/check-version", s.handleCheckVersion)
	engine.GET("/get-data", s.handleGetData)
	engine.POST("/get-abbreviation-details", s.handleDetails)

	return s
}

// Handler returns the underlying HTTP handler, for serving and for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// handleCheckVersion reports whether the client's dictionary is stale.
// A malformed or missing current version is treated as 0.
func (s *Server) handleCheckVersion(c *gin.Context) {
	current, err := strconv.ParseInt(c.DefaultQuery("current", "0"), 10, 64)
	if err != nil || current < 0 {
		current = 0
	}

	c.JSON(http.StatusOK, abbr.VersionInfo{
		NeedsUpdate:   current < s.record.Version,
		LatestVersion: s.record.Version,
	})
}

// handleGetData returns the dictionary encoded in its binary wire format.
func (s *Server) handleGetData(c *gin.Context) {
	c.Data(http.StatusOK, "application/x-protobuf", protobuf.MarshalDictionary(s.record.Abbreviations))
}

// handleDetails streams a generated explanation as SSE data frames.
func (s *Server) handleDetails(c *gin.Context) {
	var req struct {
		Meaning      string `json:"meaning"`
		Abbreviation string `json:"abbreviation"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Meaning == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meaning required"})
		return
	}

	requestID := uuid.New().String()
	s.logger.Info("explanation requested",
		"request_id", requestID,
		"abbreviation", req.Abbreviation,
	)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	err := s.generator.GenerateExplanation(c.Request.Context(), req.Abbreviation, req.Meaning, func(text string) error {
		return s.writeEvent(c, abbr.StreamEvent{Text: text})
	})
	if err != nil {
		if c.Request.Context().Err() != nil {
			// Client went away; nothing left to write.
			s.logger.Info("explanation canceled", "request_id", requestID)
			return
		}
		s.logger.Warn("explanation failed", "request_id", requestID, "err", err)
		_ = s.writeEvent(c, abbr.StreamEvent{Error: "Explanation could not be generated."})
		return
	}

	_ = s.writeEvent(c, abbr.StreamEvent{Done: true})
}

// writeEvent writes a single SSE data frame and flushes it to the client.
func (s *Server) writeEvent(c *gin.Context, event abbr.StreamEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
		return err
	}
	c.Writer.Flush()
	return nil
}
