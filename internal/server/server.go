// Package server exposes the grader over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mgomes/codesim/grading"
)

const requestIDHeader = "X-Request-Id"

// maxBatch caps the submissions accepted by one batch request.
const maxBatch = 64

type Server struct {
	grader *grading.Grader
	logger *zap.Logger
	engine *gin.Engine
}

func New(grader *grading.Grader, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		grader: grader,
		logger: logger.Named("server"),
		engine: gin.New(),
	}
	s.engine.Use(gin.Recovery(), s.requestLogger())
	s.engine.GET("/healthz", s.health)
	s.engine.POST("/v1/submissions", s.submit)
	s.engine.POST("/v1/submissions/batch", s.submitBatch)
	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// SubmissionRequest is the payload of POST /v1/submissions.
type SubmissionRequest struct {
	ID             string   `json:"id"`
	TaskID         string   `json:"task_id"`
	Language       string   `json:"language" binding:"required"`
	Source         string   `json:"source" binding:"required"`
	ExpectedOutput string   `json:"expected_output"`
	Inputs         []string `json:"inputs"`
}

type BatchRequest struct {
	Submissions []SubmissionRequest `json:"submissions" binding:"required,min=1,dive"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (r SubmissionRequest) submission() (grading.Submission, error) {
	lang, err := grading.ParseLanguage(r.Language)
	if err != nil {
		return grading.Submission{}, err
	}
	return grading.Submission{
		ID:       strings.TrimSpace(r.ID),
		TaskID:   r.TaskID,
		Language: lang,
		Source:   r.Source,
		Expected: r.ExpectedOutput,
		Inputs:   r.Inputs,
	}, nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) submit(c *gin.Context) {
	var req SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request parameters"})
		return
	}
	sub, err := req.submission()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	result, err := s.grader.Grade(c.Request.Context(), sub)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) submitBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request parameters"})
		return
	}
	if len(req.Submissions) > maxBatch {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "too many submissions in one batch"})
		return
	}
	subs := make([]grading.Submission, 0, len(req.Submissions))
	for _, item := range req.Submissions {
		sub, err := item.submission()
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		subs = append(subs, sub)
	}
	results, err := s.grader.GradeAll(c.Request.Context(), subs)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, grading.ErrUnsupportedLanguage) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.logger.Error("grading failed", zap.String("request_id", c.GetString("request_id")), zap.Error(err))
	c.JSON(http.StatusInternalServerError, errorResponse{Error: "grading failed"})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		c.Next()
		s.logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
