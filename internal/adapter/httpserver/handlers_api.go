package httpserver

import (
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/huella/internal/app"
	"github.com/pscheid92/huella/internal/domain"
	apperrors "github.com/pscheid92/huella/internal/platform/errors"
)

// maxAnalyzeRunes bounds free text sent to the analyzer endpoints.
const maxAnalyzeRunes = 1000

type preSurveyRequest struct {
	Participant domain.Participant   `json:"participant"`
	Answers     domain.SurveyAnswers `json:"answers"`
}

type postSurveyRequest struct {
	Participant domain.Participant   `json:"participant"`
	PreSurvey   domain.SurveyAnswers `json:"preSurvey"`
	PostSurvey  domain.SurveyAnswers `json:"postSurvey"`
}

type huellaRequest struct {
	PreSurvey  domain.SurveyAnswers `json:"preSurvey"`
	PostSurvey domain.SurveyAnswers `json:"postSurvey"`
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type compareRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type submitResponse struct {
	ID        string `json:"id"`
	UserID    any    `json:"userId"`
	QueueSize int    `json:"queue_size"`
}

type queueResponse struct {
	Size  int                `json:"size"`
	Items []domain.QueueItem `json:"items"`
}

func (s *Server) registerAPIRoutes() {
	limit := newRateLimiter(s.config.SubmitRateLimit, submitBurst)

	api := s.echo.Group("/api")
	api.POST("/surveys/pre", s.handleSubmitPreSurvey, limit)
	api.POST("/surveys/post", s.handleSubmitPostSurvey, limit)
	api.POST("/sentiment/analyze", s.handleAnalyze, limit)
	api.POST("/sentiment/compare", s.handleCompare, limit)
	api.POST("/huella", s.handleHuella, limit)

	if s.config.AdminToken == "" {
		slog.Info("ADMIN_TOKEN not set, queue routes disabled")
		return
	}
	queue := api.Group("/queue", newOperatorAuth(s.config.AdminToken))
	queue.GET("", s.handleQueueStatus)
	queue.DELETE("", s.handleClearQueue)
}

func (s *Server) handleSubmitPreSurvey(c echo.Context) error {
	var req preSurveyRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	item, err := s.app.SubmitPreSurvey(c.Request().Context(), req.Participant, req.Answers)
	if err != nil {
		return err
	}
	return s.writeAccepted(c, item)
}

func (s *Server) handleSubmitPostSurvey(c echo.Context) error {
	var req postSurveyRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	item, err := s.app.SubmitPostSurvey(c.Request().Context(), req.Participant, req.PreSurvey, req.PostSurvey)
	if err != nil {
		return err
	}
	return s.writeAccepted(c, item)
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req analyzeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := checkTextLength("text", req.Text); err != nil {
		return err
	}

	result := s.app.Analyze(c.Request().Context(), req.Text)
	if err := c.JSON(http.StatusOK, result); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleCompare(c echo.Context) error {
	var req compareRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := checkTextLength("before", req.Before); err != nil {
		return err
	}
	if err := checkTextLength("after", req.After); err != nil {
		return err
	}

	cmp := s.app.Compare(c.Request().Context(), req.Before, req.After)
	if err := c.JSON(http.StatusOK, cmp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleHuella(c echo.Context) error {
	var req huellaRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := app.ValidateRound(req.PreSurvey, app.RoundPre); err != nil {
		return err
	}
	if err := app.ValidateRound(req.PostSurvey, app.RoundPost); err != nil {
		return err
	}

	h := s.app.BuildHuella(c.Request().Context(), req.PreSurvey, req.PostSurvey)
	if err := c.JSON(http.StatusOK, h); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleQueueStatus(c echo.Context) error {
	items := s.app.QueueItems()
	if items == nil {
		items = []domain.QueueItem{}
	}
	if err := c.JSON(http.StatusOK, queueResponse{Size: len(items), Items: items}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleClearQueue(c echo.Context) error {
	if err := s.app.ClearQueue(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) writeAccepted(c echo.Context, item domain.QueueItem) error {
	resp := submitResponse{
		ID:        item.ID,
		UserID:    item.Payload["userId"],
		QueueSize: s.app.QueueSize(),
	}
	if err := c.JSON(http.StatusAccepted, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func bindJSON(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperrors.ValidationError("invalid request body", err)
	}
	return nil
}

func checkTextLength(field, text string) error {
	if utf8.RuneCountInString(text) > maxAnalyzeRunes {
		return apperrors.ValidationError("text is too long", nil).
			WithField("field", field).
			WithField("max_length", maxAnalyzeRunes)
	}
	return nil
}
