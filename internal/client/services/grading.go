package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aipapergrader/papergrader/internal/client/api"
	"github.com/aipapergrader/papergrader/internal/client/models"
	"github.com/aipapergrader/papergrader/internal/common"
	"github.com/aipapergrader/papergrader/internal/logging"
)

// GradingService scores a student answer against a question's model answer.
// Results are transient: they are handed to the caller and never cached.
type GradingService interface {
	Grade(ctx context.Context, questionID int64, studentName string, answer models.Answer) (*models.ScoreResult, error)
}

type gradingService struct {
	client api.Client
	log    logging.Logger
}

func NewGradingService(client api.Client, log logging.Logger) GradingService {
	return &gradingService{client: client, log: log.With("component", "grading")}
}

func (s *gradingService) Grade(ctx context.Context, questionID int64, studentName string, answer models.Answer) (*models.ScoreResult, error) {
	if questionID == 0 {
		return nil, fmt.Errorf("%w: no question selected", common.ErrValidation)
	}
	if strings.TrimSpace(studentName) == "" {
		return nil, fmt.Errorf("%w: student name is required", common.ErrValidation)
	}
	if !answer.Provided() {
		return nil, fmt.Errorf("%w: a student answer text or image is required", common.ErrValidation)
	}

	attachment, err := loadAttachment(answer)
	if err != nil {
		return nil, err
	}

	result, err := s.client.GradeSubmission(ctx, questionID, api.SubmissionPayload{
		StudentName: studentName,
		AnswerText:  answer.Text,
		AnswerImage: attachment,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "submission graded", "question_id", questionID,
		"student", studentName, "normalized_score", result.NormalizedScore)
	return result, nil
}
