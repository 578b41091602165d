package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aipapergrader/papergrader/internal/client/api"
	"github.com/aipapergrader/papergrader/internal/client/cache"
	"github.com/aipapergrader/papergrader/internal/client/models"
	"github.com/aipapergrader/papergrader/internal/common"
	"github.com/aipapergrader/papergrader/internal/filex"
	"github.com/aipapergrader/papergrader/internal/logging"
)

// maxAttachmentSize caps image uploads buffered into request bodies.
const maxAttachmentSize = 10 << 20

// QuestionService lists and creates questions under a selected test.
type QuestionService interface {
	// List returns the questions of testID. With no test selected
	// (testID == 0) it returns empty without a network call.
	List(ctx context.Context, testID int64) ([]models.Question, error)
	Create(ctx context.Context, testID int64, prompt string, answer models.Answer) (*models.Question, error)
}

type questionService struct {
	client api.Client
	cache  *cache.Store
	log    logging.Logger
}

func NewQuestionService(client api.Client, cacheStore *cache.Store, log logging.Logger) QuestionService {
	return &questionService{client: client, cache: cacheStore, log: log.With("component", "questions")}
}

func (s *questionService) List(ctx context.Context, testID int64) ([]models.Question, error) {
	return cache.Read(ctx, s.cache, cache.QuestionsKey(testID), testID != 0,
		func(ctx context.Context) ([]models.Question, error) {
			return s.client.ListQuestions(ctx, testID)
		})
}

// Create adds a question with its model answer. Invalidation is scoped to
// the selected test's question list; the test list is untouched.
func (s *questionService) Create(ctx context.Context, testID int64, prompt string, answer models.Answer) (*models.Question, error) {
	if testID == 0 {
		return nil, fmt.Errorf("%w: no test selected", common.ErrValidation)
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", common.ErrValidation)
	}
	if !answer.Provided() {
		return nil, fmt.Errorf("%w: a model answer text or image is required", common.ErrValidation)
	}

	attachment, err := loadAttachment(answer)
	if err != nil {
		return nil, err
	}

	created, err := s.client.CreateQuestion(ctx, testID, api.QuestionPayload{
		Prompt:      prompt,
		AnswerText:  answer.Text,
		AnswerImage: attachment,
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.QuestionsKey(testID))
	s.log.Info(ctx, "question created", "test_id", testID, "question_id", created.ID)
	return created, nil
}

// loadAttachment reads the answer's image file, when one was supplied.
func loadAttachment(answer models.Answer) (*api.Attachment, error) {
	if answer.ImagePath == "" {
		return nil, nil
	}
	data, err := filex.ReadLimited(answer.ImagePath, maxAttachmentSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return &api.Attachment{Name: filex.BaseName(answer.ImagePath), Data: data}, nil
}
