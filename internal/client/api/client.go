package api

import (
	"context"

	"github.com/aipapergrader/papergrader/internal/client/models"
)

// Attachment is an image payload sent as a multipart file part. The server
// OCRs it into text; the client never keeps a reference after upload.
type Attachment struct {
	Name string
	Data []byte
}

// QuestionPayload carries one new question. AnswerText and AnswerImage are
// each optional at this layer; callers validate that at least one is present
// before the request is built.
type QuestionPayload struct {
	Prompt      string
	AnswerText  string
	AnswerImage *Attachment
}

// SubmissionPayload carries one student answer to be scored.
type SubmissionPayload struct {
	StudentName string
	AnswerText  string
	AnswerImage *Attachment
}

// Client is the remote grading API. All authenticated calls carry the bearer
// token installed via SetToken.
type Client interface {
	Close() error
	SetToken(token string)
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password string, role models.Role) error
	ListTests(ctx context.Context) ([]models.Test, error)
	CreateTest(ctx context.Context, name, description string) (*models.Test, error)
	ListQuestions(ctx context.Context, testID int64) ([]models.Question, error)
	CreateQuestion(ctx context.Context, testID int64, payload QuestionPayload) (*models.Question, error)
	GradeSubmission(ctx context.Context, questionID int64, payload SubmissionPayload) (*models.ScoreResult, error)
}
