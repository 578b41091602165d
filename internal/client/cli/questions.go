package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/aipapergrader/papergrader/internal/client/models"
)

// Questions lists the questions of the selected test. Without a selection
// the listing is disabled rather than attempted against an unknown test.
func (a *App) Questions(ctx context.Context) error {
	if !a.ensureLoggedIn() {
		return nil
	}
	if a.selectedTest == 0 {
		printlnFn("Select a test first: use <test-id>")
		return nil
	}

	questions, err := a.questions.List(ctx, a.selectedTest)
	if err != nil {
		return a.fail(ctx, err)
	}

	if len(questions) == 0 {
		printlnFn("No questions yet")
		return nil
	}
	for _, q := range questions {
		printlnFn(fmt.Sprintf("[%d] %s", q.ID, q.Prompt))
	}
	return nil
}

// AddQuestion prompts for a question and its model answer and attaches both
// to the selected test. The model answer may be literal text, an image file
// to be OCRed server-side, or both. Teacher only.
func (a *App) AddQuestion(ctx context.Context) error {
	if !a.ensure(models.RoleTeacher) {
		return nil
	}
	if a.selectedTest == 0 {
		printlnFn("Select a test first: use <test-id>")
		return nil
	}

	prompt, err := getMultiline(a.reader, "Enter question text", os.Stdout)
	if err != nil {
		return err
	}
	answer, err := a.promptAnswer()
	if err != nil {
		return err
	}

	q, err := a.questions.Create(ctx, a.selectedTest, prompt, answer)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("Added question [%d]", q.ID))
	return nil
}

// promptAnswer collects one answer in either or both of its representations.
// Validation of "at least one" happens in the service layer.
func (a *App) promptAnswer() (models.Answer, error) {
	text, err := getMultiline(a.reader, "Enter answer text (leave empty to submit an image instead)", os.Stdout)
	if err != nil {
		return models.Answer{}, err
	}
	imagePath, err := getSimpleText(a.reader, "Enter answer image path (optional)", os.Stdout)
	if err != nil {
		return models.Answer{}, err
	}
	return models.Answer{Text: text, ImagePath: imagePath}, nil
}
