package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Grade scores a student answer against a question's model answer. The
// result is shown once and never stored: re-grading the same answer always
// goes back to the server.
func (a *App) Grade(ctx context.Context) error {
	if !a.ensureLoggedIn() {
		return nil
	}

	idText, err := getSimpleText(a.reader, "Enter question id", os.Stdout)
	if err != nil {
		return err
	}
	questionID, err := strconv.ParseInt(idText, 10, 64)
	if err != nil || questionID <= 0 {
		printlnFn("Question id must be a positive number")
		return err
	}

	studentName, err := getSimpleText(a.reader, "Enter student name", os.Stdout)
	if err != nil {
		return err
	}
	answer, err := a.promptAnswer()
	if err != nil {
		return err
	}

	result, err := a.grading.Grade(ctx, questionID, studentName, answer)
	if err != nil {
		return a.fail(ctx, err)
	}

	printlnFn(fmt.Sprintf("Similarity: %.4f", result.SimilarityScore))
	printlnFn(fmt.Sprintf("Score: %.1f / 100", result.NormalizedScore))
	printlnFn("Model answer: " + result.ModelAnswer)
	printlnFn("Student answer: " + result.StudentAnswer)
	return nil
}
