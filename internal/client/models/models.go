// Package models defines the domain types exchanged with the grading service.
package models

import (
	"errors"
	"fmt"
	"time"
)

// Role classifies an authenticated user.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole validates a raw role string coming from a token claim or
// persisted storage.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleTeacher:
		return RoleTeacher, nil
	case RoleStudent:
		return RoleStudent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Session is the authenticated identity held by the client. It is either
// fully populated or absent (nil); no partial state exists.
type Session struct {
	Token string
	Role  Role
	Email string
}

// Test is a teacher-owned test. Created and listed, never mutated in place.
type Test struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Question belongs to exactly one Test. Whether it originated from text or
// from a server-side OCR run, the client only ever holds the resulting text.
type Question struct {
	ID              int64     `json:"id"`
	Prompt          string    `json:"prompt"`
	ModelAnswerText string    `json:"model_answer_text"`
	CreatedAt       time.Time `json:"created_at"`
}

// ScoreResult is the transient output of one grading request. It is never
// persisted or cached by the client.
type ScoreResult struct {
	SimilarityScore float64 `json:"similarity_score"`
	NormalizedScore float64 `json:"normalized_score"`
	ModelAnswer     string  `json:"model_answer"`
	StudentAnswer   string  `json:"student_answer"`
}

// Answer is one answer representation supplied by the user: literal text,
// an image file to be OCRed server-side, or both. The server resolves
// precedence when both are present.
type Answer struct {
	Text      string
	ImagePath string
}

// Provided reports whether at least one representation was supplied.
// An empty Answer is a client-side validation failure, never sent over
// the wire.
func (a Answer) Provided() bool {
	return a.Text != "" || a.ImagePath != ""
}
