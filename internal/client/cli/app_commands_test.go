package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/aipapergrader/papergrader/internal/client/api"
	"github.com/aipapergrader/papergrader/internal/client/models"
	"github.com/aipapergrader/papergrader/internal/client/routes"
	"github.com/aipapergrader/papergrader/internal/client/session"
	"github.com/aipapergrader/papergrader/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- fakes ----

type fakeAPI struct {
	loginTok string
	loginErr error

	registerErr  error
	registerRole models.Role
}

func (f *fakeAPI) Close() error          { return nil }
func (f *fakeAPI) SetToken(token string) {}
func (f *fakeAPI) Login(ctx context.Context, email, password string) (string, error) {
	return f.loginTok, f.loginErr
}
func (f *fakeAPI) Register(ctx context.Context, email, password string, role models.Role) error {
	f.registerRole = role
	return f.registerErr
}
func (f *fakeAPI) ListTests(ctx context.Context) ([]models.Test, error) { return nil, nil }
func (f *fakeAPI) CreateTest(ctx context.Context, name, description string) (*models.Test, error) {
	return nil, nil
}
func (f *fakeAPI) ListQuestions(ctx context.Context, testID int64) ([]models.Question, error) {
	return nil, nil
}
func (f *fakeAPI) CreateQuestion(ctx context.Context, testID int64, payload api.QuestionPayload) (*models.Question, error) {
	return nil, nil
}
func (f *fakeAPI) GradeSubmission(ctx context.Context, questionID int64, payload api.SubmissionPayload) (*models.ScoreResult, error) {
	return nil, nil
}

type fakeTestSvc struct {
	tests   []models.Test
	listErr error

	createdName string
	createdDesc string
	createErr   error
}

func (f *fakeTestSvc) List(ctx context.Context) ([]models.Test, error) {
	return f.tests, f.listErr
}
func (f *fakeTestSvc) Create(ctx context.Context, name, description string) (*models.Test, error) {
	f.createdName, f.createdDesc = name, description
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Test{ID: 1, Name: name, Description: description}, nil
}

type fakeQuestionSvc struct {
	listedTestID int64
	questions    []models.Question
	listErr      error

	createdTestID int64
	createdPrompt string
	createdAnswer models.Answer
}

func (f *fakeQuestionSvc) List(ctx context.Context, testID int64) ([]models.Question, error) {
	f.listedTestID = testID
	return f.questions, f.listErr
}
func (f *fakeQuestionSvc) Create(ctx context.Context, testID int64, prompt string, answer models.Answer) (*models.Question, error) {
	f.createdTestID, f.createdPrompt, f.createdAnswer = testID, prompt, answer
	return &models.Question{ID: 5, Prompt: prompt}, nil
}

type fakeGradingSvc struct {
	questionID  int64
	studentName string
	answer      models.Answer
	result      *models.ScoreResult
	err         error
}

func (f *fakeGradingSvc) Grade(ctx context.Context, questionID int64, studentName string, answer models.Answer) (*models.ScoreResult, error) {
	f.questionID, f.studentName, f.answer = questionID, studentName, answer
	return f.result, f.err
}

// ---- helpers ----

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:cli"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session_state (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func signToken(t *testing.T, role models.Role) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "user@example.org",
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func silencePrints(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func stubInputs(t *testing.T, texts []string, password []byte) {
	t.Helper()
	origST, origGP, origML := getSimpleText, getPassword, getMultiline
	i := 0
	next := func() string {
		if i >= len(texts) {
			return ""
		}
		v := texts[i]
		i++
		return v
	}
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return next(), nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
		getMultiline = origML
	})
}

// newTestApp builds an App with fake services and, unless role is empty,
// a live session obtained through a real session store.
func newTestApp(t *testing.T, role models.Role) (*App, *fakeTestSvc, *fakeQuestionSvc, *fakeGradingSvc) {
	t.Helper()
	silencePrints(t)

	db := setupDB(t)
	client := &fakeAPI{}
	store := session.NewStore(client, db, logging.NewDefault())

	if role != "" {
		client.loginTok = signToken(t, role)
		_, err := store.Login(context.Background(), "user@example.org", "pw")
		require.NoError(t, err)
	}

	tests := &fakeTestSvc{}
	questions := &fakeQuestionSvc{}
	grading := &fakeGradingSvc{}

	a := &App{
		log:       logging.NewDefault(),
		apiClient: client,
		sessions:  store,
		tests:     tests,
		questions: questions,
		grading:   grading,
		reader:    bufio.NewReader(strings.NewReader("")),
		view:      routes.ViewLogin,
	}
	a.navigate()
	return a, tests, questions, grading
}

// ---- command tests ----

func TestNewTest_TeacherCreates(t *testing.T) {
	a, tests, _, _ := newTestApp(t, models.RoleTeacher)
	stubInputs(t, []string{"Midterm", "Closed book"}, nil)

	require.NoError(t, a.NewTest(context.Background()))
	require.Equal(t, "Midterm", tests.createdName)
	require.Equal(t, "Closed book", tests.createdDesc)
}

func TestNewTest_StudentBlocked(t *testing.T) {
	a, tests, _, _ := newTestApp(t, models.RoleStudent)

	require.NoError(t, a.NewTest(context.Background()))
	require.Empty(t, tests.createdName)
	require.Equal(t, routes.ViewLogin, a.view)
}

func TestTests_RequiresLogin(t *testing.T) {
	a, tests, _, _ := newTestApp(t, "")
	tests.listErr = api.ErrUnavailable

	require.NoError(t, a.Tests(context.Background()))
	require.Equal(t, routes.ViewLogin, a.view)
}

func TestTests_ListsForStudent(t *testing.T) {
	a, tests, _, _ := newTestApp(t, models.RoleStudent)
	tests.tests = []models.Test{{ID: 3, Name: "Final"}}

	require.NoError(t, a.Tests(context.Background()))
	require.Equal(t, routes.ViewStudent, a.view)
}

func TestSelectTest_ParsesID(t *testing.T) {
	a, _, _, _ := newTestApp(t, models.RoleStudent)

	require.NoError(t, a.SelectTest(context.Background(), []string{"42"}))
	require.Equal(t, int64(42), a.selectedTest)
}

func TestSelectTest_RejectsGarbage(t *testing.T) {
	a, _, _, _ := newTestApp(t, models.RoleStudent)

	err := a.SelectTest(context.Background(), []string{"xyz"})
	require.Error(t, err)
	require.Zero(t, a.selectedTest)
}

func TestQuestions_NeedSelection(t *testing.T) {
	a, _, questions, _ := newTestApp(t, models.RoleStudent)

	require.NoError(t, a.Questions(context.Background()))
	require.Zero(t, questions.listedTestID)
}

func TestQuestions_ListsSelectedTest(t *testing.T) {
	a, _, questions, _ := newTestApp(t, models.RoleStudent)
	a.selectedTest = 9
	questions.questions = []models.Question{{ID: 1, Prompt: "Define entropy"}}

	require.NoError(t, a.Questions(context.Background()))
	require.Equal(t, int64(9), questions.listedTestID)
}

func TestAddQuestion_TeacherOnly(t *testing.T) {
	a, _, questions, _ := newTestApp(t, models.RoleStudent)
	a.selectedTest = 9

	require.NoError(t, a.AddQuestion(context.Background()))
	require.Zero(t, questions.createdTestID)
}

func TestAddQuestion_CreatesOnSelectedTest(t *testing.T) {
	a, _, questions, _ := newTestApp(t, models.RoleTeacher)
	a.selectedTest = 9
	stubInputs(t, []string{"Define entropy", "Expected degree of disorder", ""}, nil)

	require.NoError(t, a.AddQuestion(context.Background()))
	require.Equal(t, int64(9), questions.createdTestID)
	require.Equal(t, "Define entropy", questions.createdPrompt)
	require.Equal(t, "Expected degree of disorder", questions.createdAnswer.Text)
}

func TestGrade_FullFlow(t *testing.T) {
	a, _, _, grading := newTestApp(t, models.RoleStudent)
	grading.result = &models.ScoreResult{
		SimilarityScore: 0.87,
		NormalizedScore: 87,
		ModelAnswer:     "model",
		StudentAnswer:   "student",
	}
	stubInputs(t, []string{"5", "Ana", "my answer", ""}, nil)

	require.NoError(t, a.Grade(context.Background()))
	require.Equal(t, int64(5), grading.questionID)
	require.Equal(t, "Ana", grading.studentName)
	require.Equal(t, "my answer", grading.answer.Text)
}

func TestFail_UnauthorizedInvalidatesSession(t *testing.T) {
	a, _, _, _ := newTestApp(t, models.RoleTeacher)
	a.selectedTest = 4

	err := a.fail(context.Background(), api.ErrUnauthorized)
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.Nil(t, a.sessions.Current())
	require.Zero(t, a.selectedTest)
	require.Equal(t, routes.ViewLogin, a.view)
}

func TestLogout_ClearsSelection(t *testing.T) {
	a, _, _, _ := newTestApp(t, models.RoleTeacher)
	a.selectedTest = 4

	require.NoError(t, a.Logout(context.Background()))
	require.Nil(t, a.sessions.Current())
	require.Zero(t, a.selectedTest)
	require.Equal(t, routes.ViewLogin, a.view)
}

func TestWhoAmI_PrintsIdentity(t *testing.T) {
	a, _, _, _ := newTestApp(t, models.RoleTeacher)

	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) (int, error) {
		for _, arg := range args {
			if s, ok := arg.(string); ok {
				lines = append(lines, s)
			}
		}
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })

	require.NoError(t, a.WhoAmI(context.Background()))
	require.Contains(t, strings.Join(lines, "\n"), "user@example.org")
}
