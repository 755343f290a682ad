package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockCompletionService struct {
	mock.Mock
}

func (m *MockCompletionService) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}

type MockCompletionProvider struct {
	mock.Mock
}

func (m *MockCompletionProvider) Completer(ctx context.Context) (domain.CompletionService, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.CompletionService), args.Error(1)
}

func quizJSON(title string, questions int) string {
	qs := make([]string, questions)
	for i := range qs {
		qs[i] = fmt.Sprintf(`{"question":"Q%d?","options":["A. 1","B. 2","C. 3","D. 4"],"correct_answer":"A. 1","explanation":"because","section":"History","difficulty":"medium"}`, i+1)
	}
	return fmt.Sprintf(`{"title":%q,"summary":"A summary.","questions":[%s],"key_entities":["e1","e2","e3"],"related_topics":["t1","t2","t3"]}`,
		title, strings.Join(qs, ","))
}

func setupGenerator(response string, completeErr error) (*QuizGenerator, *MockCompletionService, *MockCompletionProvider) {
	svc := &MockCompletionService{}
	provider := &MockCompletionProvider{}
	provider.On("Completer", mock.Anything).Return(svc, nil)
	svc.On("Complete", mock.Anything, mock.AnythingOfType("string"), DefaultTemperature).Return(response, completeErr)
	return NewQuizGenerator(provider, 0), svc, provider
}

func TestQuizGenerator_GenerateQuiz_Success(t *testing.T) {
	article := "Go is a statically typed, compiled language designed at Google."
	gen, svc, provider := setupGenerator(quizJSON("Go", 7), nil)

	payload, err := gen.GenerateQuiz(context.Background(), article)
	require.NoError(t, err)

	assert.Equal(t, "Go", payload.Title)
	assert.Len(t, payload.Questions, 7)
	require.NotNil(t, payload.Questions[0].Difficulty)
	assert.Equal(t, domain.DifficultyMedium, *payload.Questions[0].Difficulty)
	require.NotNil(t, payload.Questions[0].Section)
	assert.Equal(t, "History", *payload.Questions[0].Section)
	assert.Equal(t, []string{"e1", "e2", "e3"}, payload.KeyEntities)

	prompt := svc.Calls[0].Arguments.String(1)
	assert.Contains(t, prompt, article)
	svc.AssertNumberOfCalls(t, "Complete", 1)
	provider.AssertExpectations(t)
}

func TestQuizGenerator_GenerateQuiz_FencedResponse(t *testing.T) {
	fenced := "\n```json\n" + quizJSON("Fenced", 8) + "\n```\n"
	gen, _, _ := setupGenerator(fenced, nil)

	payload, err := gen.GenerateQuiz(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "Fenced", payload.Title)
	assert.Len(t, payload.Questions, 8)
}

func TestQuizGenerator_GenerateQuiz_MissingCredential(t *testing.T) {
	provider := &MockCompletionProvider{}
	provider.On("Completer", mock.Anything).Return(nil, domain.NewConfigurationError("GEMINI_API_KEY not found in environment variables"))
	gen := NewQuizGenerator(provider, 0.7)

	_, err := gen.GenerateQuiz(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeGeneration))
	assert.True(t, domain.HasCode(err, domain.CodeConfiguration))
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestQuizGenerator_GenerateQuiz_CompletionFailureIsNotRetried(t *testing.T) {
	gen, svc, _ := setupGenerator("", errors.New("upstream 503"))

	_, err := gen.GenerateQuiz(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeGeneration))
	assert.True(t, domain.HasCode(err, domain.CodeLLMServiceError))
	svc.AssertNumberOfCalls(t, "Complete", 1)
}

func TestQuizGenerator_GenerateQuiz_InvalidJSON(t *testing.T) {
	responses := []string{
		"Sure! Here is your quiz: {",
		"```",
		"```json\n{\"title\": \"x\",\n```",
		"",
		strings.Repeat("not json ", 200),
	}

	for i, response := range responses {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			gen, svc, _ := setupGenerator(response, nil)

			_, err := gen.GenerateQuiz(context.Background(), "text")
			require.Error(t, err)
			assert.True(t, domain.HasCode(err, domain.CodeGeneration))
			assert.True(t, domain.HasCode(err, domain.CodeInvalidJSON))
			assert.False(t, domain.HasCode(err, domain.CodeSchemaValidation))
			svc.AssertNumberOfCalls(t, "Complete", 1)
		})
	}
}

func TestQuizGenerator_GenerateQuiz_SchemaMismatch(t *testing.T) {
	gen, _, _ := setupGenerator(`{"title": "x", "summary": "s", "questions": "none"}`, nil)

	_, err := gen.GenerateQuiz(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeSchemaValidation))
	assert.Contains(t, err.Error(), "questions: expected array")
	assert.Contains(t, err.Error(), "key_entities: field required")
}
