package service

import (
	"context"
	"time"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, url, title string, cleanedContent *string, payload *domain.QuizPayload) (*domain.QuizRecord, error) {
	args := m.Called(ctx, url, title, cleanedContent, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

func (m *MockQuizRepository) ListAll(ctx context.Context) ([]domain.QuizSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizSummary), args.Error(1)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

// --- MockTransactionManager ---
// It runs fn directly and returns its error, like a real transaction would.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// --- MockArticleScraper ---
type MockArticleScraper struct {
	mock.Mock
}

func (m *MockArticleScraper) Scrape(ctx context.Context, url string) (*domain.Article, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

func (m *MockArticleScraper) Preview(ctx context.Context, url string) *domain.URLPreview {
	args := m.Called(ctx, url)
	return args.Get(0).(*domain.URLPreview)
}

// --- MockQuizGenerator ---
type MockQuizGenerator struct {
	mock.Mock
}

func (m *MockQuizGenerator) GenerateQuiz(ctx context.Context, articleText string) (*domain.QuizPayload, error) {
	args := m.Called(ctx, articleText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizPayload), args.Error(1)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockQuizRecordCache ---
type MockQuizRecordCache struct {
	mock.Mock
}

func (m *MockQuizRecordCache) GetByID(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

func (m *MockQuizRecordCache) Put(ctx context.Context, record *domain.QuizRecord) {
	m.Called(ctx, record)
}
