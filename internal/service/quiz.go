package service

import (
	"context"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, url string) (*dto.QuizResponse, error)
	GetHistory(ctx context.Context) ([]dto.QuizHistoryResponse, error)
	GetQuiz(ctx context.Context, id int64) (*dto.QuizResponse, error)
	PreviewURL(ctx context.Context, url string) *dto.PreviewResponse
}

// quizService implements QuizService
type quizService struct {
	scraper   domain.ArticleScraper
	generator domain.QuizGenerator
	repo      domain.QuizRepository
	txManager domain.TransactionManager
	records   QuizRecordCache
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	scraper domain.ArticleScraper,
	generator domain.QuizGenerator,
	repo domain.QuizRepository,
	txManager domain.TransactionManager,
	records QuizRecordCache,
) QuizService {
	return &quizService{
		scraper:   scraper,
		generator: generator,
		repo:      repo,
		txManager: txManager,
		records:   records,
	}
}

// GenerateQuiz runs scrape, generate and persist in order. Nothing is stored
// unless the earlier stages succeed.
func (s *quizService) GenerateQuiz(ctx context.Context, url string) (*dto.QuizResponse, error) {
	l := logger.Get().With(zap.String("url", url))
	start := time.Now()

	l.Info("Scraping article")
	article, err := s.scraper.Scrape(ctx, url)
	if err != nil {
		l.Warn("Scraping failed", zap.Error(err))
		return nil, domain.NewInternalError("Failed to generate quiz", err)
	}

	l.Info("Generating quiz", zap.String("title", article.Title), zap.Int("content_length", len(article.Content)))
	payload, err := s.generator.GenerateQuiz(ctx, article.Content)
	if err != nil {
		l.Warn("Quiz generation failed", zap.Error(err))
		return nil, domain.NewInternalError("Failed to generate quiz", err)
	}

	var record *domain.QuizRecord
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		content := article.Content
		created, err := s.repo.Create(txCtx, url, article.Title, &content, payload)
		if err != nil {
			return err
		}
		record = created
		return nil
	})
	if err != nil {
		l.Error("Failed to save quiz", zap.Error(err))
		return nil, domain.NewInternalError("Failed to generate quiz", err)
	}

	s.records.Put(ctx, record)
	l.Info("Quiz saved", zap.Int64("quiz_id", record.ID), zap.Duration("duration", time.Since(start)))
	return dto.NewQuizResponse(record), nil
}

// GetHistory lists every stored quiz, newest first.
func (s *quizService) GetHistory(ctx context.Context) ([]dto.QuizHistoryResponse, error) {
	summaries, err := s.repo.ListAll(ctx)
	if err != nil {
		logger.Get().Error("Failed to list quizzes", zap.Error(err))
		return nil, domain.NewInternalError("Failed to fetch history", err)
	}
	return dto.NewQuizHistoryResponse(summaries), nil
}

// GetQuiz returns a stored quiz. A missing id is returned as NOT_FOUND unchanged.
func (s *quizService) GetQuiz(ctx context.Context, id int64) (*dto.QuizResponse, error) {
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		if domain.HasCode(err, domain.CodeNotFound) {
			return nil, err
		}
		logger.Get().Error("Failed to load quiz", zap.Int64("quiz_id", id), zap.Error(err))
		return nil, domain.NewInternalError("Failed to fetch quiz details", err)
	}
	return dto.NewQuizResponse(record), nil
}

func (s *quizService) PreviewURL(ctx context.Context, url string) *dto.PreviewResponse {
	return dto.NewPreviewResponse(s.scraper.Preview(ctx, url))
}
