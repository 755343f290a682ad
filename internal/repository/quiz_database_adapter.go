package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

const (
	insertQuizQuery = `INSERT INTO quizzes (url, title, date_generated, scraped_content, full_quiz_data)
	VALUES (?, ?, ?, ?, ?)
	RETURNING id`

	listQuizzesQuery = `SELECT id, url, title, date_generated
	FROM quizzes
	ORDER BY date_generated DESC, id DESC`

	getQuizByIDQuery = `SELECT id, url, title, date_generated, scraped_content, raw_html, full_quiz_data
	FROM quizzes
	WHERE id = ?`
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

// Create implements domain.QuizRepository
func (a *QuizDatabaseAdapter) Create(ctx context.Context, url, title string, cleanedContent *string, payload *domain.QuizPayload) (*domain.QuizRecord, error) {
	if payload == nil {
		return nil, fmt.Errorf("cannot save nil quiz payload")
	}

	row := models.Quiz{
		URL:            url,
		Title:          title,
		DateGenerated:  time.Now().UTC().Truncate(time.Microsecond),
		ScrapedContent: toNullString(cleanedContent),
		FullQuizData:   models.QuizData(*payload),
	}

	err := GetExecutor(ctx, a.db).GetContext(ctx, &row.ID, a.db.Rebind(insertQuizQuery),
		row.URL,
		row.Title,
		row.DateGenerated,
		row.ScrapedContent,
		row.FullQuizData,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save quiz: %w", err)
	}
	return toDomainQuizRecord(&row), nil
}

// ListAll implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ListAll(ctx context.Context) ([]domain.QuizSummary, error) {
	var rows []models.QuizSummary
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, listQuizzesQuery); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	summaries := make([]domain.QuizSummary, 0, len(rows))
	for _, r := range rows {
		summaries = append(summaries, domain.QuizSummary{
			ID:        r.ID,
			URL:       r.URL,
			Title:     r.Title,
			CreatedAt: r.DateGenerated.UTC(),
		})
	}
	return summaries, nil
}

// GetByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetByID(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	var row models.Quiz
	err := GetExecutor(ctx, a.db).GetContext(ctx, &row, a.db.Rebind(getQuizByIDQuery), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewQuizNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to get quiz by ID %d: %w", id, err)
	}
	return toDomainQuizRecord(&row), nil
}

func toDomainQuizRecord(m *models.Quiz) *domain.QuizRecord {
	if m == nil {
		return nil
	}
	record := &domain.QuizRecord{
		ID:        m.ID,
		URL:       m.URL,
		Title:     m.Title,
		CreatedAt: m.DateGenerated.UTC(),
		Payload:   domain.QuizPayload(m.FullQuizData),
	}
	if m.ScrapedContent.Valid {
		content := m.ScrapedContent.String
		record.CleanedContent = &content
	}
	return record
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
