package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
)

// QuizData stores a quiz payload as a JSON text column.
type QuizData domain.QuizPayload

// Value implements the driver.Valuer interface
func (d QuizData) Value() (driver.Value, error) {
	data, err := json.Marshal(domain.QuizPayload(d))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface
func (d *QuizData) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		return errors.New("QuizData Scan: full_quiz_data is NULL")
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("QuizData Scan: unsupported type %T", value)
	}

	var payload domain.QuizPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("QuizData Scan: %w", err)
	}
	*d = QuizData(payload)
	return nil
}

// Quiz is a row of the quizzes table. raw_html is part of the schema but is
// never written.
type Quiz struct {
	ID             int64          `db:"id"`
	URL            string         `db:"url"`
	Title          string         `db:"title"`
	DateGenerated  time.Time      `db:"date_generated"`
	ScrapedContent sql.NullString `db:"scraped_content"`
	RawHTML        sql.NullString `db:"raw_html"`
	FullQuizData   QuizData       `db:"full_quiz_data"`
}

// QuizSummary is the projection used by the history listing.
type QuizSummary struct {
	ID            int64     `db:"id"`
	URL           string    `db:"url"`
	Title         string    `db:"title"`
	DateGenerated time.Time `db:"date_generated"`
}
