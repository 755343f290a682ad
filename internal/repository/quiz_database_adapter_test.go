package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"wiki-quiz/internal/database"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupQuizTestDB creates a new sqlx.DB instance and sqlmock for quiz repository testing.
func setupQuizTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

// setupSQLiteDB opens a migrated SQLite file in a temp dir.
func setupSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Open(context.Background(), "sqlite:///"+filepath.Join(t.TempDir(), "quiz_history.db"))
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func samplePayload(title string) *domain.QuizPayload {
	section := "Early life"
	difficulty := domain.DifficultyEasy
	return &domain.QuizPayload{
		Title:   title,
		Summary: "A short summary.",
		Questions: []domain.Question{
			{
				Question:      "Where was she born?",
				Options:       []string{"A. London", "B. Paris", "C. Rome", "D. Oslo"},
				CorrectAnswer: "A. London",
				Explanation:   "Stated in the first paragraph.",
				Section:       &section,
				Difficulty:    &difficulty,
			},
			{
				Question:      "What did she write?",
				Options:       []string{"A. Notes", "B. Poems", "C. Plays", "D. Songs"},
				CorrectAnswer: "A. Notes",
				Explanation:   "Her notes on the engine.",
			},
		},
		KeyEntities:   []string{"Ada Lovelace", "Charles Babbage", "Analytical Engine"},
		RelatedTopics: []string{"Computing", "Mathematics", "Victorian era"},
	}
}

func TestQuizData_ValueAndScan(t *testing.T) {
	payload := samplePayload("Ada")

	value, err := models.QuizData(*payload).Value()
	require.NoError(t, err)
	raw, ok := value.(string)
	require.True(t, ok)
	assert.Contains(t, raw, `"key_entities":["Ada Lovelace"`)
	assert.Contains(t, raw, `"section":null`)

	var fromString models.QuizData
	require.NoError(t, fromString.Scan(raw))
	assert.Equal(t, *payload, domain.QuizPayload(fromString))

	var fromBytes models.QuizData
	require.NoError(t, fromBytes.Scan([]byte(raw)))
	assert.Equal(t, *payload, domain.QuizPayload(fromBytes))

	var bad models.QuizData
	assert.Error(t, bad.Scan(nil))
	assert.Error(t, bad.Scan(42))
	assert.Error(t, bad.Scan("{not json"))
}

func TestQuizDatabaseAdapter_Create(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewQuizDatabaseAdapter(db)
	payload := samplePayload("Ada")
	content := "cleaned text"

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO quizzes (url, title, date_generated, scraped_content, full_quiz_data)")).
		WithArgs("https://en.wikipedia.org/wiki/Ada", "Ada", sqlmock.AnyArg(), content, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	before := time.Now().UTC()
	record, err := repo.Create(context.Background(), "https://en.wikipedia.org/wiki/Ada", "Ada", &content, payload)
	require.NoError(t, err)

	assert.Equal(t, int64(7), record.ID)
	assert.Equal(t, "Ada", record.Title)
	assert.Equal(t, time.UTC, record.CreatedAt.Location())
	assert.False(t, record.CreatedAt.Before(before.Truncate(time.Microsecond)))
	require.NotNil(t, record.CleanedContent)
	assert.Equal(t, content, *record.CleanedContent)
	assert.Equal(t, *payload, record.Payload)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizDatabaseAdapter_Create_Errors(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewQuizDatabaseAdapter(db)

	_, err := repo.Create(context.Background(), "u", "t", nil, nil)
	assert.Error(t, err)

	mock.ExpectQuery("INSERT INTO quizzes").WillReturnError(errors.New("disk full"))
	_, err = repo.Create(context.Background(), "u", "t", nil, samplePayload("t"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save quiz")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizDatabaseAdapter_ListAll(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewQuizDatabaseAdapter(db)
	now := time.Now().UTC()

	t.Run("rows", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, url, title, date_generated\s+FROM quizzes\s+ORDER BY date_generated DESC, id DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "url", "title", "date_generated"}).
				AddRow(int64(2), "u2", "Second", now).
				AddRow(int64(1), "u1", "First", now.Add(-time.Minute)))

		summaries, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		require.Len(t, summaries, 2)
		assert.Equal(t, int64(2), summaries[0].ID)
		assert.Equal(t, "First", summaries[1].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty is not nil", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, url, title, date_generated\s+FROM quizzes`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "url", "title", "date_generated"}))

		summaries, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, summaries)
		assert.Empty(t, summaries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

const getByIDPattern = `(?s)SELECT .+FROM quizzes\s+WHERE id = \?`

func TestQuizDatabaseAdapter_GetByID(t *testing.T) {
	db, mock := setupQuizTestDB(t)
	defer db.Close()
	repo := NewQuizDatabaseAdapter(db)
	raw, err := models.QuizData(*samplePayload("Ada")).Value()
	require.NoError(t, err)
	columns := []string{"id", "url", "title", "date_generated", "scraped_content", "raw_html", "full_quiz_data"}

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(getByIDPattern).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(int64(3), "u", "Ada", time.Now(), nil, nil, raw))

		record, err := repo.GetByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, int64(3), record.ID)
		assert.Nil(t, record.CleanedContent)
		assert.Len(t, record.Payload.Questions, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(getByIDPattern).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), 99)
		require.Error(t, err)
		assert.True(t, domain.HasCode(err, domain.CodeNotFound))
		assert.Equal(t, "Quiz with ID 99 not found", err.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(getByIDPattern).
			WithArgs(int64(5)).
			WillReturnError(errors.New("connection lost"))

		_, err := repo.GetByID(context.Background(), 5)
		require.Error(t, err)
		assert.False(t, domain.HasCode(err, domain.CodeNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestQuizDatabaseAdapter_SQLiteRoundTrip(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewQuizDatabaseAdapter(db)
	ctx := context.Background()

	empty, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	content := "Ada Lovelace was an English mathematician."
	first, err := repo.Create(ctx, "https://en.wikipedia.org/wiki/Ada_Lovelace", "Ada Lovelace", &content, samplePayload("Ada Lovelace"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, "https://en.wikipedia.org/wiki/Charles_Babbage", "Charles Babbage", nil, samplePayload("Charles Babbage"))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.URL, got.URL)
	assert.True(t, first.CreatedAt.Equal(got.CreatedAt))
	require.NotNil(t, got.CleanedContent)
	assert.Equal(t, content, *got.CleanedContent)
	assert.Equal(t, *samplePayload("Ada Lovelace"), got.Payload)

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	var rawHTML sql.NullString
	require.NoError(t, db.Get(&rawHTML, "SELECT raw_html FROM quizzes WHERE id = ?", first.ID))
	assert.False(t, rawHTML.Valid)

	_, err = repo.GetByID(ctx, second.ID+100)
	assert.True(t, domain.HasCode(err, domain.CodeNotFound))
}

func TestQuizDatabaseAdapter_ListAllOrdersByDateThenID(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewQuizDatabaseAdapter(db)
	ctx := context.Background()
	raw, err := models.QuizData(*samplePayload("x")).Value()
	require.NoError(t, err)

	same := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	rows := []struct {
		title string
		at    time.Time
	}{
		{"old", same.Add(-time.Hour)},
		{"tie-a", same},
		{"tie-b", same},
		{"newest", same.Add(time.Hour)},
	}
	for _, r := range rows {
		_, err := db.Exec("INSERT INTO quizzes (url, title, date_generated, full_quiz_data) VALUES (?, ?, ?, ?)", "u", r.title, r.at, raw)
		require.NoError(t, err)
	}

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	titles := make([]string, 0, len(list))
	for _, s := range list {
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"newest", "tie-b", "tie-a", "old"}, titles)
}
