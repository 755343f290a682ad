package domain

import "context"

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// Create stores a new record and returns it with its generated id and timestamp.
	Create(ctx context.Context, url, title string, cleanedContent *string, payload *QuizPayload) (*QuizRecord, error)

	// ListAll returns every record, most recent first.
	ListAll(ctx context.Context) ([]QuizSummary, error)

	// GetByID returns the record or a NOT_FOUND DomainError.
	GetByID(ctx context.Context, id int64) (*QuizRecord, error)
}

// TransactionManager runs fn inside a transaction carried by the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ArticleScraper fetches and cleans source articles.
type ArticleScraper interface {
	Scrape(ctx context.Context, url string) (*Article, error)
	Preview(ctx context.Context, url string) *URLPreview
}

// QuizGenerator turns article text into a validated quiz.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, articleText string) (*QuizPayload, error)
}

// CompletionService is an opaque text-to-text model.
type CompletionService interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// CompletionProvider hands out a configured CompletionService. It returns a
// CONFIGURATION_ERROR when the backend's credential is missing.
type CompletionProvider interface {
	Completer(ctx context.Context) (CompletionService, error)
}
