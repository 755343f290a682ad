package dto

import (
	"time"

	"wiki-quiz/internal/domain"
)

// GenerateQuizRequest is the body of POST /generate_quiz
// @Description Wikipedia article to build a quiz from
type GenerateQuizRequest struct {
	URL *string `json:"url" example:"https://en.wikipedia.org/wiki/Alan_Turing"`
}

// PreviewURLRequest is the body of POST /preview_url
type PreviewURLRequest struct {
	URL *string `json:"url" example:"https://en.wikipedia.org/wiki/Alan_Turing"`
}

// QuizResponse is a stored quiz with its full payload
// @Description Generated quiz
type QuizResponse struct {
	ID            int64              `json:"id"`
	URL           string             `json:"url"`
	Title         string             `json:"title"`
	DateGenerated string             `json:"date_generated" example:"2024-05-01T12:00:00.123456Z"`
	QuizData      domain.QuizPayload `json:"quiz_data"`
}

// QuizHistoryResponse is one entry of GET /history
type QuizHistoryResponse struct {
	ID            int64  `json:"id"`
	URL           string `json:"url"`
	Title         string `json:"title"`
	DateGenerated string `json:"date_generated"`
}

// PreviewResponse reports whether a URL looks like a usable article
type PreviewResponse struct {
	Valid   bool   `json:"valid"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// RootResponse describes the running API
type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FormatTimestamp renders a stored timestamp as RFC 3339 in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func NewQuizResponse(r *domain.QuizRecord) *QuizResponse {
	return &QuizResponse{
		ID:            r.ID,
		URL:           r.URL,
		Title:         r.Title,
		DateGenerated: FormatTimestamp(r.CreatedAt),
		QuizData:      r.Payload,
	}
}

func NewQuizHistoryResponse(summaries []domain.QuizSummary) []QuizHistoryResponse {
	items := make([]QuizHistoryResponse, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, QuizHistoryResponse{
			ID:            s.ID,
			URL:           s.URL,
			Title:         s.Title,
			DateGenerated: FormatTimestamp(s.CreatedAt),
		})
	}
	return items
}

func NewPreviewResponse(p *domain.URLPreview) *PreviewResponse {
	return &PreviewResponse{Valid: p.Valid, Title: p.Title, Message: p.Message}
}
