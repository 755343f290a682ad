package domain

import "time"

// Difficulty is the model-assigned difficulty of a question. The values are a
// convention of the prompt; they are not enforced.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Question is one multiple-choice item. CorrectAnswer is expected to equal one
// of Options but nothing checks it.
type Question struct {
	Question      string      `json:"question"`
	Options       []string    `json:"options"`
	CorrectAnswer string      `json:"correct_answer"`
	Explanation   string      `json:"explanation"`
	Section       *string     `json:"section"`
	Difficulty    *Difficulty `json:"difficulty"`
}

// QuizPayload is the validated quiz produced by the completion service.
type QuizPayload struct {
	Title         string     `json:"title"`
	Summary       string     `json:"summary"`
	Questions     []Question `json:"questions"`
	KeyEntities   []string   `json:"key_entities"`
	RelatedTopics []string   `json:"related_topics"`
}

// QuizRecord is a persisted quiz. It is created once and never modified.
type QuizRecord struct {
	ID             int64       `json:"id"`
	URL            string      `json:"url"`
	Title          string      `json:"title"`
	CreatedAt      time.Time   `json:"created_at"`
	CleanedContent *string     `json:"cleaned_content,omitempty"`
	Payload        QuizPayload `json:"quiz_payload"`
}

// QuizSummary is the history view of a record, without its payload.
type QuizSummary struct {
	ID        int64
	URL       string
	Title     string
	CreatedAt time.Time
}

// Article is the cleaned output of the scraper.
type Article struct {
	Title   string
	Content string
}

// URLPreview is the result of a non-committal pre-flight check of a URL.
type URLPreview struct {
	Valid   bool
	Title   string
	Message string
}
