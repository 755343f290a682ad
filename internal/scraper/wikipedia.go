// Package scraper fetches Wikipedia articles and reduces them to a title and a
// bounded plain-text body suitable for a completion prompt.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	// UnknownTitle is used when the page has no recognizable heading.
	UnknownTitle = "Unknown Article"

	// MaxArticleWords caps the cleaned text handed to the prompt builder.
	MaxArticleWords = 4000

	// Paragraphs this short or shorter are navigation and caption noise.
	minParagraphLength = 20

	siteMarker = "wikipedia.org"

	titleSelector         = "h1#firstHeading"
	fallbackTitleSelector = "h1.firstHeading"
	contentSelector       = "div#mw-content-text"
)

// WikipediaScraper implements domain.ArticleScraper over plain HTTP.
type WikipediaScraper struct {
	client    *http.Client
	userAgent string
}

// NewWikipediaScraper creates a scraper with the configured timeout and User-Agent.
func NewWikipediaScraper(cfg config.ScraperConfig) *WikipediaScraper {
	return &WikipediaScraper{
		client:    &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
	}
}

// Scrape fetches url and returns its cleaned content and title.
func (s *WikipediaScraper) Scrape(ctx context.Context, url string) (*domain.Article, error) {
	l := logger.Get()
	l.Info("Scraping article", zap.String("url", url))

	doc, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	article, err := ExtractArticle(doc)
	if err != nil {
		l.Warn("Failed to extract article content", zap.String("url", url), zap.Error(err))
		return nil, err
	}

	l.Info("Article scraped",
		zap.String("url", url),
		zap.String("title", article.Title),
		zap.Int("content_length", len(article.Content)),
	)
	return article, nil
}

// Preview performs a light pre-flight check of url. Failures are reported in
// the result, never as an error.
func (s *WikipediaScraper) Preview(ctx context.Context, url string) *domain.URLPreview {
	if strings.TrimSpace(url) == "" {
		return &domain.URLPreview{Message: "URL cannot be empty"}
	}
	if !strings.Contains(url, siteMarker) {
		return &domain.URLPreview{Message: "URL must be a Wikipedia article"}
	}

	doc, err := s.fetch(ctx, url)
	if err != nil {
		if isTimeout(err) {
			return &domain.URLPreview{Message: "Request timeout. Please try again."}
		}
		return &domain.URLPreview{Message: fmt.Sprintf("Failed to fetch page: %v", errors.Unwrap(err))}
	}

	title, found := extractTitle(doc)
	if !found {
		return &domain.URLPreview{Message: "Could not find article title. This may not be a valid Wikipedia article."}
	}
	if doc.Find(contentSelector).Length() == 0 {
		return &domain.URLPreview{Title: title, Message: "Article appears to be empty or inaccessible"}
	}

	return &domain.URLPreview{
		Valid:   true,
		Title:   title,
		Message: "Article found and ready for quiz generation",
	}
}

// fetch retrieves and parses url. Every failure is a FETCH_ERROR.
func (s *WikipediaScraper) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, domain.NewFetchError(url, err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		logger.Get().Warn("Article request failed", zap.String("url", url), zap.Error(err))
		return nil, domain.NewFetchError(url, err)
	}
	defer resp.Body.Close()

	logger.Get().Debug("Article response received",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewFetchError(url, fmt.Errorf("unexpected status %s", resp.Status))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, domain.NewFetchError(url, fmt.Errorf("failed to parse HTML: %w", err))
	}
	return doc, nil
}

// ExtractArticle reduces a parsed article page to its title and cleaned body.
// It mutates doc by removing citation markers and edit links.
func ExtractArticle(doc *goquery.Document) (*domain.Article, error) {
	title, found := extractTitle(doc)
	if !found {
		title = UnknownTitle
	}

	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		return nil, domain.NewContentNotFoundError()
	}

	var paragraphs []string
	content.Find("p").Each(func(_ int, p *goquery.Selection) {
		p.Find("sup").Remove()
		p.Find("span.mw-editsection").Remove()

		text := strings.TrimSpace(p.Text())
		if utf8.RuneCountInString(text) > minParagraphLength {
			paragraphs = append(paragraphs, text)
		}
	})

	cleaned := strings.Join(paragraphs, "\n\n")
	if cleaned == "" {
		return nil, domain.NewEmptyContentError()
	}

	return &domain.Article{
		Title:   title,
		Content: TruncateWords(cleaned, MaxArticleWords),
	}, nil
}

func extractTitle(doc *goquery.Document) (string, bool) {
	heading := doc.Find(titleSelector).First()
	if heading.Length() == 0 {
		heading = doc.Find(fallbackTitleSelector).First()
	}
	if heading.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(heading.Text()), true
}

// TruncateWords keeps the first max whitespace-delimited tokens of text and
// appends "..." when anything was dropped. Shorter text is returned unchanged.
func TruncateWords(text string, max int) string {
	words := strings.Fields(text)
	if len(words) <= max {
		return text
	}
	return strings.Join(words[:max], " ") + "..."
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
