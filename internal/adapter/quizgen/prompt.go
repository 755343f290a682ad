package quizgen

import "strings"

// MaxPromptContentChars caps the article excerpt embedded in the prompt. It is
// independent of the scraper's word cap.
const MaxPromptContentChars = 3000

const articlePlaceholder = "{{ARTICLE}}"

const promptTemplate = `You are an expert educational content creator. Your task is to analyze a Wikipedia article and create an engaging, educational quiz.

Wikipedia Article Content:
{{ARTICLE}}

Based on this article, generate a comprehensive quiz following these guidelines:

1. **Title**: Use the exact article title
2. **Summary**: Write a concise 2-3 sentence summary capturing the main points
3. **Questions**: Create 7-10 multiple-choice questions that:
   - Cover different aspects of the article (main concepts, key facts, important details)
   - Progress from basic to more challenging
   - Have exactly 4 options each (labeled A, B, C, D)
   - Include clear, educational explanations for the correct answers
   - Avoid trivial or overly specific details
4. **Key Entities**: Identify 3-5 main entities, people, places, or concepts from the article
5. **Related Topics**: Suggest 3-5 related topics for further exploration

You MUST respond with ONLY valid JSON. Do not include any explanatory text before or after the JSON. Do not wrap in markdown code blocks.

Use this exact format:
{
  "title": "string",
  "summary": "string",
  "questions": [
    {
      "question": "string",
      "options": ["A. ...", "B. ...", "C. ...", "D. ..."],
      "correct_answer": "string (must match one of the options)",
      "explanation": "string"
    }
  ],
  "key_entities": ["string"],
  "related_topics": ["string"]
}`

// BuildPrompt renders the quiz instructions around the first
// MaxPromptContentChars characters of articleText.
func BuildPrompt(articleText string) string {
	return strings.Replace(promptTemplate, articlePlaceholder, truncateChars(articleText, MaxPromptContentChars), 1)
}

// TemplateLength is the length of the prompt with an empty article.
func TemplateLength() int {
	return len([]rune(promptTemplate)) - len([]rune(articlePlaceholder))
}

func truncateChars(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
