package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/expense-service/internal/logger"
	"gitlab.com/yelinaung/expense-service/internal/models"
	"google.golang.org/genai"
)

// MaxMessageLength is the maximum message length embedded in a prompt.
const MaxMessageLength = 500

// Extractor turns free-form messages into structured expense candidates
// using the Gemini API. All configuration is fixed at construction so a
// deterministic stub can be substituted in tests.
type Extractor struct {
	client  *Client
	model   string
	timeout time.Duration
}

// NewExtractor creates an Extractor bound to a model and call timeout.
func NewExtractor(client *Client, model string, timeout time.Duration) *Extractor {
	return &Extractor{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

// extractionPayload is the untyped model output, parsed field-by-field
// before promotion to an ExtractionResult. Every field is optional; the
// model is not trusted to fill any of them.
type extractionPayload struct {
	IsExpense   *bool        `json:"is_expense"`
	Description *string      `json:"description"`
	Amount      *json.Number `json:"amount"`
	Category    *string      `json:"category"`
}

// Extract analyzes a message and returns an ExtractionResult. It never
// returns an error: any failure (backend unreachable, timeout,
// unparsable output) degrades to the negative result, i.e. "could not
// confirm this is an expense".
func (e *Extractor) Extract(ctx context.Context, message string) models.ExtractionResult {
	if e.client == nil || e.client.generator == nil {
		logger.Log.Error().Msg("Extract: gemini client not initialized")
		return models.NotAnExpense
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: expenseAnalysisPrompt()},
			},
		},
		ResponseMIMEType: "application/json",
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: SanitizeForPrompt(message, MaxMessageLength)},
			},
		},
	}

	resp, err := e.client.generator.GenerateContent(timeoutCtx, e.model, contents, config)
	if err != nil {
		logger.Log.Error().Err(err).
			Str("message", logger.SanitizeText(message)).
			Msg("Extract: Gemini API call failed")
		return models.NotAnExpense
	}

	if resp == nil {
		logger.Log.Warn().Msg("Extract: nil response from Gemini")
		return models.NotAnExpense
	}

	fullText := resp.Text()
	if fullText == "" {
		logger.Log.Warn().Msg("Extract: no text content in Gemini response")
		return models.NotAnExpense
	}

	// The model is not trusted to return only JSON. Pull out the first
	// balanced-brace region; if there is none, try the whole trimmed
	// text as the payload.
	jsonText := firstJSONObject(fullText)
	if jsonText == "" {
		jsonText = strings.TrimSpace(fullText)
	}

	var payload extractionPayload
	if err := json.Unmarshal([]byte(jsonText), &payload); err != nil {
		logger.Log.Warn().Err(err).Msg("Extract: failed to parse Gemini response")
		return models.NotAnExpense
	}

	return promote(payload)
}

// promote validates the parsed payload field-by-field and builds the
// extraction result. Anything short of a usable expense is the negative
// result rather than an error.
func promote(payload extractionPayload) models.ExtractionResult {
	if payload.IsExpense == nil || !*payload.IsExpense {
		logger.Log.Debug().Msg("Extract: message identified as non-expense")
		return models.NotAnExpense
	}

	if payload.Description == nil || strings.TrimSpace(*payload.Description) == "" || payload.Amount == nil {
		logger.Log.Warn().Msg("Extract: expense payload missing description or amount")
		return models.NotAnExpense
	}

	amount, err := decimal.NewFromString(payload.Amount.String())
	if err != nil || !amount.IsPositive() {
		logger.Log.Warn().Msg("Extract: expense payload has non-positive or malformed amount")
		return models.NotAnExpense
	}

	category := ""
	if payload.Category != nil {
		category = *payload.Category
	}

	// Category is passed through raw; the validator owns normalization
	// onto the fixed set.
	return models.ExtractionResult{
		IsExpense:   true,
		Description: strings.TrimSpace(*payload.Description),
		Amount:      amount,
		Category:    category,
	}
}

// expenseAnalysisPrompt builds the fixed system instruction. The
// category list is embedded so the model answers within the closed set.
func expenseAnalysisPrompt() string {
	return fmt.Sprintf(`You are an expense analysis expert. Your job is to determine if a message contains expense information and extract it.

IMPORTANT: Only messages that explicitly mention a purchase, payment, or expense with a monetary amount should be considered expenses.

Available categories: %s

Rules:
1. ONLY messages that mention a purchase, payment, or expense with a monetary amount are expenses
2. Messages without monetary amounts are NOT expenses
3. Greetings, questions, random text, or non-financial messages are NOT expenses
4. If the message is not about an expense, set is_expense to false and return null for other fields
5. Extract the description (what was purchased)
6. Extract the amount (numeric value)
7. Categorize into the most appropriate category
8. Amount should be a positive number

Examples of EXPENSES:
- "Pizza 20 bucks" -> is_expense: true, description: "Pizza", amount: 20.0, category: "Food"
- "Gas 45.50" -> is_expense: true, description: "Gas", amount: 45.50, category: "Transportation"
- "Netflix subscription 15.99" -> is_expense: true, description: "Netflix subscription", amount: 15.99, category: "Entertainment"

Examples of NON-EXPENSES:
- "Hello there" -> is_expense: false, description: null, amount: null, category: null
- "How are you?" -> is_expense: false, description: null, amount: null, category: null
- "What's the weather?" -> is_expense: false, description: null, amount: null, category: null

Return only the JSON response with fields: is_expense, description, amount, category`,
		strings.Join(models.Categories, ", "))
}

// firstJSONObject returns the first balanced-brace region in text, or
// "" when there is none.
func firstJSONObject(text string) string {
	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// SanitizeForPrompt sanitizes user input before embedding it in a
// prompt. It strips characters that could break prompt structure and
// truncates to maxLength.
func SanitizeForPrompt(input string, maxLength int) string {
	input = strings.ReplaceAll(input, "`", "'")
	input = strings.ReplaceAll(input, "\x00", "")

	// Normalize whitespace: collapses newlines, tabs and repeated
	// spaces in one pass.
	input = strings.Join(strings.Fields(input), " ")

	if len(input) > maxLength {
		input = strings.TrimSpace(input[:maxLength])
	}

	return input
}
