package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bettrack/internal/models/response_models"
	"bettrack/pkg/utils"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// ExtractionClientInterface turns one slip image into a normalized field
// set. The second return value is the JSON span the model produced (or
// "{}" when none was found), kept alongside the bet for auditing.
type ExtractionClientInterface interface {
	ExtractBetSlip(ctx context.Context, imageData string) (response_models.BetFields, []byte, error)
}

const extractionPromptFormat = `Analyze this betting slip image and extract the following information in JSON format:

{
  "teams": "Team A vs Team B (or event description)",
  "sport": "Football/Basketball/Tennis/etc",
  "league": "Premier League/NBA/etc (if visible)",
  "bet_type": "Match Winner/Over Under/Handicap/etc",
  "selection": "Your specific bet selection",
  "odds": "2.50 (decimal format preferred)",
  "stake": "10.00 (just the number)",
  "potential_return": "25.00 (calculated: stake x odds)",
  "bookmaker": "Bet365/William Hill/etc (if visible)",
  "date": "%s",
  "confidence": "High/Medium/Low (based on image clarity)"
}

Important notes:
- Extract exact text when possible
- Convert odds to decimal format if needed (e.g., 3/2 = 2.50)
- Calculate potential_return as stake x odds
- Use "Unknown" for fields not clearly visible
- Be conservative with confidence rating
- Focus on the main bet, ignore multiple bets if present`

func extractionPrompt(now time.Time) string {
	return fmt.Sprintf(extractionPromptFormat, now.UTC().Format("2006-01-02"))
}

var dataURLPrefix = regexp.MustCompile(`^data:image/([a-zA-Z]+);base64,`)

// decodeImageDataURL strips an optional data-URL prefix and decodes the
// base64 payload. The subtype defaults to png, matching what the capture
// agent sends.
func decodeImageDataURL(imageData string) (string, []byte, error) {
	format := "png"
	if m := dataURLPrefix.FindStringSubmatch(imageData); m != nil {
		format = strings.ToLower(m[1])
		imageData = imageData[len(m[0]):]
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(imageData))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", utils.ErrInvalidImage, err)
	}
	return format, raw, nil
}

// ExtractJSONObject finds the first balanced {...} span in s, skipping
// braces inside JSON strings.
func ExtractJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}
		if char == '\\' && inString {
			escaped = true
			continue
		}
		if char == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

func stringField(raw map[string]interface{}, key, fallback string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return fallback
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	if s == "" {
		return fallback
	}
	return s
}

func numericField(raw map[string]interface{}, key, fallback string) string {
	s := nonNumeric.ReplaceAllString(stringField(raw, key, fallback), "")
	if s == "" {
		return fallback
	}
	return s
}

// NormalizeBetFields applies the post-parse rules in order: defaults,
// numeric cleanup, potential-return recompute, confidence coercion.
func NormalizeBetFields(raw map[string]interface{}, now time.Time) response_models.BetFields {
	fields := response_models.BetFields{
		Teams:           stringField(raw, "teams", "Unknown"),
		Sport:           stringField(raw, "sport", "Unknown"),
		League:          stringField(raw, "league", "Unknown"),
		BetType:         stringField(raw, "bet_type", "Unknown"),
		Selection:       stringField(raw, "selection", "Unknown"),
		Odds:            numericField(raw, "odds", "1.00"),
		Stake:           numericField(raw, "stake", "0.00"),
		PotentialReturn: numericField(raw, "potential_return", "0.00"),
		Bookmaker:       stringField(raw, "bookmaker", "Unknown"),
		Status:          "pending",
		Date:            stringField(raw, "date", now.UTC().Format("2006-01-02")),
		Confidence:      stringField(raw, "confidence", "Low"),
	}

	// The model's arithmetic is not trusted: when both sides parse, the
	// return is recomputed as stake x odds to exactly 2 decimals.
	odds, errOdds := strconv.ParseFloat(fields.Odds, 64)
	stake, errStake := strconv.ParseFloat(fields.Stake, 64)
	if errOdds == nil && errStake == nil && odds > 0 && stake > 0 {
		fields.PotentialReturn = strconv.FormatFloat(stake*odds, 'f', 2, 64)
	}

	switch fields.Confidence {
	case "High", "Medium", "Low":
	default:
		fields.Confidence = "Low"
	}

	return fields
}

// FallbackBetFields is the degraded-success record used when the model
// reply carries no parseable JSON. The quota slot is already spent at
// that point; the user gets an editable placeholder instead of an error.
func FallbackBetFields(now time.Time) response_models.BetFields {
	return response_models.BetFields{
		Teams:           "Unable to extract",
		Sport:           "Unknown",
		League:          "Unknown",
		BetType:         "Unknown",
		Selection:       "Unable to extract",
		Odds:            "1.00",
		Stake:           "0.00",
		PotentialReturn: "0.00",
		Bookmaker:       "Unknown",
		Status:          "pending",
		Date:            now.UTC().Format("2006-01-02"),
		Confidence:      "Low",
	}
}

// parseModelReply rescues the JSON object out of free-form model text
// and normalizes it. A reply with no usable object degrades to the
// fallback record rather than failing.
func parseModelReply(text string, now time.Time) (response_models.BetFields, []byte) {
	span, ok := ExtractJSONObject(text)
	if ok {
		var raw map[string]interface{}
		if err := json.Unmarshal([]byte(span), &raw); err == nil {
			return NormalizeBetFields(raw, now), []byte(span)
		}
	}
	return FallbackBetFields(now), []byte("{}")
}

// ────────────────────────────────────────────────────────────────
// Providers
// ────────────────────────────────────────────────────────────────

type geminiExtractionClient struct {
	client *genai.Client
	model  string
}

func NewGeminiExtractionClient(apiKey, model string) (ExtractionClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiExtractionClient{client: client, model: model}, nil
}

func (c *geminiExtractionClient) ExtractBetSlip(ctx context.Context, imageData string) (response_models.BetFields, []byte, error) {
	format, img, err := decodeImageDataURL(imageData)
	if err != nil {
		return response_models.BetFields{}, nil, err
	}

	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.1)
	m.SetTopK(32)
	m.SetTopP(1)
	m.SetMaxOutputTokens(1024)

	now := time.Now()
	resp, err := m.GenerateContent(ctx, genai.Text(extractionPrompt(now)), genai.ImageData(format, img))
	if err != nil {
		return response_models.BetFields{}, nil, fmt.Errorf("%w: gemini: %v", utils.ErrUpstreamUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return response_models.BetFields{}, nil, fmt.Errorf("%w: gemini returned no content", utils.ErrUpstreamUnavailable)
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	fields, raw := parseModelReply(text, now)
	return fields, raw, nil
}

func (c *geminiExtractionClient) Close() error {
	return c.client.Close()
}

type openAIExtractionClient struct {
	client *openai.Client
	model  string
}

func (c *openAIExtractionClient) ExtractBetSlip(ctx context.Context, imageData string) (response_models.BetFields, []byte, error) {
	format, _, err := decodeImageDataURL(imageData)
	if err != nil {
		return response_models.BetFields{}, nil, err
	}
	if !strings.HasPrefix(imageData, "data:") {
		imageData = "data:image/" + format + ";base64," + imageData
	}

	now := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   1024,
		Temperature: 0.1,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: extractionPrompt(now)},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageData},
					},
				},
			},
		},
	})
	if err != nil {
		return response_models.BetFields{}, nil, fmt.Errorf("%w: openai: %v", utils.ErrUpstreamUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return response_models.BetFields{}, nil, fmt.Errorf("%w: openai returned no choices", utils.ErrUpstreamUnavailable)
	}

	fields, raw := parseModelReply(resp.Choices[0].Message.Content, now)
	return fields, raw, nil
}

// NewExtractionClient creates the configured provider. One upstream call
// per extraction, no retries.
func NewExtractionClient(provider, apiKey, model string) (ExtractionClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return &openAIExtractionClient{
			client: openai.NewClient(apiKey),
			model:  model,
		}, nil
	case "gemini":
		return NewGeminiExtractionClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
