package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"

	// maxResponseBytes caps how much of an upstream body we read.
	maxResponseBytes = 1 << 20

	// chatHistoryWindow bounds how many prior messages go upstream per turn.
	chatHistoryWindow = 20
)

var (
	// ErrMissingAPIKey means no Gemini key is configured. Checked before
	// any network I/O so callers can prompt the user without a round trip.
	ErrMissingAPIKey = errors.New("gemini api key is not configured")

	// ErrMalformedQuizResponse means the model returned JSON that does not
	// match the requested quiz schema.
	ErrMalformedQuizResponse = errors.New("quiz response does not match expected format")

	// ErrEmptyResponse means the model returned no usable candidates.
	ErrEmptyResponse = errors.New("model returned an empty response")
)

// ServiceError is a non-2xx reply from the Gemini API. Message carries the
// upstream error text when it could be decoded.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("gemini api error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("gemini api error (status %d)", e.StatusCode)
}

// NetworkError is a transport-level failure before any HTTP status was
// received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("gemini api unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// httpDoer lets tests substitute the transport.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// KeyProvider supplies the per-user API key at call time, so key changes in
// settings take effect without restarting.
type KeyProvider func(ctx context.Context) (string, error)

// Gateway talks to the Gemini generateContent endpoint.
type Gateway struct {
	httpClient httpDoer
	baseURL    string
	model      string
	keyFor     KeyProvider
}

// Option configures a Gateway.
type Option func(*Gateway)

func WithHTTPClient(c httpDoer) Option {
	return func(g *Gateway) { g.httpClient = c }
}

func WithBaseURL(u string) Option {
	return func(g *Gateway) { g.baseURL = strings.TrimRight(u, "/") }
}

func WithModel(m string) Option {
	return func(g *Gateway) { g.model = m }
}

func NewGateway(keyFor KeyProvider, opts ...Option) *Gateway {
	g := &Gateway{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		keyFor:     keyFor,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Wire types for the generateContent API.

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Role  string        `json:"role,omitempty"`
	Parts []contentPart `json:"parts"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []contentPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Explain asks for a concise explanation of a concept aimed at a student.
func (g *Gateway) Explain(ctx context.Context, concept string) (string, error) {
	prompt := fmt.Sprintf(
		"Explain the following concept clearly and concisely for a student. "+
			"Use simple language and a short example where it helps.\n\nConcept: %s", concept)
	return g.generateText(ctx, []content{userContent(prompt)}, nil)
}

// Summarize condenses the given text into key points.
func (g *Gateway) Summarize(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the following text into its key points. "+
			"Keep it brief and well structured.\n\nText:\n%s", text)
	return g.generateText(ctx, []content{userContent(prompt)}, nil)
}

// GeneratePracticeQuestions produces open-ended practice questions on a topic.
func (g *Gateway) GeneratePracticeQuestions(ctx context.Context, topic string, count int) (string, error) {
	if count <= 0 {
		count = 5
	}
	prompt := fmt.Sprintf(
		"Write %d practice questions about %q for a student to test their "+
			"understanding. Number each question. Do not include the answers.", count, topic)
	return g.generateText(ctx, []content{userContent(prompt)}, nil)
}

// QuizQuestion is one multiple-choice question in a generated quiz.
type QuizQuestion struct {
	QuestionText       string   `json:"question_text"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correct_option_index"`
	Explanation        string   `json:"explanation"`
}

// quizSchema constrains the model output to a JSON array of quiz questions.
var quizSchema = json.RawMessage(`{
	"type": "ARRAY",
	"items": {
		"type": "OBJECT",
		"properties": {
			"question_text": {"type": "STRING"},
			"options": {"type": "ARRAY", "items": {"type": "STRING"}},
			"correct_option_index": {"type": "INTEGER"},
			"explanation": {"type": "STRING"}
		},
		"required": ["question_text", "options", "correct_option_index", "explanation"]
	}
}`)

// GenerateQuiz asks for a multiple-choice quiz in structured JSON and
// validates every question before returning it.
func (g *Gateway) GenerateQuiz(ctx context.Context, topic string, count int) ([]QuizQuestion, error) {
	if count <= 0 {
		count = 5
	}
	prompt := fmt.Sprintf(
		"Generate a quiz with %d multiple-choice questions about %q. "+
			"Each question must have exactly 4 options, the index of the correct "+
			"option, and a one-sentence explanation of the answer.", count, topic)

	cfg := &generationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   quizSchema,
	}
	raw, err := g.generateText(ctx, []content{userContent(prompt)}, cfg)
	if err != nil {
		return nil, err
	}

	var questions []QuizQuestion
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedQuizResponse, err)
	}
	if len(questions) == 0 {
		return nil, ErrMalformedQuizResponse
	}
	for _, q := range questions {
		if q.QuestionText == "" || len(q.Options) != 4 ||
			q.CorrectOptionIndex < 0 || q.CorrectOptionIndex > 3 {
			return nil, ErrMalformedQuizResponse
		}
	}
	return questions, nil
}

// ChatTurn is one prior message in a chat conversation.
type ChatTurn struct {
	Role string // "user" or "model"
	Text string
}

// Chat sends the new message with a bounded window of prior turns.
func (g *Gateway) Chat(ctx context.Context, history []ChatTurn, message string) (string, error) {
	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}
	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, content{
			Role:  turn.Role,
			Parts: []contentPart{{Text: turn.Text}},
		})
	}
	contents = append(contents, userContent(message))
	return g.generateText(ctx, contents, nil)
}

// MotivationalQuote fetches a short study-related quote for the main menu.
// Failures degrade to an empty string at the call site, never block startup.
func (g *Gateway) MotivationalQuote(ctx context.Context) (string, error) {
	prompt := "Give me one short motivational quote about learning or studying. " +
		"Reply with only the quote and its author."
	return g.generateText(ctx, []content{userContent(prompt)}, nil)
}

func userContent(text string) content {
	return content{Role: "user", Parts: []contentPart{{Text: text}}}
}

func (g *Gateway) generateText(ctx context.Context, contents []content, cfg *generationConfig) (string, error) {
	key, err := g.keyFor(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve api key: %w", err)
	}
	if key == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(generateRequest{Contents: contents, GenerationConfig: cfg})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed generateResponse
	decodeErr := json.Unmarshal(data, &parsed)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Decode errors on an error body are fine, the status code is enough.
		svcErr := &ServiceError{StatusCode: resp.StatusCode}
		if parsed.Error != nil {
			svcErr.Message = parsed.Error.Message
		}
		return "", svcErr
	}
	if decodeErr != nil {
		return "", &ServiceError{StatusCode: resp.StatusCode, Message: "response body is not valid JSON"}
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
