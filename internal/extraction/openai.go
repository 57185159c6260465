package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OpenAI implements the Extractor interface using the OpenAI
// chat-completions API
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates a new OpenAI Extractor instance. An empty apiKey is
// allowed here; the missing credential is reported per request so the server
// can surface a configuration error instead of refusing to start.
func NewOpenAI(apiKey, modelName, baseURL string) (*OpenAI, error) {
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}

	return &OpenAI{
		apiKey:  apiKey,
		model:   modelName,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// openaiChatRequest represents the request body for the chat completions API
type openaiChatRequest struct {
	Model          string               `json:"model"`
	Messages       []openaiMessage      `json:"messages"`
	ResponseFormat openaiResponseFormat `json:"response_format"`
	MaxTokens      int                  `json:"max_tokens"`
}

type openaiResponseFormat struct {
	Type string `json:"type"`
}

type openaiMessage struct {
	Role    string              `json:"role"`
	Content []openaiContentPart `json:"content"`
}

type openaiContentPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openaiImageURL `json:"image_url,omitempty"`
}

type openaiImageURL struct {
	URL string `json:"url"`
}

// openaiChatResponse represents the response from the chat completions API
type openaiChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ExtractReceipt analyzes a receipt image and returns normalized draft fields
func (o *OpenAI) ExtractReceipt(imageData []byte, contentType string) (*DraftFields, error) {
	if o.apiKey == "" {
		return nil, &ConfigError{EnvVar: "OPENAI_API_KEY"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	// Convert PDFs and HEIC to something the vision endpoint accepts
	finalImageData, mimeType, err := prepareImageData(imageData, contentType)
	if err != nil {
		return nil, err
	}

	// Inline the image as a base64 data URI
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(finalImageData))

	reqBody := openaiChatRequest{
		Model: o.model,
		Messages: []openaiMessage{
			{
				Role: "user",
				Content: []openaiContentPart{
					{Type: "text", Text: extractPrompt},
					{Type: "image_url", ImageURL: &openaiImageURL{URL: dataURI}},
				},
			},
		},
		ResponseFormat: openaiResponseFormat{Type: "json_object"},
		MaxTokens:      500,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := o.baseURL + "/v1/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling openai API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openai API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp openaiChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("openai API error: %s", chatResp.Error.Message)
	}

	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return nil, ErrNoContent
	}

	draft, err := parseDraftJSON(chatResp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("parsing receipt data: %w", err)
	}

	return draft, nil
}

// Close closes the OpenAI client (no-op for HTTP client)
func (o *OpenAI) Close() error {
	return nil
}
