package extraction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Gemini implements the Extractor interface using Google Gemini
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGemini creates a new Gemini Extractor instance. As with OpenAI, an
// empty apiKey defers the configuration error to request time.
func NewGemini(apiKey string, modelName string) (*Gemini, error) {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	if apiKey == "" {
		return &Gemini{}, nil
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"

	return &Gemini{
		client: client,
		model:  model,
	}, nil
}

// ExtractReceipt analyzes a receipt image and returns normalized draft fields
func (g *Gemini) ExtractReceipt(imageData []byte, contentType string) (*DraftFields, error) {
	if g.client == nil {
		return nil, &ConfigError{EnvVar: "GEMINI_API_KEY"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	finalImageData, mimeType, err := prepareImageData(imageData, contentType)
	if err != nil {
		return nil, err
	}

	// genai.ImageData expects just the format suffix (e.g. "png"),
	// not the full MIME type
	format := strings.TrimPrefix(mimeType, "image/")
	parts := []genai.Part{
		genai.ImageData(format, finalImageData),
		genai.Text(extractPrompt),
	}

	resp, err := g.model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, fmt.Errorf("generating content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrNoContent
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			responseText.WriteString(string(text))
		}
	}

	if strings.TrimSpace(responseText.String()) == "" {
		return nil, ErrNoContent
	}

	draft, err := parseDraftJSON(responseText.String())
	if err != nil {
		return nil, fmt.Errorf("parsing receipt data: %w", err)
	}

	return draft, nil
}

// Close closes the Gemini client
func (g *Gemini) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}
