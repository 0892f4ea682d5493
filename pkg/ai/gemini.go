// Package ai wraps the Gemini text-completion API used to turn free-text
// resumes into the structured parsed schema.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/AbdulBasithMohammed/CVPro/internal/domain"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *GeminiClient) WithBaseURL(u string) *GeminiClient {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

func (c *GeminiClient) IsConfigured() bool {
	return c.apiKey != ""
}

// normalizeSpaces collapses all whitespace runs to single spaces so the
// prompt stays compact regardless of the source formatting.
func normalizeSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func buildPrompt(text string) string {
	schema := map[string]any{
		"id":                 nil,
		"resume_template_id": nil,
		"name":               "string",
		"email":              "string",
		"phone":              "string",
		"summary":            "string or null",
		"experience": []map[string]string{{
			"company": "string", "role": "string", "description": "string", "years": "string",
		}},
		"skills": []string{"string"},
		"projects": []map[string]any{{
			"title": "string", "description": "string", "technologies": []string{"string"},
		}},
	}
	schemaJSON, _ := json.MarshalIndent(schema, "", "    ")

	return fmt.Sprintf(`Extract the following details from this resume:
- Name
- Email
- Phone Number
- Summary (Ensure it's extracted properly. If missing, return null.)
- Skills (as a list)
- Experience (Company, Role, Years, Description)
- Projects (List of JSON objects with title, description, and technologies)

Structure it in **valid JSON** format:
%s

Resume Text:
%s`, schemaJSON, normalizeSpaces(text))
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ParseResume sends the resume text to Gemini and decodes the reply into the
// fixed parsed schema.
func (c *GeminiClient) ParseResume(ctx context.Context, text string) (*domain.ParsedResume, error) {
	if !c.IsConfigured() {
		return nil, fmt.Errorf("gemini: API key not configured")
	}

	reqBody := generateContentRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(text)}}}},
	}
	b, _ := json.Marshal(reqBody)

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("gemini error %d: %s", resp.StatusCode, string(body))
	}

	var parsed generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini: empty response from model")
	}

	raw := stripJSONFence(parsed.Candidates[0].Content.Parts[0].Text)

	var result domain.ParsedResume
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("invalid response from AI")
	}
	return &result, nil
}

// stripJSONFence removes a surrounding ```json ... ``` code fence, which the
// model emits despite being asked for bare JSON.
func stripJSONFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") && strings.HasSuffix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
	}
	return strings.TrimSpace(text)
}
