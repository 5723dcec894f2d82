package units

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// LLMClient calls an OpenAI-compatible chat completion endpoint to infer a
// unit from document context. It implements Inferrer; the Engine owns all
// caching and retry policy.
type LLMClient struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

const llmSystemPrompt = "You identify the measurement or currency unit of financial metrics. " +
	"Answer with the bare unit only (for example: EUR million, %, ton). " +
	"Answer exactly 'unknown' if the context does not determine the unit."

// InferUnit asks the model for the metric's unit. An "unknown" answer maps
// to "" with no error; transport and API errors are returned for the Engine
// to handle.
func (c *LLMClient) InferUnit(ctx context.Context, q Query) (string, error) {
	if c.BaseURL == "" || c.Model == "" {
		return "", fmt.Errorf("llm: base URL and model required")
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Metric: %s\n", q.MetricName)
	if q.PageTitle != "" {
		fmt.Fprintf(&prompt, "Document/page title: %s\n", q.PageTitle)
	}
	if q.SectionHeading != "" {
		fmt.Fprintf(&prompt, "Section: %s\n", q.SectionHeading)
	}
	if q.TableCaption != "" {
		fmt.Fprintf(&prompt, "Table caption: %s\n", q.TableCaption)
	}
	if q.NearbyText != "" {
		fmt.Fprintf(&prompt, "Nearby text: %s\n", q.NearbyText)
	}
	prompt.WriteString("What unit is this metric reported in?")

	answer, err := c.chat(ctx, llmSystemPrompt, prompt.String())
	if err != nil {
		return "", err
	}
	return cleanUnit(answer), nil
}

func (c *LLMClient) chat(ctx context.Context, system, user string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", err
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("llm: decode response: %w", err)
	}
	if payload.Error != nil {
		return "", fmt.Errorf("llm: %s", payload.Error.Message)
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}
	return payload.Choices[0].Message.Content, nil
}

// cleanUnit normalizes a model answer into a bare unit string. Anything
// that looks like a refusal or an essay yields "".
func cleanUnit(answer string) string {
	unit := strings.TrimSpace(answer)
	unit = strings.Trim(unit, "\"'`.")
	if unit == "" || strings.EqualFold(unit, "unknown") {
		return ""
	}
	if len(strings.Fields(unit)) > 4 || len(unit) > 40 {
		return ""
	}
	return unit
}
