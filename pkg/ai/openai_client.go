// pkg/ai/openai_client.go

package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type openAI struct {
	endpoint string
	key      string
	model    string
}

func NewOpenAI(endpoint, key, model string) Client {
	return &openAI{endpoint: endpoint, key: key, model: model}
}

func (c *openAI) SummarizeSweep(d SweepDigest, advisoryCtx string) string {
	type chatReq struct {
		Model       string              `json:"model"`
		Messages    []map[string]string `json:"messages"`
		Temperature float64             `json:"temperature"`
	}
	reqBody := chatReq{
		Model: c.model,
		Messages: []map[string]string{
			{"role": "system", "content": "You are a crop pathologist who writes concise, actionable outbreak bulletins in Markdown."},
			{"role": "user", "content": renderSweepPrompt(d, advisoryCtx)},
		},
		Temperature: 0.2,
	}

	b, _ := json.Marshal(reqBody)
	httpc := &http.Client{Timeout: 25 * time.Second}
	req, _ := http.NewRequest("POST", strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		// fallback summary (no external call)
		return fallbackSummary(d)
	}
	defer resp.Body.Close()

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || len(out.Choices) == 0 {
		return fallbackSummary(d)
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return fallbackSummary(d)
	}
	return content
}

func renderSweepPrompt(d SweepDigest, advisoryCtx string) string {
	return fmt.Sprintf(`
Summarize this pathogen battle sweep as a short outbreak bulletin (Markdown,
max 8 lines). Lead with the infection pressure, call out mutation and
extinction activity, and close with one concrete scouting or treatment
action. Tie in ADVISORY NOTES where relevant but do not quote at length.

SWEEP:
engagements=%d infections=%d mutations=%d extinctions=%d crop_failures=%d

ADVISORY NOTES:
%s
`, d.EngagementsFired, d.Infections, d.Mutations, d.Extinctions, d.CropFailures, advisoryCtx)
}

func fallbackSummary(d SweepDigest) string {
	return fmt.Sprintf(
		"**Sweep summary**\n\n- Engagements: %d, infections: %d\n- Mutant strains spawned: %d, lineages extinguished: %d\n- Crops driven to failure: %d (scout affected farms and review pesticide rotation)",
		d.EngagementsFired, d.Infections, d.Mutations, d.Extinctions, d.CropFailures,
	)
}
