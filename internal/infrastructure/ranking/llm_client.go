package ranking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"taskmesh/internal/config"
	"taskmesh/internal/domain/assignment"
	"taskmesh/internal/domain/mediator"

	"github.com/google/uuid"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

const systemPrompt = "You rank task candidates. Reply with a JSON array of {\"id\",\"reason\"} objects covering every candidate exactly once, best fit first. Prefer candidates with higher ratings for the matched skills and lower current workload; proven experience outweighs task diversity."

// LLMClient ranks candidates through an OpenAI-compatible chat endpoint.
// Credentials come from config at construction time; there is no ambient
// environment lookup. A nil client is what callers get when no key is set.
type LLMClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *log.Logger
}

// NewLLMClient returns nil when no API key is configured; the mediator treats
// a nil ranker as "fallback only".
func NewLLMClient(cfg config.RankingConfig, logger *log.Logger) *LLMClient {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &LLMClient{
		apiKey:  key,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
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
}

type taskPayload struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Importance     string   `json:"importance"`
	SkillsRequired []string `json:"skills_required"`
}

type candidatePayload struct {
	ID                  uuid.UUID  `json:"id"`
	DisplayName         string     `json:"display_name"`
	TaskSkillMatchCount int        `json:"task_skill_match_count"`
	MatchedTaskSkills   []string   `json:"matched_task_skills"`
	TaskSkillRatingAvg  *float64   `json:"task_skill_rating_avg,omitempty"`
	CurrentWorkload     int        `json:"current_workload"`
	CapacityScore       float64    `json:"capacity_score"`
	TotalCompletedCount int        `json:"total_completed_count"`
	DiversityOfTasks    int        `json:"diversity_of_tasks"`
	LastCompletedAt     *time.Time `json:"last_completed_at,omitempty"`
}

type rankedItem struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

func (c *LLMClient) Rank(ctx context.Context, task assignment.Assignment, candidates []mediator.Candidate) ([]mediator.RankedCandidate, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil ranking client")
	}
	if len(candidates) == 0 {
		return nil, errors.New("no candidates")
	}

	userContent, err := buildUserContent(task, candidates)
	if err != nil {
		return nil, err
	}

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		err := fmt.Errorf("ranking call failed: status=%d body=%s", resp.StatusCode, bodyStr)
		if c.logger != nil {
			c.logger.Printf("[Ranking] call error endpoint=%s status=%d body=%q", endpoint, resp.StatusCode, bodyStr)
		}
		return nil, err
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 {
		return nil, errors.New("ranking response had no choices")
	}

	return parseOrdering(out.Choices[0].Message.Content)
}

func buildUserContent(task assignment.Assignment, candidates []mediator.Candidate) (string, error) {
	payload := struct {
		Task       taskPayload        `json:"task"`
		Candidates []candidatePayload `json:"candidates"`
	}{
		Task: taskPayload{
			Title:          task.Title,
			Description:    task.Description,
			Importance:     string(task.Importance),
			SkillsRequired: task.SkillsRequired,
		},
		Candidates: make([]candidatePayload, 0, len(candidates)),
	}
	for _, cand := range candidates {
		payload.Candidates = append(payload.Candidates, candidatePayload{
			ID:                  cand.ID,
			DisplayName:         cand.DisplayName,
			TaskSkillMatchCount: cand.TaskSkillMatchCount,
			MatchedTaskSkills:   cand.MatchedTaskSkills,
			TaskSkillRatingAvg:  cand.TaskSkillRatingAvg,
			CurrentWorkload:     cand.CurrentWorkload,
			CapacityScore:       cand.CapacityScore,
			TotalCompletedCount: cand.TotalCompletedCount,
			DiversityOfTasks:    cand.DiversityOfTasks,
			LastCompletedAt:     cand.LastCompletedAt,
		})
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// parseOrdering reads the model reply as a JSON array of {id, reason} pairs,
// tolerating a markdown code fence around it.
func parseOrdering(content string) ([]mediator.RankedCandidate, error) {
	content = strings.TrimSpace(content)
	if after, ok := strings.CutPrefix(content, "```json"); ok {
		content = after
	} else if after, ok := strings.CutPrefix(content, "```"); ok {
		content = after
	}
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	content = strings.TrimSpace(content)

	var items []rankedItem
	if err := json.Unmarshal([]byte(content), &items); err != nil {
		return nil, fmt.Errorf("malformed ranking response: %w", err)
	}
	if len(items) == 0 {
		return nil, errors.New("empty ranking response")
	}

	out := make([]mediator.RankedCandidate, 0, len(items))
	for _, it := range items {
		out = append(out, mediator.RankedCandidate{ID: it.ID, Reason: it.Reason})
	}
	return out, nil
}
