package claudecli

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"flowboard/internal/domain"
	"flowboard/internal/ports"
)

// Planner implements ports.PlanService using the Claude Code CLI
type Planner struct {
	model string
}

// Ensure Planner implements PlanService
var _ ports.PlanService = (*Planner)(nil)

// Option configures the Planner
type Option func(*Planner)

// WithModel sets the Claude model to use
func WithModel(model string) Option {
	return func(p *Planner) {
		p.model = model
	}
}

// NewPlanner creates a new Claude CLI planner
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{
		model: "haiku", // Default to haiku for speed
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// claudeResponse represents the JSON output from claude CLI
type claudeResponse struct {
	Type         string  `json:"type"`
	Subtype      string  `json:"subtype"`
	CostUSD      float64 `json:"cost_usd"`
	DurationMS   int     `json:"duration_ms"`
	DurationAPI  int     `json:"duration_api_ms"`
	IsError      bool    `json:"is_error"`
	NumTurns     int     `json:"num_turns"`
	Result       string  `json:"result"`
	SessionID    string  `json:"session_id"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

// proposalJSON represents the expected JSON format for a sub-step proposal
type proposalJSON struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// taskJSON represents the expected JSON format for a generated task
type taskJSON struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Steps       []struct {
		ID          string   `json:"id,omitempty"`
		Title       string   `json:"title"`
		Description string   `json:"description,omitempty"`
		LeadsTo     []string `json:"leadsTo,omitempty"`
	} `json:"steps"`
}

func (p *Planner) run(prompt string) (string, error) {
	args := []string{
		"-p", prompt,
		"--output-format", "json",
		"--model", p.model,
	}

	cmd := exec.Command("claude", args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("claude CLI error: %s", string(exitErr.Stderr))
		}
		return "", fmt.Errorf("claude CLI error: %w", err)
	}

	var response claudeResponse
	if err := json.Unmarshal(output, &response); err != nil {
		return "", fmt.Errorf("failed to parse claude response: %w", err)
	}
	if response.IsError {
		return "", fmt.Errorf("claude returned an error: %s", response.Result)
	}
	return response.Result, nil
}

// ProposeSubSteps asks the service for new sub-steps for the task
func (p *Planner) ProposeSubSteps(task *domain.Task, count int) ([]domain.Proposal, error) {
	result, err := p.run(buildProposalPrompt(task, count))
	if err != nil {
		return nil, err
	}
	return parseProposals(result)
}

func buildProposalPrompt(task *domain.Task, count int) string {
	var existing strings.Builder
	for _, n := range task.Nodes {
		existing.WriteString(fmt.Sprintf("- %s (%s)\n", n.Label, n.Status))
	}
	if existing.Len() == 0 {
		existing.WriteString("(none yet)\n")
	}

	return fmt.Sprintf(`You are helping plan the task %q.

Task description:
%s

Existing sub-steps:
%s

Suggest up to %d NEW sub-steps that move this task forward. Do not repeat
existing steps.

Return ONLY a JSON array (no markdown, no code blocks):
[
  {"title": "Short imperative step name", "description": "One sentence on what this step covers"}
]`, task.Title, task.Description, existing.String(), count)
}

// parseProposals extracts the proposals JSON array from the response text
func parseProposals(result string) ([]domain.Proposal, error) {
	jsonStr, err := extractJSONArray(result)
	if err != nil {
		return nil, err
	}

	var raw []proposalJSON
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse proposals JSON: %w (json: %s)", err, jsonStr)
	}

	var proposals []domain.Proposal
	for _, r := range raw {
		if r.Title == "" {
			continue // Skip invalid entries
		}
		proposals = append(proposals, domain.Proposal{
			Title:       r.Title,
			Description: r.Description,
		})
	}

	if len(proposals) == 0 {
		return nil, fmt.Errorf("no valid proposals found in response")
	}
	return proposals, nil
}

// GenerateTask builds a complete task from a free-form prompt
func (p *Planner) GenerateTask(prompt string) (*domain.Task, error) {
	result, err := p.run(buildGeneratePrompt(prompt))
	if err != nil {
		return nil, err
	}
	return parseTask(result)
}

func buildGeneratePrompt(prompt string) string {
	return fmt.Sprintf(`Plan the following task as a workflow of sequential sub-steps:

%s

Each step may lead to one or more later steps; reference them by the "id"
field. Keep the graph acyclic.

Return ONLY a JSON object (no markdown, no code blocks):
{
  "title": "Task title",
  "description": "One paragraph summary",
  "steps": [
    {"id": "s1", "title": "First step", "description": "What it covers", "leadsTo": ["s2"]},
    {"id": "s2", "title": "Second step", "description": "What it covers", "leadsTo": []}
  ]
}`, prompt)
}

// RegenerateTask hands the current task over as plain data and parses a
// revised task out of the service's response
func (p *Planner) RegenerateTask(current *domain.Task, instructions string) (*domain.Task, error) {
	currentJSON, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode current task: %w", err)
	}

	prompt := fmt.Sprintf(`Revise this task's workflow.

Current task:
%s

Instructions:
%s

Keep the "id" of every step that survives the revision so references stay
stable. Return ONLY a JSON object in the same shape as the prompt above:
{"title": "...", "description": "...", "steps": [{"id": "...", "title": "...", "description": "...", "leadsTo": ["..."]}]}`,
		string(currentJSON), instructions)

	result, err := p.run(prompt)
	if err != nil {
		return nil, err
	}
	return parseTask(result)
}

// parseTask converts the service's task JSON into a domain task.
// Steps without ids get fresh ones; dangling or self leadsTo references are
// dropped by the graph's own integrity rules.
func parseTask(result string) (*domain.Task, error) {
	jsonStr, err := extractJSONObject(result)
	if err != nil {
		return nil, err
	}

	var raw taskJSON
	if err := json.Unmarshal([]byte(jsonStr), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse task JSON: %w (json: %s)", err, jsonStr)
	}
	if raw.Title == "" || len(raw.Steps) == 0 {
		return nil, fmt.Errorf("no valid task found in response")
	}

	task := domain.NewTask(raw.Title, raw.Description)

	// First pass: create nodes, mapping the service's ids to real node ids.
	idMap := make(map[string]string, len(raw.Steps))
	for _, s := range raw.Steps {
		if s.Title == "" {
			continue
		}
		n := task.AddNode(s.Title)
		if s.Description != "" {
			n.ActionItems = []domain.ActionItem{{Text: s.Description}}
		}
		if s.ID != "" {
			idMap[s.ID] = n.ID
		}
	}
	if len(task.Nodes) == 0 {
		return nil, fmt.Errorf("no valid steps found in response")
	}

	// Second pass: wire edges through AddEdge so integrity rules apply.
	nodeIdx := 0
	for _, s := range raw.Steps {
		if s.Title == "" {
			continue
		}
		source := task.Nodes[nodeIdx].ID
		nodeIdx++
		for _, ref := range s.LeadsTo {
			target, ok := idMap[ref]
			if !ok {
				continue
			}
			task.AddEdge(source, target)
		}
	}

	task.AutoLayout(1200)
	return task, nil
}

// IsAvailable checks if the claude CLI is installed and accessible
func (p *Planner) IsAvailable() bool {
	_, err := exec.LookPath("claude")
	return err == nil
}

var codeBlockRe = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")

// extractJSONArray finds a JSON array in the response text, stripping
// markdown code fences and surrounding prose
func extractJSONArray(result string) (string, error) {
	result = strings.TrimSpace(result)
	if matches := codeBlockRe.FindStringSubmatch(result); len(matches) > 1 {
		result = strings.TrimSpace(matches[1])
	}

	start := strings.Index(result, "[")
	end := strings.LastIndex(result, "]")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no valid JSON array found in response")
	}
	return result[start : end+1], nil
}

// extractJSONObject finds a JSON object in the response text
func extractJSONObject(result string) (string, error) {
	result = strings.TrimSpace(result)
	if matches := codeBlockRe.FindStringSubmatch(result); len(matches) > 1 {
		result = strings.TrimSpace(matches[1])
	}

	start := strings.Index(result, "{")
	end := strings.LastIndex(result, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no valid JSON object found in response")
	}
	return result[start : end+1], nil
}
