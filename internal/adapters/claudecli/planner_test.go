package claudecli

import (
	"testing"
)

func TestParseProposals(t *testing.T) {
	tests := []struct {
		name      string
		result    string
		wantCount int
		wantFirst string // first proposal title
		wantErr   bool
	}{
		{
			name: "valid JSON array",
			result: `[
				{"title": "Research competitors", "description": "Survey the market"},
				{"title": "Draft outline"}
			]`,
			wantCount: 2,
			wantFirst: "Research competitors",
			wantErr:   false,
		},
		{
			name:      "JSON in markdown code block",
			result:    "```json\n[{\"title\": \"Write tests\", \"description\": \"Cover the graph ops\"}]\n```",
			wantCount: 1,
			wantFirst: "Write tests",
			wantErr:   false,
		},
		{
			name:      "JSON with surrounding text",
			result:    "Here are my suggestions:\n[{\"title\": \"Ship it\", \"description\": \"Cut the release\"}]\nLet me know.",
			wantCount: 1,
			wantFirst: "Ship it",
			wantErr:   false,
		},
		{
			name:      "entries without a title are skipped",
			result:    `[{"description": "orphan"}, {"title": "Valid step"}]`,
			wantCount: 1,
			wantFirst: "Valid step",
			wantErr:   false,
		},
		{
			name:    "no JSON array found",
			result:  "This is just plain text without any JSON",
			wantErr: true,
		},
		{
			name:    "invalid JSON",
			result:  `[{"title": }]`,
			wantErr: true,
		},
		{
			name:    "empty array",
			result:  `[]`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proposals, err := parseProposals(tt.result)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %d proposals", len(proposals))
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(proposals) != tt.wantCount {
				t.Errorf("got %d proposals, want %d", len(proposals), tt.wantCount)
			}
			if proposals[0].Title != tt.wantFirst {
				t.Errorf("first title = %q, want %q", proposals[0].Title, tt.wantFirst)
			}
		})
	}
}

func TestParseTask(t *testing.T) {
	result := `{
		"title": "Launch the product",
		"description": "From research to release",
		"steps": [
			{"id": "s1", "title": "Research", "leadsTo": ["s2", "s3"]},
			{"id": "s2", "title": "Build", "leadsTo": ["s3"]},
			{"id": "s3", "title": "Release", "leadsTo": ["ghost", "s3"]}
		]
	}`

	task, err := parseTask(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.Title != "Launch the product" {
		t.Errorf("title = %q", task.Title)
	}
	if len(task.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(task.Nodes))
	}
	if len(task.Edges()) != 3 {
		t.Errorf("expected 3 edges (dangling and self refs dropped), got %d", len(task.Edges()))
	}

	// Generated tasks arrive pre-laid-out.
	if task.Nodes[0].Position == task.Nodes[2].Position {
		t.Error("expected distinct positions after layout")
	}
}

func TestParseTaskRejectsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		result string
	}{
		{name: "plain text", result: "no json here"},
		{name: "missing title", result: `{"steps": [{"title": "Step"}]}`},
		{name: "no steps", result: `{"title": "Empty"}`},
		{name: "steps without titles", result: `{"title": "Bad", "steps": [{"id": "s1"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseTask(tt.result); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
