package commands

import (
	"context"
	"testing"
)

func TestConnectStepsCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		taskID   string
		sourceID string
		targetID string
		wantErr  bool
		errMsg   string
	}{
		{name: "valid", taskID: "t1", sourceID: "1", targetID: "2", wantErr: false},
		{name: "empty task ID", taskID: "", sourceID: "1", targetID: "2", wantErr: true, errMsg: "task ID is required"},
		{name: "empty source", taskID: "t1", sourceID: "", targetID: "2", wantErr: true, errMsg: "source ID is required"},
		{name: "empty target", taskID: "t1", sourceID: "1", targetID: "", wantErr: true, errMsg: "target ID is required"},
		{name: "self loop", taskID: "t1", sourceID: "1", targetID: "1", wantErr: true, errMsg: "cannot lead to itself"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &ConnectStepsCommand{TaskID: tt.taskID, SourceID: tt.sourceID, TargetID: tt.targetID}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConnectStepsCommand_Execute(t *testing.T) {
	task := graphTask("1", "2")
	repo := newMemRepo(task)

	result, err := NewConnectStepsCommand(repo, task.ID, "1", "2").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Created {
		t.Fatal("expected an edge to be created")
	}

	stored, _ := repo.Load(task.ID)
	if !stored.HasEdge("1", "2") {
		t.Error("edge not persisted")
	}

	// Connecting again is reported as a no-op, not an error.
	result, err = NewConnectStepsCommand(repo, task.ID, "1", "2").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created {
		t.Error("duplicate edge reported as created")
	}
}

func TestConnectStepsCommand_MissingStepIsNoOp(t *testing.T) {
	task := graphTask("1")
	repo := newMemRepo(task)

	result, err := NewConnectStepsCommand(repo, task.ID, "1", "ghost").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created {
		t.Error("edge to a missing step reported as created")
	}
}

func TestDisconnectStepsCommand_Execute(t *testing.T) {
	task := graphTask("1", "2")
	task.AddEdge("1", "2")
	repo := newMemRepo(task)

	result, err := NewDisconnectStepsCommand(repo, task.ID, "1", "2").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Removed {
		t.Fatal("expected the edge to be removed")
	}

	stored, _ := repo.Load(task.ID)
	if stored.HasEdge("1", "2") {
		t.Error("edge still persisted after disconnect")
	}
}
