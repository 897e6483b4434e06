package sysopen

import (
	"testing"
)

func TestLauncher(t *testing.T) {
	tests := []struct {
		name     string
		goos     string
		path     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "darwin uses open",
			goos:     "darwin",
			path:     "/tmp/notes.pdf",
			wantName: "open",
			wantArgs: []string{"/tmp/notes.pdf"},
		},
		{
			name:     "linux uses xdg-open",
			goos:     "linux",
			path:     "/tmp/notes.pdf",
			wantName: "xdg-open",
			wantArgs: []string{"/tmp/notes.pdf"},
		},
		{
			name:     "windows uses cmd start",
			goos:     "windows",
			path:     `C:\notes.pdf`,
			wantName: "cmd",
			wantArgs: []string{"/c", "start", "", `C:\notes.pdf`},
		},
		{
			name:    "unknown os is an error",
			goos:    "plan9",
			path:    "/tmp/notes.pdf",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, err := launcher(tt.goos, tt.path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("launcher() error = %v", err)
			}
			if name != tt.wantName {
				t.Errorf("name = %q, want %q", name, tt.wantName)
			}
			if len(args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tt.wantArgs)
			}
			for i := range args {
				if args[i] != tt.wantArgs[i] {
					t.Errorf("args[%d] = %q, want %q", i, args[i], tt.wantArgs[i])
				}
			}
		})
	}
}
