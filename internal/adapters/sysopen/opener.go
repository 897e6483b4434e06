package sysopen

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener implements ports.EditorOpener using the platform's default file
// handler. It is the fallback when no $EDITOR is configured, and handles
// non-text attachments (PDFs, images) better than a text editor would.
type Opener struct{}

// NewOpener creates a new system opener
func NewOpener() *Opener {
	return &Opener{}
}

// OpenFile opens a file with the platform's default application
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file with the platform's
// default application
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	name, args, err := launcher(runtime.GOOS, path)
	if err != nil {
		return nil, err
	}
	return exec.Command(name, args...), nil
}

// launcher maps an OS to its file-open command
func launcher(goos, path string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{path}, nil
	case "linux":
		return "xdg-open", []string{path}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", path}, nil
	default:
		return "", nil, fmt.Errorf("unsupported operating system: %s", goos)
	}
}
