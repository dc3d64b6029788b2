package benchmark

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
)

// Target is an external benchmark process. A relative Path containing a
// separator is resolved against Dir; a bare name is looked up in PATH.
type Target struct {
	Name string
	Path string
	Args []string
	Dir  string
}

func (t Target) String() string {
	return strings.TrimSpace(t.Path + " " + strings.Join(t.Args, " "))
}

// Runner defines the interface for running benchmark processes.
type Runner interface {
	Run(ctx context.Context, target Target) (string, error)
}

// ProcessRunner implements Runner with os/exec.
type ProcessRunner struct{}

func NewProcessRunner() *ProcessRunner {
	return &ProcessRunner{}
}

// Run executes the target to completion and returns its combined stdout and
// stderr. There is no deadline unless ctx carries one.
func (r *ProcessRunner) Run(ctx context.Context, target Target) (string, error) {
	path, err := resolve(target)
	if err != nil {
		return "", &ProcessError{Name: target.Name, Path: target.Path, Err: notFound(err)}
	}

	cmd := exec.CommandContext(ctx, path, target.Args...)
	cmd.Dir = target.Dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = notFound(err)
		}
		return out.String(), &ProcessError{Name: target.Name, Path: target.Path, Output: out.String(), Err: err}
	}

	return out.String(), nil
}

func resolve(target Target) (string, error) {
	p := target.Path
	if target.Dir != "" && !filepath.IsAbs(p) && strings.ContainsRune(p, filepath.Separator) {
		p = filepath.Join(target.Dir, p)
	}
	found, err := exec.LookPath(p)
	if err != nil {
		return "", err
	}
	return filepath.Abs(found)
}

func notFound(err error) error {
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}
