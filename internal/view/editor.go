// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of ppadmin

package view

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/ppanel/ppadmin/internal/dao"
	"github.com/wI2L/jsondiff"
)

// Editor errors
var (
	ErrEditorCancelled = errors.New("editor cancelled")
	ErrNoChanges       = errors.New("no changes detected")
)

// Suspender pauses the terminal while an external program owns it.
type Suspender interface {
	Suspend(f func()) bool
}

// ApplyFunc stores an edited record.
type ApplyFunc func(ctx context.Context, obj map[string]any) error

// EditSession edits one JSON record in an external editor.
type EditSession struct {
	Title    string
	Original map[string]any
	TempFile string
	ErrorMsg string

	// Editor overrides the editor command.
	Editor string

	submitted map[string]any
}

// NewEditSession creates a new edit session.
func NewEditSession(title string, original map[string]any) *EditSession {
	if original == nil {
		original = make(map[string]any)
	}
	return &EditSession{
		Title:    title,
		Original: original,
	}
}

// StartEdit writes the record to a temp file, runs the editor with the
// terminal suspended and returns the edited record.
func (e *EditSession) StartEdit(s Suspender) (map[string]any, error) {
	if e.TempFile == "" {
		f, err := os.CreateTemp("", "ppadmin-edit-*.json")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
		e.TempFile = f.Name()
		_ = f.Close()
	}

	var buf bytes.Buffer
	if err := e.write(&buf); err != nil {
		return nil, err
	}
	if err := os.WriteFile(e.TempFile, buf.Bytes(), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}

	exitCode, err := e.spawnEditor(s)
	if err != nil {
		return nil, fmt.Errorf("editor failed: %w", err)
	}
	if exitCode != 0 {
		return nil, ErrEditorCancelled
	}

	content, err := os.ReadFile(e.TempFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}

	return ParseEdited(content)
}

// ParseEdited strips the comment header of an edited file and decodes it.
func ParseEdited(content []byte) (map[string]any, error) {
	content = stripErrorComment(content)
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, ErrEditorCancelled
	}

	var modified map[string]any
	if err := json.Unmarshal(content, &modified); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	return modified, nil
}

func (e *EditSession) spawnEditor(s Suspender) (int, error) {
	argv := strings.Fields(e.Editor)
	if len(argv) == 0 {
		argv = strings.Fields(getEditor())
	}
	argv = append(argv, e.TempFile)

	var exitCode int
	suspended := s.Suspend(func() {
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
			} else {
				exitCode = 1
			}
		}
	})
	if !suspended {
		return 1, errors.New("failed to suspend application")
	}

	return exitCode, nil
}

// write renders the record with a comment header. A failed apply shows its
// error on top.
func (e *EditSession) write(w io.Writer) error {
	var buf bytes.Buffer
	if e.ErrorMsg != "" {
		buf.WriteString("// ERROR: " + e.ErrorMsg + "\n")
		buf.WriteString("// Fix the issue below and save, or save without changes to cancel.\n")
	} else {
		buf.WriteString("// Editing " + e.Title + ". Save and quit to apply.\n")
	}
	buf.WriteString("// ---\n\n")

	obj := e.submitted
	if obj == nil {
		obj = e.Original
	}
	raw, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	buf.Write(raw)
	buf.WriteString("\n")

	_, err = w.Write(buf.Bytes())
	return err
}

// Run loops editor and apply until the record is stored, the user cancels or
// saves without changes. Apply errors reopen the editor with the error shown.
func (e *EditSession) Run(ctx context.Context, s Suspender, apply ApplyFunc, timeout time.Duration) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		modified, err := e.StartEdit(s)
		if err != nil {
			return err
		}

		base := e.submitted
		if base == nil {
			base = e.Original
		}
		if _, err := GeneratePatch(base, modified); err != nil {
			if errors.Is(err, ErrNoChanges) && e.ErrorMsg != "" {
				return ErrEditorCancelled
			}
			return err
		}

		p, err := GeneratePatch(e.Original, modified)
		if err != nil {
			return err
		}
		obj := MergeChanges(e.Original, modified, ChangedFields(p))

		actx, cancel := context.WithTimeout(ctx, timeout)
		err = apply(actx, obj)
		cancel()
		if err == nil {
			return nil
		}
		e.ErrorMsg = err.Error()
		e.submitted = modified
	}
}

// Cleanup removes the temporary file.
func (e *EditSession) Cleanup() {
	if e.TempFile != "" {
		_ = os.Remove(e.TempFile)
		e.TempFile = ""
	}
}

// GeneratePatch diffs two records. It returns ErrNoChanges when both match.
func GeneratePatch(original, modified map[string]any) (jsondiff.Patch, error) {
	patch, err := jsondiff.Compare(original, modified)
	if err != nil {
		return nil, fmt.Errorf("failed to generate patch: %w", err)
	}
	if len(patch) == 0 {
		return nil, ErrNoChanges
	}

	return patch, nil
}

// ChangedFields returns the top level fields a patch touches, sorted.
func ChangedFields(p jsondiff.Patch) []string {
	set := make(map[string]struct{}, len(p))
	for _, op := range p {
		for _, path := range []string{string(op.Path), string(op.From)} {
			if f := topField(path); f != "" {
				set[f] = struct{}{}
			}
		}
	}
	ff := make([]string, 0, len(set))
	for f := range set {
		ff = append(ff, f)
	}
	sort.Strings(ff)

	return ff
}

func topField(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return ""
	}
	f, _, _ := strings.Cut(pointer, "/")
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(f)
}

// MergeChanges overlays the changed fields of modified onto a copy of
// original. Fields removed in modified are dropped. The record id never
// changes.
func MergeChanges(original, modified map[string]any, fields []string) map[string]any {
	out := make(map[string]any, len(original))
	for k, v := range original {
		out[k] = v
	}
	for _, f := range fields {
		if v, ok := modified[f]; ok {
			out[f] = v
			continue
		}
		delete(out, f)
	}
	if id, ok := original["id"]; ok {
		out["id"] = id
	}

	return out
}

// getEditor returns the editor command to use.
// Checks $EDITOR, then $VISUAL, then falls back to vim or nano.
func getEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	if _, err := exec.LookPath("vim"); err == nil {
		return "vim"
	}
	return "nano"
}

// stripErrorComment removes the comment block from the top of content.
func stripErrorComment(content []byte) []byte {
	lines := bytes.Split(content, []byte("\n"))
	startIdx := 0
	for i, line := range lines {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		if bytes.HasPrefix(trimmed, []byte("//")) {
			startIdx = i + 1
			continue
		}
		break
	}
	if startIdx > 0 && startIdx <= len(lines) {
		return bytes.Join(lines[startIdx:], []byte("\n"))
	}

	return content
}

// EditRecord opens a record in the external editor and stores the result.
func (a *App) EditRecord(ctx context.Context, acc dao.Accessor, id int64) error {
	fctx, cancel := context.WithTimeout(ctx, a.apiTimeout())
	raw, err := acc.Raw(fctx, id)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to fetch %s %d: %w", acc.ResourceID(), id, err)
	}

	s := NewEditSession(fmt.Sprintf("%s %d", acc.ResourceID(), id), raw)
	defer s.Cleanup()
	err = s.Run(ctx, a.Application, acc.Update, a.apiTimeout())

	return a.editOutcome(err, fmt.Sprintf("Updated %s %d", acc.ResourceID(), id))
}

// CreateRecord opens a record template in the external editor and creates
// the result.
func (a *App) CreateRecord(ctx context.Context, acc dao.Accessor) error {
	s := NewEditSession("new "+acc.ResourceID().String(), acc.Template())
	defer s.Cleanup()
	err := s.Run(ctx, a.Application, acc.Create, a.apiTimeout())

	return a.editOutcome(err, "Created "+acc.ResourceID().String())
}

func (a *App) editConfig(section string) {
	f := a.Factory()
	if f == nil {
		a.flash.Errf("factory not initialized")
		return
	}
	sc := dao.NewSystemConfig(f)

	ctx, cancel := context.WithTimeout(a.ctx, a.apiTimeout())
	raw, err := sc.Get(ctx, section)
	cancel()
	if err != nil {
		a.flash.Err(fmt.Errorf("failed to fetch %s config: %w", section, err))
		return
	}

	s := NewEditSession(section+" config", raw)
	defer s.Cleanup()
	err = s.Run(a.ctx, a.Application, func(ctx context.Context, obj map[string]any) error {
		return sc.Update(ctx, section, obj)
	}, a.apiTimeout())
	if err := a.editOutcome(err, "Updated "+section+" config"); err != nil {
		a.flash.Err(err)
	}
}

func (a *App) testSMTP(email string) {
	f := a.Factory()
	if f == nil {
		a.flash.Errf("factory not initialized")
		return
	}
	ctx, cancel := context.WithTimeout(a.ctx, a.apiTimeout())
	defer cancel()
	if err := dao.NewSystemConfig(f).TestSMTP(ctx, email); err != nil {
		a.log.Warn("smtp test failed", "err", err)
		a.flash.Err(err)
		return
	}
	a.flash.Infof("Test email sent to %s", email)
}

func (a *App) editOutcome(err error, done string) error {
	switch {
	case errors.Is(err, ErrEditorCancelled):
		a.flash.Info("Edit cancelled")
	case errors.Is(err, ErrNoChanges):
		a.flash.Info("No changes")
	case err != nil:
		return err
	default:
		a.log.Info(done)
		a.flash.Info(done)
	}

	return nil
}
