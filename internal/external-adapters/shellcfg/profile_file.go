// Package shellcfg provides idempotent edits to shell startup files.
package shellcfg

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Markers delimiting the managed block. Everything between them belongs to
// this tool and may be rewritten on upgrade; a second run replaces the block
// instead of appending a duplicate.
const (
	beginMarker = "# >>> jetprov cuda toolchain >>>"
	endMarker   = "# <<< jetprov cuda toolchain <<<"
)

// ProfileFile manages a marker-delimited export block inside one shell
// startup file (typically ~/.bashrc).
type ProfileFile struct {
	path string
}

// NewProfileFile creates a profile editor for the given startup file
func NewProfileFile(path string) *ProfileFile {
	return &ProfileFile{path: path}
}

// Path returns the managed startup file path
func (p *ProfileFile) Path() string { return p.path }

// Writable reports whether the startup file can be modified: the file itself
// must be openable for append, or, if absent, its directory must accept a
// new file. Used by preflight; nothing is persisted.
func (p *ProfileFile) Writable() error {
	f, err := os.OpenFile(p.path, os.O_WRONLY|os.O_APPEND, 0)
	if err == nil {
		return f.Close()
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("shell profile not writable: %w", err)
	}

	tmp, terr := os.CreateTemp(filepath.Dir(p.path), ".jetprov-probe*")
	if terr != nil {
		return fmt.Errorf("shell profile directory not writable: %w", terr)
	}
	name := tmp.Name()
	_ = tmp.Close()
	return os.Remove(name)
}

// EnsureExports upserts the managed block containing the given export lines.
// It reports false without writing when the block is already present with
// identical content, or when the profile already puts pathDir on PATH
// through a hand-written export outside the block.
func (p *ProfileFile) EnsureExports(lines []string, pathDir string) (bool, error) {
	content, err := os.ReadFile(p.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("failed to read shell profile: %w", err)
	}
	text := string(content)

	block := beginMarker + "\n" + strings.Join(lines, "\n") + "\n" + endMarker

	if start, end, found, ferr := findBlock(text); ferr != nil {
		return false, ferr
	} else if found {
		if text[start:end] == block {
			return false, nil
		}
		return true, p.write(text[:start] + block + text[end:])
	}

	if exportsPathDir(p.path, text, pathDir) {
		return false, nil
	}

	updated := text
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	updated += "\n" + block + "\n"
	return true, p.write(updated)
}

func findBlock(text string) (start, end int, found bool, err error) {
	start = strings.Index(text, beginMarker)
	if start < 0 {
		return 0, 0, false, nil
	}
	rel := strings.Index(text[start:], endMarker)
	if rel < 0 {
		return 0, 0, false, fmt.Errorf("shell profile has an unterminated %q block; fix it by hand", beginMarker)
	}
	return start, start + rel + len(endMarker), true, nil
}

// exportsPathDir reports whether the profile already extends PATH with
// pathDir outside the managed block. The profile is parsed as shell so a
// mention of the directory in a comment or string does not count; if the
// file is not valid shell the check degrades to a substring match.
func exportsPathDir(name, text, pathDir string) bool {
	parser := syntax.NewParser()
	file, err := parser.Parse(strings.NewReader(text), name)
	if err != nil {
		return strings.Contains(text, pathDir)
	}

	printer := syntax.NewPrinter()
	found := false
	syntax.Walk(file, func(node syntax.Node) bool {
		if found {
			return false
		}
		assign, ok := node.(*syntax.Assign)
		if !ok || assign.Name == nil || assign.Value == nil {
			return true
		}
		if assign.Name.Value != "PATH" {
			return true
		}
		var buf bytes.Buffer
		if perr := printer.Print(&buf, assign.Value); perr == nil {
			if strings.Contains(buf.String(), pathDir) {
				found = true
			}
		}
		return !found
	})
	return found
}

// write replaces the profile atomically: temp file in the same directory,
// explicit close check, then rename. Mode is preserved for existing files.
func (p *ProfileFile) write(content string) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(p.path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(p.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(p.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write shell profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to flush shell profile: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set shell profile mode: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace shell profile: %w", err)
	}
	return nil
}
