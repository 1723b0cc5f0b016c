package surface

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/symbol"
	"github.com/Luna88k/msbuild/syntax"
)

// Header returns the metadata header lines for asm.
func Header(asm *symbol.Assembly) []string {
	return []string{"Assembly: " + asm.Name + " " + asm.Version}
}

// Render prints unit as source text, preceded by header comment lines.
func Render(unit *syntax.CompilationUnit, header []string) string {
	out := *unit
	out.Header = header
	return syntax.FormatUnit(&out)
}

// Write stores rendered output at path, creating parent directories.
func Write(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create directory %s", dir)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// CheckResult holds the outcome of comparing a fresh rendering with an
// existing surface file.
type CheckResult struct {
	UpToDate bool

	// Missing is set when the existing file does not exist.
	Missing bool

	// Diff is a human-readable line diff (-existing +generated).
	Diff string
}

// Compare checks generated against the file at existingPath. Header
// metadata lines are ignored so a version bump alone is not a change.
func Compare(generated, existingPath string) (*CheckResult, error) {
	existing, err := os.ReadFile(existingPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &CheckResult{Missing: true}, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", existingPath)
	}

	want, err := contentLines([]byte(generated))
	if err != nil {
		return nil, err
	}
	have, err := contentLines(existing)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan %s", existingPath)
	}

	diff := cmp.Diff(have, want, cmpopts.EquateEmpty())
	return &CheckResult{UpToDate: diff == "", Diff: diff}, nil
}

// contentLines splits content into lines, dropping the metadata comments
// that change between runs without changing the surface.
func contentLines(content []byte) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "// Assembly:") || strings.HasPrefix(trimmed, "// Generated:") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan surface")
	}

	// Leading and trailing blank lines carry no meaning once the header is gone
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
