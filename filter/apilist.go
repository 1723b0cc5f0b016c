package filter

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/Luna88k/msbuild/errors"
	"github.com/Luna88k/msbuild/symbol"
)

// APIList excludes symbols by documentation ID.
type APIList struct {
	obsolete
	ids map[string]bool
}

// ExcludeAPIs creates a filter that drops the symbols whose DocID is listed.
func ExcludeAPIs(docIDs ...string) *APIList {
	ids := make(map[string]bool, len(docIDs))
	for _, id := range docIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids[id] = true
		}
	}
	return &APIList{ids: ids}
}

// ReadAPIList parses a newline-separated list of documentation IDs. Blank
// lines and lines starting with '#' are ignored.
func ReadAPIList(r io.Reader) (*APIList, error) {
	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read API list")
	}
	return ExcludeAPIs(ids...), nil
}

// LoadAPIList reads an exclusion list from path.
func LoadAPIList(path string) (*APIList, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound, "API list %s", path)
		}
		return nil, errors.Wrapf(err, "failed to open API list %s", path)
	}
	defer f.Close()

	list, err := ReadAPIList(f)
	if err != nil {
		return nil, errors.WithDetailf(err, "path: %s", path)
	}
	return list, nil
}

// Len returns the number of listed IDs.
func (l *APIList) Len() int { return len(l.ids) }

// Include implements Filter. Members of an excluded type are excluded too.
func (l *APIList) Include(sym symbol.Symbol) bool {
	for s := sym; s != nil; {
		if l.ids[s.DocID()] {
			return false
		}
		c := s.ContainingType()
		if c == nil {
			break
		}
		s = c
	}
	return true
}
