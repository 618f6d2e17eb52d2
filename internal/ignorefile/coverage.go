package ignorefile

import (
	"errors"
	"fmt"
	"os"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/nao1215/wpkit/internal/model"
)

// Uncovered returns the paths, in input order, that no rule of the ignore
// file at ignorePath matches. Unlike the exact-line check used by append
// mode, this evaluates real gitignore semantics, so "cache/" covers
// "cache/a.tmp".
func Uncovered(ignorePath string, paths []string) ([]string, error) {
	if _, err := os.Stat(ignorePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("ignore file %s: %w", ignorePath, model.ErrNotFound)
		}
		return nil, fmt.Errorf("stat %s: %w: %w", ignorePath, model.ErrIO, err)
	}

	gi, err := ignore.CompileIgnoreFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w: %w", ignorePath, model.ErrRead, err)
	}

	var out []string
	for _, p := range paths {
		if !gi.MatchesPath(p) {
			out = append(out, p)
		}
	}
	return out, nil
}
