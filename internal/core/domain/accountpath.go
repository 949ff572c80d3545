package domain

import (
	"sort"
	"strings"

	"github.com/ale-project/ale_backend/internal/apperrors"
)

// MaxAccountDepth is the maximum number of colon-delimited segments in an
// account path.
const MaxAccountDepth = 3

// PathSeparator delimits account hierarchy segments, e.g. "Assets:Bank".
const PathSeparator = ":"

// ParseAccountPath validates an account path given either as a
// colon-delimited string or a pre-split segment list, and returns the
// canonical joined form.
func ParseAccountPath(segments ...string) (string, error) {
	if len(segments) == 1 {
		segments = strings.Split(segments[0], PathSeparator)
	}
	if len(segments) == 0 || (len(segments) == 1 && segments[0] == "") {
		return "", apperrors.New(apperrors.ValidationError, "account path must not be empty")
	}
	if len(segments) > MaxAccountDepth {
		return "", apperrors.Newf(apperrors.ValidationError,
			"account path is too deep (maximum %d): %s", MaxAccountDepth, strings.Join(segments, PathSeparator))
	}
	return strings.Join(segments, PathSeparator), nil
}

// AncestorClosure expands a path into itself plus all its prefixes:
// "A:B:C" yields ["A", "A:B", "A:B:C"].
func AncestorClosure(path string) []string {
	segments := strings.Split(path, PathSeparator)
	closure := make([]string, 0, len(segments))
	for i := range segments {
		closure = append(closure, strings.Join(segments[:i+1], PathSeparator))
	}
	return closure
}

// ExpandAccountPaths returns the deduplicated union of ancestor closures
// over all given paths, sorted. This is what makes a balance query for
// "Assets" aggregate "Assets:Receivable" as well.
func ExpandAccountPaths(paths []string) []string {
	seen := make(map[string]struct{})
	result := make([]string, 0, len(paths))
	for _, path := range paths {
		for _, prefix := range AncestorClosure(path) {
			if _, ok := seen[prefix]; !ok {
				seen[prefix] = struct{}{}
				result = append(result, prefix)
			}
		}
	}
	sort.Strings(result)
	return result
}
