// Package search implements the ranked, paginated client-side search shared
// by every list-like view. Ranking is a stable two-tier order: records whose
// name or code starts with the term outrank records that merely contain it.
package search

import (
	"errors"
	"strings"
)

// Record is anything searchable by a primary name and a secondary code.
type Record interface {
	SearchName() string
	SearchCode() string
}

// PageMeta describes the page a Result carries.
type PageMeta struct {
	Size          int `json:"size"`
	Number        int `json:"number"`
	TotalElements int `json:"total_elements"`
	TotalPages    int `json:"total_pages"`
}

// Result is a single page of ranked matches. Recomputed on every call,
// never cached.
type Result[T Record] struct {
	Content []T      `json:"content"`
	Page    PageMeta `json:"page"`
}

var (
	ErrInvalidPage     = errors.New("search: page must be >= 0")
	ErrInvalidPageSize = errors.New("search: page size must be > 0")
)

// Search ranks records against term and returns the requested page.
//
// The term is trimmed and lower-cased; an empty term matches everything in
// input order. Otherwise records split into two buckets, each keeping input
// order: prefix matches on name or code first, then substring-only matches.
// A page past the end yields empty content with correct totals. Negative
// page or non-positive size is a programmer error and returns immediately.
func Search[T Record](records []T, term string, page, size int) (Result[T], error) {
	if page < 0 {
		return Result[T]{}, ErrInvalidPage
	}
	if size <= 0 {
		return Result[T]{}, ErrInvalidPageSize
	}

	q := strings.ToLower(strings.TrimSpace(term))

	var ranked []T
	if q == "" {
		ranked = records
	} else {
		prefix := make([]T, 0, len(records))
		var substr []T
		for _, r := range records {
			name := strings.ToLower(r.SearchName())
			code := strings.ToLower(r.SearchCode())
			switch {
			case strings.HasPrefix(name, q) || strings.HasPrefix(code, q):
				prefix = append(prefix, r)
			case strings.Contains(name, q) || strings.Contains(code, q):
				substr = append(substr, r)
			}
		}
		ranked = append(prefix, substr...)
	}

	total := len(ranked)
	totalPages := (total + size - 1) / size

	start := page * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	content := make([]T, end-start)
	copy(content, ranked[start:end])

	return Result[T]{
		Content: content,
		Page: PageMeta{
			Size:          size,
			Number:        page,
			TotalElements: total,
			TotalPages:    totalPages,
		},
	}, nil
}
