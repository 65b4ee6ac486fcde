package search

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

type item struct {
	name string
	code string
}

func (i item) SearchName() string { return i.name }
func (i item) SearchCode() string { return i.code }

var catalog = []item{
	{"Brown Rice", "BR1"},
	{"Rice", "RC1"},
	{"Corn", "CN1"},
	{"Licorice", "LC1"},
	{"Red Onion", "RO1"},
	{"Rice Flour", "RF1"},
}

func names(rs []item) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.name
	}
	return out
}

func TestSearchPrefixOutranksSubstring(t *testing.T) {
	res, err := Search(catalog, "rice", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// prefix matches (Rice, Rice Flour) in input order, then substring-only
	// matches (Brown Rice, Licorice) in input order
	want := []string{"Rice", "Rice Flour", "Brown Rice", "Licorice"}
	if got := names(res.Content); !reflect.DeepEqual(got, want) {
		t.Fatalf("ranking mismatch: got %v, want %v", got, want)
	}
	if res.Page.TotalElements != 4 || res.Page.TotalPages != 1 {
		t.Fatalf("unexpected page meta: %+v", res.Page)
	}
}

func TestSearchMatchesCode(t *testing.T) {
	res, err := Search(catalog, "rc1", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(res.Content); !reflect.DeepEqual(got, []string{"Rice"}) {
		t.Fatalf("expected code prefix match, got %v", got)
	}
}

func TestSearchEmptyTermMatchesAllInOrder(t *testing.T) {
	res, err := Search(catalog, "   ", 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(res.Content); !reflect.DeepEqual(got, names(catalog)) {
		t.Fatalf("empty term must preserve input order, got %v", got)
	}
}

func TestSearchPaginationPartition(t *testing.T) {
	// pages must partition the ranked set: full coverage, no overlap
	for _, size := range []int{1, 2, 3, 5} {
		first, err := Search(catalog, "r", 0, size)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen := map[string]bool{}
		collected := 0
		for page := 0; page < first.Page.TotalPages; page++ {
			res, err := Search(catalog, "r", page, size)
			if err != nil {
				t.Fatalf("page %d: unexpected error: %v", page, err)
			}
			for _, r := range res.Content {
				if seen[r.name] {
					t.Fatalf("size %d: %q appeared on two pages", size, r.name)
				}
				seen[r.name] = true
			}
			collected += len(res.Content)
		}
		if collected != first.Page.TotalElements {
			t.Fatalf("size %d: pages sum to %d, want %d", size, collected, first.Page.TotalElements)
		}
	}
}

func TestSearchPageBeyondRange(t *testing.T) {
	res, err := Search(catalog, "rice", 99, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Content) != 0 {
		t.Fatalf("expected empty content, got %v", names(res.Content))
	}
	if res.Page.TotalPages != 2 || res.Page.TotalElements != 4 {
		t.Fatalf("out-of-range page must keep correct totals: %+v", res.Page)
	}
}

func TestSearchEmptyInput(t *testing.T) {
	res, err := Search([]item{}, "rice", 0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Content) != 0 || res.Page.TotalElements != 0 || res.Page.TotalPages != 0 {
		t.Fatalf("unexpected result on empty input: %+v", res)
	}
}

func TestSearchIdempotent(t *testing.T) {
	a, err := Search(catalog, "Rice", 0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Search(catalog, "Rice", 0, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical calls diverged: %+v vs %+v", a, b)
	}
}

func TestSearchRankingProperty(t *testing.T) {
	// no substring-only match may ever precede a prefix match
	res, err := Search(catalog, "r", 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seenSubstr := false
	for _, r := range res.Content {
		name := strings.ToLower(r.name)
		code := strings.ToLower(r.code)
		isPrefix := strings.HasPrefix(name, "r") || strings.HasPrefix(code, "r")
		if !isPrefix {
			seenSubstr = true
		} else if seenSubstr {
			t.Fatalf("prefix match %q after substring-only match", r.name)
		}
	}
}

func TestSearchContractViolations(t *testing.T) {
	if _, err := Search(catalog, "x", -1, 10); !errors.Is(err, ErrInvalidPage) {
		t.Fatalf("expected ErrInvalidPage, got %v", err)
	}
	if _, err := Search(catalog, "x", 0, 0); !errors.Is(err, ErrInvalidPageSize) {
		t.Fatalf("expected ErrInvalidPageSize, got %v", err)
	}
	if _, err := Search(catalog, "x", 0, -5); !errors.Is(err, ErrInvalidPageSize) {
		t.Fatalf("expected ErrInvalidPageSize, got %v", err)
	}
}
