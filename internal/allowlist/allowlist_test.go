package allowlist_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/raysh454/phishlens/internal/allowlist"
)

func TestRead_URLColumnOnly(t *testing.T) {
	t.Parallel()
	csv := "name,url,alias\nGoogle,https://www.google.com,google\nNaver,https://www.naver.com,naver\nEmpty,,x\n"
	s, err := allowlist.Read(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", s.Len())
	}
	if !s.Contains("https://www.google.com") {
		t.Error("expected exact match")
	}
}

func TestContains_IsExact(t *testing.T) {
	t.Parallel()
	s := allowlist.New("https://www.google.com")
	for _, u := range []string{"https://www.google.com/", "HTTPS://www.google.com", "www.google.com", " https://www.google.com"} {
		if s.Contains(u) {
			t.Errorf("Contains(%q) = true, want false", u)
		}
	}

	var nilSet *allowlist.Set
	if nilSet.Contains("x") || nilSet.Len() != 0 {
		t.Error("nil set should be empty")
	}
}

func TestRead_NoURLColumn(t *testing.T) {
	t.Parallel()
	if _, err := allowlist.Read(strings.NewReader("name\nx\n")); !errors.Is(err, allowlist.ErrNoURLColumn) {
		t.Errorf("expected ErrNoURLColumn, got %v", err)
	}
	if _, err := allowlist.Read(strings.NewReader("")); !errors.Is(err, allowlist.ErrNoURLColumn) {
		t.Errorf("expected ErrNoURLColumn for empty input, got %v", err)
	}
}
