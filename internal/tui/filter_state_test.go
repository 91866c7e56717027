package tui

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/studiowebux/popfocus/internal/popoverlist"
)

func textItems(texts ...string) popoverlist.Items {
	items := make(popoverlist.Items, len(texts))
	for i, text := range texts {
		items[i] = popoverlist.NewItem(text)
	}
	return items
}

func TestFilterState_Apply(t *testing.T) {
	items := textItems("apple", "banana", "grape", "pineapple")

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query keeps order", "", []string{"apple", "banana", "grape", "pineapple"}},
		{"exact prefix ranks first", "apple", []string{"apple", "pineapple"}},
		{"fuzzy subsequence", "gp", []string{"grape"}},
		{"no match", "xyz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewFilterState()
			state.SetQuery(tt.query)

			got := state.Apply(items).Texts()
			if got == nil {
				got = []string{}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilterState_Reset(t *testing.T) {
	state := NewFilterState()
	state.SetQuery("abc")
	if !state.IsActive() {
		t.Error("Expected active filter")
	}

	state.Reset()
	if state.IsActive() || state.GetQuery() != "" {
		t.Errorf("Expected empty filter after reset, got %q", state.GetQuery())
	}
}

func TestFilterState_ConcurrentAccess(t *testing.T) {
	state := NewFilterState()
	items := textItems("a", "b")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			state.SetQuery("a")
		}()
		go func() {
			defer wg.Done()
			_ = state.Apply(items)
		}()
	}
	wg.Wait()
}
