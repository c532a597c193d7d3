package news

import "testing"

func TestMergeUnique_FirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	preview := []Item{{Title: "preview", URL: "https://a/1"}, {Title: "shared-preview", URL: "https://a/2"}}
	home := []Item{{Title: "shared-home", URL: "https://a/2"}, {Title: "home", URL: "https://a/3"}}
	away := []Item{{Title: "away", URL: "https://a/4"}, {Title: "dup-preview", URL: "https://a/1"}}

	got := MergeUnique(preview, home, away)
	if len(got) != 4 {
		t.Fatalf("unexpected merged count: got=%d want=4", len(got))
	}

	urls := make(map[string]struct{}, len(got))
	for _, item := range got {
		urls[item.URL] = struct{}{}
	}
	if len(urls) != len(got) {
		t.Fatalf("merged list contains duplicate urls: %+v", got)
	}
	if got[1].Title != "shared-preview" {
		t.Fatalf("expected preview copy to win, got %q", got[1].Title)
	}
	wantOrder := []string{"preview", "shared-preview", "home", "away"}
	for i, title := range wantOrder {
		if got[i].Title != title {
			t.Fatalf("position %d: got=%q want=%q", i, got[i].Title, title)
		}
	}
}

func TestSnippets_PrefersTitleAndCaps(t *testing.T) {
	t.Parallel()

	items := []Item{
		{Title: "t1"},
		{Description: "d2"},
		{},
		{Title: "  ", Description: "d4"},
		{Title: "t5"},
	}

	got := Snippets(items, 3)
	want := []string{"t1", "d2", "d4"}
	if len(got) != len(want) {
		t.Fatalf("unexpected snippet count: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("snippet %d: got=%q want=%q", i, got[i], want[i])
		}
	}
}
