package pagination

import "testing"

func TestNormalizeClampsInvalidValues(t *testing.T) {
	cases := []struct {
		name      string
		in        Pagination
		wantPage  int
		wantLimit int
	}{
		{"zero values", Pagination{}, 1, 50},
		{"negative page", Pagination{Page: -3, Limit: 20}, 1, 20},
		{"zero limit", Pagination{Page: 2, Limit: 0}, 2, 50},
		{"limit over cap", Pagination{Page: 1, Limit: 10000}, 1, 500},
		{"valid passthrough", Pagination{Page: 4, Limit: 25}, 4, 25},
	}
	for _, tc := range cases {
		got := tc.in.Normalize()
		if got.Page != tc.wantPage || got.Limit != tc.wantLimit {
			t.Fatalf("%s: got page=%d limit=%d, want page=%d limit=%d",
				tc.name, got.Page, got.Limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestOffset(t *testing.T) {
	p := Pagination{Page: 3, Limit: 50}.Normalize()
	if got := p.Offset(); got != 100 {
		t.Fatalf("expected offset 100, got %d", got)
	}
}

func TestBuildPageInfo(t *testing.T) {
	p := Pagination{Page: 1, Limit: 50}.Normalize()

	info := BuildPageInfo(p, 101)
	if info.Pages != 3 {
		t.Fatalf("expected 3 pages for 101 records, got %d", info.Pages)
	}
	if info.Total != 101 {
		t.Fatalf("expected total 101, got %d", info.Total)
	}

	empty := BuildPageInfo(p, 0)
	if empty.Pages != 0 {
		t.Fatalf("expected 0 pages for empty result, got %d", empty.Pages)
	}
}
