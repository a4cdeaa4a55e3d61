package request

import "testing"

func TestPageRequest(t *testing.T) {
	cases := []struct {
		page, perPage    int
		limit, offset    int
		normPage, normPP int
	}{
		{1, 10, 10, 0, 1, 10},
		{3, 20, 20, 40, 3, 20},
		{0, 0, DefaultPerPage, 0, 1, DefaultPerPage},
		{2, 500, MaxPerPage, MaxPerPage, 2, MaxPerPage},
	}

	for _, tc := range cases {
		p := PageRequest{Page: tc.page, PerPage: tc.perPage}
		if p.Limit() != tc.limit || p.Offset() != tc.offset {
			t.Fatalf("%+v: limit/offset = %d/%d, want %d/%d", p, p.Limit(), p.Offset(), tc.limit, tc.offset)
		}
		p.Normalize()
		if p.Page != tc.normPage || p.PerPage != tc.normPP {
			t.Fatalf("normalized to %+v", p)
		}
	}
}

func TestPageFromQuery(t *testing.T) {
	p := PageFromQuery("", "junk")
	if p.Page != 1 || p.PerPage != DefaultPerPage {
		t.Fatalf("unexpected defaults %+v", p)
	}
	p = PageFromQuery("4", "25")
	if p.Page != 4 || p.PerPage != 25 {
		t.Fatalf("unexpected page %+v", p)
	}
}
