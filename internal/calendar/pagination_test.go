package calendar

import "testing"

func TestPaginate_MiddlePage(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	page := Paginate(items, 2, 10)
	if len(page.Items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(page.Items))
	}
	if page.Items[0] != 10 {
		t.Fatalf("expected page to start at 10, got %d", page.Items[0])
	}
	if !page.HasPrev || !page.HasNext {
		t.Fatalf("expected both neighbours, got %+v", page)
	}
	if page.Total != 25 {
		t.Fatalf("expected total 25, got %d", page.Total)
	}
}

func TestPaginate_OutOfRangeAndDefaults(t *testing.T) {
	items := []string{"a", "b", "c"}

	page := Paginate(items, 10, 2)
	if len(page.Items) != 0 {
		t.Fatalf("expected empty page beyond the end, got %v", page.Items)
	}
	if page.HasNext {
		t.Fatalf("no next page beyond the end")
	}

	page = Paginate(items, 0, 0)
	if page.Page != 1 || page.PageSize != 10 {
		t.Fatalf("expected defaults page=1 size=10, got %+v", page)
	}
	if len(page.Items) != 3 {
		t.Fatalf("expected all items on the first page, got %d", len(page.Items))
	}
}
