package appcatalog

import "testing"

func TestCatalogDefaults(t *testing.T) {
	c := NewCatalog()

	app, ok := c.Get("993090598")
	if !ok {
		t.Fatal("Ludo King missing from default catalog")
	}
	if app.Name != "Ludo King" || app.Platform != "iOS" {
		t.Errorf("got %+v", app)
	}

	if _, ok := c.Get("unknown"); ok {
		t.Error("unknown ID returned an app")
	}

	if len(c.List()) != 4 {
		t.Errorf("default catalog has %d apps, want 4", len(c.List()))
	}
}

func TestCatalogCategories(t *testing.T) {
	c := NewCatalog()
	cats := c.Categories()
	if len(cats) != 4 {
		t.Fatalf("got %d categories: %v", len(cats), cats)
	}
	for i := 1; i < len(cats); i++ {
		if cats[i] < cats[i-1] {
			t.Fatalf("categories not sorted: %v", cats)
		}
	}
}

func TestCatalogSearch(t *testing.T) {
	c := NewCatalog()

	if got := c.Search("ludo"); len(got) != 1 || got[0].Name != "Ludo King" {
		t.Errorf("Search(ludo) = %+v", got)
	}
	// matches tags too
	if got := c.Search("racing"); len(got) != 1 || got[0].Name != "Road Gold" {
		t.Errorf("Search(racing) = %+v", got)
	}
	// matches description
	if got := c.Search("filters"); len(got) != 1 {
		t.Errorf("Search(filters) = %+v", got)
	}
	if got := c.Search("zzz-no-match"); len(got) != 0 {
		t.Errorf("Search(no match) = %+v", got)
	}
	if got := c.Search(""); got != nil {
		t.Errorf("Search(empty) = %+v, want nil", got)
	}
}

func TestCatalogUpsertAndStatistics(t *testing.T) {
	c := NewCatalog()
	c.Upsert(App{ID: "x1", Name: "New Game", Category: "Puzzle Games", Platform: "Android"})

	stats := c.Statistics()
	if stats.TotalApps != 5 {
		t.Errorf("total = %d, want 5", stats.TotalApps)
	}
	if stats.Categories["Puzzle Games"] != 2 {
		t.Errorf("puzzle count = %d, want 2", stats.Categories["Puzzle Games"])
	}
	if stats.Platforms["Android"] != 2 {
		t.Errorf("android count = %d, want 2", stats.Platforms["Android"])
	}
}
