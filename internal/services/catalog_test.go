package services

import "testing"

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	_, err := NewCatalog([]*Question{
		{ID: 1, Category: Activist},
		{ID: 1, Category: Reflector},
	})
	if err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestNewCatalogRejectsUnknownCategory(t *testing.T) {
	_, err := NewCatalog([]*Question{{ID: 1, Category: "dreamer"}})
	if err == nil {
		t.Fatal("expected unknown category error")
	}
}

func TestCatalogOrdersByID(t *testing.T) {
	c, err := NewCatalog([]*Question{
		{ID: 3, Category: Theorist},
		{ID: 1, Category: Activist},
		{ID: 2, Category: Reflector},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	qs := c.Questions()
	for i, q := range qs {
		if q.ID != i+1 {
			t.Fatalf("questions not ordered: %v", qs)
		}
	}
}

func TestQuestionTextFallback(t *testing.T) {
	q := &Question{ID: 1, Category: Activist, TextI18n: map[string]string{"en": "english", "es": "español"}}
	if q.Text("es") != "español" {
		t.Fatalf("Text(es) = %q", q.Text("es"))
	}
	if q.Text("fr") != "english" {
		t.Fatalf("Text(fr) = %q, want English fallback", q.Text("fr"))
	}
}

func TestCountByCategory(t *testing.T) {
	c := mustCatalog(t)
	counts := c.CountByCategory()
	for _, cat := range Categories {
		if counts[cat] != 1 {
			t.Fatalf("counts[%s] = %d, want 1", cat, counts[cat])
		}
	}
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory("  Reflector ")
	if err != nil {
		t.Fatalf("ParseCategory: %v", err)
	}
	if got != Reflector {
		t.Fatalf("ParseCategory = %s", got)
	}
	if _, err := ParseCategory("visionary"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestCategoryLabel(t *testing.T) {
	if Activist.Label() != "Activist" {
		t.Fatalf("Label = %q", Activist.Label())
	}
}
