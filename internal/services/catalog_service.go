package services

// CatalogStore supplies the question catalog to read-side services.
type CatalogStore interface {
	Catalog() (*Catalog, error)
}

type CatalogService struct {
	store CatalogStore
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// Questions returns the ordered catalog with text resolved to locale
// (English fallback).
func (s *CatalogService) Questions(locale string) ([]QuestionView, error) {
	catalog, err := s.store.Catalog()
	if err != nil {
		return nil, err
	}
	qs := catalog.Questions()
	out := make([]QuestionView, 0, len(qs))
	for _, q := range qs {
		out = append(out, QuestionView{ID: q.ID, Category: q.Category, Text: q.Text(locale)})
	}
	return out, nil
}
