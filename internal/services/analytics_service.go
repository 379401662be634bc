package services

// AnalyticsStore abstracts the reads behind cohort aggregation.
type AnalyticsStore interface {
	ListResults() ([]*Result, error)
	CountUsers() (int, error)
}

type AnalyticsService struct {
	store AnalyticsStore
}

func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Summary recomputes the cohort snapshot from the full Result set. The
// registered-user count feeds the completion rate.
func (s *AnalyticsService) Summary() (*CohortSnapshot, error) {
	results, err := s.store.ListResults()
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountUsers()
	if err != nil {
		return nil, err
	}
	return Aggregate(results, total), nil
}
