package poi

import "context"

// MemoryRepo is the in-memory catalog used in dev mode and tests. The slice
// is read-only after construction, so no locking is needed.
type MemoryRepo struct {
	pois []Poi
}

func NewMemoryRepo(pois []Poi) *MemoryRepo {
	if pois == nil {
		pois = SeedPois()
	}
	return &MemoryRepo{pois: pois}
}

func (r *MemoryRepo) FindByID(_ context.Context, id string) (Poi, error) {
	for _, p := range r.pois {
		if p.ID == id {
			return p, nil
		}
	}
	return Poi{}, ErrNotFound
}

func (r *MemoryRepo) ListByCategory(_ context.Context, c Category) ([]Poi, error) {
	var out []Poi
	for _, p := range r.pois {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *MemoryRepo) ListAll(_ context.Context) ([]Poi, error) {
	out := make([]Poi, len(r.pois))
	copy(out, r.pois)
	return out, nil
}

// SeedPois is the sample catalog for dev mode and the seed command.
func SeedPois() []Poi {
	return []Poi{
		{ID: "rest-001", Name: "한옥 다이닝", Category: CategoryRestaurant, Area: "종로", Lat: 37.5725, Lng: 126.9857},
		{ID: "rest-002", Name: "을지로 비스트로", Category: CategoryRestaurant, Area: "을지로", Lat: 37.5663, Lng: 126.9913},
		{ID: "rest-003", Name: "성수 파스타바", Category: CategoryRestaurant, Area: "성수", Lat: 37.5445, Lng: 127.0559},
		{ID: "rest-004", Name: "망원 스시", Category: CategoryRestaurant, Area: "망원", Lat: 37.5556, Lng: 126.9017},
		{ID: "cult-001", Name: "국립현대미술관", Category: CategoryCulture, Area: "삼청", Lat: 37.5789, Lng: 126.9804},
		{ID: "cult-002", Name: "대학로 소극장", Category: CategoryCulture, Area: "대학로", Lat: 37.5822, Lng: 127.0022},
	}
}
