package claims

import (
	"errors"
	"testing"

	"claimdesk/internal/models"
)

func hrList(ids ...uint) []models.Hr {
	out := make([]models.Hr, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Hr{ID: id})
	}
	return out
}

func TestLeastLoadedPicksMinimum(t *testing.T) {
	counts := map[uint]int64{1: 3, 2: 1, 3: 2}
	hr := LeastLoaded(hrList(1, 2, 3), func(id uint) (int64, error) {
		return counts[id], nil
	})
	if hr == nil || hr.ID != 2 {
		t.Fatalf("expected hr 2, got %+v", hr)
	}
}

func TestLeastLoadedTieLowestID(t *testing.T) {
	counts := map[uint]int64{1: 1, 2: 1}
	hr := LeastLoaded(hrList(1, 2), func(id uint) (int64, error) {
		return counts[id], nil
	})
	if hr == nil || hr.ID != 1 {
		t.Fatalf("tie must go to the earliest hr, got %+v", hr)
	}
}

func TestLeastLoadedEmptyList(t *testing.T) {
	if hr := LeastLoaded(nil, func(uint) (int64, error) { return 0, nil }); hr != nil {
		t.Fatalf("expected nil for empty hr list, got %+v", hr)
	}
}

func TestLeastLoadedSkipsFailedCount(t *testing.T) {
	counts := map[uint]int64{2: 5}
	hr := LeastLoaded(hrList(1, 2), func(id uint) (int64, error) {
		if id == 1 {
			return 0, errors.New("count failed")
		}
		return counts[id], nil
	})
	if hr == nil || hr.ID != 2 {
		t.Fatalf("failed count must exclude candidate, got %+v", hr)
	}
}
