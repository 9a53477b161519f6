package services

import (
	"lrn/internal/canonical"
	"lrn/internal/models"
)

type MergeServiceInterface interface {
	Compact(records []models.RawResult) []models.RawResult
}

// MergeService keeps one representative per draw when several sources report it.
type MergeService struct {
	canon canonical.CanonicalizerInterface
}

func NewMergeService(canon canonical.CanonicalizerInterface) MergeServiceInterface {
	return &MergeService{canon: canon}
}

// Compact groups records by canonical name, date and number set. Groups keep the
// order in which they first appear; the representative is chosen by prefer.
func (m *MergeService) Compact(records []models.RawResult) []models.RawResult {
	index := make(map[models.GroupKey]int, len(records))
	out := make([]models.RawResult, 0, len(records))

	for _, r := range records {
		key := models.NewGroupKey(m.canon.Canonicalize(r.LotteryNameRaw), r)
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, r)
			continue
		}
		if prefer(out[i], r) {
			out[i] = r
		}
	}
	return out
}

// prefer reports whether challenger should replace incumbent: a reported time wins,
// otherwise the strictly later capture. Ties keep the incumbent.
func prefer(incumbent, challenger models.RawResult) bool {
	if incumbent.HasTime() != challenger.HasTime() {
		return challenger.HasTime()
	}
	return challenger.ObservedAt > incumbent.ObservedAt
}
