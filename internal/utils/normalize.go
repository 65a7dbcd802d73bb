package utils

// CreateRankList returns the 1-based rank numbers shown alongside a
// conflict prompt's candidate list (internal/cli.RenderCandidates), in the
// same insertion order the candidates were already sorted into by
// pkg/conflict.Prune — highest count first.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := 0; i < count; i++ {
		ranks[i] = uint16(i + 1)
	}
	return ranks
}
