package reportparse

import (
	"strings"

	"swimparse/pkg/contracts/domain"
)

// ResolveLocations matches detected location-name candidates against
// the caller's known-locations registry. Matching is fuzzy by design:
// normalized equality, substring containment either direction (report
// headers abbreviate freely) or equality with the location's short
// code. All matches across all candidates are unioned; a result of size
// other than one means the document is ambiguous and the caller must
// not auto-ingest.
func ResolveLocations(candidates []string, known []domain.Location) []int64 {
	var ids []int64
	seen := map[int64]bool{}
	for _, cand := range candidates {
		ck := normalizeKey(cand)
		if ck == "" {
			continue
		}
		for _, loc := range known {
			if seen[loc.ID] {
				continue
			}
			if matchesLocation(ck, loc) {
				seen[loc.ID] = true
				ids = append(ids, loc.ID)
			}
		}
	}
	return ids
}

func matchesLocation(candidateKey string, loc domain.Location) bool {
	nk := normalizeKey(loc.Name)
	if nk != "" {
		if candidateKey == nk ||
			strings.Contains(candidateKey, nk) ||
			strings.Contains(nk, candidateKey) {
			return true
		}
	}
	if ck := normalizeKey(loc.Code); ck != "" && candidateKey == ck {
		return true
	}
	return false
}
