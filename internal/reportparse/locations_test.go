package reportparse

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"swimparse/pkg/contracts/domain"
)

func locationsFixture() []domain.Location {
	return []domain.Location{
		{ID: 1, Name: "Dolphin Cove East", Code: "DCE"},
		{ID: 2, Name: "Dolphin Cove West", Code: "DCW"},
		{ID: 3, Name: "Riverbend", Code: "RB"},
	}
}

func TestResolveLocations(t *testing.T) {
	known := locationsFixture()
	tests := []struct {
		name       string
		candidates []string
		want       []int64
	}{
		{"exact name", []string{"Riverbend"}, []int64{3}},
		{"case and punctuation insensitive", []string{"river-bend!"}, []int64{3}},
		{"candidate contains name", []string{"Riverbend Swim School"}, []int64{3}},
		{"name contains candidate", []string{"Dolphin Cove East"}, []int64{1}},
		{"abbreviated candidate matches both coves", []string{"Dolphin Cove"}, []int64{1, 2}},
		{"code match", []string{"DCE"}, []int64{1}},
		{"union across candidates", []string{"Riverbend", "DCW"}, []int64{3, 2}},
		{"no match", []string{"Lakeside"}, nil},
		{"empty candidate ignored", []string{"  ", "Riverbend"}, []int64{3}},
		{"no candidates", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLocations(tt.candidates, known))
		})
	}
}

func TestResolveLocationsNoDuplicateIDs(t *testing.T) {
	ids := ResolveLocations([]string{"Riverbend", "riverbend", "RB"}, locationsFixture())
	assert.Equal(t, []int64{3}, ids)
}
