package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize_SpecificityOrdering(t *testing.T) {
	// Compound titles must win over the generic titles they contain.
	cases := []struct {
		title string
		want  string
	}{
		{"Executive Sous Chef", "Executive Sous Chef"},
		{"Executive Chef", "Executive Chef"},
		{"Head Chef", "Head Chef"},
		{"Sous Chef", "Sous Chef"},
		{"Demi Chef de Partie", "Demi Chef de Partie"},
		{"Chef de Partie", "Chef de Partie"},
		{"Head Baker", "Head Baker"},
		{"Baker", "Baker"},
		{"Pastry Chef", "Pastry Chef"},
		{"Chief Steward", "Chief Steward"},
		{"Steward", "Steward"},
		{"Kitchen Porter", "Kitchen Porter"},
		{"Line Cook", "Line Cook"},
		{"Prep Cook", "Prep Cook"},
		{"Butcher", "Butcher"},
		{"Kitchen Helper", "Kitchen Helper"},
		{"Apprentice Cook", "Trainee"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Categorize(tc.title).Name, "title %q", tc.title)
	}
}

func TestCategorize_CommiGrades(t *testing.T) {
	// Hyphen, space and the British "Commis" spelling are equivalent.
	assert.Equal(t, "Commi 2", Categorize("Commi 2").Name)
	assert.Equal(t, "Commi 2", Categorize("commi-2").Name)
	assert.Equal(t, "Commi 2", Categorize("Commis 2").Name)
	assert.Equal(t, "Commi 3", Categorize("COMMIS-3").Name)

	// An unnumbered commi defaults to grade 1.
	assert.Equal(t, "Commi 1", Categorize("Commi").Name)
	assert.Equal(t, "Commi 1", Categorize("Commis").Name)
}

func TestCategorize_NeighborPriority(t *testing.T) {
	// Every rule must beat the later rules that match a substring of the
	// same title. Each probe title matches at least two table entries.
	probes := []struct {
		title string
		want  string
	}{
		{"executive sous chef", "Executive Sous Chef"}, // not Executive Chef or Sous Chef
		{"demi chef de partie", "Demi Chef de Partie"}, // not Chef de Partie
		{"head baker", "Head Baker"},                   // not Baker
		{"chief steward", "Chief Steward"},             // not Steward
		{"commis 2", "Commi 2"},                        // not Commi 1 fallback
	}
	for _, tc := range probes {
		assert.Equal(t, tc.want, Categorize(tc.title).Name, "title %q", tc.title)
	}
}

func TestCategorize_Fallback(t *testing.T) {
	assert.Equal(t, "Hot Kitchen Staff", Categorize("Wok Master").Name)
	assert.Equal(t, "Hot Kitchen Staff", Categorize("").Name)
}

func TestAll_CountsTwentyOne(t *testing.T) {
	assert.Len(t, All(), 21)
	seen := map[string]bool{}
	for _, cat := range All() {
		assert.False(t, seen[cat.Name], "duplicate category %q", cat.Name)
		seen[cat.Name] = true
		assert.NotEmpty(t, cat.Level)
	}
}
