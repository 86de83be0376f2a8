// Package roles maps free-text kitchen job titles to canonical categories.
//
// Matching is ordered and specificity-first: the rule table below is
// evaluated top to bottom, so compound titles ("Executive Sous Chef",
// "Head Baker", "Commi 2") must appear before the shorter titles they
// contain as substrings. Reordering the table reclassifies staff.
package roles

import (
	"regexp"
	"strings"
)

// rule pairs a set of substring tokens with the category they select.
// A title matches a rule when it contains any of the rule's tokens.
type rule struct {
	tokens   []string
	category Category
}

// ruleTable is the ordered rule list. Do not reorder: earlier rules take
// priority over later ones that match a substring of the same title.
var ruleTable = []rule{
	{[]string{"executive sous chef", "exec sous chef"}, ExecutiveSousChef},
	{[]string{"executive chef", "exec chef"}, ExecutiveChef},
	{[]string{"head chef", "chef de cuisine"}, HeadChef},
	{[]string{"sous chef"}, SousChef},
	{[]string{"demi chef"}, DemiChefDePartie},
	{[]string{"chef de partie", "cdp"}, ChefDePartie},
	{[]string{"commis 3", "commi 3"}, Commi3},
	{[]string{"commis 2", "commi 2"}, Commi2},
	{[]string{"commis 1", "commi 1"}, Commi1},
	// Unnumbered commi defaults to grade 1.
	{[]string{"commis", "commi"}, Commi1},
	{[]string{"head baker"}, HeadBaker},
	{[]string{"pastry chef", "patissier"}, PastryChef},
	{[]string{"baker", "bakery"}, Baker},
	{[]string{"butcher", "boucher"}, Butcher},
	{[]string{"chief steward", "head steward"}, ChiefSteward},
	{[]string{"steward", "dishwash"}, Steward},
	{[]string{"kitchen porter", "porter"}, KitchenPorter},
	{[]string{"line cook", "grill cook"}, LineCook},
	{[]string{"prep cook"}, PrepCook},
	{[]string{"kitchen helper", "helper", "kitchen hand"}, KitchenHelper},
	{[]string{"trainee", "apprentice", "intern"}, Trainee},
}

var spaceRun = regexp.MustCompile(`\s+`)

// normalize lowers the title and flattens hyphen/underscore/space variants
// so "Commi-2", "commi_2" and "Commi  2" all read "commi 2".
func normalize(title string) string {
	t := strings.ToLower(strings.TrimSpace(title))
	t = strings.NewReplacer("-", " ", "_", " ", "/", " ").Replace(t)
	return spaceRun.ReplaceAllString(t, " ")
}

// Categorize maps a job title to its canonical category. It is total:
// unmatched titles fall back to the generic Hot Kitchen Staff bucket.
func Categorize(title string) Category {
	t := normalize(title)
	for _, r := range ruleTable {
		for _, token := range r.tokens {
			if strings.Contains(t, token) {
				return r.category
			}
		}
	}
	return HotKitchenStaff
}
