package ledger

// badgeRule awards a badge once the user's lifetime item count reaches
// the threshold. The tiers mirror the ones shown on the profile page.
type badgeRule struct {
	Name        string
	MinRecycled int
}

var badgeRules = []badgeRule{
	{Name: "First Drop", MinRecycled: 1},
	{Name: "10 Items Milestone", MinRecycled: 10},
	{Name: "50 Items Milestone", MinRecycled: 50},
}

// badgesEarned returns the badges newly earned at the given lifetime
// count, excluding any the user already holds.
func badgesEarned(totalRecycled int, held []string) []string {
	heldSet := make(map[string]bool, len(held))
	for _, b := range held {
		heldSet[b] = true
	}

	var earned []string
	for _, rule := range badgeRules {
		if totalRecycled >= rule.MinRecycled && !heldSet[rule.Name] {
			earned = append(earned, rule.Name)
		}
	}
	return earned
}
