package wanaplay

// MatchOffers keeps the offers whose displayed time equals courtTime.
// Comparison is string-exact on the HH:MM format; order is preserved.
func MatchOffers(offers []Offer, courtTime string) []Offer {
	var matches []Offer
	for _, o := range offers {
		if o.Time == courtTime {
			matches = append(matches, o)
		}
	}
	return matches
}

// PickOffer selects the candidate to book. When exactly four candidates
// exist the second one is taken; otherwise the first. The site renders
// four parallel cells for one slot on some layouts, and the second cell
// is the one that books there.
func PickOffer(candidates []Offer) (Offer, bool) {
	switch len(candidates) {
	case 0:
		return Offer{}, false
	case 4:
		return candidates[1], true
	default:
		return candidates[0], true
	}
}
