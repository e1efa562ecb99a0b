package models

// ExclusionPair forbids A and B from giving to each other, in both directions
type ExclusionPair struct {
	A string
	B string
}

// Canonical returns the pair with its ids in lexicographic order
func (e ExclusionPair) Canonical() ExclusionPair {
	if e.B < e.A {
		return ExclusionPair{A: e.B, B: e.A}
	}
	return e
}

// Involves reports whether id is one side of the pair
func (e ExclusionPair) Involves(id string) bool {
	return e.A == id || e.B == id
}

// Forbids reports whether the pair rules out giver giving to receiver
func (e ExclusionPair) Forbids(giverID, receiverID string) bool {
	return (e.A == giverID && e.B == receiverID) || (e.A == receiverID && e.B == giverID)
}
