package assignment

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/secretsanta/internal/models"
)

// ExclusionSet is a canonical, de-duplicated set of exclusion pairs
type ExclusionSet struct {
	pairs []models.ExclusionPair
	index map[models.ExclusionPair]struct{}
}

// Pairs returns the canonical pairs sorted by (A, B)
func (s *ExclusionSet) Pairs() []models.ExclusionPair {
	out := make([]models.ExclusionPair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// Len returns the number of distinct pairs
func (s *ExclusionSet) Len() int {
	return len(s.pairs)
}

// Excludes reports whether giver may not give to receiver
func (s *ExclusionSet) Excludes(giverID, receiverID string) bool {
	_, ok := s.index[models.ExclusionPair{A: giverID, B: receiverID}.Canonical()]
	return ok
}

// NormalizeExclusions checks that every pair names two distinct known participants
// and collapses duplicates and reversed pairs into one canonical constraint.
func NormalizeExclusions(participantIDs []string, pairs []models.ExclusionPair) (*ExclusionSet, error) {
	known := make(map[string]struct{}, len(participantIDs))
	for _, id := range participantIDs {
		known[id] = struct{}{}
	}

	set := &ExclusionSet{
		pairs: make([]models.ExclusionPair, 0, len(pairs)),
		index: make(map[models.ExclusionPair]struct{}, len(pairs)),
	}
	for _, pair := range pairs {
		if pair.A == pair.B {
			return nil, fmt.Errorf("%w: participant %q cannot be excluded from themself", ErrValidation, pair.A)
		}
		if _, ok := known[pair.A]; !ok {
			return nil, fmt.Errorf("%w: exclusion references unknown participant %q", ErrValidation, pair.A)
		}
		if _, ok := known[pair.B]; !ok {
			return nil, fmt.Errorf("%w: exclusion references unknown participant %q", ErrValidation, pair.B)
		}

		canonical := pair.Canonical()
		if _, dup := set.index[canonical]; dup {
			continue
		}
		set.index[canonical] = struct{}{}
		set.pairs = append(set.pairs, canonical)
	}

	sort.Slice(set.pairs, func(i, j int) bool {
		if set.pairs[i].A != set.pairs[j].A {
			return set.pairs[i].A < set.pairs[j].A
		}
		return set.pairs[i].B < set.pairs[j].B
	})

	return set, nil
}

// ValidateExclusions normalizes the pairs and then rejects sets where some
// participant has nobody left to give to. The check is structural and does
// not depend on randomness, so it fails fast before any search runs.
func ValidateExclusions(participantIDs []string, pairs []models.ExclusionPair) (*ExclusionSet, error) {
	set, err := NormalizeExclusions(participantIDs, pairs)
	if err != nil {
		return nil, err
	}

	for _, giver := range participantIDs {
		if len(legalReceivers(giver, participantIDs, set)) == 0 {
			return nil, fmt.Errorf("%w: participant %q is excluded from every other participant", ErrInfeasibleConstraints, giver)
		}
	}

	return set, nil
}

// legalReceivers returns the ids giver may give to, in participant order
func legalReceivers(giver string, participantIDs []string, set *ExclusionSet) []string {
	out := make([]string, 0, len(participantIDs))
	for _, receiver := range participantIDs {
		if receiver == giver || set.Excludes(giver, receiver) {
			continue
		}
		out = append(out, receiver)
	}
	return out
}

// validateParticipants checks ids are present and unique
func validateParticipants(participants []*models.Participant) ([]string, error) {
	if len(participants) < 2 {
		return nil, fmt.Errorf("%w: a gift exchange needs at least 2 participants, got %d", ErrValidation, len(participants))
	}

	ids := make([]string, 0, len(participants))
	seen := make(map[string]struct{}, len(participants))
	for i, p := range participants {
		if p == nil || p.ID == "" {
			return nil, fmt.Errorf("%w: participant at position %d has no id", ErrValidation, i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate participant id %q", ErrValidation, p.ID)
		}
		seen[p.ID] = struct{}{}
		ids = append(ids, p.ID)
	}
	return ids, nil
}
