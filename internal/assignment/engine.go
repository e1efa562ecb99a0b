package assignment

import (
	"fmt"
	"sort"

	"github.com/KirkDiggler/secretsanta/internal/models"
	"github.com/KirkDiggler/secretsanta/internal/random"
)

// DefaultMaxAttempts is how many shuffled candidates are tried before the exhaustive search
const DefaultMaxAttempts = 1000

// Config holds configuration for the assignment engine
type Config struct {
	// MaxAttempts bounds the randomized phase; zero or less uses DefaultMaxAttempts
	MaxAttempts int
}

// Engine generates gift assignments. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	maxAttempts int
}

// GenerateInput contains parameters for generating assignments
type GenerateInput struct {
	// EventID is stamped on every generated assignment
	EventID string

	// Participants is the snapshot to draw; order fixes the output order
	Participants []*models.Participant

	// Exclusions lists pairs that may not give to each other
	Exclusions []models.ExclusionPair

	// Seed makes the draw reproducible; nil draws an unpredictable seed
	Seed *int64
}

// GenerateOutput contains a complete, valid assignment set
type GenerateOutput struct {
	// Assignments has one record per participant as giver, in participant order
	Assignments []*models.Assignment

	// Exclusions is the canonical exclusion set the draw honored
	Exclusions []models.ExclusionPair

	// Seed is the seed actually used
	Seed int64

	// Strategy is the search that produced the result
	Strategy models.DrawStrategy

	// Attempts is the number of random candidates evaluated
	Attempts int
}

// NewEngine creates a new assignment engine
func NewEngine(cfg *Config) *Engine {
	maxAttempts := DefaultMaxAttempts
	if cfg != nil && cfg.MaxAttempts > 0 {
		maxAttempts = cfg.MaxAttempts
	}
	return &Engine{maxAttempts: maxAttempts}
}

// Generate produces an assignment where everyone gives to exactly one other
// participant, receives from exactly one, and no excluded pair is matched.
//
// Uniformly random permutations are tried first. If none of them is valid the
// engine falls back to a depth-first search that either finds an assignment
// or proves that none exists. Every result is checked with Verify before it
// is returned.
func (e *Engine) Generate(input *GenerateInput) (*GenerateOutput, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrValidation)
	}

	output, err := e.draw(input)
	if err != nil {
		return nil, err
	}
	return verified(input, output)
}

// verified rejects a generated set that breaks the draw rules. Such a set is an
// engine fault, so the error does not wrap ErrValidation.
func verified(input *GenerateInput, output *GenerateOutput) (*GenerateOutput, error) {
	if err := Verify(input.Participants, input.Exclusions, output.Assignments); err != nil {
		return nil, fmt.Errorf("generated assignments failed verification: %v", err)
	}
	return output, nil
}

func (e *Engine) draw(input *GenerateInput) (*GenerateOutput, error) {
	ids, err := validateParticipants(input.Participants)
	if err != nil {
		return nil, err
	}

	set, err := ValidateExclusions(ids, input.Exclusions)
	if err != nil {
		return nil, err
	}

	src := random.New(&random.Config{Seed: input.Seed})
	output := &GenerateOutput{
		Exclusions: set.Pairs(),
		Seed:       src.Seed(),
	}

	receivers := make([]string, len(ids))
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		copy(receivers, ids)
		src.ShuffleStrings(receivers)
		if isValidCandidate(ids, receivers, set) {
			output.Strategy = models.DrawStrategyRandom
			output.Attempts = attempt
			output.Assignments = buildAssignments(input.EventID, ids, receivers)
			return output, nil
		}
	}
	output.Attempts = e.maxAttempts

	receivers, ok := backtrack(ids, set, src)
	if !ok {
		return nil, fmt.Errorf("%w: no arrangement of %d participants satisfies %d exclusions", ErrInfeasibleConstraints, len(ids), set.Len())
	}

	output.Strategy = models.DrawStrategyBacktrack
	output.Assignments = buildAssignments(input.EventID, ids, receivers)
	return output, nil
}

// isValidCandidate checks a giver-aligned receiver slice. The receivers are a
// permutation of ids by construction, so only self and excluded pairs remain.
func isValidCandidate(ids, receivers []string, set *ExclusionSet) bool {
	for i, giver := range ids {
		if receivers[i] == giver || set.Excludes(giver, receivers[i]) {
			return false
		}
	}
	return true
}

// backtrack searches for a receiver per giver. Givers with the fewest legal
// receivers are placed first; candidate order is shuffled from src so the
// fallback does not always favor the same pairing. Returns receivers aligned
// with ids.
func backtrack(ids []string, set *ExclusionSet, src *random.Source) ([]string, bool) {
	n := len(ids)
	candidates := make([][]int, n)
	for i, giver := range ids {
		for j, receiver := range ids {
			if i == j || set.Excludes(giver, receiver) {
				continue
			}
			candidates[i] = append(candidates[i], j)
		}
		src.ShuffleInts(candidates[i])
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(candidates[order[a]]) < len(candidates[order[b]])
	})

	used := make([]bool, n)
	chosen := make([]int, n)

	var place func(depth int) bool
	place = func(depth int) bool {
		if depth == n {
			return true
		}
		giver := order[depth]
		for _, receiver := range candidates[giver] {
			if used[receiver] {
				continue
			}
			used[receiver] = true
			chosen[giver] = receiver
			if place(depth + 1) {
				return true
			}
			used[receiver] = false
		}
		return false
	}

	if !place(0) {
		return nil, false
	}

	receivers := make([]string, n)
	for giver, receiver := range chosen {
		receivers[giver] = ids[receiver]
	}
	return receivers, true
}

func buildAssignments(eventID string, ids, receivers []string) []*models.Assignment {
	assignments := make([]*models.Assignment, len(ids))
	for i, giver := range ids {
		assignments[i] = &models.Assignment{
			EventID:    eventID,
			GiverID:    giver,
			ReceiverID: receivers[i],
		}
	}
	return assignments
}

// Verify checks a complete assignment set against the participants and
// exclusions: one record per giver, a bijection, no self gifts and no
// excluded pairs.
func Verify(participants []*models.Participant, exclusions []models.ExclusionPair, assignments []*models.Assignment) error {
	ids, err := validateParticipants(participants)
	if err != nil {
		return err
	}
	set, err := NormalizeExclusions(ids, exclusions)
	if err != nil {
		return err
	}

	if len(assignments) != len(ids) {
		return fmt.Errorf("%w: expected %d assignments, got %d", ErrValidation, len(ids), len(assignments))
	}

	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	givers := make(map[string]struct{}, len(ids))
	receivers := make(map[string]struct{}, len(ids))
	for _, a := range assignments {
		if a == nil {
			return fmt.Errorf("%w: nil assignment", ErrValidation)
		}
		if _, ok := known[a.GiverID]; !ok {
			return fmt.Errorf("%w: unknown giver %q", ErrValidation, a.GiverID)
		}
		if _, ok := known[a.ReceiverID]; !ok {
			return fmt.Errorf("%w: unknown receiver %q", ErrValidation, a.ReceiverID)
		}
		if a.GiverID == a.ReceiverID {
			return fmt.Errorf("%w: %q gives to themself", ErrValidation, a.GiverID)
		}
		if set.Excludes(a.GiverID, a.ReceiverID) {
			return fmt.Errorf("%w: %q gives to excluded %q", ErrValidation, a.GiverID, a.ReceiverID)
		}
		if _, dup := givers[a.GiverID]; dup {
			return fmt.Errorf("%w: %q gives more than once", ErrValidation, a.GiverID)
		}
		if _, dup := receivers[a.ReceiverID]; dup {
			return fmt.Errorf("%w: %q receives more than once", ErrValidation, a.ReceiverID)
		}
		givers[a.GiverID] = struct{}{}
		receivers[a.ReceiverID] = struct{}{}
	}

	return nil
}
