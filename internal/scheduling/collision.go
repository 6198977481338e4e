package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/chronicle-app/chronicle-api/internal/models"
)

// CollisionKind discriminates the temporal relationship between a
// candidate event and one committed neighbor it overlaps.
type CollisionKind int

const (
	// OverlapsOther means the two intervals are identical.
	OverlapsOther CollisionKind = iota
	// ContainsOther means the candidate strictly contains the other.
	ContainsOther
	// ContainedByOther means the other strictly contains the candidate.
	ContainedByOther
	// StartCollides means the candidate's start falls inside the other.
	StartCollides
	// EndCollides means the candidate's end falls inside the other.
	EndCollides
)

func (k CollisionKind) String() string {
	switch k {
	case OverlapsOther:
		return "overlapsOther"
	case ContainsOther:
		return "containsOther"
	case ContainedByOther:
		return "containedByOther"
	case StartCollides:
		return "startCollides"
	case EndCollides:
		return "endCollides"
	default:
		return fmt.Sprintf("CollisionKind(%d)", int(k))
	}
}

// Collision is the transient classification of one overlapping pair.
// OtherEnd is set for StartCollides, OtherStart for EndCollides; the
// remaining kinds carry no boundary payload.
type Collision struct {
	Kind       CollisionKind
	OtherID    string
	OtherStart time.Time
	OtherEnd   time.Time
}

// ErrUnclassifiedCollision signals a true overlap that matched none of
// the five classification branches. The half-open overlap pre-test makes
// the branches exhaustive, so hitting this means the caller handed the
// engine a malformed event; it must abort loudly rather than produce a
// silently wrong schedule.
var ErrUnclassifiedCollision = errors.New("overlapping events could not be classified")

// FindCollisions classifies every committed event overlapping the
// candidate, in input order. Events sharing the candidate's id are
// skipped, so reconciling a move of an already-committed event against
// the full committed set excludes the event itself. Non-overlapping
// pairs produce no entry.
func FindCollisions(candidate models.Event, others []models.Event) ([]Collision, error) {
	var collisions []Collision
	candidateIv := EventInterval(candidate)
	for _, other := range others {
		if other.ID == candidate.ID {
			continue
		}
		if !candidateIv.Overlaps(EventInterval(other)) {
			continue
		}
		col, ok := classify(candidate, other)
		if !ok {
			return nil, fmt.Errorf("%w: candidate %q [%s, %s) vs %q [%s, %s)",
				ErrUnclassifiedCollision,
				candidate.ID, candidate.Start, candidate.End(),
				other.ID, other.Start, other.End())
		}
		collisions = append(collisions, col)
	}
	return collisions, nil
}

// classify resolves one overlapping pair into exactly one kind. The
// predicates are not mutually exclusive, so the precedence order here
// is the contract: identity, containment either way, then the two
// partial overlaps.
func classify(candidate, other models.Event) (Collision, bool) {
	candidateEnd := candidate.End()
	otherEnd := other.End()

	switch {
	case other.Start.Equal(candidate.Start) && otherEnd.Equal(candidateEnd):
		return Collision{Kind: OverlapsOther, OtherID: other.ID}, true
	case candidate.Start.Before(other.Start) && otherEnd.Before(candidateEnd):
		return Collision{Kind: ContainsOther, OtherID: other.ID}, true
	case other.Start.Before(candidate.Start) && candidateEnd.Before(otherEnd):
		return Collision{Kind: ContainedByOther, OtherID: other.ID}, true
	case !candidate.Start.Before(other.Start) && candidate.Start.Before(otherEnd):
		return Collision{Kind: StartCollides, OtherID: other.ID, OtherEnd: otherEnd}, true
	case other.Start.Before(candidateEnd) && !candidateEnd.After(otherEnd):
		return Collision{Kind: EndCollides, OtherID: other.ID, OtherStart: other.Start}, true
	default:
		return Collision{}, false
	}
}
