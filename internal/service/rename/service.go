package rename

import (
	"fmt"
	"log/slog"

	"github.com/Jay-Jay-D/luis-json-converter/internal/domain"
)

// CollisionPolicy decides what happens when one original name is assigned
// two different new names in the same run.
type CollisionPolicy string

const (
	CollisionLast  CollisionPolicy = "last"
	CollisionFirst CollisionPolicy = "first"
	CollisionError CollisionPolicy = "error"
)

// ParseCollisionPolicy maps a config value to a CollisionPolicy.
// An empty string selects CollisionLast.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch CollisionPolicy(s) {
	case "", CollisionLast:
		return CollisionLast, nil
	case CollisionFirst:
		return CollisionFirst, nil
	case CollisionError:
		return CollisionError, nil
	default:
		return "", fmt.Errorf("unknown collision policy %q", s)
	}
}

// Service rewrites prefixed entity names and the utterance references that
// point at them.
type Service struct {
	specialCases map[string]string
	policy       CollisionPolicy
	log          *slog.Logger
}

// NewService creates a rename Service. extraSpecialCases is merged over the
// built-in table and copied, so later changes to the caller's map have no
// effect.
func NewService(log *slog.Logger, extraSpecialCases map[string]string, policy CollisionPolicy) *Service {
	if policy == "" {
		policy = CollisionLast
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		specialCases: mergeSpecialCases(extraSpecialCases),
		policy:       policy,
		log:          log,
	}
}

// Report summarizes one Rename call.
type Report struct {
	Mapping           Mapping
	Conflicts         []Conflict
	EntitiesRenamed   int
	ReferencesUpdated int
}

// Rename returns a converted copy of doc. doc itself is left unchanged.
func (s *Service) Rename(doc *domain.Document) (*domain.Document, Report, error) {
	res, err := s.ResolveNames(doc.Entities)
	if err != nil {
		return nil, Report{}, fmt.Errorf("resolve entity names: %w", err)
	}

	utterances, updated := UpdateUtterances(doc.Utterances, res.Mapping)

	return doc.With(res.Entities, utterances), Report{
		Mapping:           res.Mapping,
		Conflicts:         res.Conflicts,
		EntitiesRenamed:   res.Renamed,
		ReferencesUpdated: updated,
	}, nil
}
