package rename

import (
	"log/slog"
	"strings"

	"github.com/Jay-Jay-D/luis-json-converter/internal/domain"
)

// Mapping maps an original entity name to its new name. Unchanged names are
// never stored.
type Mapping map[string]string

// Lookup returns the new name for name, or name itself when it was not renamed.
func (m Mapping) Lookup(name string) string {
	if n, ok := m[name]; ok {
		return n
	}
	return name
}

// Conflict records an original name that resolved to two different names.
// Kept is the value left in the mapping under the active policy.
type Conflict struct {
	Original  string `json:"original"`
	Kept      string `json:"kept"`
	Discarded string `json:"discarded"`
}

// Resolution is the result of ResolveNames.
type Resolution struct {
	Entities  []domain.Entity
	Mapping   Mapping
	Conflicts []Conflict
	Renamed   int
}

type resolveState struct {
	mapping   Mapping
	conflicts []Conflict
	renamed   int
}

// ResolveNames strips the accumulated ancestor prefix from every non-root
// entity name, depth first in declaration order. Roots keep their names and
// seed the prefix with their own name. Each child passes prefix+newName down
// to its children. Names listed in the special-case table skip stripping.
//
// The input slice is not modified; a nil input yields nil Entities.
func (s *Service) ResolveNames(entities []domain.Entity) (Resolution, error) {
	st := &resolveState{mapping: Mapping{}}

	var out []domain.Entity
	if entities != nil {
		out = make([]domain.Entity, len(entities))
		for i, root := range entities {
			children, err := s.resolveChildren(st, root.Children, root.Name)
			if err != nil {
				return Resolution{}, err
			}
			out[i] = root.With(root.Name, children)
		}
	}

	return Resolution{
		Entities:  out,
		Mapping:   st.mapping,
		Conflicts: st.conflicts,
		Renamed:   st.renamed,
	}, nil
}

func (s *Service) resolveChildren(st *resolveState, children []domain.Entity, prefix string) ([]domain.Entity, error) {
	if children == nil {
		return nil, nil
	}

	out := make([]domain.Entity, len(children))
	for i, child := range children {
		name := s.localName(child.Name, prefix)
		if name != child.Name {
			if err := s.record(st, child.Name, name); err != nil {
				return nil, err
			}
		}

		grandchildren, err := s.resolveChildren(st, child.Children, prefix+name)
		if err != nil {
			return nil, err
		}
		out[i] = child.With(name, grandchildren)
	}
	return out, nil
}

// localName computes the new name of a child whose ancestors concatenate to
// prefix. Matching is case-sensitive and anchored at the start.
func (s *Service) localName(orig, prefix string) string {
	if short, ok := s.specialCases[orig]; ok {
		return short
	}
	if prefix == "" {
		return orig
	}
	return strings.TrimPrefix(orig, prefix)
}

func (s *Service) record(st *resolveState, orig, name string) error {
	st.renamed++

	prev, seen := st.mapping[orig]
	if !seen || prev == name {
		st.mapping[orig] = name
		return nil
	}

	switch s.policy {
	case CollisionError:
		return &domain.CollisionError{Original: orig, First: prev, Second: name}
	case CollisionFirst:
		st.conflicts = append(st.conflicts, Conflict{Original: orig, Kept: prev, Discarded: name})
	default:
		st.conflicts = append(st.conflicts, Conflict{Original: orig, Kept: name, Discarded: prev})
		st.mapping[orig] = name
	}

	s.log.Warn("entity name collision",
		slog.String("original", orig),
		slog.String("previous", prev),
		slog.String("current", name),
		slog.String("policy", string(s.policy)),
	)
	return nil
}
