package rename

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/Jay-Jay-D/luis-json-converter/internal/domain"
)

// nodeSpec describes one generated entity. Parent selects an earlier node (or
// makes a root), Prefixed builds the name by the parent-concatenation
// convention, Special picks a special-case name instead.
type nodeSpec struct {
	Parent   int
	Prefixed bool
	Special  int
	Suffix   string
}

type treeNode struct {
	name     string
	children []*treeNode
}

var specialNames = []string{
	"WhereOperatorSubstractionExact",
	"WhereOperatorSubstractionRange",
	"WhereOperatorSumExact",
	"WhereOperatorSumRange",
	"WhereOperatorNumber",
}

func genNodeSpec() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 30),
		gen.Bool(),
		gen.IntRange(0, 19),
		gen.OneConstOf("Range", "Datetime", "Dimension", "Order", "Asc", "X", ""),
	).Map(func(vals []any) nodeSpec {
		return nodeSpec{
			Parent:   vals[0].(int),
			Prefixed: vals[1].(bool),
			Special:  vals[2].(int),
			Suffix:   vals[3].(string),
		}
	})
}

func genForest() gopter.Gen {
	return gen.SliceOfN(15, genNodeSpec())
}

// buildForest turns specs into an entity forest. Node 0 is always a root.
func buildForest(specs []nodeSpec) []domain.Entity {
	nodes := make([]*treeNode, len(specs))
	var roots []*treeNode
	for i, s := range specs {
		n := &treeNode{}
		nodes[i] = n
		if i == 0 || s.Parent%(i+1) == i {
			n.name = "Root" + s.Suffix
			roots = append(roots, n)
			continue
		}
		parent := nodes[s.Parent%i]
		switch {
		case s.Special < len(specialNames):
			n.name = specialNames[s.Special]
		case s.Prefixed:
			n.name = parent.name + s.Suffix
		default:
			n.name = s.Suffix + "Local"
		}
		parent.children = append(parent.children, n)
	}

	out := make([]domain.Entity, len(roots))
	for i, r := range roots {
		out[i] = toEntity(r)
	}
	return out
}

func toEntity(n *treeNode) domain.Entity {
	e := domain.Entity{Name: n.name}
	for _, c := range n.children {
		e.Children = append(e.Children, toEntity(c))
	}
	return e
}

// walkPairs visits original and renamed nodes side by side.
func walkPairs(orig, renamed []domain.Entity, depth int, fn func(orig, renamed domain.Entity, depth int) bool) bool {
	if len(orig) != len(renamed) {
		return false
	}
	for i := range orig {
		if !fn(orig[i], renamed[i], depth) {
			return false
		}
		if !walkPairs(orig[i].Children, renamed[i].Children, depth+1, fn) {
			return false
		}
	}
	return true
}

func newPropertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return parameters
}

func TestResolveNames_Properties(t *testing.T) {
	svc := NewService(discardLogger(), nil, CollisionLast)
	specials := DefaultSpecialCases()

	properties := gopter.NewProperties(newPropertyParameters())

	properties.Property("new name is a suffix of the original or the special-case value", prop.ForAll(
		func(specs []nodeSpec) bool {
			forest := buildForest(specs)
			res, err := svc.ResolveNames(forest)
			if err != nil {
				return false
			}
			return walkPairs(forest, res.Entities, 0, func(orig, renamed domain.Entity, depth int) bool {
				if depth == 0 {
					return orig.Name == renamed.Name
				}
				if short, ok := specials[orig.Name]; ok {
					return renamed.Name == short
				}
				return strings.HasSuffix(orig.Name, renamed.Name)
			})
		},
		genForest(),
	))

	properties.Property("mapping keys are exactly the names that changed", prop.ForAll(
		func(specs []nodeSpec) bool {
			forest := buildForest(specs)
			res, err := svc.ResolveNames(forest)
			if err != nil {
				return false
			}
			changed := map[string]bool{}
			walkPairs(forest, res.Entities, 0, func(orig, renamed domain.Entity, _ int) bool {
				if orig.Name != renamed.Name {
					changed[orig.Name] = true
				}
				return true
			})
			if len(changed) != len(res.Mapping) {
				return false
			}
			for k, v := range res.Mapping {
				if !changed[k] || k == v {
					return false
				}
			}
			return true
		},
		genForest(),
	))

	properties.Property("utterance references follow the mapping in lock-step", prop.ForAll(
		func(specs []nodeSpec) bool {
			forest := buildForest(specs)
			res, err := svc.ResolveNames(forest)
			if err != nil {
				return false
			}

			var refs []domain.EntityReference
			walkPairs(forest, forest, 0, func(orig, _ domain.Entity, _ int) bool {
				refs = append(refs, domain.EntityReference{Entity: orig.Name, StartPos: len(refs), EndPos: len(refs) + 1})
				return true
			})
			utterances := []domain.Utterance{{Text: "generated", Entities: refs}}

			out, _ := UpdateUtterances(utterances, res.Mapping)
			for i, ref := range out[0].Entities {
				orig := refs[i]
				want, ok := res.Mapping[orig.Entity]
				if !ok {
					want = orig.Entity
				}
				if ref.Entity != want || ref.StartPos != orig.StartPos || ref.EndPos != orig.EndPos {
					return false
				}
			}
			return true
		},
		genForest(),
	))

	properties.TestingRun(t)
}

func TestResolveNames_SecondPassIsNoOp(t *testing.T) {
	svc := NewService(discardLogger(), nil, CollisionLast)

	first, err := svc.ResolveNames(salesEntities())
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.ResolveNames(first.Entities)
	if err != nil {
		t.Fatal(err)
	}

	if len(second.Mapping) != 0 {
		t.Errorf("second pass mapping = %v, want empty", second.Mapping)
	}
	walkPairs(first.Entities, second.Entities, 0, func(a, b domain.Entity, _ int) bool {
		if a.Name != b.Name {
			t.Errorf("second pass renamed %q to %q", a.Name, b.Name)
		}
		return true
	})
}
