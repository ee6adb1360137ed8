package rename

import "github.com/Jay-Jay-D/luis-json-converter/internal/domain"

// UpdateUtterances returns a copy of utterances with every entity reference
// renamed through mapping, including nested children. The lookup is a single
// step: a substituted name is never looked up again. It also returns the
// number of references that changed. A nil input yields nil.
func UpdateUtterances(utterances []domain.Utterance, mapping Mapping) ([]domain.Utterance, int) {
	if utterances == nil {
		return nil, 0
	}

	var updated int
	out := make([]domain.Utterance, len(utterances))
	for i, u := range utterances {
		out[i] = u.With(updateReferences(u.Entities, mapping, &updated))
	}
	return out, updated
}

func updateReferences(refs []domain.EntityReference, mapping Mapping, updated *int) []domain.EntityReference {
	if refs == nil {
		return nil
	}

	out := make([]domain.EntityReference, len(refs))
	for i, ref := range refs {
		name := mapping.Lookup(ref.Entity)
		if name != ref.Entity {
			*updated++
		}
		out[i] = ref.With(name, updateReferences(ref.Children, mapping, updated))
	}
	return out
}
