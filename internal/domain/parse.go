package domain

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// ParseDocument decodes a LUIS document. Only the fields the converter touches
// are checked; any structural violation there yields a *MalformedError.
func ParseDocument(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, NewMalformedError("", "invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, NewMalformedError("", "top level must be an object")
	}

	doc := &Document{fields: objectFrom(root)}

	if raw, ok := doc.fields.Get(keyEntities); ok {
		entities, err := parseEntities(gjson.ParseBytes(raw), keyEntities)
		if err != nil {
			return nil, err
		}
		doc.Entities = entities
	}

	if raw, ok := doc.fields.Get(keyUtterances); ok {
		utterances, err := parseUtterances(gjson.ParseBytes(raw), keyUtterances)
		if err != nil {
			return nil, err
		}
		doc.Utterances = utterances
	}

	return doc, nil
}

func parseEntities(r gjson.Result, path string) ([]Entity, error) {
	if !r.IsArray() {
		return nil, NewMalformedError(path, "must be an array")
	}
	items := r.Array()
	out := make([]Entity, 0, len(items))
	for i, item := range items {
		e, err := parseEntity(item, index(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func parseEntity(r gjson.Result, path string) (Entity, error) {
	if !r.IsObject() {
		return Entity{}, NewMalformedError(path, "must be an object")
	}
	e := Entity{fields: objectFrom(r)}

	name, err := requireString(e.fields, keyName, path)
	if err != nil {
		return Entity{}, err
	}
	e.Name = name

	if raw, ok := e.fields.Get(keyChildren); ok {
		children, err := parseEntities(gjson.ParseBytes(raw), path+"."+keyChildren)
		if err != nil {
			return Entity{}, err
		}
		e.Children = children
	}
	if raw, ok := e.fields.Get(keyFeatures); ok {
		e.Features = raw
	}
	if raw, ok := e.fields.Get(keyRoles); ok {
		e.Roles = raw
	}
	return e, nil
}

func parseUtterances(r gjson.Result, path string) ([]Utterance, error) {
	if !r.IsArray() {
		return nil, NewMalformedError(path, "must be an array")
	}
	items := r.Array()
	out := make([]Utterance, 0, len(items))
	for i, item := range items {
		p := index(path, i)
		if !item.IsObject() {
			return nil, NewMalformedError(p, "must be an object")
		}
		u := Utterance{fields: objectFrom(item)}

		u.Text = stringOrEmpty(u.fields, keyText)
		u.Intent = stringOrEmpty(u.fields, keyIntent)
		if raw, ok := u.fields.Get(keyEntities); ok {
			refs, err := parseReferences(gjson.ParseBytes(raw), p+"."+keyEntities)
			if err != nil {
				return nil, err
			}
			u.Entities = refs
		}
		out = append(out, u)
	}
	return out, nil
}

func parseReferences(r gjson.Result, path string) ([]EntityReference, error) {
	if !r.IsArray() {
		return nil, NewMalformedError(path, "must be an array")
	}
	items := r.Array()
	out := make([]EntityReference, 0, len(items))
	for i, item := range items {
		p := index(path, i)
		if !item.IsObject() {
			return nil, NewMalformedError(p, "must be an object")
		}
		ref := EntityReference{fields: objectFrom(item)}

		var err error
		if ref.Entity, err = requireString(ref.fields, keyEntity, p); err != nil {
			return nil, err
		}
		if ref.StartPos, err = optionalInt(ref.fields, keyStartPos, p); err != nil {
			return nil, err
		}
		if ref.EndPos, err = optionalInt(ref.fields, keyEndPos, p); err != nil {
			return nil, err
		}
		if raw, ok := ref.fields.Get(keyChildren); ok {
			if ref.Children, err = parseReferences(gjson.ParseBytes(raw), p+"."+keyChildren); err != nil {
				return nil, err
			}
		}
		out = append(out, ref)
	}
	return out, nil
}

func requireString(obj Object, key, path string) (string, error) {
	raw, ok := obj.Get(key)
	if !ok {
		return "", NewMalformedError(path+"."+key, "required")
	}
	v := gjson.ParseBytes(raw)
	if v.Type != gjson.String {
		return "", NewMalformedError(path+"."+key, "must be a string")
	}
	return v.Str, nil
}

func stringOrEmpty(obj Object, key string) string {
	raw, ok := obj.Get(key)
	if !ok {
		return ""
	}
	if v := gjson.ParseBytes(raw); v.Type == gjson.String {
		return v.Str
	}
	return ""
}

func optionalInt(obj Object, key, path string) (int, error) {
	raw, ok := obj.Get(key)
	if !ok {
		return 0, nil
	}
	v := gjson.ParseBytes(raw)
	if v.Type != gjson.Number {
		return 0, NewMalformedError(path+"."+key, "must be a number")
	}
	return int(v.Int()), nil
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}
