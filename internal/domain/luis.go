package domain

import (
	"encoding/json"
	"strconv"
)

// Keys the converter reads or rewrites. Everything else is passed through.
const (
	keyEntities   = "entities"
	keyUtterances = "utterances"
	keyName       = "name"
	keyChildren   = "children"
	keyFeatures   = "features"
	keyRoles      = "roles"
	keyText       = "text"
	keyIntent     = "intent"
	keyEntity     = "entity"
	keyStartPos   = "startPos"
	keyEndPos     = "endPos"
)

// Document is a LUIS application export. Entities and Utterances are nil when
// the source document has no such key.
type Document struct {
	Entities   []Entity
	Utterances []Utterance

	fields Object
}

// With returns a copy of d carrying the given entities and utterances.
// Passthrough members keep their position.
func (d *Document) With(entities []Entity, utterances []Utterance) *Document {
	return &Document{
		Entities:   entities,
		Utterances: utterances,
		fields:     d.fields.Clone(),
	}
}

// Keys returns the top-level keys in source order.
func (d *Document) Keys() []string {
	return d.fields.Keys()
}

// Raw returns the raw value of a top-level key as it appeared in the source.
func (d *Document) Raw(key string) (json.RawMessage, bool) {
	return d.fields.Get(key)
}

// Encode renders d as compact JSON without HTML escaping.
func (d *Document) Encode() ([]byte, error) {
	return encodeValue(d)
}

func (d *Document) MarshalJSON() ([]byte, error) {
	obj := d.fields.Clone()
	if err := setOrDelete(&obj, keyEntities, d.Entities != nil, d.Entities); err != nil {
		return nil, err
	}
	if err := setOrDelete(&obj, keyUtterances, d.Utterances != nil, d.Utterances); err != nil {
		return nil, err
	}
	return obj.MarshalJSON()
}

// Entity is a node of the entity hierarchy. Children is nil for a leaf that
// has no "children" key; Features and Roles are opaque.
type Entity struct {
	Name     string
	Children []Entity
	Features json.RawMessage
	Roles    json.RawMessage

	fields Object
}

// With returns a copy of e with a new name and child list.
func (e Entity) With(name string, children []Entity) Entity {
	e.Name = name
	e.Children = children
	e.fields = e.fields.Clone()
	return e
}

func (e Entity) MarshalJSON() ([]byte, error) {
	obj := e.fields.Clone()
	if err := setOrDelete(&obj, keyName, true, e.Name); err != nil {
		return nil, err
	}
	if err := setOrDelete(&obj, keyChildren, e.Children != nil, e.Children); err != nil {
		return nil, err
	}
	setRawOrDelete(&obj, keyFeatures, e.Features)
	setRawOrDelete(&obj, keyRoles, e.Roles)
	return obj.MarshalJSON()
}

// Utterance is an example sentence labelled with entity references. Text and
// Intent are informational: they are filled when the source holds strings and
// are never validated.
type Utterance struct {
	Text     string
	Intent   string
	Entities []EntityReference

	fields Object
}

// With returns a copy of u carrying refs as its entity references.
func (u Utterance) With(refs []EntityReference) Utterance {
	u.Entities = refs
	u.fields = u.fields.Clone()
	return u
}

// MarshalJSON writes text and intent only for utterances built in code; a
// parsed utterance keeps them exactly as they were in the source.
func (u Utterance) MarshalJSON() ([]byte, error) {
	obj := u.fields.Clone()
	if u.fields == nil {
		if err := setOrDelete(&obj, keyText, true, u.Text); err != nil {
			return nil, err
		}
		if err := setOrDelete(&obj, keyIntent, true, u.Intent); err != nil {
			return nil, err
		}
	}
	if err := setOrDelete(&obj, keyEntities, u.Entities != nil, u.Entities); err != nil {
		return nil, err
	}
	return obj.MarshalJSON()
}

// EntityReference labels a span of an utterance with an entity name. It refers
// to the entity by name only.
type EntityReference struct {
	Entity   string
	StartPos int
	EndPos   int
	Children []EntityReference

	fields Object
}

// With returns a copy of r pointing at entity and carrying children.
func (r EntityReference) With(entity string, children []EntityReference) EntityReference {
	r.Entity = entity
	r.Children = children
	r.fields = r.fields.Clone()
	return r
}

// MarshalJSON emits positions only for references built in code. Parsed
// positions are written back byte for byte, whatever number syntax they used.
func (r EntityReference) MarshalJSON() ([]byte, error) {
	obj := r.fields.Clone()
	if err := setOrDelete(&obj, keyEntity, true, r.Entity); err != nil {
		return nil, err
	}
	if r.fields == nil {
		obj.Set(keyStartPos, json.RawMessage(strconv.Itoa(r.StartPos)))
		obj.Set(keyEndPos, json.RawMessage(strconv.Itoa(r.EndPos)))
	}
	if err := setOrDelete(&obj, keyChildren, r.Children != nil, r.Children); err != nil {
		return nil, err
	}
	return obj.MarshalJSON()
}

func setOrDelete(obj *Object, key string, present bool, v any) error {
	if !present {
		obj.Delete(key)
		return nil
	}
	raw, err := encodeValue(v)
	if err != nil {
		return err
	}
	obj.Set(key, raw)
	return nil
}

func setRawOrDelete(obj *Object, key string, raw json.RawMessage) {
	if raw == nil {
		obj.Delete(key)
		return
	}
	obj.Set(key, raw)
}
