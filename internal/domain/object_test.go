package domain

import (
	"encoding/json"
	"testing"

	"github.com/tidwall/gjson"
)

func TestObject_SetReplacesInPlace(t *testing.T) {
	t.Parallel()

	obj := Object{
		{Key: "a", Value: json.RawMessage(`1`)},
		{Key: "b", Value: json.RawMessage(`2`)},
	}
	obj.Set("a", json.RawMessage(`10`))
	obj.Set("c", json.RawMessage(`3`))

	out, err := obj.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if got := string(out); got != `{"a":10,"b":2,"c":3}` {
		t.Errorf("MarshalJSON() = %s", got)
	}
}

func TestObject_Delete(t *testing.T) {
	t.Parallel()

	obj := Object{
		{Key: "a", Value: json.RawMessage(`1`)},
		{Key: "b", Value: json.RawMessage(`2`)},
	}
	obj.Delete("a")
	obj.Delete("missing")

	if obj.Has("a") {
		t.Error("a should be deleted")
	}
	if len(obj) != 1 || obj[0].Key != "b" {
		t.Errorf("unexpected members: %v", obj.Keys())
	}
}

func TestObject_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	obj := Object{{Key: "a", Value: json.RawMessage(`1`)}}
	clone := obj.Clone()
	clone.Set("a", json.RawMessage(`2`))

	v, _ := obj.Get("a")
	if string(v) != "1" {
		t.Errorf("original changed to %s", v)
	}
}

func TestObject_EmptyMarshal(t *testing.T) {
	t.Parallel()

	var obj Object
	out, err := obj.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "{}" {
		t.Errorf("MarshalJSON() = %s, want {}", out)
	}
}

func TestObject_KeyEscaping(t *testing.T) {
	t.Parallel()

	obj := Object{{Key: `we"ird`, Value: json.RawMessage(`true`)}}
	out, err := obj.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"we\"ird":true}` {
		t.Errorf("MarshalJSON() = %s", out)
	}
}

func TestObjectFrom_DuplicateKeys(t *testing.T) {
	t.Parallel()

	obj := objectFrom(gjson.Parse(`{"a":1,"b":2,"a":3}`))

	if got := obj.Keys(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("Keys() = %v, want [a b]", got)
	}
	if v, _ := obj.Get("a"); string(v) != "3" {
		t.Errorf("Get(a) = %s, want last value 3", v)
	}
}

func TestObjectFrom_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	if obj := objectFrom(gjson.Parse(`{}`)); obj == nil {
		t.Error("objectFrom({}) returned nil")
	}
}
