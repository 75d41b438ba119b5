package domain

import (
	"bytes"
	"encoding/json"
)

// RecipeView is a projected recipe: an ordered set of output keys. Keys are
// rendered in insertion order so responses stay stable.
type RecipeView struct {
	keys   []string
	values map[string]any
}

func NewRecipeView() RecipeView {
	return RecipeView{values: make(map[string]any)}
}

func (v *RecipeView) Set(key string, value any) {
	if v.values == nil {
		v.values = make(map[string]any)
	}
	if _, exists := v.values[key]; !exists {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

func (v RecipeView) Get(key string) (any, bool) {
	value, ok := v.values[key]
	return value, ok
}

func (v RecipeView) Has(key string) bool {
	_, ok := v.values[key]
	return ok
}

func (v RecipeView) Keys() []string {
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

func (v RecipeView) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range v.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(v.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
