// Package envelope absorbs the backend's response-shape instability. The
// wire envelope around a payload is not stable across deployments: a
// collection may arrive as a bare array, wrapped under the resource key,
// under "data" or "items", or as a keyed map of entities. This package is
// the single place that instability is translated into the canonical shape;
// call sites never branch on raw wire shape.
package envelope

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/rs/zerolog/log"
)

// defaultWrapperKeys are tried after the resource-specific keys
var defaultWrapperKeys = []string{"data", "items"}

// maxUnwrapDepth bounds recursive unwrapping of nested envelopes such as
// {"data": {"workspaces": [...]}}.
const maxUnwrapDepth = 3

// Collection normalizes a response payload into an ordered sequence of raw
// entities. Rules, in priority order:
//
//  1. a bare array is returned unchanged;
//  2. a known wrapper key (the given resource keys, then "data", "items")
//     is unwrapped and the rules re-applied;
//  3. an object whose every value resembles an entity yields its values;
//  4. a payload that itself resembles a single entity yields one element;
//  5. anything else yields an empty sequence.
//
// null, absent, and empty-object payloads all yield an empty sequence.
// Rules 3 and 4 are heuristic fallbacks; taking them is logged because it
// indicates drift between the client and server contracts.
func Collection(payload []byte, wrapperKeys ...string) []json.RawMessage {
	return collection(payload, wrapperKeys, maxUnwrapDepth)
}

func collection(payload []byte, wrapperKeys []string, depth int) []json.RawMessage {
	payload = bytes.TrimSpace(payload)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return []json.RawMessage{}
	}

	if payload[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(payload, &items); err != nil {
			return []json.RawMessage{}
		}
		return items
	}

	obj, ok := asObject(payload)
	if !ok || len(obj) == 0 {
		return []json.RawMessage{}
	}

	if depth > 0 {
		for _, key := range append(append([]string{}, wrapperKeys...), defaultWrapperKeys...) {
			if inner, present := obj[key]; present {
				return collection(inner, wrapperKeys, depth-1)
			}
		}
	}

	// Keyed map of entities: every value must pass the shape check.
	if allEntities(obj) {
		log.Warn().
			Strs("wrapper_keys", wrapperKeys).
			Msg("envelope: falling back to keyed-map heuristic")
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		items := make([]json.RawMessage, 0, len(obj))
		for _, k := range keys {
			items = append(items, obj[k])
		}
		return items
	}

	if looksLikeEntity(obj) {
		log.Warn().
			Strs("wrapper_keys", wrapperKeys).
			Msg("envelope: treating single entity as one-element collection")
		return []json.RawMessage{json.RawMessage(payload)}
	}

	return []json.RawMessage{}
}

// Entity normalizes a single-entity payload: a direct object is returned
// unchanged, a known wrapper key is unwrapped, and anything else is handed
// back as-is so the caller can decode best-effort.
func Entity(payload []byte, wrapperKeys ...string) json.RawMessage {
	return entity(payload, wrapperKeys, maxUnwrapDepth)
}

func entity(payload []byte, wrapperKeys []string, depth int) json.RawMessage {
	payload = bytes.TrimSpace(payload)
	obj, ok := asObject(payload)
	if !ok {
		return payload
	}
	if looksLikeEntity(obj) {
		return payload
	}
	if depth > 0 {
		for _, key := range append(append([]string{}, wrapperKeys...), defaultWrapperKeys...) {
			if inner, present := obj[key]; present {
				return entity(inner, wrapperKeys, depth-1)
			}
		}
	}
	return payload
}

// DecodeList runs Collection and decodes every element into T
func DecodeList[T any](payload []byte, wrapperKeys ...string) ([]T, error) {
	raws := Collection(payload, wrapperKeys...)
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// DecodeOne runs Entity and decodes the result into T
func DecodeOne[T any](payload []byte, wrapperKeys ...string) (*T, error) {
	var v T
	if err := json.Unmarshal(Entity(payload, wrapperKeys...), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func asObject(payload []byte) (map[string]json.RawMessage, bool) {
	if len(payload) == 0 || payload[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(payload, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// looksLikeEntity is the duck-typed shape check: an object with both an id
// and a name. Kept as a last-resort heuristic only; the wrapper-key paths
// above are authoritative.
func looksLikeEntity(obj map[string]json.RawMessage) bool {
	_, hasID := obj["id"]
	_, hasName := obj["name"]
	return hasID && hasName
}

// allEntities reports whether every value in the object passes the entity
// shape check.
func allEntities(obj map[string]json.RawMessage) bool {
	for _, raw := range obj {
		inner, ok := asObject(raw)
		if !ok || !looksLikeEntity(inner) {
			return false
		}
	}
	return len(obj) > 0
}
