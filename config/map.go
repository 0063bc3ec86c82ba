// Copyright (c) 2025 Kilnworks and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"strings"

	"github.com/kilnworks/bootwire/config/key"
)

// Map is an ordinary map[string]any but implements both the [Source]
// and [Store] interfaces.
type Map map[string]any

// Apply implements the [Source] interface. It recursively walks the
// underlying map to find key value pairs to set on the given store.
func (m Map) Apply(store Store) error {
	return walkMap(m, store, nil)
}

func walkMap(m map[string]any, store Store, chain key.Chain) error {
	for k, v := range m {
		switch x := v.(type) {
		case map[string]any:
			err := walkMap(x, store, append(chain, key.Name(k)))
			if err != nil {
				return err
			}
		default:
			err := store.Set(append(chain, key.Name(k)), x)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Set implements the [Store] interface. Dotted keys create nested
// maps; setting a key under a non map value replaces that value,
// which is how later sources override earlier ones.
func (m Map) Set(k key.Keyer, v any) error {
	parts := strings.Split(k.Key(), ".")

	cur := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
	return nil
}
