// Copyright (c) 2025 The triemap Authors
// SPDX-License-Identifier: MIT

package triemap

import (
	"encoding/json"
)

// ListElement is a recursive JSON representation of a key, its value
// and the keys it is a prefix of.
//
// Keys are rendered as strings, bytes that are not valid UTF-8 come
// out as the Unicode replacement character during JSON encoding.
type ListElement[V any] struct {
	Key      string           `json:"key"`
	Value    V                `json:"value"`
	Children []ListElement[V] `json:"children,omitempty"`
}

// MarshalJSON dumps the map into a list of elements.
// Every level is an array, not a map (key -> {value,children}),
// because the order matters.
func (m *Map[K, V]) MarshalJSON() ([]byte, error) {
	result, err := m.DumpList()
	if err != nil {
		return nil, err
	}

	return json.Marshal(result)
}

// DumpList dumps the map into a list of the topmost keys and their
// children, nested along the keys' prefix containment. The list and
// every nested child list is in ascending key order.
func (m *Map[K, V]) DumpList() ([]ListElement[V], error) {
	if m == nil || m.size == 0 {
		return nil, nil
	}

	return m.dumpListRec(kid[V]{}), nil
}

func (m *Map[K, V]) dumpListRec(parent kid[V]) []ListElement[V] {
	directKids := m.kidsBelow(parent)
	if len(directKids) == 0 {
		return nil
	}

	elements := make([]ListElement[V], 0, len(directKids))
	for _, kid := range directKids {
		elements = append(elements, ListElement[V]{
			Key:      string(kid.path),
			Value:    kid.val,
			Children: m.dumpListRec(kid),
		})
	}

	return elements
}
