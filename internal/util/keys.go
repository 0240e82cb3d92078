package util

import (
	"strconv"
	"strings"

	"github.com/unkn0wn-root/aerocache/store"
)

// FlatKey renders a native key as a single string for byte-oriented backends.
// Namespace and set are length-prefixed so ids containing ':' cannot collide:
//
//	<len(ns)>:<ns>:<len(set)>:<set>:<id>
func FlatKey(k store.Key) string {
	var b strings.Builder
	b.Grow(len(k.Namespace) + len(k.Set) + len(k.ID) + 12)
	b.WriteString(strconv.Itoa(len(k.Namespace)))
	b.WriteByte(':')
	b.WriteString(k.Namespace)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(len(k.Set)))
	b.WriteByte(':')
	b.WriteString(k.Set)
	b.WriteByte(':')
	b.WriteString(k.ID)
	return b.String()
}
