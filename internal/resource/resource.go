// Package resource provides the five resource kinds and the Bundle multiset
// used for costs, holdings, yields and trades.
package resource

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is one of the five resource kinds.
type Kind uint8

const (
	Brick Kind = iota
	Lumber
	Wool
	Grain
	Ore
)

// NumKinds is the size of the resource domain.
const NumKinds = 5

// ErrInsufficient is returned when a subtraction would go below zero.
var ErrInsufficient = errors.New("resource: insufficient quantity")

// ErrUnknownKind is returned by ParseKind for unrecognised names.
var ErrUnknownKind = errors.New("resource: unknown kind")

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	return []Kind{Brick, Lumber, Wool, Grain, Ore}
}

// String returns the resource name.
func (k Kind) String() string {
	switch k {
	case Brick:
		return "Brick"
	case Lumber:
		return "Lumber"
	case Wool:
		return "Wool"
	case Grain:
		return "Grain"
	case Ore:
		return "Ore"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is inside the resource domain.
func (k Kind) Valid() bool {
	return k < NumKinds
}

// ParseKind parses a case-insensitive resource name.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brick":
		return Brick, nil
	case "lumber", "wood":
		return Lumber, nil
	case "wool", "sheep":
		return Wool, nil
	case "grain", "wheat":
		return Grain, nil
	case "ore":
		return Ore, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Bundle is a non-negative count per resource kind.
// The zero value is the empty bundle.
type Bundle [NumKinds]int

// Of returns a bundle holding n units of k.
func Of(k Kind, n int) Bundle {
	var b Bundle
	b[k] = n
	return b
}

// FromMap builds a bundle from a kind to quantity map.
func FromMap(m map[Kind]int) Bundle {
	var b Bundle
	for k, n := range m {
		b[k] += n
	}
	return b
}

// Get returns the quantity of k.
func (b Bundle) Get(k Kind) int {
	return b[k]
}

// Has reports whether the bundle holds at least n units of k.
func (b Bundle) Has(k Kind, n int) bool {
	return b[k] >= n
}

// HasAll reports whether b contains every unit of other.
func (b Bundle) HasAll(other Bundle) bool {
	for k := range b {
		if b[k] < other[k] {
			return false
		}
	}
	return true
}

// Add adds n units of k. n must not be negative.
func (b *Bundle) Add(k Kind, n int) {
	if n < 0 {
		panic(fmt.Sprintf("resource: negative add of %d %s", n, k))
	}
	b[k] += n
}

// AddAll adds every unit of other.
func (b *Bundle) AddAll(other Bundle) {
	for k := range b {
		b[k] += other[k]
	}
}

// Subtract removes n units of k, failing if fewer are held.
func (b *Bundle) Subtract(k Kind, n int) error {
	if b[k] < n {
		return fmt.Errorf("%w: want %d %s, have %d", ErrInsufficient, n, k, b[k])
	}
	b[k] -= n
	return nil
}

// SubtractAll removes every unit of other. Nothing is removed on failure.
func (b *Bundle) SubtractAll(other Bundle) error {
	if !b.HasAll(other) {
		return fmt.Errorf("%w: want %s, have %s", ErrInsufficient, other, *b)
	}
	for k := range b {
		b[k] -= other[k]
	}
	return nil
}

// Without returns b minus other, clamping each kind at zero.
func (b Bundle) Without(other Bundle) Bundle {
	var out Bundle
	for k := range b {
		if d := b[k] - other[k]; d > 0 {
			out[k] = d
		}
	}
	return out
}

// Multiply scales every count by factor.
func (b Bundle) Multiply(factor int) Bundle {
	var out Bundle
	for k := range b {
		out[k] = b[k] * factor
	}
	return out
}

// Combine sums bundles.
func Combine(bundles ...Bundle) Bundle {
	var out Bundle
	for _, b := range bundles {
		out.AddAll(b)
	}
	return out
}

// Total returns the number of units across all kinds.
func (b Bundle) Total() int {
	total := 0
	for _, n := range b {
		total += n
	}
	return total
}

// IsEmpty reports whether the bundle holds nothing.
func (b Bundle) IsEmpty() bool {
	return b.Total() == 0
}

// Unit returns the kind of the n-th unit (0-based) when units are laid out
// kind by kind. It lets callers pick a unit weighted by quantity.
func (b Bundle) Unit(n int) (Kind, bool) {
	if n < 0 {
		return 0, false
	}
	for _, k := range Kinds() {
		if n < b[k] {
			return k, true
		}
		n -= b[k]
	}
	return 0, false
}

// Kinds returns the kinds with a positive count.
func (b Bundle) Kinds() []Kind {
	var kinds []Kind
	for _, k := range Kinds() {
		if b[k] > 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// String renders the bundle as "Brick:1 Grain:2", or "-" when empty.
func (b Bundle) String() string {
	parts := make([]string, 0, NumKinds)
	for _, k := range Kinds() {
		if b[k] > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", k, b[k]))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// ParseBundle parses "brick:1,grain:2" (also accepting "=" and spaces).
// A bare kind counts as one unit; repeated kinds accumulate.
func ParseBundle(s string) (Bundle, error) {
	var b Bundle
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})
	for _, f := range fields {
		name, qty, found := strings.Cut(f, ":")
		if !found {
			name, qty, found = strings.Cut(f, "=")
		}
		k, err := ParseKind(name)
		if err != nil {
			return Bundle{}, err
		}
		n := 1
		if found {
			n, err = strconv.Atoi(qty)
			if err != nil || n < 0 {
				return Bundle{}, fmt.Errorf("resource: bad quantity %q for %s", qty, k)
			}
		}
		b[k] += n
	}
	return b, nil
}

// Map returns the non-zero counts keyed by kind name.
func (b Bundle) Map() map[string]int {
	m := make(map[string]int)
	for _, k := range Kinds() {
		if b[k] > 0 {
			m[k.String()] = b[k]
		}
	}
	return m
}
