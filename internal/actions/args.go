package actions

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/hexsettle/internal/registry"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

// ParseArgs turns key=value tokens into Args. Recognised keys are
// corners, tile, player, card, resources, taken, resource, given and
// choices. List values are comma separated; bundles use the
// resource.ParseBundle syntax ("brick:1,lumber:1").
func ParseArgs(tokens []string) (registry.Args, error) {
	var args registry.Args
	for _, tok := range tokens {
		name, value, ok := strings.Cut(tok, "=")
		if !ok {
			return registry.Args{}, fmt.Errorf("%w: %q is not key=value", ErrInvalidArgument, tok)
		}

		var err error
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "corners", "corner":
			args.Corners, err = parseInts(value)
		case "tile":
			args.Tile, err = parseID(value)
		case "player":
			args.Player, err = parseID(value)
		case "card":
			args.Card, err = parseID(value)
		case "resources":
			args.Resources, err = resource.ParseBundle(value)
		case "taken":
			args.Taken, err = resource.ParseBundle(value)
		case "resource":
			args.Resource, err = parseKind(value)
		case "given":
			args.Given, err = parseKind(value)
		case "choices":
			args.Choices, err = parseKinds(value)
		default:
			return registry.Args{}, fmt.Errorf("%w: unknown key %q", ErrInvalidArgument, name)
		}
		if err != nil {
			return registry.Args{}, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, name, err)
		}
	}
	return args, nil
}

func split(value string) []string {
	var out []string
	for _, f := range strings.Split(value, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseInts(value string) ([]int, error) {
	var out []int
	for _, f := range split(value) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseID(value string) (*int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseKind(value string) (*resource.Kind, error) {
	k, err := resource.ParseKind(strings.TrimSpace(value))
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func parseKinds(value string) ([]resource.Kind, error) {
	var out []resource.Kind
	for _, f := range split(value) {
		k, err := resource.ParseKind(f)
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}
