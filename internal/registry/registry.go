// Package registry provides a global registry for action handlers.
// Handlers register themselves in init() functions, allowing the dispatcher
// and the CLI to discover actions without a hardcoded switch.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/hexsettle/internal/engine"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

// Args carries the raw, id-based arguments of one action request.
// Handlers resolve ids against the game; nil pointers mean "not given".
type Args struct {
	Corners   []int
	Tile      *int
	Player    *int
	Card      *int
	Resources resource.Bundle
	Taken     resource.Bundle
	Resource  *resource.Kind
	Given     *resource.Kind
	Choices   []resource.Kind
}

// Handler turns an Args request into a call on the current turn.
type Handler interface {
	// Action returns the engine action this handler drives.
	Action() engine.Action

	// Usage describes the arguments Execute reads, e.g. "corners=<a>,<b>".
	Usage() string

	// Execute resolves args and performs the action for p.
	// Legality failures come back as *check.Error.
	Execute(g *engine.Game, p *engine.Player, args Args) error
}

// Info contains metadata about a registered handler.
type Info struct {
	Name   string
	Action engine.Action
	Usage  string
}

// Factory is a function that creates a new handler instance.
type Factory func() Handler

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]Info)
	mu        sync.RWMutex
)

func key(name string) string {
	return strings.ToLower(name)
}

// Register adds a handler factory to the registry under its action name.
// Panics if the action is already registered.
func Register(f Factory) {
	mu.Lock()
	defer mu.Unlock()

	h := f()
	name := h.Action().String()
	if _, exists := factories[key(name)]; exists {
		panic(fmt.Sprintf("registry: action %q already registered", name))
	}

	factories[key(name)] = f
	infos[key(name)] = Info{Name: name, Action: h.Action(), Usage: h.Usage()}
}

// List returns information about all registered handlers in action order.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Action < result[j].Action
	})

	return result
}

// Create instantiates the handler for an action name, ignoring case.
// Returns an error if the action is not registered.
func Create(name string) (Handler, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[key(name)]
	if !ok {
		return nil, fmt.Errorf("registry: unknown action %q", name)
	}

	return f(), nil
}

// Exists checks if a handler for the given action name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[key(name)]
	return ok
}
