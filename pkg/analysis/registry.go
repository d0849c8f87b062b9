package analysis

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownTool indicates a requested tool name is not registered.
// It is fatal at startup, before any iteration begins.
var ErrUnknownTool = errors.New("unknown analysis tool")

// Options configures a tool constructed from the registry.
type Options struct {
	// Workdir is the directory the backend runs in (the repository's
	// working tree).
	Workdir string
	// Targets is the backend-specific target path spec; empty selects
	// the tool's default.
	Targets string
	// Runner invokes the backend process.
	Runner Runner
	// DeltaMode selects disappeared-rule handling in ErrorDelta.
	DeltaMode DeltaMode
}

// Constructor builds a tool variant from options.
type Constructor func(opts Options) Tool

var registry = map[string]Constructor{
	"pylint":   NewPylint,
	"cppcheck": NewCppcheck,
}

// Register adds a tool variant under the given name, replacing any
// existing registration. New variants need no walker or aggregator
// changes.
func Register(name string, ctor Constructor) {
	registry[name] = ctor
}

// NewTool constructs the named tool variant.
func NewTool(name string, opts Options) (Tool, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownTool, name, Names())
	}

	return ctor(opts), nil
}

// Names returns the registered tool names in stable order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
