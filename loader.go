package ooroo

import (
	"fmt"
	"os"

	"ooroo/internal/parser"
)

// PlanFromDSL parses and compiles a complete .ooroo source string.
func PlanFromDSL(source string) (*CompiledPlan, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, wrapParseError(err)
	}
	return compile(prog)
}

// PlanFromFile reads path and compiles it as .ooroo source. A read
// failure is returned as a plain wrapped error, not a *CompileError —
// it never reached parsing, so it isn't a compile failure at all.
func PlanFromFile(path string) (*CompiledPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ooroo: reading %s: %w", path, err)
	}
	return PlanFromDSL(string(data))
}
