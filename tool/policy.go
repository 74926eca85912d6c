package tool

import (
	"fmt"
	"sort"

	"github.com/google/cel-go/cel"
)

// PolicyWildcard keys a rule that applies to every tool.
const PolicyWildcard = "*"

// Policy gates tool calls with CEL expressions over the tool name and its
// decoded arguments:
//
//	rules := map[string]string{
//		"deleteFile": `!args.path.startsWith("/")`,
//		"*":          `tool != "searchWeb" || size(args.query) < 200`,
//	}
//
// A call is allowed when the rule for its tool and the wildcard rule both
// evaluate to true. Tools without rules are allowed.
type Policy struct {
	programs map[string]cel.Program
	sources  map[string]string
}

// NewPolicy compiles rules keyed by tool name. Every expression must yield a bool.
func NewPolicy(rules map[string]string) (*Policy, error) {
	env, err := cel.NewEnv(
		cel.Variable("tool", cel.StringType),
		cel.Variable("args", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create policy environment: %w", err)
	}

	p := &Policy{
		programs: make(map[string]cel.Program, len(rules)),
		sources:  make(map[string]string, len(rules)),
	}

	// sorted so the first reported error is deterministic
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		src := rules[name]
		ast, issues := env.Compile(src)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("policy for %q: %w", name, issues.Err())
		}
		out := ast.OutputType()
		if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
			return nil, fmt.Errorf("policy for %q: expression must be bool, got %s", name, out)
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("policy for %q: %w", name, err)
		}
		p.programs[name] = prg
		p.sources[name] = src
	}

	return p, nil
}

// Allow evaluates the rules that apply to the call. A rule that fails to
// evaluate, or yields a non-bool, denies the call with an error describing why.
func (p *Policy) Allow(tool string, args map[string]any) (bool, error) {
	if p == nil {
		return true, nil
	}
	if args == nil {
		args = map[string]any{}
	}

	for _, key := range []string{tool, PolicyWildcard} {
		prg, ok := p.programs[key]
		if !ok {
			continue
		}
		out, _, err := prg.Eval(map[string]any{"tool": tool, "args": args})
		if err != nil {
			return false, fmt.Errorf("rule %q: %w", p.sources[key], err)
		}
		allowed, ok := out.Value().(bool)
		if !ok {
			return false, fmt.Errorf("rule %q: result is %T, not bool", p.sources[key], out.Value())
		}
		if !allowed {
			return false, fmt.Errorf("rule %q evaluated to false", p.sources[key])
		}
	}
	return true, nil
}

// Len returns the number of compiled rules.
func (p *Policy) Len() int {
	if p == nil {
		return 0
	}
	return len(p.programs)
}
