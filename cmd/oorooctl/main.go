// Command oorooctl is a small operator CLI over the ooroo package:
// compile validates a .ooroo source file and prints its rule names in
// execution order, eval loads a plan and runs it against a flat JSON
// context.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ooroo"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "oorooctl",
		Short: "Compile and evaluate ooroo rulesets",
	}
	root.AddCommand(compileCmd())
	root.AddCommand(evalCmd())
	return root
}

func compileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compile <file.ooroo>",
		Short: "Validate a .ooroo source file and print its rule table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := ooroo.PlanFromFile(args[0])
			if err != nil {
				return err
			}
			for _, name := range plan.RuleNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func evalCmd() *cobra.Command {
	var detailed bool
	cmd := &cobra.Command{
		Use:   "eval <file.ooroo> <context.json>",
		Short: "Evaluate a compiled plan against a flat JSON context",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := ooroo.PlanFromFile(args[0])
			if err != nil {
				return err
			}

			raw, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}
			ctx, err := contextFromJSON(raw)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if detailed {
				report := plan.EvaluateDetailed(ctx)
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			verdict := plan.Evaluate(ctx)
			if verdict == nil {
				fmt.Fprintln(out, "no terminal fired")
				return nil
			}
			fmt.Fprintf(out, "%s\n", verdict.Terminal)
			return nil
		},
	}
	cmd.Flags().BoolVar(&detailed, "detailed", false, "print the full evaluation report as JSON instead of just the verdict")
	return cmd
}

// contextFromJSON converts a flat JSON object into a DynamicContext.
// Nested objects/arrays aren't a field value ooroo understands; this is
// CLI sugar, not a library feature, so it rejects them rather than
// inventing a flattening convention the core API doesn't have.
func contextFromJSON(raw []byte) (*ooroo.DynamicContext, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("parsing context JSON: %w", err)
	}

	ctx := ooroo.NewDynamicContext()
	for path, v := range fields {
		val, err := valueFromJSON(path, v)
		if err != nil {
			return nil, err
		}
		ctx.Set(path, val)
	}
	return ctx, nil
}

func valueFromJSON(path string, v any) (ooroo.Value, error) {
	switch t := v.(type) {
	case bool:
		return ooroo.BoolValue(t), nil
	case string:
		return ooroo.StringValue(t), nil
	case float64:
		if t == float64(int64(t)) {
			return ooroo.IntValue(int64(t)), nil
		}
		return ooroo.FloatValue(t), nil
	default:
		return ooroo.Value{}, fmt.Errorf("field %q: unsupported JSON value type %T", path, v)
	}
}
