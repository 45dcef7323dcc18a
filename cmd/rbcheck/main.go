package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gradualrb/rbkernel/internal/config"
	"github.com/gradualrb/rbkernel/internal/flow"
	"github.com/gradualrb/rbkernel/internal/types"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rbcheck",
		Short: "Exercise the gradual-typing kernel against a fixture",
		Long:  "rbcheck loads a YAML fixture describing classes, methods, and call sites, then runs the kernel's dispatch over every call site and reports the inferred result types and diagnostics.",
	}

	checkCmd := &cobra.Command{
		Use:   "check [fixture.yaml]",
		Short: "Run the kernel over a fixture file and print results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}

	listBuiltinsCmd := &cobra.Command{
		Use:   "list-builtins",
		Short: "List the builtin classes a fixture can reference by name",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range types.BuiltinClassNames {
				fmt.Println(name)
			}
		},
	}

	root.AddCommand(checkCmd, listBuiltinsCmd)
	return root
}

func runCheck(path string) error {
	fx, err := loadFixture(path)
	if err != nil {
		return err
	}

	b := config.NewBuilder()
	ct, err := buildSymbols(fx, b)
	if err != nil {
		return err
	}
	gs := b.Freeze()

	blocks, initial, sites, err := buildBlocks(fx, gs, ct)
	if err != nil {
		return err
	}

	result := flow.Run(gs, config.DefaultOptions(), initial, blocks)

	for _, site := range sites {
		t, ok := result.Types[site.dest]
		if !ok {
			t = types.Untyped
		}
		fmt.Printf("%s => %s\n", site.label, types.Display(t))
	}

	if len(result.Errors) == 0 {
		return nil
	}

	fmt.Fprintf(os.Stderr, "\n%d diagnostic(s):\n", len(result.Errors))
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "%s:%d: %s\n", e.Loc.File, e.Loc.Line, e.Header)
		for _, section := range e.Sections {
			fmt.Fprintf(os.Stderr, "  %s\n", section.Heading)
			for _, line := range section.Lines {
				fmt.Fprintf(os.Stderr, "    %s\n", line.Message)
			}
		}
	}
	os.Exit(1)
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
