// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command alignload is a small driver around the align package: it
// exists to demonstrate and eyeball-check the load alignment rewriter
// against a handful of hand-built IR fragments, and to report what
// alignment the host machine would get if used as a stand-in target.
package main

import (
	"fmt"
	"os"

	"github.com/ajroetker/vecalign/align"
	"github.com/ajroetker/vecalign/cmd/alignload/scenario"
	"github.com/ajroetker/vecalign/ir"
	"github.com/ajroetker/vecalign/target"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "alignload",
		Short: "Inspect and exercise the load alignment rewriter",
	}
	root.AddCommand(newDemoCmd(), newHostCmd())
	return root
}

func newDemoCmd() *cobra.Command {
	var name string
	var trace bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a named rewrite scenario and print the before/after IR",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				for _, s := range scenario.All() {
					fmt.Fprintln(cmd.OutOrStdout(), s.Name)
				}
				return nil
			}
			s, ok := scenario.Lookup(name)
			if !ok {
				return fmt.Errorf("alignload: no such scenario %q (run without --name to list them)", name)
			}
			var opts []align.Option
			if trace {
				opts = append(opts, align.WithTrace(func(format string, args ...any) {
					fmt.Fprintf(cmd.ErrOrStderr(), "trace: "+format+"\n", args...)
				}))
			}
			before, after, err := s.Run(opts...)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "scenario: %s\n", s.Name)
			fmt.Fprintf(out, "before:   %s\n", ir.SprintStmt(before))
			if err != nil {
				fmt.Fprintf(out, "error:    %v\n", err)
				return nil
			}
			fmt.Fprintf(out, "after:    %s\n", ir.SprintStmt(after))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "scenario to run (omit to list all)")
	cmd.Flags().BoolVar(&trace, "trace", false, "print the rewriter's diagnostic trace to stderr")
	return cmd
}

func newHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "host",
		Short: "Print the required alignment DetectHost would hand the rewriter",
		RunE: func(cmd *cobra.Command, args []string) error {
			desc := target.DetectHost()
			fmt.Fprintf(cmd.OutOrStdout(), "natural vector size (bytes): %d\n", desc.NaturalVectorSize(1))
			return nil
		},
	}
}
