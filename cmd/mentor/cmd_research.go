// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var researchCmd = &cobra.Command{
	Use:   "research [topic]",
	Short: "Research the active subject into the knowledge base",
	Long: `Runs the researcher against the active subject. Without a topic it picks
the first curriculum node (or the subject itself when no curriculum exists
yet); with a topic it researches that topic.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var reply string
		if len(args) > 0 {
			reply, err = a.orch.ContinueResearch(cmd.Context(), strings.Join(args, " "))
		} else {
			reply, err = a.orch.StartResearch(cmd.Context())
		}
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress [subject]",
	Short: "Show research coverage across the curriculum tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		subjectID := ""
		if len(args) > 0 {
			subjectID = args[0]
		}
		progress, err := a.orch.GetResearchProgress(cmd.Context(), subjectID)
		if err != nil {
			return err
		}

		fmt.Printf("Research progress for %q:\n", progress.SubjectID)
		if len(progress.Nodes) == 0 {
			fmt.Println("  (no curriculum tree yet; run 'mentor design')")
		}
		for _, node := range progress.Nodes {
			indent := strings.Repeat("  ", node.Depth+1)
			fmt.Printf("%s%s: %d facts\n", indent, node.Title, node.FactCount)
		}
		fmt.Printf("Total facts: %d\n", progress.TotalFacts)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(researchCmd)
	rootCmd.AddCommand(progressCmd)
}
