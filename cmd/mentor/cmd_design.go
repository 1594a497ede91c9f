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
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// chatLoop reads learner input and feeds it to `next` until EOF or /done.
func chatLoop(ctx context.Context, next func(context.Context, string) (string, error)) error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		fmt.Print("\nyou> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		switch {
		case input == "":
			continue
		case input == "/done" || input == "/quit":
			return nil
		}

		reply, err := next(ctx, input)
		if err != nil {
			return err
		}
		fmt.Printf("\nmentor> %s\n", reply)
	}
}

func init() {
	rootCmd.AddCommand(designCmd)
}

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Design a curriculum for the active subject",
	Long: `Opens a conversation with the curriculum designer. It proposes a coverage
map for the active subject; refine it interactively, then finish with /done.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		reply, err := a.orch.StartCurriculumDesign(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("mentor> %s\n", reply)
		return chatLoop(cmd.Context(), a.orch.ContinueCurriculumDesign)
	},
}
