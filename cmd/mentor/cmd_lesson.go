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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Take a lesson on the active subject",
	Long: `Starts with a short assessment to gauge what you already know, then
generates a lesson adapted to your answers. Answer the assessment questions
as they come; type /lesson when you want the lesson, or /done to stop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		reply, err := a.orch.StartLesson(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("mentor> %s\n", reply)

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
			case input == "/lesson":
				lesson, err := a.orch.GenerateLesson(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Printf("\n%s\n", lesson)
				return nil
			}

			reply, err := a.orch.ContinueAssessment(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Printf("\nmentor> %s\n", reply)
		}
	},
}

func init() {
	rootCmd.AddCommand(lessonCmd)
}
