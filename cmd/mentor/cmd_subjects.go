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

var initCmd = &cobra.Command{
	Use:   "init <subject>",
	Short: "Start learning a new subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		purpose, _ := cmd.Flags().GetString("purpose")
		if purpose == "" {
			fmt.Print("Why do you want to learn this? ")
			reader := bufio.NewReader(os.Stdin)
			line, _ := reader.ReadString('\n')
			purpose = strings.TrimSpace(line)
		}

		goal, err := a.orch.InitializeSubject(cmd.Context(), args[0], purpose)
		if err != nil {
			return err
		}
		fmt.Printf("Subject %q initialized and made active.\n", goal.SubjectID)
		fmt.Println("Next: 'mentor design' to build a curriculum.")
		return nil
	},
}

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List all subjects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		goals, err := a.orch.ListSubjects(cmd.Context())
		if err != nil {
			return err
		}
		if len(goals) == 0 {
			fmt.Println("No subjects yet. Start one with 'mentor init <subject>'.")
			return nil
		}

		active, err := a.orch.ActiveSubject(cmd.Context())
		if err != nil {
			return err
		}
		for _, goal := range goals {
			marker := " "
			if goal.SubjectID == active {
				marker = "*"
			}
			fmt.Printf("%s ", marker)
			printGoal(goal)
		}
		return nil
	},
}

var useCmd = &cobra.Command{
	Use:   "use <subject>",
	Short: "Switch the active subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.orch.SetActiveSubject(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Active subject is now %q.\n", args[0])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <subject>",
	Short: "Delete a subject and all its knowledge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Delete %q and all its stored knowledge? [y/N] ", args[0])
			reader := bufio.NewReader(os.Stdin)
			line, _ := reader.ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		deleted, err := a.orch.DeleteSubject(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !deleted {
			fmt.Printf("Subject %q does not exist.\n", args[0])
			return nil
		}
		fmt.Printf("Deleted %q.\n", args[0])
		return nil
	},
}

func init() {
	initCmd.Flags().String("purpose", "", "why you want to learn this subject")
	deleteCmd.Flags().BoolP("force", "f", false, "skip the confirmation prompt")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(deleteCmd)
}
