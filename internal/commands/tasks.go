package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/onboard/internal/api"
	"github.com/balkashynov/onboard/internal/models"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "View and update onboarding tasks",
}

var tasksLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks (your own, or --user for HR)",
	Run: func(cmd *cobra.Command, args []string) {
		e, err := newEnv()
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		sess, err := e.requireSession()
		if err != nil {
			fmt.Println(err)
			return
		}

		userID := sess.ID
		if raw, _ := cmd.Flags().GetUint("user"); raw != 0 {
			if !models.IsManagement(sess.Role) {
				fmt.Println("Only HR or admin accounts can view other employees' tasks.")
				return
			}
			userID = raw
		}

		ctx, cancel := cmdContext()
		defer cancel()
		tasks, err := e.client.Employees.Tasks(ctx, userID)
		if err != nil {
			fmt.Println("Error fetching tasks:", err)
			return
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return
		}

		now := time.Now()
		fmt.Printf("%-4s %-12s %-40s %-8s %s\n", "ID", "STATUS", "TITLE", "TYPE", "DUE")
		fmt.Println(strings.Repeat("-", 78))
		for _, t := range tasks {
			due := "-"
			if t.DueDate != nil {
				due = t.DueDate.Format("2006-01-02")
				if t.Overdue(now) {
					due += " (overdue, contact HR)"
				}
			}
			title := t.Title
			if len(title) > 38 {
				title = title[:35] + "..."
			}
			fmt.Printf("%-4d %-12s %-40s %-8s %s\n", t.ID, t.Status, title, t.Type, due)
		}
	},
}

var tasksCompleteCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark one of your tasks as completed",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fmt.Println("Invalid task id:", args[0])
			return
		}

		e, err := newEnv()
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		if _, err := e.requireSession(); err != nil {
			fmt.Println(err)
			return
		}

		ctx, cancel := cmdContext()
		defer cancel()
		task, err := e.client.Tasks.Complete(ctx, uint(id))
		if err != nil {
			if errors.Is(err, api.ErrForbidden) {
				fmt.Println("Only the assignee can complete this task.")
				return
			}
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("✅ Task #%d \"%s\" completed\n", task.ID, task.Title)
	},
}

var tasksAssignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Create a task for an employee (HR)",
	Run: func(cmd *cobra.Command, args []string) {
		e, err := newEnv()
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		if _, err := e.requireManagement(); err != nil {
			fmt.Println(err)
			return
		}

		title, _ := cmd.Flags().GetString("title")
		taskType, _ := cmd.Flags().GetString("type")
		due, _ := cmd.Flags().GetString("due")
		desc, _ := cmd.Flags().GetString("description")
		userID, _ := cmd.Flags().GetUint("user")
		if title == "" || userID == 0 {
			fmt.Println("Both --title and --user are required.")
			return
		}

		ctx, cancel := cmdContext()
		defer cancel()
		task, err := e.client.Tasks.Assign(ctx, api.AssignTaskRequest{
			Title:       title,
			Description: desc,
			TaskType:    taskType,
			DueDate:     due,
			AssignedTo:  userID,
		})
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("✅ Task #%d assigned to employee %d\n", task.ID, userID)
	},
}

func init() {
	tasksLsCmd.Flags().Uint("user", 0, "Employee id to list tasks for (HR only)")

	tasksAssignCmd.Flags().String("title", "", "Task title")
	tasksAssignCmd.Flags().String("type", models.TaskTypeForm, "Task type: Video, Form or Upload")
	tasksAssignCmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	tasksAssignCmd.Flags().String("description", "", "Task description")
	tasksAssignCmd.Flags().Uint("user", 0, "Employee id to assign to")

	tasksCmd.AddCommand(tasksLsCmd)
	tasksCmd.AddCommand(tasksCompleteCmd)
	tasksCmd.AddCommand(tasksAssignCmd)
}
