package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/onboard/internal/api"
	"github.com/balkashynov/onboard/internal/models"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage onboarding templates (HR)",
}

var templatesLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List templates",
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

		ctx, cancel := cmdContext()
		defer cancel()
		templates, err := e.client.Templates.List(ctx)
		if err != nil {
			fmt.Println("Error fetching templates:", err)
			return
		}
		if len(templates) == 0 {
			fmt.Println("No templates yet. Create one with 'onboard templates create'.")
			return
		}

		fmt.Printf("%-4s %-40s %s\n", "ID", "NAME", "TASKS")
		fmt.Println(strings.Repeat("-", 52))
		for _, t := range templates {
			fmt.Printf("%-4d %-40s %d\n", t.ID, t.Name, t.TaskCount)
		}
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a template and its task blueprint",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fmt.Println("Invalid template id:", args[0])
			return
		}

		e, err := newEnv()
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		if _, err := e.requireManagement(); err != nil {
			fmt.Println(err)
			return
		}

		ctx, cancel := cmdContext()
		defer cancel()
		t, err := e.client.Templates.Get(ctx, uint(id))
		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		fmt.Println(t.Name)
		fmt.Println()
		for i, task := range t.Tasks {
			fmt.Printf("  %d. %-40s %-8s due in %d days\n", i+1, task.TaskName, task.TaskType, task.DueDays)
		}
	},
}

var templatesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a template with --task flags",
	Long: `Create an onboarding template. Repeat --task to add blueprint
entries; each takes "Title|Type|DueDays", e.g.:

  onboard templates create --name "Engineering Onboarding" \
    --task "Watch security training|Video|2" \
    --task "Sign NDA|Form|1"`,
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

		name, _ := cmd.Flags().GetString("name")
		rawTasks, _ := cmd.Flags().GetStringArray("task")
		if name == "" {
			fmt.Println("--name is required.")
			return
		}
		if len(rawTasks) == 0 {
			fmt.Println("At least one --task is required.")
			return
		}

		req := api.TemplateRequest{Name: name}
		for _, raw := range rawTasks {
			entry, err := parseTemplateTask(raw)
			if err != nil {
				fmt.Println("Error:", err)
				return
			}
			req.Tasks = append(req.Tasks, entry)
		}

		ctx, cancel := cmdContext()
		defer cancel()
		t, err := e.client.Templates.Create(ctx, req)
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("✅ Template #%d \"%s\" created with %d tasks\n", t.ID, t.Name, len(t.Tasks))
	},
}

var templatesRmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a template",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fmt.Println("Invalid template id:", args[0])
			return
		}

		e, err := newEnv()
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		if _, err := e.requireManagement(); err != nil {
			fmt.Println(err)
			return
		}

		ctx, cancel := cmdContext()
		defer cancel()
		if err := e.client.Templates.Delete(ctx, uint(id)); err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("🗑️  Template #%d deleted\n", id)
	},
}

var templatesAssignCmd = &cobra.Command{
	Use:   "assign <template-id> <employee-id>",
	Short: "Instantiate a template's tasks for an employee",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		templateID, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fmt.Println("Invalid template id:", args[0])
			return
		}
		employeeID, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			fmt.Println("Invalid employee id:", args[1])
			return
		}

		e, err := newEnv()
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		if _, err := e.requireManagement(); err != nil {
			fmt.Println(err)
			return
		}

		ctx, cancel := cmdContext()
		defer cancel()
		tasks, err := e.client.Templates.Assign(ctx, uint(employeeID), uint(templateID))
		if err != nil {
			fmt.Println("Error:", err)
			return
		}
		fmt.Printf("✅ %d tasks created for employee %d\n", len(tasks), employeeID)
		for _, t := range tasks {
			due := "-"
			if t.DueDate != nil {
				due = t.DueDate.Format("2006-01-02")
			}
			fmt.Printf("  #%-4d %-40s due %s\n", t.ID, t.Title, due)
		}
	},
}

// parseTemplateTask splits a "Title|Type|DueDays" flag value.
func parseTemplateTask(raw string) (models.TemplateTask, error) {
	parts := strings.Split(raw, "|")
	entry := models.TemplateTask{TaskName: strings.TrimSpace(parts[0])}
	if entry.TaskName == "" {
		return entry, fmt.Errorf("task %q has no title", raw)
	}
	if len(parts) > 1 {
		entry.TaskType = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		days, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return entry, fmt.Errorf("task %q has a bad due-days value", raw)
		}
		entry.DueDays = days
	}
	return entry, nil
}

func init() {
	templatesCreateCmd.Flags().String("name", "", "Template name")
	templatesCreateCmd.Flags().StringArray("task", nil, `Blueprint entry "Title|Type|DueDays" (repeatable)`)

	templatesCmd.AddCommand(templatesLsCmd)
	templatesCmd.AddCommand(templatesShowCmd)
	templatesCmd.AddCommand(templatesCreateCmd)
	templatesCmd.AddCommand(templatesRmCmd)
	templatesCmd.AddCommand(templatesAssignCmd)
}
