package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/devdash/dev-dashboard/internal/model"
	"github.com/devdash/dev-dashboard/internal/service"
	"github.com/devdash/dev-dashboard/internal/timer"
)

var todoCmd = &cobra.Command{
	Use:   "todo",
	Short: "Manage tasks",
}

var todoAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTodoAdd,
}

var (
	todoAddDescription string
	todoAddLink        string
	todoAddPriority    string
	todoAddDeadline    string
)

var todoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks in display order",
	Args:  cobra.NoArgs,
	RunE:  runTodoList,
}

var (
	todoListQuery string
	todoListTag   string
)

var todoSearchTag string

var todoSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tasks by title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		todos, err := a.todos.Search(cmd.Context(), args[0], todoSearchTag)
		if err != nil {
			return err
		}
		if len(todos) == 0 {
			fmt.Println("No matches.")
			return nil
		}
		printTodos(todos)
		return nil
	},
}

var todoStatusCmd = &cobra.Command{
	Use:   "status <id> <URGENT|NORMAL|PENDING|DONE>",
	Short: "Change a task's status",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		todo, err := a.todos.SetStatus(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s is now %s\n", todo.Title, todo.Status)
		return nil
	},
}

var todoRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		return a.todos.Delete(cmd.Context(), args[0])
	},
}

func init() {
	todoAddCmd.Flags().StringVarP(&todoAddDescription, "description", "d", "", "task description")
	todoAddCmd.Flags().StringVarP(&todoAddLink, "link", "l", "", "page URL the task was captured from")
	todoAddCmd.Flags().StringVarP(&todoAddPriority, "priority", "p", model.StatusNormal,
		"priority (URGENT, NORMAL, or PENDING)")
	todoAddCmd.Flags().StringVar(&todoAddDeadline, "deadline", "", "deadline (YYYY-MM-DD)")

	todoListCmd.Flags().StringVarP(&todoListQuery, "query", "q", "", "title substring filter")
	todoListCmd.Flags().StringVarP(&todoListTag, "tag", "t", "", "tag id filter")

	todoSearchCmd.Flags().StringVarP(&todoSearchTag, "tag", "t", "", "tag id filter")

	todoCmd.AddCommand(todoAddCmd)
	todoCmd.AddCommand(todoListCmd)
	todoCmd.AddCommand(todoSearchCmd)
	todoCmd.AddCommand(todoStatusCmd)
	todoCmd.AddCommand(todoRmCmd)
}

func runTodoAdd(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	in := service.TodoInput{
		Title:       args[0],
		Description: todoAddDescription,
		Priority:    todoAddPriority,
	}
	if todoAddLink != "" {
		in.Link = &todoAddLink
	}
	if todoAddDeadline != "" {
		deadline, err := time.Parse("2006-01-02", todoAddDeadline)
		if err != nil {
			return fmt.Errorf("invalid deadline %q: %w", todoAddDeadline, err)
		}
		in.Deadline = &deadline
	}

	todo, err := a.todos.Create(cmd.Context(), in)
	if err != nil {
		return err
	}
	fmt.Printf("added %s (%s)\n", todo.Title, todo.ID)
	return nil
}

func runTodoList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	todos, err := a.todos.Search(cmd.Context(), todoListQuery, todoListTag)
	if err != nil {
		return err
	}
	if len(todos) == 0 {
		fmt.Println("No tasks yet.")
		return nil
	}
	printTodos(todos)
	return nil
}

func printTodos(todos []model.Todo) {
	now := time.Now()
	for _, t := range todos {
		elapsed, started := timer.AccumulatedDuration(&t, now)
		marker := " "
		if t.ActiveStart != nil {
			marker = "*"
		}
		deadline := "-"
		if t.Deadline != nil {
			deadline = t.Deadline.Format("2006-01-02")
		}
		fmt.Printf("%s %-8s %-10s %s  %s  %s\n",
			marker, t.Status, deadline, formatElapsed(elapsed, started), t.ID, t.Title)
	}
}
