// ABOUTME: Category commands for the pickbazar CLI
// ABOUTME: Lists categories and lets admins create, update and delete them

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/markalston/pickbazar/internal/client"
)

var categoryInput client.CategoryInput

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"category"},
	Short:   "List and manage categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	Run: func(cmd *cobra.Command, args []string) {
		runWithClient(func(ctx context.Context, c *client.Client) int {
			return runCategoriesList(ctx, c, os.Stdout)
		})
	},
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category (admin)",
	Run: func(cmd *cobra.Command, args []string) {
		runWithClient(func(ctx context.Context, c *client.Client) int {
			return runCategoryCreate(ctx, c, os.Stdout, categoryInput)
		})
	},
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a category (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			printError(os.Stdout, err)
			os.Exit(2)
		}
		runWithClient(func(ctx context.Context, c *client.Client) int {
			return runCategoryUpdate(ctx, c, os.Stdout, id, categoryInput)
		})
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a category (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			printError(os.Stdout, err)
			os.Exit(2)
		}
		if !assumeYes && !confirm(fmt.Sprintf("Delete category %d?", id)) {
			fmt.Fprintln(os.Stdout, "Aborted.")
			return
		}
		runWithClient(func(ctx context.Context, c *client.Client) int {
			return runCategoryDelete(ctx, c, os.Stdout, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
	categoriesCmd.AddCommand(categoriesListCmd, categoriesCreateCmd, categoriesUpdateCmd, categoriesDeleteCmd)

	for _, c := range []*cobra.Command{categoriesCreateCmd, categoriesUpdateCmd} {
		c.Flags().StringVar(&categoryInput.Name, "name", "", "Category name")
		c.Flags().StringVar(&categoryInput.Description, "description", "", "Category description")
	}
	categoriesDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
}

// confirm asks a yes/no question on the terminal
func confirm(question string) bool {
	var ok bool
	if err := huh.NewConfirm().Title(question).Value(&ok).Run(); err != nil {
		return false
	}
	return ok
}

// runCategoriesList prints categories and returns exit code
func runCategoriesList(ctx context.Context, c *client.Client, w io.Writer) int {
	cats, err := c.Categories(ctx)
	if err != nil {
		printError(w, err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(cats, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintln(w, formatCategoriesHuman(cats))
	return 0
}

// formatCategoriesHuman renders categories as a table
func formatCategoriesHuman(cats []client.Category) string {
	if len(cats) == 0 {
		return "No categories found."
	}
	t := table.New().Headers("ID", "NAME", "DESCRIPTION")
	for _, cat := range cats {
		t.Row(cat.ID.String(), cat.Name, cat.Description)
	}
	return t.String()
}

// runCategoryCreate creates a category and returns exit code
func runCategoryCreate(ctx context.Context, c *client.Client, w io.Writer, in client.CategoryInput) int {
	cat, err := c.CreateCategory(ctx, in)
	if err != nil {
		printError(w, err)
		return 2
	}
	printCategory(w, "Created", cat)
	return 0
}

// runCategoryUpdate updates a category and returns exit code
func runCategoryUpdate(ctx context.Context, c *client.Client, w io.Writer, id int64, in client.CategoryInput) int {
	cat, err := c.UpdateCategory(ctx, id, in)
	if err != nil {
		printError(w, err)
		return 2
	}
	printCategory(w, "Updated", cat)
	return 0
}

// runCategoryDelete deletes a category and returns exit code
func runCategoryDelete(ctx context.Context, c *client.Client, w io.Writer, id int64) int {
	if err := c.DeleteCategory(ctx, id); err != nil {
		printError(w, err)
		return 2
	}
	if IsJSONOutput() {
		fmt.Fprintf(w, "{\"deleted\": %d}\n", id)
		return 0
	}
	fmt.Fprintf(w, "Deleted category %d\n", id)
	return 0
}

func printCategory(w io.Writer, verb string, cat *client.Category) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(cat, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "%s category %s: %s\n", verb, cat.ID, cat.Name)
}
