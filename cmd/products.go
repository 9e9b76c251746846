// ABOUTME: Product commands for the pickbazar CLI
// ABOUTME: Lists the catalog and lets admins create, update and delete products

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/markalston/pickbazar/internal/client"
)

var (
	productInput    client.ProductInput
	productCategory int64
	assumeYes       bool
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List and manage products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products",
	Run: func(cmd *cobra.Command, args []string) {
		runWithClient(func(ctx context.Context, c *client.Client) int {
			return runProductsList(ctx, c, os.Stdout, productCategory)
		})
	},
}

var productsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a product (admin)",
	Long: `Create a product. Requires a logged-in session with a bearer credential.

Example:
  pickbazar products create --name Apples --price 2.5 --category-id 1 --stock 40 --image ./apples.jpg`,
	Run: func(cmd *cobra.Command, args []string) {
		runWithClient(func(ctx context.Context, c *client.Client) int {
			return runProductCreate(ctx, c, os.Stdout, productInput)
		})
	},
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update ID",
	Short: "Update a product (admin)",
	Long:  `Update a product. All fields are sent, so pass the full product.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			printError(os.Stdout, err)
			os.Exit(2)
		}
		runWithClient(func(ctx context.Context, c *client.Client) int {
			return runProductUpdate(ctx, c, os.Stdout, id, productInput)
		})
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a product (admin)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := parseID(args[0])
		if err != nil {
			printError(os.Stdout, err)
			os.Exit(2)
		}
		if !assumeYes && !confirm(fmt.Sprintf("Delete product %d?", id)) {
			fmt.Fprintln(os.Stdout, "Aborted.")
			return
		}
		runWithClient(func(ctx context.Context, c *client.Client) int {
			return runProductDelete(ctx, c, os.Stdout, id)
		})
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.AddCommand(productsListCmd, productsCreateCmd, productsUpdateCmd, productsDeleteCmd)

	productsListCmd.Flags().Int64Var(&productCategory, "category-id", 0, "Only list products in this category")

	for _, c := range []*cobra.Command{productsCreateCmd, productsUpdateCmd} {
		f := c.Flags()
		f.StringVar(&productInput.Name, "name", "", "Product name")
		f.StringVar(&productInput.Description, "description", "", "Product description")
		f.Float64Var(&productInput.Price, "price", 0, "Unit price")
		f.Int64Var(&productInput.CategoryID, "category-id", 0, "Category id")
		f.IntVar(&productInput.Stock, "stock", 0, "Units in stock")
		f.StringVar(&productInput.ImagePath, "image", "", "Path to a jpg, png, gif or webp image")
	}

	productsDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
}

// runWithClient builds a client and a signal-aware context, runs fn and exits
// with its code when non-zero
func runWithClient(fn func(ctx context.Context, c *client.Client) int) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c, err := newClient()
	if err != nil {
		printError(os.Stdout, err)
		os.Exit(2)
	}
	if exitCode := fn(ctx, c); exitCode != 0 {
		cancel()
		os.Exit(exitCode)
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

// runProductsList prints the catalog's products and returns exit code
func runProductsList(ctx context.Context, c *client.Client, w io.Writer, categoryID int64) int {
	cat, err := c.Catalog(ctx)
	if err != nil {
		printError(w, err)
		return 2
	}
	products := cat.FilterByCategory(client.Int(categoryID))

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(products, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}
	fmt.Fprintln(w, formatProductsHuman(cat, products))
	return 0
}

// formatProductsHuman renders products as a table
func formatProductsHuman(cat *client.Catalog, products []client.Product) string {
	if len(products) == 0 {
		return "No products found."
	}

	t := table.New().Headers("ID", "NAME", "CATEGORY", "PRICE", "STOCK")
	for _, p := range products {
		category := p.CategoryName()
		if category == "" {
			category = cat.CategoryName(p.CategoryRef())
		}
		t.Row(p.ID.String(), p.Name, category, formatPrice(p.Price), p.Stock.String())
	}
	return t.String()
}

func formatPrice(n client.Number) string {
	return fmt.Sprintf("$%.2f", float64(n))
}

// runProductCreate creates a product and returns exit code
func runProductCreate(ctx context.Context, c *client.Client, w io.Writer, in client.ProductInput) int {
	p, err := c.CreateProduct(ctx, in)
	if err != nil {
		printError(w, err)
		return 2
	}
	printProduct(w, "Created", p)
	return 0
}

// runProductUpdate updates a product and returns exit code
func runProductUpdate(ctx context.Context, c *client.Client, w io.Writer, id int64, in client.ProductInput) int {
	p, err := c.UpdateProduct(ctx, id, in)
	if err != nil {
		printError(w, err)
		return 2
	}
	printProduct(w, "Updated", p)
	return 0
}

// runProductDelete deletes a product and returns exit code
func runProductDelete(ctx context.Context, c *client.Client, w io.Writer, id int64) int {
	if err := c.DeleteProduct(ctx, id); err != nil {
		printError(w, err)
		return 2
	}
	if IsJSONOutput() {
		fmt.Fprintf(w, "{\"deleted\": %d}\n", id)
		return 0
	}
	fmt.Fprintf(w, "Deleted product %d\n", id)
	return 0
}

func printProduct(w io.Writer, verb string, p *client.Product) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(p, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "%s product %s: %s (%s, %s in stock)\n", verb, p.ID, p.Name, formatPrice(p.Price), p.Stock)
}
