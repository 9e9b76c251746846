// ABOUTME: Category and product endpoints of the storefront API
// ABOUTME: Products are written as multipart forms, categories as JSON

package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// Categories lists all categories
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	req, err := c.newRequest(ctx, http.MethodGet, APIPrefix+"/categories", nil)
	if err != nil {
		return nil, err
	}

	var cats []Category
	if _, err := c.doEnvelope(ctx, req, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// CreateCategory creates a category
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, APIPrefix+"/categories", in)
	if err != nil {
		return nil, err
	}

	var cat Category
	if _, err := c.doEnvelope(ctx, req, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// UpdateCategory replaces a category's fields
func (c *Client) UpdateCategory(ctx context.Context, id int64, in CategoryInput) (*Category, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPut, categoryPath(id), in)
	if err != nil {
		return nil, err
	}

	var cat Category
	if _, err := c.doEnvelope(ctx, req, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategory removes a category
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, categoryPath(id), nil)
	if err != nil {
		return err
	}
	_, err = c.doEnvelope(ctx, req, nil)
	return err
}

// Products lists all products
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, APIPrefix+"/products", nil)
	if err != nil {
		return nil, err
	}

	var products []Product
	if _, err := c.doEnvelope(ctx, req, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct uploads a new product. A bearer credential is required.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	return c.writeProduct(ctx, APIPrefix+"/products", in, false)
}

// UpdateProduct updates a product. The backend only parses multipart bodies
// on POST, so the update is a POST with _method=PUT.
func (c *Client) UpdateProduct(ctx context.Context, id int64, in ProductInput) (*Product, error) {
	return c.writeProduct(ctx, productPath(id), in, true)
}

func (c *Client) writeProduct(ctx context.Context, path string, in ProductInput, update bool) (*Product, error) {
	if !c.store.Read().HasCredential() {
		return nil, ErrAuthRequired
	}
	if err := Validate(in); err != nil {
		return nil, err
	}

	var fields [][2]string
	if update {
		fields = append(fields, [2]string{"_method", "PUT"})
	}
	fields = append(fields,
		[2]string{"name", in.Name},
		[2]string{"description", in.Description},
		[2]string{"price", strconv.FormatFloat(in.Price, 'f', -1, 64)},
		[2]string{"category_id", strconv.FormatInt(in.CategoryID, 10)},
		[2]string{"stock", strconv.Itoa(in.Stock)},
	)

	var files []formFile
	if in.ImagePath != "" {
		files = append(files, formFile{field: "image", path: in.ImagePath})
	}

	req, err := c.newMultipartRequest(ctx, path, fields, files...)
	if err != nil {
		return nil, err
	}

	var product Product
	if _, err := c.doEnvelope(ctx, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, productPath(id), nil)
	if err != nil {
		return err
	}
	_, err = c.doEnvelope(ctx, req, nil)
	return err
}

// Catalog fetches products and categories concurrently. Overlapping calls
// share one fetch and receive the same catalog. The shared fetch ignores the
// cancellation of any single caller and stays bounded by the client timeout.
func (c *Client) Catalog(ctx context.Context) (*Catalog, error) {
	ch := c.catalogSF.DoChan("catalog", func() (any, error) {
		return c.fetchCatalog(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Debug("Catalog fetch shared with a concurrent caller")
		}
		return res.Val.(*Catalog), nil
	}
}

func (c *Client) fetchCatalog(ctx context.Context) (*Catalog, error) {
	g, gctx := errgroup.WithContext(ctx)
	cat := &Catalog{}

	g.Go(func() error {
		products, err := c.Products(gctx)
		if err != nil {
			return fmt.Errorf("loading products: %w", err)
		}
		cat.Products = products
		return nil
	})
	g.Go(func() error {
		categories, err := c.Categories(gctx)
		if err != nil {
			return fmt.Errorf("loading categories: %w", err)
		}
		cat.Categories = categories
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cat, nil
}

func categoryPath(id int64) string {
	return fmt.Sprintf("%s/categories/%d", APIPrefix, id)
}

func productPath(id int64) string {
	return fmt.Sprintf("%s/products/%d", APIPrefix, id)
}
