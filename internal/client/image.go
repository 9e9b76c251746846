// ABOUTME: Resolves product image paths returned by the API to absolute URLs
// ABOUTME: Relative storage paths are joined to the API base URL

package client

import "strings"

// ImageURL returns an absolute URL for a product image path.
// "/storage/x.png" becomes <base>/storage/x.png, a bare "products/x.png"
// becomes <base>/storage/products/x.png, http(s) and data: URLs pass through.
func ImageURL(baseURL, image string) string {
	image = strings.TrimSpace(image)
	switch {
	case image == "":
		return ""
	case strings.HasPrefix(image, "http"), strings.HasPrefix(image, "data:"):
		return image
	case strings.HasPrefix(image, "/"):
		return strings.TrimRight(baseURL, "/") + image
	default:
		return strings.TrimRight(baseURL, "/") + "/storage/" + image
	}
}

// ImageURL returns the absolute image URL of p against the client's base URL
func (c *Client) ImageURL(p Product) string {
	return ImageURL(c.baseURL, p.Image)
}
