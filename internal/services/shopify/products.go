package shopify

import (
	"context"
	"fmt"
)

// UpdateProductTitle PUTs a partial product payload carrying only the title.
func (c *Client) UpdateProductTitle(ctx context.Context, productID int64, title string) error {
	payload := map[string]interface{}{
		"product": map[string]interface{}{
			"id":    productID,
			"title": title,
		},
	}
	if err := c.Put(ctx, fmt.Sprintf("products/%d.json", productID), payload, nil); err != nil {
		return fmt.Errorf("product title update failed: %w", err)
	}
	return nil
}
