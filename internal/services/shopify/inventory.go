package shopify

import (
	"context"
	"fmt"
)

// PrimaryLocationID returns the shop's first-listed stock location.
func (c *Client) PrimaryLocationID(ctx context.Context) (int64, error) {
	var resp struct {
		Locations []Location `json:"locations"`
	}
	if err := c.Get(ctx, "locations.json", &resp); err != nil {
		return 0, fmt.Errorf("location listing failed: %w", err)
	}
	if len(resp.Locations) == 0 {
		return 0, fmt.Errorf("shop has no stock locations")
	}
	return resp.Locations[0].ID, nil
}

// SetInventoryLevel sets the absolute available quantity for an inventory
// item at a location. Overwrite semantics, not a delta.
func (c *Client) SetInventoryLevel(ctx context.Context, locationID, inventoryItemID int64, available int) error {
	payload := map[string]interface{}{
		"location_id":       locationID,
		"inventory_item_id": inventoryItemID,
		"available":         available,
	}
	if err := c.Post(ctx, "inventory_levels/set.json", payload, nil); err != nil {
		return fmt.Errorf("inventory level set failed: %w", err)
	}
	return nil
}
