package shopify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// VariantRef identifies a resolved variant on the platform, in both GraphQL
// (global id) and REST (numeric id) form.
type VariantRef struct {
	VariantGID      string
	ProductGID      string
	VariantID       int64
	ProductID       int64
	InventoryItemID int64
}

// VariantUpdate is a partial REST update; nil fields are left untouched.
type VariantUpdate struct {
	Barcode        *string
	Price          *string
	CompareAtPrice *string
}

const variantSearchQuery = `
query variantBySku($first: Int!, $query: String!) {
	productVariants(first: $first, query: $query) {
		nodes {
			id
			sku
			product { id }
		}
	}
}`

// ResolveVariant finds the variant matching a SKU and fetches its REST
// detail to obtain the inventory item id. When multiple variants share the
// SKU, the first search result wins.
func (c *Client) ResolveVariant(ctx context.Context, sku string) (VariantRef, error) {
	ref, err := c.FindVariantBySKU(ctx, sku)
	if err != nil {
		return VariantRef{}, err
	}

	variant, err := c.GetVariant(ctx, ref.VariantID)
	if err != nil {
		return VariantRef{}, fmt.Errorf("failed to fetch variant detail: %w", err)
	}
	ref.InventoryItemID = variant.InventoryItemID

	return ref, nil
}

// FindVariantBySKU searches the platform for a variant with the given SKU,
// restricted to the first match.
func (c *Client) FindVariantBySKU(ctx context.Context, sku string) (VariantRef, error) {
	var data variantSearchData
	err := c.GraphQL(ctx, variantSearchQuery, map[string]interface{}{
		"first": 1,
		"query": fmt.Sprintf("sku:%s", sku),
	}, &data)
	if err != nil {
		return VariantRef{}, fmt.Errorf("variant search failed: %w", err)
	}

	if len(data.ProductVariants.Nodes) == 0 {
		return VariantRef{}, &NotFoundError{SKU: sku}
	}
	node := data.ProductVariants.Nodes[0]

	variantID, err := numericID(node.ID)
	if err != nil {
		return VariantRef{}, err
	}
	productID, err := numericID(node.Product.ID)
	if err != nil {
		return VariantRef{}, err
	}

	return VariantRef{
		VariantGID: node.ID,
		ProductGID: node.Product.ID,
		VariantID:  variantID,
		ProductID:  productID,
	}, nil
}

// GetVariant fetches the REST detail of a variant.
func (c *Client) GetVariant(ctx context.Context, variantID int64) (*Variant, error) {
	var resp struct {
		Variant Variant `json:"variant"`
	}
	if err := c.Get(ctx, fmt.Sprintf("variants/%d.json", variantID), &resp); err != nil {
		return nil, err
	}
	return &resp.Variant, nil
}

// UpdateVariant PUTs a partial variant payload; only the provided fields are
// sent so everything else is left as-is on the platform.
func (c *Client) UpdateVariant(ctx context.Context, variantID int64, update VariantUpdate) error {
	fields := map[string]interface{}{
		"id": variantID,
	}
	if update.Barcode != nil {
		fields["barcode"] = *update.Barcode
	}
	if update.Price != nil {
		fields["price"] = *update.Price
	}
	if update.CompareAtPrice != nil {
		fields["compare_at_price"] = *update.CompareAtPrice
	}

	payload := map[string]interface{}{
		"variant": fields,
	}
	if err := c.Put(ctx, fmt.Sprintf("variants/%d.json", variantID), payload, nil); err != nil {
		return fmt.Errorf("variant update failed: %w", err)
	}
	return nil
}

// numericID extracts the trailing numeric id from a global id of the form
// "gid://shopify/ProductVariant/123".
func numericID(gid string) (int64, error) {
	idx := strings.LastIndex(gid, "/")
	if idx < 0 || idx == len(gid)-1 {
		return 0, fmt.Errorf("malformed global id %q", gid)
	}
	id, err := strconv.ParseInt(gid[idx+1:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed global id %q: %w", gid, err)
	}
	return id, nil
}
