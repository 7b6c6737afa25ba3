package shopify

import (
	"context"
	"fmt"
)

const (
	sizeMetafieldNamespace = "custom"
	sizeMetafieldKey       = "size"
	sizeMetafieldType      = "single_line_text_field"
)

const metafieldsSetMutation = `
mutation setVariantSize($metafields: [MetafieldsSetInput!]!) {
	metafieldsSet(metafields: $metafields) {
		metafields { id }
		userErrors { field message }
	}
}`

// SetVariantSize writes the size as a single-line-text metafield on the
// variant. Mutation userErrors are logged and swallowed: a rejected size
// must not abort the rest of the sync sequence.
func (c *Client) SetVariantSize(ctx context.Context, variantGID, size string) error {
	variables := map[string]interface{}{
		"metafields": []map[string]interface{}{
			{
				"ownerId":   variantGID,
				"namespace": sizeMetafieldNamespace,
				"key":       sizeMetafieldKey,
				"type":      sizeMetafieldType,
				"value":     size,
			},
		},
	}

	var data metafieldsSetData
	if err := c.GraphQL(ctx, metafieldsSetMutation, variables, &data); err != nil {
		return fmt.Errorf("metafield set failed: %w", err)
	}

	if err := userErrorsToError("metafieldsSet", data.MetafieldsSet.UserErrors); err != nil {
		c.logger.Warn("size metafield rejected for %s: %v", variantGID, err)
	}
	return nil
}
