package shopify

import "encoding/json"

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

// UserError is the userErrors element Shopify mutations return instead of a
// top-level error.
type UserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

// Variant is the Admin REST representation of a product variant, trimmed to
// the fields the relay reads and writes.
type Variant struct {
	ID                int64   `json:"id"`
	ProductID         int64   `json:"product_id"`
	Title             string  `json:"title"`
	Sku               string  `json:"sku"`
	Price             string  `json:"price"`
	CompareAtPrice    *string `json:"compare_at_price"`
	Barcode           *string `json:"barcode"`
	InventoryItemID   int64   `json:"inventory_item_id"`
	InventoryQuantity int     `json:"inventory_quantity"`
}

// Location is an Admin REST stock location.
type Location struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type variantSearchData struct {
	ProductVariants struct {
		Nodes []struct {
			ID      string `json:"id"`
			Sku     string `json:"sku"`
			Product struct {
				ID string `json:"id"`
			} `json:"product"`
		} `json:"nodes"`
	} `json:"productVariants"`
}

type catalogsQueryData struct {
	Catalogs struct {
		Nodes []struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			Status    string `json:"status"`
			PriceList *struct {
				ID       string `json:"id"`
				Currency string `json:"currency"`
			} `json:"priceList"`
		} `json:"nodes"`
		PageInfo struct {
			HasNextPage bool   `json:"hasNextPage"`
			EndCursor   string `json:"endCursor"`
		} `json:"pageInfo"`
	} `json:"catalogs"`
}

type metafieldsSetData struct {
	MetafieldsSet struct {
		Metafields []struct {
			ID string `json:"id"`
		} `json:"metafields"`
		UserErrors []UserError `json:"userErrors"`
	} `json:"metafieldsSet"`
}

type priceListFixedPricesAddData struct {
	PriceListFixedPricesAdd struct {
		UserErrors []UserError `json:"userErrors"`
	} `json:"priceListFixedPricesAdd"`
}
