package shopify

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// PriceList is the currency-scoped price override list backing a market
// catalog.
type PriceList struct {
	ID       string
	Currency string
}

// priceListCache holds the catalog-title -> price-list mapping for the
// process lifetime. Newly added markets require a restart; the loaded flag
// means an empty catalog listing still counts as populated.
type priceListCache struct {
	mu     sync.Mutex
	byName map[string]PriceList
	loaded bool
}

const catalogsQuery = `
query marketCatalogs($first: Int!, $after: String) {
	catalogs(first: $first, after: $after, type: MARKET) {
		nodes {
			id
			title
			status
			priceList { id currency }
		}
		pageInfo { hasNextPage endCursor }
	}
}`

const priceListFixedPricesAddMutation = `
mutation addFixedPrice($priceListId: ID!, $prices: [PriceListPriceInput!]!) {
	priceListFixedPricesAdd(priceListId: $priceListId, prices: $prices) {
		userErrors { field message }
	}
}`

// PriceLists returns the catalog-title -> price-list mapping, scanning all
// active market catalogs on first use and serving the cached set afterwards.
func (c *Client) PriceLists(ctx context.Context) (map[string]PriceList, error) {
	c.priceLists.mu.Lock()
	defer c.priceLists.mu.Unlock()

	if c.priceLists.loaded {
		return c.priceLists.byName, nil
	}

	byName := make(map[string]PriceList)
	after := ""
	for {
		variables := map[string]interface{}{
			"first": 50,
		}
		if after != "" {
			variables["after"] = after
		}

		var data catalogsQueryData
		if err := c.GraphQL(ctx, catalogsQuery, variables, &data); err != nil {
			return nil, fmt.Errorf("catalog listing failed: %w", err)
		}

		for _, node := range data.Catalogs.Nodes {
			if node.Status != "ACTIVE" || node.PriceList == nil {
				continue
			}
			byName[node.Title] = PriceList{
				ID:       node.PriceList.ID,
				Currency: node.PriceList.Currency,
			}
		}

		if !data.Catalogs.PageInfo.HasNextPage || data.Catalogs.PageInfo.EndCursor == "" {
			break
		}
		after = data.Catalogs.PageInfo.EndCursor
	}

	c.priceLists.byName = byName
	c.priceLists.loaded = true
	c.logger.Debug("price list cache populated with %d catalogs", len(byName))

	return byName, nil
}

// AddFixedPrice pushes a fixed price (and optional compare-at price) for a
// variant onto a price list, in the list's own currency.
func (c *Client) AddFixedPrice(ctx context.Context, priceListID, variantGID, amount, currency string, compareAt *string) error {
	price := map[string]interface{}{
		"variantId": variantGID,
		"price": map[string]interface{}{
			"amount":       amount,
			"currencyCode": currency,
		},
	}
	if compareAt != nil {
		price["compareAtPrice"] = map[string]interface{}{
			"amount":       *compareAt,
			"currencyCode": currency,
		}
	}

	variables := map[string]interface{}{
		"priceListId": priceListID,
		"prices":      []map[string]interface{}{price},
	}

	var data priceListFixedPricesAddData
	if err := c.GraphQL(ctx, priceListFixedPricesAddMutation, variables, &data); err != nil {
		return fmt.Errorf("fixed price add failed: %w", err)
	}
	return userErrorsToError("priceListFixedPricesAdd", data.PriceListFixedPricesAdd.UserErrors)
}

// FormatAmount renders a money amount the way it arrived: "99.5" stays
// "99.5", not "99.50".
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
