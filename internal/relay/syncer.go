package relay

import (
	"context"
	"fmt"

	"airsync/internal/logger"
	"airsync/internal/services/shopify"
)

// marketCatalogTitles maps internal market keys to the catalog titles
// configured on the platform. A rename of a catalog on the platform side
// makes the lookup miss and the market is skipped.
var marketCatalogTitles = map[string]string{
	MarketUAE:     "UAE Catalog",
	MarketAsia:    "Asia Catalog",
	MarketAmerica: "America Catalog",
}

// Result summarizes what one sync run touched.
type Result struct {
	SKU            string   `json:"sku"`
	VariantID      int64    `json:"variant_id"`
	UpdatedFields  []string `json:"updated_fields"`
	SkippedMarkets []string `json:"skipped_markets,omitempty"`
}

// Syncer resolves the target variant and pushes the requested field updates
// to the platform in a fixed order: title/barcode, size metafield, default
// price, inventory, per-market prices. There is no rollback; the first hard
// failure aborts the remaining steps and earlier updates stand.
type Syncer struct {
	shopify *shopify.Client
	logger  *logger.Logger
}

func New(client *shopify.Client, logger *logger.Logger) *Syncer {
	return &Syncer{
		shopify: client,
		logger:  logger,
	}
}

func (s *Syncer) Sync(ctx context.Context, req Request) (Result, error) {
	ref, err := s.shopify.ResolveVariant(ctx, req.SKU)
	if err != nil {
		return Result{SKU: req.SKU}, err
	}
	s.logger.Debug("resolved sku %s to variant %d (inventory item %d)", req.SKU, ref.VariantID, ref.InventoryItemID)

	result := Result{
		SKU:       req.SKU,
		VariantID: ref.VariantID,
	}

	if req.Title != "" {
		if err := s.shopify.UpdateProductTitle(ctx, ref.ProductID, req.Title); err != nil {
			return result, err
		}
		result.UpdatedFields = append(result.UpdatedFields, "title")
	}

	if req.Barcode != "" {
		barcode := req.Barcode
		if err := s.shopify.UpdateVariant(ctx, ref.VariantID, shopify.VariantUpdate{Barcode: &barcode}); err != nil {
			return result, err
		}
		result.UpdatedFields = append(result.UpdatedFields, "barcode")
	}

	if req.Size != "" {
		if err := s.shopify.SetVariantSize(ctx, ref.VariantGID, req.Size); err != nil {
			return result, err
		}
		result.UpdatedFields = append(result.UpdatedFields, "size")
	}

	// The UAE figure doubles as the price on the base variant.
	if uae := req.Market(MarketUAE); uae.Price != nil {
		price := shopify.FormatAmount(*uae.Price)
		update := shopify.VariantUpdate{Price: &price}
		if uae.Compare != nil {
			compare := shopify.FormatAmount(*uae.Compare)
			update.CompareAtPrice = &compare
		}
		if err := s.shopify.UpdateVariant(ctx, ref.VariantID, update); err != nil {
			return result, err
		}
		result.UpdatedFields = append(result.UpdatedFields, "price")
	}

	if req.Quantity != nil {
		locationID, err := s.shopify.PrimaryLocationID(ctx)
		if err != nil {
			return result, err
		}
		if err := s.shopify.SetInventoryLevel(ctx, locationID, ref.InventoryItemID, int(*req.Quantity)); err != nil {
			return result, err
		}
		result.UpdatedFields = append(result.UpdatedFields, "inventory")
	}

	if req.HasMarketPrices() {
		if err := s.syncMarketPrices(ctx, req, ref, &result); err != nil {
			return result, err
		}
	}

	return result, nil
}

// syncMarketPrices pushes a fixed price per market. Markets are processed
// sequentially and an error aborts the remaining ones; markets whose catalog
// title is unknown to the shop are skipped.
func (s *Syncer) syncMarketPrices(ctx context.Context, req Request, ref shopify.VariantRef, result *Result) error {
	priceLists, err := s.shopify.PriceLists(ctx)
	if err != nil {
		return err
	}

	for _, market := range req.Markets {
		if market.Price == nil {
			continue
		}

		priceList, ok := priceLists[marketCatalogTitles[market.Market]]
		if !ok {
			s.logger.Debug("no price list for market %s, skipping", market.Market)
			result.SkippedMarkets = append(result.SkippedMarkets, market.Market)
			continue
		}

		var compare *string
		if market.Compare != nil {
			amount := shopify.FormatAmount(*market.Compare)
			compare = &amount
		}

		amount := shopify.FormatAmount(*market.Price)
		if err := s.shopify.AddFixedPrice(ctx, priceList.ID, ref.VariantGID, amount, priceList.Currency, compare); err != nil {
			return fmt.Errorf("market %s: %w", market.Market, err)
		}
		result.UpdatedFields = append(result.UpdatedFields, "price:"+market.Market)
	}

	return nil
}
