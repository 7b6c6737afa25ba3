package relay

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Market keys handled by the relay, in update order.
const (
	MarketUAE     = "UAE"
	MarketAsia    = "Asia"
	MarketAmerica = "America"
)

// Payload is the raw webhook body. Field names are the exact column names
// the automation tool sends; numeric values may arrive as JSON strings or
// numbers.
type Payload struct {
	SKU     string `json:"SKU"`
	Title   string `json:"Title"`
	Barcode string `json:"Barcode"`
	Size    string `json:"Size"`

	UAEPrice     json.RawMessage `json:"UAE price"`
	AsiaPrice    json.RawMessage `json:"Asia Price"`
	AmericaPrice json.RawMessage `json:"America Price"`

	UAEComparePrice     json.RawMessage `json:"UAE Comparison Price"`
	AsiaComparePrice    json.RawMessage `json:"Asia Comparison Price"`
	AmericaComparePrice json.RawMessage `json:"America Comparison Price"`

	Quantity json.RawMessage `json:"Qty given in shopify"`
}

// MarketPrice carries the optional price pair for one market.
type MarketPrice struct {
	Market  string
	Price   *float64
	Compare *float64
}

// Request is the parsed, typed form of a webhook payload. Every field except
// SKU is optional; a nil pointer means the field was absent or unparseable.
type Request struct {
	SKU      string
	Title    string
	Barcode  string
	Size     string
	Markets  []MarketPrice
	Quantity *float64
}

// HasMarketPrices reports whether any per-market price is present, so the
// price-list cache is only touched when there is work for it.
func (r Request) HasMarketPrices() bool {
	for _, m := range r.Markets {
		if m.Price != nil {
			return true
		}
	}
	return false
}

// Market returns the price pair for a market key.
func (r Request) Market(name string) MarketPrice {
	for _, m := range r.Markets {
		if m.Market == name {
			return m
		}
	}
	return MarketPrice{Market: name}
}

// ParsePayload converts the raw payload into a Request. It also returns the
// names of fields whose values were present but not numeric; those are
// treated as absent, the caller may log them.
func ParsePayload(p Payload) (Request, []string) {
	var malformed []string
	number := func(name string, raw json.RawMessage) *float64 {
		value, bad := parseNumber(raw)
		if bad {
			malformed = append(malformed, name)
		}
		return value
	}

	req := Request{
		SKU:     strings.TrimSpace(p.SKU),
		Title:   strings.TrimSpace(p.Title),
		Barcode: strings.TrimSpace(p.Barcode),
		Size:    strings.TrimSpace(p.Size),
		Markets: []MarketPrice{
			{
				Market:  MarketUAE,
				Price:   number("UAE price", p.UAEPrice),
				Compare: number("UAE Comparison Price", p.UAEComparePrice),
			},
			{
				Market:  MarketAsia,
				Price:   number("Asia Price", p.AsiaPrice),
				Compare: number("Asia Comparison Price", p.AsiaComparePrice),
			},
			{
				Market:  MarketAmerica,
				Price:   number("America Price", p.AmericaPrice),
				Compare: number("America Comparison Price", p.AmericaComparePrice),
			},
		},
		Quantity: number("Qty given in shopify", p.Quantity),
	}

	return req, malformed
}

// parseNumber coerces a raw JSON value to a float. Absent, null and
// empty-string values return (nil, false); present but non-numeric values
// return (nil, true).
func parseNumber(raw json.RawMessage) (*float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, false
	}

	var asFloat float64
	if err := json.Unmarshal(raw, &asFloat); err == nil {
		return &asFloat, false
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		asString = strings.TrimSpace(asString)
		if asString == "" {
			return nil, false
		}
		value, err := strconv.ParseFloat(asString, 64)
		if err != nil {
			return nil, true
		}
		return &value, false
	}

	return nil, true
}
