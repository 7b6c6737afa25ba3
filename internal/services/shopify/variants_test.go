package shopify

import "testing"

func TestNumericID(t *testing.T) {
	tests := []struct {
		name    string
		gid     string
		want    int64
		wantErr bool
	}{
		{"variant gid", "gid://shopify/ProductVariant/45123", 45123, false},
		{"product gid", "gid://shopify/Product/7", 7, false},
		{"trailing slash", "gid://shopify/Product/", 0, true},
		{"no slash", "45123", 0, true},
		{"non-numeric suffix", "gid://shopify/Product/abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := numericID(tt.gid)
			if (err != nil) != tt.wantErr {
				t.Fatalf("numericID(%q) error = %v, wantErr %v", tt.gid, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("numericID(%q) = %d, want %d", tt.gid, got, tt.want)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&NotFoundError{SKU: "X"}) {
		t.Error("IsNotFound(NotFoundError) = false")
	}
	if IsNotFound(nil) {
		t.Error("IsNotFound(nil) = true")
	}
	if IsNotFound(&AuthError{Reason: "x"}) {
		t.Error("IsNotFound(AuthError) = true")
	}
}
