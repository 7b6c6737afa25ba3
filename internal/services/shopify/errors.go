package shopify

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError reports a SKU with no matching variant on the platform.
type NotFoundError struct {
	SKU string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no variant found for sku %q", e.SKU)
}

// IsNotFound reports whether err (or anything it wraps) is a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

func userErrorsToError(action string, userErrors []UserError) error {
	if len(userErrors) == 0 {
		return nil
	}
	parts := make([]string, 0, len(userErrors))
	for _, ue := range userErrors {
		msg := strings.TrimSpace(ue.Message)
		if msg == "" {
			continue
		}
		if len(ue.Field) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(ue.Field, "."), msg))
		} else {
			parts = append(parts, msg)
		}
	}
	if len(parts) == 0 {
		return fmt.Errorf("%s returned user errors", action)
	}
	return fmt.Errorf("%s failed: %s", action, strings.Join(parts, "; "))
}
