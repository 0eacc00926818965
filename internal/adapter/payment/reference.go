package payment

import (
	"fmt"
	"strings"
	"time"
)

// referenceNamespace prefixes every payment reference on the wire. The format
// `DJOLOF_<order_id>_<timestamp_ms>` is part of the provider contract; callback
// decomposition depends on it.
const referenceNamespace = "DJOLOF"

// NewReference builds the correlation key for one initiation attempt. The
// millisecond timestamp makes repeated attempts for the same order distinct.
func NewReference(orderID string) string {
	return fmt.Sprintf("%s_%s_%d", referenceNamespace, orderID, time.Now().UnixMilli())
}

// OrderIDFromReference recovers the order id embedded in a reference. Used as a
// fallback when no order row carries the reference yet.
func OrderIDFromReference(reference string) (string, bool) {
	parts := strings.Split(reference, "_")
	if len(parts) != 3 || parts[0] != referenceNamespace || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
