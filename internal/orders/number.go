package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewOrderNumber builds a human-readable order number. The epoch-millisecond
// stem keeps numbers sortable; the uuid suffix keeps them unique even when
// two orders land in the same millisecond.
func NewOrderNumber(prefix string, at time.Time) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "ORD"
	}
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("%s-%d-%s", prefix, at.UnixMilli(), suffix)
}
