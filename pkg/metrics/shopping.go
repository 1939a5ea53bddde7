package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// ShoppingMetrics records store mutations and persistence health.
type ShoppingMetrics struct {
	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	ordersPlaced    *prometheus.CounterVec
	checkoutAborts  *prometheus.CounterVec
}

// NewShoppingMetrics registers the shopping metrics on the provided registerer.
func NewShoppingMetrics(reg prometheus.Registerer) *ShoppingMetrics {
	if reg == nil {
		return &ShoppingMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shopping_mutations_total",
		Help: "Shopping state mutations by operation.",
	}, []string{"operation"})
	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "shopping_persist_failures_total",
		Help: "Key-value store writes that failed, by collection.",
	}, []string{"collection"})
	ordersPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_orders_placed_total",
		Help: "Orders committed, by payment method.",
	}, []string{"method"})
	checkoutAborts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_aborts_total",
		Help: "Checkout attempts that did not commit, by reason.",
	}, []string{"reason"})
	reg.MustRegister(mutations, persistFailures, ordersPlaced, checkoutAborts)
	return &ShoppingMetrics{
		mutations:       mutations,
		persistFailures: persistFailures,
		ordersPlaced:    ordersPlaced,
		checkoutAborts:  checkoutAborts,
	}
}

// IncMutation counts one store mutation for the named operation.
func (m *ShoppingMetrics) IncMutation(operation string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(operation)).Inc()
}

// IncPersistFailure counts one failed key-value write for the collection.
func (m *ShoppingMetrics) IncPersistFailure(collection string) {
	if m == nil || m.persistFailures == nil {
		return
	}
	m.persistFailures.WithLabelValues(normalizeLabel(collection)).Inc()
}

// IncOrderPlaced counts one committed order for the payment method.
func (m *ShoppingMetrics) IncOrderPlaced(method string) {
	if m == nil || m.ordersPlaced == nil {
		return
	}
	m.ordersPlaced.WithLabelValues(normalizeLabel(method)).Inc()
}

// IncCheckoutAbort counts one abandoned or rejected checkout.
func (m *ShoppingMetrics) IncCheckoutAbort(reason string) {
	if m == nil || m.checkoutAborts == nil {
		return
	}
	m.checkoutAborts.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return "unknown"
	}
	return value
}
