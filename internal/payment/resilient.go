package payment

import (
	"errors"

	"github.com/brmartins/orderflow/internal/patterns"
	log "github.com/sirupsen/logrus"
)

var errDeclined = errors.New("payment declined")

// Resilient wraps another Strategy in a circuit breaker. Repeated
// declines or gateway errors open the circuit, and further charges are
// reported declined without touching the gateway until it recovers.
type Resilient struct {
	inner   Strategy
	circuit *patterns.CircuitBreakerWrapper
}

// NewResilient creates a circuit-breaker protected payment strategy.
func NewResilient(inner Strategy, circuit *patterns.CircuitBreakerWrapper) *Resilient {
	return &Resilient{inner: inner, circuit: circuit}
}

func (r *Resilient) Process(info Info) bool {
	_, err := r.circuit.Execute(func() (interface{}, error) {
		if !r.inner.Process(info) {
			return nil, errDeclined
		}
		return nil, nil
	})

	if err != nil {
		log.WithFields(log.Fields{
			"amount": info.Amount,
			"state":  r.circuit.GetState(),
		}).Warn("Payment rejected: ", patterns.FormatError("Payment", err))
		return false
	}

	return true
}
