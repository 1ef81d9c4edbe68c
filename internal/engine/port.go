package engine

import (
	"fmt"

	"github.com/vovakirdan/hexsettle/internal/resource"
)

// BankRate is the exchange rate without any port.
const BankRate = 4

// Port lowers the bank exchange rate for whoever builds next to it.
// A generic port accepts any resource; a resource port accepts one.
type Port struct {
	Rate     int
	Resource resource.Kind
	Generic  bool
}

// GenericPort returns a port accepting any resource at rate.
func GenericPort(rate int) Port {
	return Port{Rate: rate, Generic: true}
}

// ResourcePort returns a port accepting only k at rate.
func ResourcePort(rate int, k resource.Kind) Port {
	return Port{Rate: rate, Resource: k}
}

// Accepts reports whether the port trades k.
func (p Port) Accepts(k resource.Kind) bool {
	return p.Generic || p.Resource == k
}

// String renders the port as "3:1" or "2:1 Wool".
func (p Port) String() string {
	if p.Generic {
		return fmt.Sprintf("%d:1", p.Rate)
	}
	return fmt.Sprintf("%d:1 %s", p.Rate, p.Resource)
}
