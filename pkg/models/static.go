package models

import (
	"fmt"
	"strings"
)

// Reservation represents a host declaration in dhcpd.conf
type Reservation struct {
	Name         string  `json:"name"`
	MAC          *string `json:"mac"`
	FixedAddress *string `json:"fixedAddress"`
}

// String renders the reservation back in dhcpd.conf shape, for logging
func (r *Reservation) String() string {
	parts := []string{}

	if r.MAC != nil {
		parts = append(parts, fmt.Sprintf("hardware ethernet %s;", *r.MAC))
	}
	if r.FixedAddress != nil {
		parts = append(parts, fmt.Sprintf("fixed-address %s;", *r.FixedAddress))
	}

	return fmt.Sprintf("host %s { %s }", r.Name, strings.Join(parts, " "))
}
