// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lifecycle

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/netascode/go-netdev/restconf"
)

// Interface type identities from the iana-if-type YANG module.
const (
	TypeSoftwareLoopback = "iana-if-type:softwareLoopback"
	TypeEthernet         = "iana-if-type:ethernetCsmacd"
)

// CollectionPath is the ietf-interfaces collection resource.
const CollectionPath = "/data/ietf-interfaces:interfaces"

// IPv4Address is one address entry on an interface.
type IPv4Address struct {
	IP      string
	Netmask string
}

// Interface describes the interface configuration driven through the
// lifecycle pass.
type Interface struct {
	// Name is the device interface name, e.g. Loopback100
	Name string

	// Description is the initial interface description
	Description string

	// Type is the iana-if-type identity, e.g. TypeSoftwareLoopback
	Type string

	// Enabled is the administrative state
	Enabled bool

	// IPv4Addresses configures ietf-ip addresses, optional
	IPv4Addresses []IPv4Address
}

// Validate checks the fields required to address and create the interface.
func (i Interface) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("interface name cannot be empty")
	}
	if i.Type == "" {
		return fmt.Errorf("interface type cannot be empty")
	}
	return nil
}

// Path returns the data resource for this interface, with the name
// percent-encoded for use as a list key.
func (i Interface) Path() string {
	return CollectionPath + "/interface=" + url.PathEscape(i.Name)
}

// CreatePayload builds the YANG JSON body posted to the interface
// collection.
func (i Interface) CreatePayload() (string, error) {
	body := restconf.Body{}.
		Set("ietf-interfaces:interface.name", i.Name).
		Set("ietf-interfaces:interface.description", i.Description).
		Set("ietf-interfaces:interface.type", i.Type).
		Set("ietf-interfaces:interface.enabled", i.Enabled)

	if len(i.IPv4Addresses) > 0 {
		addresses := restconf.Body{}
		for n, addr := range i.IPv4Addresses {
			prefix := fmt.Sprintf("address.%d.", n)
			addresses = addresses.
				Set(prefix+"ip", addr.IP).
				Set(prefix+"netmask", addr.Netmask)
		}
		raw := addresses.Res()
		if err := addresses.Err(); err != nil {
			return "", err
		}
		body = body.SetRaw("ietf-interfaces:interface.ietf-ip:ipv4", raw)
	}

	return body.String()
}

// UpdatePayload builds the partial YANG JSON body merged into the
// interface to change only its description.
func UpdatePayload(description string) (string, error) {
	return restconf.Body{}.
		Set("ietf-interfaces:interface.description", description).
		String()
}
