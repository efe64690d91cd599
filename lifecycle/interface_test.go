// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestInterfaceValidate(t *testing.T) {
	tests := []struct {
		name    string
		intf    Interface
		wantErr string
	}{
		{
			name: "valid",
			intf: Interface{Name: "Loopback100", Type: TypeSoftwareLoopback},
		},
		{
			name:    "empty name",
			intf:    Interface{Type: TypeSoftwareLoopback},
			wantErr: "name cannot be empty",
		},
		{
			name:    "empty type",
			intf:    Interface{Name: "Loopback100"},
			wantErr: "type cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.intf.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestInterfacePath(t *testing.T) {
	intf := Interface{Name: "GigabitEthernet0/0/1"}
	assert.Equal(t,
		"/data/ietf-interfaces:interfaces/interface=GigabitEthernet0%2F0%2F1",
		intf.Path())
}

func TestCreatePayload(t *testing.T) {
	intf := Interface{
		Name:        "Loopback100",
		Description: "test loop",
		Type:        TypeSoftwareLoopback,
		Enabled:     true,
	}

	payload, err := intf.CreatePayload()
	require.NoError(t, err)

	assert.Equal(t, "Loopback100", gjson.Get(payload, "ietf-interfaces:interface.name").String())
	assert.Equal(t, "test loop", gjson.Get(payload, "ietf-interfaces:interface.description").String())
	assert.Equal(t, TypeSoftwareLoopback, gjson.Get(payload, "ietf-interfaces:interface.type").String())
	assert.True(t, gjson.Get(payload, "ietf-interfaces:interface.enabled").Bool())
	assert.False(t, gjson.Get(payload, "ietf-interfaces:interface.ietf-ip:ipv4").Exists())
}

func TestCreatePayloadWithAddresses(t *testing.T) {
	intf := Interface{
		Name:    "Loopback100",
		Type:    TypeSoftwareLoopback,
		Enabled: true,
		IPv4Addresses: []IPv4Address{
			{IP: "192.168.100.1", Netmask: "255.255.255.255"},
			{IP: "192.168.100.2", Netmask: "255.255.255.255"},
		},
	}

	payload, err := intf.CreatePayload()
	require.NoError(t, err)

	addresses := gjson.Get(payload, "ietf-interfaces:interface.ietf-ip:ipv4.address")
	require.True(t, addresses.IsArray())
	require.Len(t, addresses.Array(), 2)
	assert.Equal(t, "192.168.100.1", addresses.Array()[0].Get("ip").String())
	assert.Equal(t, "255.255.255.255", addresses.Array()[1].Get("netmask").String())
}
