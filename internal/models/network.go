package models

import (
	"bytes"
	"encoding/json"
)

// Address families
const (
	FamilyIPv4 = "IPv4"
	FamilyIPv6 = "IPv6"
	FamilyMAC  = "MAC"
)

// Address is one address assigned to a network interface. Netmask and
// Broadcast are empty when the kernel does not report them.
type Address struct {
	Family    string `json:"family"`
	Address   string `json:"address"`
	Netmask   string `json:"netmask"`
	Broadcast string `json:"broadcast"`
}

// Interface represents a network interface and its addresses
type Interface struct {
	Name      string
	Addresses []Address
}

// Interfaces keeps interfaces in enumeration order. It encodes to a JSON
// object keyed by interface name.
type Interfaces []Interface

func (ifs Interfaces) MarshalJSON() ([]byte, error) {
	keys := make([]string, len(ifs))
	values := make([]any, len(ifs))
	for i, iface := range ifs {
		keys[i] = iface.Name
		addrs := iface.Addresses
		if addrs == nil {
			addrs = []Address{}
		}
		values[i] = addrs
	}
	return marshalOrdered(keys, values)
}

// marshalOrdered encodes parallel key/value slices as a JSON object,
// preserving slice order.
func marshalOrdered(keys []string, values []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
