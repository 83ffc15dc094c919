package services

import (
	"net"
	"strings"

	"sysreport/internal/models"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// SplitCIDR turns an interface address as gopsutil reports it ("10.0.0.5/24")
// into address, netmask and broadcast. Broadcast is only derived for IPv4
// on interfaces that support it. Addresses without a prefix length are
// returned with empty netmask and broadcast.
func SplitCIDR(cidr string, broadcastCapable bool) models.Address {
	ip, ipnet, err := net.ParseCIDR(cidr)
	if err != nil {
		addr := models.Address{Address: cidr}
		if parsed := net.ParseIP(cidr); parsed != nil {
			addr.Family = family(parsed)
		}
		return addr
	}

	addr := models.Address{
		Family:  family(ip),
		Address: ip.String(),
		Netmask: net.IP(ipnet.Mask).String(),
	}

	if ip4 := ip.To4(); ip4 != nil && broadcastCapable {
		mask := ipnet.Mask
		if len(mask) == net.IPv6len {
			mask = mask[12:]
		}
		bcast := make(net.IP, net.IPv4len)
		for i := range ip4 {
			bcast[i] = ip4[i] | ^mask[i]
		}
		addr.Broadcast = bcast.String()
	}

	return addr
}

func family(ip net.IP) string {
	if ip.To4() != nil {
		return models.FamilyIPv4
	}
	return models.FamilyIPv6
}

func hasFlag(flags []string, flag string) bool {
	for _, f := range flags {
		if strings.EqualFold(f, flag) {
			return true
		}
	}
	return false
}

// interfacesFromStats keeps enumeration order and every address of every
// interface. The link-layer address, when known, follows the IP addresses.
func interfacesFromStats(stats []psnet.InterfaceStat) models.Interfaces {
	ifs := make(models.Interfaces, 0, len(stats))
	for _, stat := range stats {
		broadcastCapable := hasFlag(stat.Flags, "broadcast")
		addrs := make([]models.Address, 0, len(stat.Addrs))
		for _, a := range stat.Addrs {
			addrs = append(addrs, SplitCIDR(a.Addr, broadcastCapable))
		}
		if stat.HardwareAddr != "" {
			addrs = append(addrs, models.Address{Family: models.FamilyMAC, Address: stat.HardwareAddr})
		}
		ifs = append(ifs, models.Interface{Name: stat.Name, Addresses: addrs})
	}
	return ifs
}
