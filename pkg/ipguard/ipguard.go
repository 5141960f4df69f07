// Package ipguard validates user-supplied IP addresses before they are used
// to build outbound requests, blocking private and reserved IPv4 ranges.
package ipguard

import "net"

// privateRanges lists the IPv4 networks that must never be the target of a
// proxied lookup. IPv6 literals are only checked for syntax.
var privateRanges = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"127.0.0.0/8",
	"169.254.0.0/16",
)

// IsPublicRoutable reports whether candidate parses as an IP literal that is
// safe to forward to the upstream lookup service. It must be consulted before
// any outbound URL is constructed from user input.
func IsPublicRoutable(candidate string) bool {
	ip := net.ParseIP(candidate)
	if ip == nil {
		return false
	}

	for _, network := range privateRanges {
		if network.Contains(ip) {
			return false
		}
	}

	return true
}

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	networks := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(err)
		}
		networks = append(networks, network)
	}
	return networks
}
