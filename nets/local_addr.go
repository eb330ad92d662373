package nets

import (
	"context"
	"net"
)

// IsLocalAddr reports whether addr resolves to a loopback or private address.
// Unresolvable hosts are not local.
type IsLocalAddr func(ctx context.Context, addr string) bool

func (Module) IsLocalAddr() IsLocalAddr {
	var resolver net.Resolver
	return func(ctx context.Context, addr string) bool {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		if ip := net.ParseIP(host); ip != nil {
			return ip.IsLoopback() || ip.IsPrivate()
		}
		ips, err := resolver.LookupIPAddr(ctx, host)
		if err != nil {
			return false
		}
		for _, ip := range ips {
			if ip.IP.IsLoopback() || ip.IP.IsPrivate() {
				return true
			}
		}
		return false
	}
}
