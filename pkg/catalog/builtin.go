package catalog

import "github.com/tantalor93/dnsrank/pkg/dnsbench"

var builtin = []dnsbench.Provider{
	{Name: "Google Public DNS", Organization: "Google LLC", Location: "Anycast", IPv4: "8.8.8.8", IPv6: "2001:4860:4860::8888"},
	{Name: "Google Public DNS", Organization: "Google LLC", Location: "Anycast", IPv4: "8.8.4.4", IPv6: "2001:4860:4860::8844"},
	{Name: "Cloudflare", Organization: "Cloudflare, Inc.", Location: "Anycast", IPv4: "1.1.1.1", IPv6: "2606:4700:4700::1111"},
	{Name: "Cloudflare", Organization: "Cloudflare, Inc.", Location: "Anycast", IPv4: "1.0.0.1", IPv6: "2606:4700:4700::1001"},
	{Name: "Quad9", Organization: "Quad9", Location: "Anycast", IPv4: "9.9.9.9", IPv6: "2620:fe::fe"},
	{Name: "Quad9", Organization: "Quad9", Location: "Anycast", IPv4: "149.112.112.112", IPv6: "2620:fe::9"},
	{Name: "OpenDNS", Organization: "Cisco OpenDNS", Location: "Anycast", IPv4: "208.67.222.222", IPv6: "2620:119:35::35"},
	{Name: "OpenDNS", Organization: "Cisco OpenDNS", Location: "Anycast", IPv4: "208.67.220.220", IPv6: "2620:119:53::53"},
	{Name: "AdGuard DNS", Organization: "AdGuard Software Ltd", Location: "Anycast", IPv4: "94.140.14.14", IPv6: "2a10:50c0::ad1:ff"},
	{Name: "AdGuard DNS", Organization: "AdGuard Software Ltd", Location: "Anycast", IPv4: "94.140.15.15", IPv6: "2a10:50c0::ad2:ff"},
	{Name: "Comodo Secure DNS", Organization: "Comodo", Location: "Anycast", IPv4: "8.26.56.26"},
	{Name: "Comodo Secure DNS", Organization: "Comodo", Location: "Anycast", IPv4: "8.20.247.20"},
	{Name: "DNS.WATCH", Organization: "DNS.WATCH", Location: "Germany", IPv4: "84.200.69.80", IPv6: "2001:1608:10:25::1c04:b12f"},
	{Name: "DNS.WATCH", Organization: "DNS.WATCH", Location: "Germany", IPv4: "84.200.70.40", IPv6: "2001:1608:10:25::9249:d69b"},
	{Name: "Yandex.DNS", Organization: "Yandex", Location: "Russia", IPv4: "77.88.8.8", IPv6: "2a02:6b8::feed:0ff"},
	{Name: "Yandex.DNS", Organization: "Yandex", Location: "Russia", IPv4: "77.88.8.1", IPv6: "2a02:6b8:0:1::feed:0ff"},
	{Name: "Hurricane Electric", Organization: "Hurricane Electric LLC", Location: "Anycast", IPv4: "74.82.42.42", IPv6: "2001:470:20::2"},
	{Name: "Verisign", Organization: "Verisign", Location: "Anycast", IPv4: "64.6.64.6", IPv6: "2620:74:1b::1:1"},
	{Name: "Level3", Organization: "Lumen", Location: "United States", IPv4: "4.2.2.1"},
	{Name: "Control D", Organization: "Windscribe Limited", Location: "Anycast", IPv4: "76.76.2.0", IPv6: "2606:1a40::"},
}

// Builtin returns a catalog of well-known public resolvers. Every call returns fresh providers.
func Builtin() []*dnsbench.Provider {
	providers := make([]*dnsbench.Provider, len(builtin))
	for i := range builtin {
		p := builtin[i]
		providers[i] = &p
	}
	return providers
}
