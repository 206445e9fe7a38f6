package common

import "net"

// GetLocalIPs returns localhost plus the first non-loopback IPv4 address
func GetLocalIPs() []string {
	ips := []string{"localhost", "127.0.0.1"}

	interfaces, err := net.Interfaces()
	if err != nil {
		return ips
	}

	for _, i := range interfaces {
		if i.Flags&net.FlagLoopback != 0 ||
			i.Flags&net.FlagUp == 0 ||
			i.Flags&net.FlagPointToPoint != 0 {
			continue
		}

		addrs, err := i.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && !ipnet.IP.IsLoopback() && ipnet.IP.To4() != nil {
				return append(ips, ipnet.IP.String())
			}
		}
	}
	return ips
}
