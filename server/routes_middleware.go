// routes_middleware.go - Host-Pruefung fuer den HTTP-Router
// Blockiert DNS-Rebinding-Anfragen mit fremdem Host-Header, solange der
// Listener auf einer Loopback-Adresse haengt.

package server

import (
	"net"
	"net/http"
	"net/netip"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// localInterfaceAddr prueft ob die IP zu einem lokalen Interface gehoert.
func localInterfaceAddr(ip netip.Addr) bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}

	for _, iface := range ifaces {
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, a := range addrs {
			parsed, _, err := net.ParseCIDR(a.String())
			if err != nil {
				continue
			}
			if parsed.String() == ip.String() {
				return true
			}
		}
	}

	return false
}

// allowedHostname prueft einen Hostnamen gegen die lokalen Namen der
// Maschine. visiond bedient lokale Clients; zusaetzliche Browser-Origins
// regelt VISIOND_ORIGINS auf CORS-Ebene, nicht hier.
func allowedHostname(host string) bool {
	host = strings.ToLower(host)

	if host == "" || host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}

	hostname, err := os.Hostname()
	return err == nil && host == strings.ToLower(hostname)
}

// allowedHostsMiddleware weist Anfragen mit fremdem Host-Header mit 403 ab.
// Lauscht der Listener nicht auf Loopback, ist der Server absichtlich
// exponiert und die Pruefung entfaellt.
func allowedHostsMiddleware(addr net.Addr) gin.HandlerFunc {
	return func(c *gin.Context) {
		if addr == nil {
			c.Next()
			return
		}

		if ap, err := netip.ParseAddrPort(addr.String()); err == nil && !ap.Addr().IsLoopback() {
			c.Next()
			return
		}

		host, _, err := net.SplitHostPort(c.Request.Host)
		if err != nil {
			host = c.Request.Host
		}

		if ip, err := netip.ParseAddr(strings.Trim(host, "[]")); err == nil {
			if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() || localInterfaceAddr(ip) {
				c.Next()
				return
			}
		} else if allowedHostname(host) {
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}

			c.Next()
			return
		}

		c.AbortWithStatus(http.StatusForbidden)
	}
}
