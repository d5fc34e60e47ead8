package tg

import (
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/larriantoniy/tg_carbon_bot/internal/config"
)

const proxyDialTimeout = 5 * time.Second

// checkProxy только логирует доступность прокси: TDLib сам переподключается,
// а по логу сразу видно, что бот молчит из-за сети.
func checkProxy(logger *slog.Logger, proxy config.ProxyConfig) {
	addr := net.JoinHostPort(proxy.Server, strconv.Itoa(int(proxy.Port)))

	networks := []string{"tcp6", "tcp4"}
	if ip := net.ParseIP(proxy.Server); ip != nil {
		// для IP-литерала пробуем только его семейство
		if ip.To4() != nil {
			networks = []string{"tcp4"}
		} else {
			networks = []string{"tcp6"}
		}
	}

	for _, network := range networks {
		conn, err := net.DialTimeout(network, addr, proxyDialTimeout)
		if err != nil {
			logger.Warn("proxy check failed", "network", network, "addr", addr, "error", err)
			continue
		}
		_ = conn.Close()
		logger.Info("proxy reachable", "network", network, "addr", addr)
		return
	}

	logger.Error("proxy unreachable", "addr", addr)
}
