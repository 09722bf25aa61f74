package http

import (
	"net"
	"net/http"
	"net/url"

	gorilla "github.com/gorilla/websocket"
)

const EnvironmentProduction = "production"

type UpgraderConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	// AllowedOrigins are accepted in every environment.
	AllowedOrigins []string
	Environment    string
}

// isPrivateOrigin checks if an origin's hostname is an RFC 1918 or RFC 4193 address
func isPrivateOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	ip := net.ParseIP(u.Hostname())
	if ip == nil {
		return false
	}
	return ip.IsPrivate()
}

// isLocalhostOrigin checks if an origin is localhost or a loopback address
func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	hostname := u.Hostname()
	if hostname == "localhost" {
		return true
	}
	ip := net.ParseIP(hostname)
	return ip != nil && ip.IsLoopback()
}

// createUpgrader creates a WebSocket upgrader with environment-aware origin validation.
// Production accepts the configured origins only; other environments also accept localhost and
// private networks.
func createUpgrader(cfg UpgraderConfig) gorilla.Upgrader {
	allowed := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[o] = struct{}{}
	}
	production := cfg.Environment == "" || cfg.Environment == EnvironmentProduction

	return gorilla.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if _, ok := allowed[origin]; ok && origin != "" {
				return true
			}
			if production {
				return false
			}
			return isLocalhostOrigin(origin) || isPrivateOrigin(origin)
		},
	}
}
