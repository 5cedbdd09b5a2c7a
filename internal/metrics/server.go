// internal/metrics/server.go
package metrics

import (
	"log"
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewDebugMux serves /metrics for the collector's registry plus the pprof handlers.
func NewDebugMux(c *Collector) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.HandlerFor(c.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return mux
}

// StartDebugServer serves the debug mux in the background. An empty addr disables it.
// Non-loopback hosts are refused.
func StartDebugServer(addr string, c *Collector) {
	if addr == "" {
		log.Println("Debug server disabled")
		return
	}
	if host, _, err := net.SplitHostPort(addr); err != nil || !isLoopback(host) {
		log.Printf("Debug server address %q is not loopback, using 127.0.0.1:6060", addr)
		addr = "127.0.0.1:6060"
	}

	go func() {
		log.Printf("Debug server on http://%s (metrics, pprof)", addr)
		if err := http.ListenAndServe(addr, NewDebugMux(c)); err != nil {
			log.Printf("Debug server error: %v", err)
		}
	}()
}

func isLoopback(host string) bool {
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
