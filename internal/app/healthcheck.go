package app

import (
	"fmt"
	"net/http"
)

// startHealthcheckServer runs a minimal HTTP server so orchestrators can
// probe a long-running suite execution. It blocks, so callers run it on its
// own goroutine; the server lives for the remainder of the process.
func (a *App) startHealthcheckServer(port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	})

	addr := fmt.Sprintf(":%d", port)
	a.logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		a.logger.Error("Health check server failed unexpectedly", "error", err)
	}
}
