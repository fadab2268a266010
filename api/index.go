package handler

import (
	"hotelops/config"
	"hotelops/di"
	"hotelops/shared/logger"
	"hotelops/transport/http"
	netHttp "net/http"
	"sync"
)

var (
	once    sync.Once
	service *http.HTTP
)

// Handler is the serverless entry point. The service graph is built on the first
// invocation and reused while the instance stays warm, so workspaces survive between requests.
func Handler(w netHttp.ResponseWriter, r *netHttp.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.UseJSON(cfg)

		logger.SetLogLevel(cfg)

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
