package handler

import (
	"net/http"
	"sync"

	"campusroom/config"
	"campusroom/di"
	"campusroom/shared/logger"
)

var service = sync.OnceValue(func() http.Handler {
	cfg := config.Get()

	logger.InitLogger(cfg)

	logger.SetLogLevel(cfg)

	return di.InitializeService()
})

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	service().ServeHTTP(w, r)
}
