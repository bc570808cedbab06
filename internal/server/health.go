package server

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func getHealth(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getHealth"

	checks, ok := ctx.Stats.Health(r.Context(), ctx.PingCache)
	status := http.StatusOK
	if !ok {
		status = http.StatusServiceUnavailable
	}

	return route, writeData(w, status, checks)
}

func getStats(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getStats"

	stats, err := ctx.Stats.Stats(r.Context())
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, stats)
}
