package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/blacksmith/atlas/internal/delivery"
)

// postDeliverySlates accepts either a raw CSV body (text/csv) or a
// JSON list of shot rows, and answers with one rendered slate per row.
// ?encode=ascii returns the slates in their code point form.
func postDeliverySlates(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "postDeliverySlates"

	encode := r.URL.Query().Get("encode") == "ascii"

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "text/csv") || strings.HasPrefix(contentType, "text/plain") {
		slates, err := ctx.Delivery.GenerateFromCSV(r.Context(), r.Body, encode)
		if err != nil {
			return route, writeError(w, err)
		}
		return route, writeList(w, slates, int64(len(slates)))
	}

	var req struct {
		Rows []delivery.ShotRecord `json:"rows"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}

	slates, err := ctx.Delivery.Generate(r.Context(), req.Rows, encode)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, slates, int64(len(slates)))
}

func getDeliveryTemplates(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getDeliveryTemplates"
	return route, writeData(w, http.StatusOK, ctx.Delivery.Templates())
}
