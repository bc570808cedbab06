package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/blacksmith/atlas/internal/model"
	"github.com/blacksmith/atlas/internal/store"
)

type edgeRequest struct {
	Relation string            `json:"relation"`
	SourceID string            `json:"source_id"`
	TargetID string            `json:"target_id"`
	Meta     map[string]string `json:"meta"`
}

type edgeView struct {
	ID        string            `json:"id"`
	Relation  string            `json:"relation"`
	SourceID  string            `json:"source_id"`
	TargetID  string            `json:"target_id"`
	Meta      map[string]string `json:"meta"`
	CreatedAt time.Time         `json:"created_at"`
}

func viewEdge(edge *model.Edge) edgeView {
	meta, err := edge.MetaMap()
	if err != nil {
		meta = map[string]string{}
	}
	return edgeView{
		ID:        edge.ID,
		Relation:  edge.Relation,
		SourceID:  edge.SourceID,
		TargetID:  edge.TargetID,
		Meta:      meta,
		CreatedAt: edge.CreatedAt,
	}
}

func postEdge(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "postEdge"

	var req edgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}

	sourceID, err := uuid.Parse(req.SourceID)
	if err != nil {
		return route, badRequest(w, "invalid source id")
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		return route, badRequest(w, "invalid target id")
	}

	edge, err := ctx.Graph.CreateEdge(r.Context(), req.Relation, sourceID, targetID, req.Meta)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusCreated, viewEdge(edge))
}

func getEdges(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getEdges"

	query := r.URL.Query()
	edges, err := ctx.Graph.ListEdges(r.Context(), store.EdgeFilter{
		Relation: query.Get("relation"),
		SourceID: query.Get("source"),
		TargetID: query.Get("target"),
	})
	if err != nil {
		return route, writeError(w, err)
	}

	views := make([]edgeView, 0, len(edges))
	for _, edge := range edges {
		views = append(views, viewEdge(edge))
	}

	return route, writeList(w, views, int64(len(views)))
}

func getEdge(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getEdge"

	id, err := uuid.Parse(p.ByName("edgeID"))
	if err != nil {
		return route, badRequest(w, "invalid edge id")
	}

	edge, err := ctx.Graph.GetEdge(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewEdge(edge))
}

func deleteEdge(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "deleteEdge"

	id, err := uuid.Parse(p.ByName("edgeID"))
	if err != nil {
		return route, badRequest(w, "invalid edge id")
	}

	if err := ctx.Graph.DeleteEdge(r.Context(), id); err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}
