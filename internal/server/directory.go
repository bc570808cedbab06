package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/blacksmith/atlas/internal/model"
)

type projectRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

type projectView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func viewProject(p *model.Project) projectView {
	return projectView{
		ID:          p.ID,
		Name:        p.Name,
		Code:        p.Code,
		Status:      p.Status,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
	}
}

type userRequest struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

type userView struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role,omitempty"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func viewUser(u *model.User) userView {
	return userView{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		CreatedAt:  u.CreatedAt,
	}
}

func postProject(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "postProject"

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}
	if req.Name == "" || req.Code == "" {
		return route, badRequest(w, "name and code are required")
	}

	project := &model.Project{
		ID:          req.ID,
		Name:        req.Name,
		Code:        req.Code,
		Status:      req.Status,
		Description: req.Description,
	}

	created, err := ctx.Catalog.CreateProject(r.Context(), project)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusCreated, viewProject(created))
}

func getProjects(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getProjects"

	projects, err := ctx.Catalog.ListProjects(r.Context())
	if err != nil {
		return route, writeError(w, err)
	}

	views := make([]projectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, viewProject(project))
	}

	return route, writeList(w, views, int64(len(views)))
}

func getProject(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getProject"

	id, err := uuid.Parse(p.ByName("projectID"))
	if err != nil {
		return route, badRequest(w, "invalid project id")
	}

	project, err := ctx.Catalog.GetProject(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewProject(project))
}

func putProject(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "putProject"

	id, err := uuid.Parse(p.ByName("projectID"))
	if err != nil {
		return route, badRequest(w, "invalid project id")
	}

	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}

	project := &model.Project{
		ID:          id.String(),
		Name:        req.Name,
		Code:        req.Code,
		Status:      req.Status,
		Description: req.Description,
	}

	updated, err := ctx.Catalog.UpdateProject(r.Context(), project)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewProject(updated))
}

func deleteProject(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "deleteProject"

	id, err := uuid.Parse(p.ByName("projectID"))
	if err != nil {
		return route, badRequest(w, "invalid project id")
	}

	if err := ctx.Catalog.DeleteProject(r.Context(), id); err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func getProjectAssets(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getProjectAssets"

	id, err := uuid.Parse(p.ByName("projectID"))
	if err != nil {
		return route, badRequest(w, "invalid project id")
	}

	assets, err := ctx.Graph.ProjectAssets(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, viewAssets(assets), int64(len(assets)))
}

func postUser(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "postUser"

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}
	if req.Name == "" || req.Email == "" {
		return route, badRequest(w, "name and email are required")
	}

	user := &model.User{
		ID:         req.ID,
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
	}

	created, err := ctx.Catalog.CreateUser(r.Context(), user)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusCreated, viewUser(created))
}

func getUsers(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getUsers"

	users, err := ctx.Catalog.ListUsers(r.Context())
	if err != nil {
		return route, writeError(w, err)
	}

	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, viewUser(user))
	}

	return route, writeList(w, views, int64(len(views)))
}

func getUser(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getUser"

	id, err := uuid.Parse(p.ByName("userID"))
	if err != nil {
		return route, badRequest(w, "invalid user id")
	}

	user, err := ctx.Catalog.GetUser(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewUser(user))
}

func putUser(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "putUser"

	id, err := uuid.Parse(p.ByName("userID"))
	if err != nil {
		return route, badRequest(w, "invalid user id")
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return route, badRequest(w, "invalid request body")
	}

	user := &model.User{
		ID:         id.String(),
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
	}

	updated, err := ctx.Catalog.UpdateUser(r.Context(), user)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, viewUser(updated))
}

func deleteUser(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "deleteUser"

	id, err := uuid.Parse(p.ByName("userID"))
	if err != nil {
		return route, badRequest(w, "invalid user id")
	}

	if err := ctx.Catalog.DeleteUser(r.Context(), id); err != nil {
		return route, writeError(w, err)
	}

	return route, writeData(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func getUserAssets(w http.ResponseWriter, r *http.Request, p httprouter.Params, ctx *handlerContext) (string, int) {
	route := "getUserAssets"

	id, err := uuid.Parse(p.ByName("userID"))
	if err != nil {
		return route, badRequest(w, "invalid user id")
	}

	assets, err := ctx.Graph.UserAssets(r.Context(), id)
	if err != nil {
		return route, writeError(w, err)
	}

	return route, writeList(w, viewAssets(assets), int64(len(assets)))
}
