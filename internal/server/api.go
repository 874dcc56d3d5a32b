package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"taskflow/internal/task"
	"taskflow/internal/ws"
)

// App holds what the handlers depend on. This makes the wiring obvious.
type App struct {
	Tasks *task.Service
	Hub   *ws.Hub

	BootNow time.Time
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// RegisterAPIRoutes wires the task API, the websocket endpoint and the
// introspection routes onto the router.
func RegisterAPIRoutes(router *mux.Router, rr *RouteRegistry, app *App) {
	h := task.NewHandler(app.Tasks)

	Handle(router, rr, http.MethodPost, "/tasks", "Crear nueva tarea", h.CreateTask)
	Handle(router, rr, http.MethodGet, "/tasks", "Obtener listado de tareas", h.ListTasks)
	Handle(router, rr, http.MethodPut, "/tasks/{id}", "Actualizar estado de una tarea", h.UpdateTask)
	Handle(router, rr, http.MethodDelete, "/tasks/{id}", "Eliminar una tarea", h.DeleteTask)

	Handle(router, rr, http.MethodGet, "/ws", "Suscribirse a eventos en tiempo real", app.Hub.ServeWS)

	Handle(router, rr, http.MethodGet, "/healthz", "Health check", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "taskflow",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	Handle(router, rr, http.MethodGet, "/api/routes", "Listar rutas registradas", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, rr.List())
	})
}
