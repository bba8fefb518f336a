package api

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mamyzabawki/descgen-api/internal/api/shared"
	"github.com/mamyzabawki/descgen-api/internal/service"
	"github.com/mamyzabawki/descgen-api/internal/task"
)

// maxUploadSize bounds the multipart form held in memory; identifier lists
// are tiny.
const maxUploadSize = 10 << 20

// Submitter accepts tasks for background execution.
type Submitter interface {
	Enqueue(task.Task) error
}

// BatchHandler serves the upload form and the batch endpoints.
type BatchHandler struct {
	batch  *service.BatchService
	store  task.StatusStore
	queue  Submitter
	tmpl   *template.Template
	logger *slog.Logger
}

// NewBatchHandler creates a BatchHandler rendering forms from tmpl.
func NewBatchHandler(
	batch *service.BatchService,
	store task.StatusStore,
	queue Submitter,
	tmpl *template.Template,
	logger *slog.Logger,
) *BatchHandler {
	return &BatchHandler{
		batch:  batch,
		store:  store,
		queue:  queue,
		tmpl:   tmpl,
		logger: logger,
	}
}

// TaskCreatedResponse is returned by the async batch endpoint.
type TaskCreatedResponse struct {
	TaskID string `json:"task_id"`
}

// formPage is the data the upload form template renders.
type formPage struct {
	Msg     template.HTML
	Success bool
}

// Home handles GET / by rendering the upload form.
func (h *BatchHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, formPage{})
}

// Run handles POST /run: the synchronous batch. The form is re-rendered
// with a success message and download link, or with the failure text.
func (h *BatchHandler) Run(w http.ResponseWriter, r *http.Request) {
	req, file, err := h.parseForm(r, "generated.xlsx")
	if err != nil {
		h.renderForm(w, formPage{Msg: "❌ Brak pliku z ID produktów"})
		return
	}
	defer func() {
		_ = file.Close()
	}()

	req.IDs, err = service.ParseIdentifiers(file)
	if err != nil {
		h.renderForm(w, formPage{Msg: template.HTML("❌ Błąd: " + template.HTMLEscapeString(err.Error()))})
		return
	}

	path, rows, err := h.batch.Run(r.Context(), req, nil)
	if err != nil {
		h.renderForm(w, formPage{Msg: batchFailureMessage(err)})
		return
	}

	h.logger.Info("synchronous batch finished", "rows", rows, "file", path)
	msg := fmt.Sprintf(
		"✅ Przetwarzanie zakończone. <a href='/static/%s' target='_blank'>📄 Pobierz plik</a>",
		req.Filename)
	h.renderForm(w, formPage{Msg: template.HTML(msg), Success: true})
}

// RunAsync handles POST /run_async: the batch runs on the worker pool and
// the caller polls /status/{task_id}.
func (h *BatchHandler) RunAsync(w http.ResponseWriter, r *http.Request) {
	req, file, err := h.parseForm(r, "")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "missing ids_file upload")
		return
	}

	req.IDs, err = service.ParseIdentifiers(file)
	_ = file.Close()
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// The output file is namespaced by the task identifier so concurrent
	// runs never collide on disk.
	var bt *task.BatchTask
	run := func(ctx context.Context, progress func(done, total int)) (string, error) {
		runReq := req
		runReq.Filename = "generated-" + bt.ID().String() + ".xlsx"
		path, _, err := h.batch.Run(ctx, runReq, progress)
		return path, err
	}

	bt, err = task.NewBatchTask(run, h.store, h.logger)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.queue.Enqueue(bt); err != nil {
		bt.Fail(err.Error())
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, err.Error())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskCreatedResponse{
		TaskID: bt.ID().String(),
	})
}

// Status handles GET /status/{task_id}.
func (h *BatchHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "task_id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "task not found")
		return
	}

	snapshot, ok := h.store.Get(id)
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "task not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, snapshot)
}

// parseForm extracts the batch request and the uploaded identifier file
// from a multipart form.
func (h *BatchHandler) parseForm(r *http.Request, filename string) (service.BatchRequest, multipart.File, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return service.BatchRequest{}, nil, err
	}

	file, _, err := r.FormFile("ids_file")
	if err != nil {
		return service.BatchRequest{}, nil, err
	}

	return service.BatchRequest{
		Shop:     r.FormValue("shop"),
		User:     r.FormValue("user"),
		Password: r.FormValue("pass"),
		Model:    r.FormValue("model"),
		Filename: filename,
	}, file, nil
}

// batchFailureMessage maps fatal batch errors to the form's Polish
// failure texts.
func batchFailureMessage(err error) template.HTML {
	switch {
	case errors.Is(err, service.ErrNoIdentifiers):
		return "❌ Plik nie zawiera żadnych ID produktów"
	case errors.Is(err, service.ErrNoProducts):
		return "❌ Nie udało się pobrać danych produktów z Shopera"
	default:
		return template.HTML("❌ Błąd: " + template.HTMLEscapeString(err.Error()))
	}
}

func (h *BatchHandler) renderForm(w http.ResponseWriter, page formPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "index.html", page); err != nil {
		h.logger.Error("failed to render form", "error", err)
	}
}
