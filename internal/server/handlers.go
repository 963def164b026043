package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"feesheet/internal/api"
	"feesheet/internal/logging"
	"feesheet/internal/note"
	"feesheet/internal/session"
	"feesheet/internal/sheet"
)

const (
	maxBodyBytes  = 64 << 10
	maxPasteBytes = 1 << 20

	clipboardContentType = "text/tab-separated-values; charset=utf-8"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /assets/{name...}", s.handleAsset)

	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/rules", s.handleRules)

	mux.HandleFunc("POST /api/sheets", s.handleCreateSheet)
	mux.HandleFunc("GET /api/sheets/{id}", s.handleGetSheet)
	mux.HandleFunc("DELETE /api/sheets/{id}", s.handleDeleteSheet)
	mux.HandleFunc("GET /api/sheets/{id}/export", s.handleExport)

	mux.HandleFunc("POST /api/sheets/{id}/{category}/rows", s.handleAddRow)
	mux.HandleFunc("POST /api/sheets/{id}/{category}/rows/delete-selected", s.handleDeleteSelected)
	mux.HandleFunc("PUT /api/sheets/{id}/{category}/rows/{no}/selected", s.handleSelect)
	mux.HandleFunc("GET /api/sheets/{id}/{category}/rows/copy", s.handleCopy)
	mux.HandleFunc("POST /api/sheets/{id}/{category}/rows/paste", s.handlePaste)

	mux.HandleFunc("POST /api/sheets/{id}/edit", s.handleBeginEdit)
	mux.HandleFunc("POST /api/sheets/{id}/edit/input", s.handleEditInput)
	mux.HandleFunc("POST /api/sheets/{id}/edit/commit", s.handleEditCommit)
	mux.HandleFunc("POST /api/sheets/{id}/edit/cancel", s.handleEditCancel)
	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	status := s.Status()
	s.writeJSON(w, http.StatusOK, api.StatusResponse{
		Running:   status.Running,
		PID:       status.PID,
		Bind:      status.Bind,
		RunID:     status.RunID,
		StartedAt: api.FormatTime(status.StartedAt),
		Sheets:    status.Sheets,

		LockFilePath: status.LockFilePath,
	})
}

func (s *Server) handleRules(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, api.Rules())
}

func (s *Server) handleCreateSheet(w http.ResponseWriter, r *http.Request) {
	id, err := s.store.Create()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.requestLogger(r).Info("sheet opened",
		logging.String(logging.FieldSheetID, id),
		logging.String(logging.FieldEventType, "sheet_created"),
	)
	s.respondSheet(w, r, http.StatusCreated, id, func(*sheet.Sheet) error { return nil })
}

func (s *Server) handleGetSheet(w http.ResponseWriter, r *http.Request) {
	s.respondSheet(w, r, http.StatusOK, r.PathValue("id"), func(*sheet.Sheet) error { return nil })
}

func (s *Server) handleDeleteSheet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.store.Delete(id) {
		s.fail(w, r, fmt.Errorf("%w: %q", session.ErrNotFound, id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var content string
	err := s.store.With(r.PathValue("id"), func(sh *sheet.Sheet) error {
		content = note.ExportSheet(sh)
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", note.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": s.exportFilename(),
	}))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, content)
}

func (s *Server) handleAddRow(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	s.respondSheet(w, r, http.StatusOK, r.PathValue("id"), func(sh *sheet.Sheet) error {
		_, err := sh.AddRow(category)
		return err
	})
}

func (s *Server) handleDeleteSelected(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	category := r.PathValue("category")
	var resp api.DeleteResponse
	err := s.store.With(id, func(sh *sheet.Sheet) error {
		n, err := sh.DeleteSelected(category)
		if err != nil {
			return err
		}
		resp.Deleted = n
		resp.Sheet = api.FromSheet(id, sh)
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if resp.Deleted > 0 {
		s.requestLogger(r).Info("rows deleted",
			logging.String(logging.FieldSheetID, id),
			logging.String(logging.FieldCategory, category),
			logging.Int("rows", resp.Deleted),
		)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	var text string
	err := s.store.With(r.PathValue("id"), func(sh *sheet.Sheet) error {
		var err error
		text, err = sh.Copy(category)
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", clipboardContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

// handlePaste replaces a grid's rows with the tab-separated request body.
func (s *Server) handlePaste(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPasteBytes))
	if err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, "pasted text too large")
		return
	}
	id := r.PathValue("id")
	category := r.PathValue("category")
	var resp api.PasteResponse
	err = s.store.With(id, func(sh *sheet.Sheet) error {
		n, err := sh.Paste(category, string(body))
		if err != nil {
			return err
		}
		resp.Pasted = n
		resp.Sheet = api.FromSheet(id, sh)
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.requestLogger(r).Info("rows pasted",
		logging.String(logging.FieldSheetID, id),
		logging.String(logging.FieldCategory, category),
		logging.Int("rows", resp.Pasted),
	)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	no, err := strconv.Atoi(r.PathValue("no"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid row number")
		return
	}
	var req api.SelectRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	category := r.PathValue("category")
	s.respondSheet(w, r, http.StatusOK, r.PathValue("id"), func(sh *sheet.Sheet) error {
		return sh.SetSelected(category, no, req.Selected)
	})
}

func (s *Server) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	var req api.BeginEditRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondSheet(w, r, http.StatusOK, r.PathValue("id"), func(sh *sheet.Sheet) error {
		field, err := sheet.ParseField(req.Field)
		if err != nil {
			return err
		}
		_, err = sh.Begin(req.Category, req.No, field)
		return err
	})
}

func (s *Server) handleEditInput(w http.ResponseWriter, r *http.Request) {
	var req api.InputRequest
	if err := decodeBody(w, r, &req, false); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondSheet(w, r, http.StatusOK, r.PathValue("id"), func(sh *sheet.Sheet) error {
		edit, err := activeEdit(sh)
		if err != nil {
			return err
		}
		return edit.Input(req.Value)
	})
}

func (s *Server) handleEditCommit(w http.ResponseWriter, r *http.Request) {
	var req api.CommitRequest
	if err := decodeBody(w, r, &req, true); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondSheet(w, r, http.StatusOK, r.PathValue("id"), func(sh *sheet.Sheet) error {
		edit, err := activeEdit(sh)
		if err != nil {
			return err
		}
		if req.Value != nil {
			if err := edit.Input(*req.Value); err != nil {
				return err
			}
		}
		_, err = edit.Commit()
		return err
	})
}

func (s *Server) handleEditCancel(w http.ResponseWriter, r *http.Request) {
	s.respondSheet(w, r, http.StatusOK, r.PathValue("id"), func(sh *sheet.Sheet) error {
		edit, err := activeEdit(sh)
		if err != nil {
			return err
		}
		_, err = edit.Cancel()
		return err
	})
}

// respondSheet applies fn under the sheet's lock and answers with the
// resulting sheet view.
func (s *Server) respondSheet(w http.ResponseWriter, r *http.Request, status int, id string, fn func(*sheet.Sheet) error) {
	var view api.SheetView
	err := s.store.With(id, func(sh *sheet.Sheet) error {
		if err := fn(sh); err != nil {
			return err
		}
		view = api.FromSheet(id, sh)
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.writeJSON(w, status, view)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.ErrorWithContext(s.requestLogger(r), "request failed", "request_failed",
			logging.String("path", r.URL.Path),
			logging.Error(err),
		)
	}
	s.writeError(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, sheet.ErrUnknownCategory),
		errors.Is(err, sheet.ErrUnknownField),
		errors.Is(err, sheet.ErrRowNotFound),
		errors.Is(err, sheet.ErrEmptyPaste):
		return http.StatusBadRequest
	case errors.Is(err, sheet.ErrReadOnly),
		errors.Is(err, sheet.ErrNoActiveEdit),
		errors.Is(err, sheet.ErrEditClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func activeEdit(sh *sheet.Sheet) (*sheet.Edit, error) {
	edit := sh.Active()
	if edit == nil {
		return nil, sheet.ErrNoActiveEdit
	}
	return edit, nil
}

// decodeBody reads a JSON request body. An empty body is accepted only when
// optional is set.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return errors.New("request body required")
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}
