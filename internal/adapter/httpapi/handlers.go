package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hsl-agent/internal/controller"
	"hsl-agent/internal/domain"
)

type sessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type turnResponse struct {
	Role      domain.Role `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

type transcriptResponse struct {
	SessionID string         `json:"session_id"`
	Turns     []turnResponse `json:"turns"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string         `json:"reply"`
	Turns []turnResponse `json:"turns"`
}

type creativeRequest struct {
	Brief string `json:"brief"`
}

type creativeResponse struct {
	Kind domain.CreativeKind `json:"kind"`
	Text string              `json:"text"`
}

// summaryRequest leaves options nil when absent so defaults can apply.
type summaryRequest struct {
	Text                string `json:"text"`
	Verbosity           string `json:"verbosity,omitempty"`
	BulletPoints        *bool  `json:"bullet_points,omitempty"`
	PreserveTerminology *bool  `json:"preserve_terminology,omitempty"`
}

type exportResponse struct {
	Filename string `json:"filename"`
	MIMEType string `json:"mime_type"`
}

type summaryResponse struct {
	Text   string         `json:"text"`
	Export exportResponse `json:"export"`
}

func toTurnResponses(turns []domain.Turn) []turnResponse {
	out := make([]turnResponse, 0, len(turns))
	for _, t := range turns {
		out = append(out, turnResponse{Role: t.Role, Content: t.Content, Timestamp: t.Timestamp})
	}
	return out
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &domain.ValidationError{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// submit detaches the generation from the client connection: once issued, a
// request runs to completion even if the caller goes away. The provider
// timeout still bounds it.
func (s *Server) submit(r *http.Request, sess *domain.Session, req controller.Request) (controller.Result, error) {
	return s.ctrl.Submit(context.WithoutCancel(r.Context()), sess, req)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Create()
	s.log.Info().Str("session", sess.ID).Msg("session created")
	writeJSON(w, http.StatusCreated, sessionResponse{ID: sess.ID, CreatedAt: sess.CreatedAt})
}

func (s *Server) destroySession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := s.sessions.Destroy(id); err != nil {
		s.writeError(w, err)
		return
	}
	s.log.Info().Str("session", id).Msg("session destroyed")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) transcript(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var turns []domain.Turn
	for t := range sess.History.Transcript() {
		turns = append(turns, t)
	}
	writeJSON(w, http.StatusOK, transcriptResponse{SessionID: sess.ID, Turns: toTurnResponses(turns)})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	var req chatRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.submit(r, sess, controller.ChatRequest{Text: req.Message})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: res.Text, Turns: toTurnResponses(res.Transcript)})
}

func (s *Server) creative(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	kind, err := domain.ParseCreativeKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, &domain.ValidationError{Field: "kind", Message: err.Error()})
		return
	}
	var req creativeRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.submit(r, sess, controller.CreativeBriefRequest{Brief: req.Brief, Kind: kind})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, creativeResponse{Kind: kind, Text: res.Text})
}

func (s *Server) runSummary(w http.ResponseWriter, r *http.Request) (controller.Result, bool) {
	sess, ok := s.session(w, r)
	if !ok {
		return controller.Result{}, false
	}
	var req summaryRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, err)
		return controller.Result{}, false
	}
	opts, err := req.options()
	if err != nil {
		s.writeError(w, err)
		return controller.Result{}, false
	}

	res, err := s.submit(r, sess, controller.SummaryRequest{Text: req.Text, Options: opts})
	if err != nil {
		s.writeError(w, err)
		return controller.Result{}, false
	}
	return res, true
}

func (s *Server) summarize(w http.ResponseWriter, r *http.Request) {
	res, ok := s.runSummary(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{
		Text: res.Text,
		Export: exportResponse{
			Filename: res.Export.Filename,
			MIMEType: res.Export.MIMEType,
		},
	})
}

func (s *Server) exportSummary(w http.ResponseWriter, r *http.Request) {
	res, ok := s.runSummary(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", res.Export.MIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Export.Filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Export.Data)
}

func (req summaryRequest) options() (domain.SummaryOptions, error) {
	opts := domain.DefaultSummaryOptions()
	if req.Verbosity != "" {
		v, err := domain.ParseVerbosity(req.Verbosity)
		if err != nil {
			return opts, &domain.ValidationError{Field: "verbosity", Message: err.Error()}
		}
		opts.Verbosity = v
	}
	if req.BulletPoints != nil {
		opts.BulletPoints = *req.BulletPoints
	}
	if req.PreserveTerminology != nil {
		opts.PreserveTerminology = *req.PreserveTerminology
	}
	return opts, nil
}
