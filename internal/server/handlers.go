package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/types"
)

// maxBodyBytes bounds JSON request bodies
const maxBodyBytes = 4 << 20

// CreateResumeRequest is the body of POST /api/v1/resumes
type CreateResumeRequest struct {
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"required"`
}

// KeywordsRequest is the body of POST /api/v1/keywords
type KeywordsRequest struct {
	JobDescription string `json:"job_description" validate:"required"`
	MaxKeywords    int    `json:"max_keywords" validate:"gte=0,lte=100"`
}

// KeywordsResponse lists the ranked keywords of a job description
type KeywordsResponse struct {
	Keywords           []types.Keyword `json:"keywords"`
	JobDescriptionHash string          `json:"job_description_hash"`
}

// ScoreRequest is the body of POST /api/v1/score
type ScoreRequest struct {
	Resume         string `json:"resume" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

// TailorRequest is the body of POST /api/v1/tailor. Either a stored
// resume ID or inline resume text is required.
type TailorRequest struct {
	ResumeID       string `json:"resume_id" validate:"omitempty,uuid"`
	Resume         string `json:"resume" validate:"required_without=ResumeID"`
	JobDescription string `json:"job_description" validate:"required"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy", "service": "resume-tailor-api"})
}

func (s *Server) handleHealthV1(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy", "version": "v1"})
}

func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	var req CreateResumeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	s.saveResume(w, r, req.Title, req.Content)
}

func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.acceptor.MaxSize+(1<<20))
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.writeError(w, &ingestion.UploadTooLargeError{Limit: s.acceptor.MaxSize})
			return
		}
		s.writeError(w, &ErrValidation{Field: "file", Message: "multipart field is required"})
		return
	}
	defer func() { _ = file.Close() }()

	upload, err := s.acceptor.Accept(file, header.Filename)
	if err != nil {
		s.writeError(w, err)
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}
	s.saveResume(w, r, title, upload.Text)
}

func (s *Server) saveResume(w http.ResponseWriter, r *http.Request, title, content string) {
	length := utf8.RuneCountInString(content)
	if limit := s.engine.Options().MaxResumeLength; limit > 0 && length > limit {
		s.writeError(w, &tailoring.Failure{
			Code:    tailoring.CodeInputTooLarge,
			Message: fmt.Sprintf("resume has %d characters, limit is %d", length, limit),
		})
		return
	}

	resume := &types.Resume{
		ID:          s.stamper.ID(),
		Title:       title,
		Content:     content,
		ContentHash: ingestion.HashText(content),
		CreatedAt:   s.stamper.Time(),
	}
	if err := s.store.SaveResume(r.Context(), resume); err != nil {
		s.writeError(w, fmt.Errorf("saving resume: %w", err))
		return
	}
	s.logger.Info("resume stored", zap.String("resume_id", resume.ID), zap.Int("length", length))
	s.jsonResponse(w, http.StatusCreated, resume)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	resume, err := s.store.GetResume(r.Context(), id)
	if err != nil {
		s.writeError(w, fmt.Errorf("loading resume: %w", err))
		return
	}
	if resume == nil {
		s.writeError(w, &ErrNotFound{Kind: "resume", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, resume)
}

func (s *Server) handleGetLatestTailored(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tailored, err := s.store.GetLatestTailoredResume(r.Context(), id)
	if err != nil {
		s.writeError(w, fmt.Errorf("loading tailored resume: %w", err))
		return
	}
	if tailored == nil {
		s.writeError(w, &ErrNotFound{Kind: "tailored resume for resume", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, tailored)
}

func (s *Server) handleGetTailored(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tailored, err := s.store.GetTailoredResume(r.Context(), id)
	if err != nil {
		s.writeError(w, fmt.Errorf("loading tailored resume: %w", err))
		return
	}
	if tailored == nil {
		s.writeError(w, &ErrNotFound{Kind: "tailored resume", ID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, tailored)
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	var req KeywordsRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	kws, err := s.engine.ExtractKeywords(r.Context(), req.JobDescription, req.MaxKeywords)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, KeywordsResponse{
		Keywords:           kws,
		JobDescriptionHash: tailoring.HashJobDescription(req.JobDescription),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	analysis, err := s.engine.Analyze(r.Context(), req.Resume, req.JobDescription)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, analysis)
}

func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	var req TailorRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	resumeText := req.Resume
	if req.ResumeID != "" {
		resume, err := s.store.GetResume(r.Context(), req.ResumeID)
		if err != nil {
			s.writeError(w, fmt.Errorf("loading resume: %w", err))
			return
		}
		if resume == nil {
			s.writeError(w, &ErrNotFound{Kind: "resume", ID: req.ResumeID})
			return
		}
		resumeText = resume.Content
	}

	tailored, err := s.engine.Tailor(r.Context(), tailoring.Request{
		ResumeID:       req.ResumeID,
		Resume:         resumeText,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, tailored)
}

// decode reads a JSON body into v and validates it
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &tailoring.Failure{Code: tailoring.CodeInputTooLarge, Message: fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)}
		}
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}

	if err := s.validate.Struct(v); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ErrValidation{Field: fe.Field(), Message: validationMessage(fe)}
		}
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "uuid":
		return "must be a UUID"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
		}
		return "must satisfy " + fe.Tag()
	}
}

// jsonFieldName reports struct fields by their JSON name in validation errors
func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}
