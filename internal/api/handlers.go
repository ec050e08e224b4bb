package api

import (
	"net/http"
	"time"

	"github.com/sprite-ai/rebuttal/internal/analysis"
	"github.com/sprite-ai/rebuttal/internal/evidence"
	"github.com/sprite-ai/rebuttal/internal/letter"
	"github.com/sprite-ai/rebuttal/internal/model"
)

// --- Health ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Recommendations ---

type recommendRequest struct {
	Case          model.DisputeCase `json:"case"`
	MatrixEnabled *bool             `json:"matrix_enabled,omitempty"`
}

type recommendResponse struct {
	Fields  evidence.FieldSet `json:"fields"`
	Missing []evidence.Key    `json:"missing"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	matrix := s.opts.MatrixEnabled
	if req.MatrixEnabled != nil {
		matrix = *req.MatrixEnabled
	}

	fields := evidence.Recommend(req.Case, matrix)
	missing := evidence.Missing(fields, req.Case)
	if missing == nil {
		missing = []evidence.Key{}
	}
	writeJSON(w, http.StatusOK, recommendResponse{Fields: fields, Missing: missing})
}

// --- Cover letters ---

type coverLetterRequest struct {
	Case            model.DisputeCase  `json:"case"`
	Account         *model.AccountInfo `json:"account,omitempty"`
	BankName        *string            `json:"bank_name,omitempty"`
	RefundStatus    string             `json:"refund_status,omitempty"`
	DuplicateStatus string             `json:"duplicate_status,omitempty"`
	Date            string             `json:"date,omitempty"`
}

type coverLetterResponse struct {
	Text        string              `json:"text"`
	Attachments []letter.Attachment `json:"attachments"`
}

func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	var req coverLetterRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	in, err := s.letterInput(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	attachments := in.Attachments()
	if attachments == nil {
		attachments = []letter.Attachment{}
	}
	writeJSON(w, http.StatusOK, coverLetterResponse{
		Text:        letter.Compose(in),
		Attachments: attachments,
	})
}

func (s *Server) letterInput(req coverLetterRequest) (letter.Input, error) {
	refund, err := model.ParseRefundStatus(req.RefundStatus)
	if err != nil {
		return letter.Input{}, err
	}
	dup, err := model.ParseDuplicateStatus(req.DuplicateStatus)
	if err != nil {
		return letter.Input{}, err
	}

	today := s.opts.Now()
	if req.Date != "" {
		today, err = time.Parse(time.DateOnly, req.Date)
		if err != nil {
			return letter.Input{}, err
		}
	}

	account := s.opts.Account
	if req.Account != nil {
		account = *req.Account
	}
	bank := req.Case.BankName
	if req.BankName != nil {
		bank = req.BankName
	}

	return letter.Input{
		Case:            req.Case,
		Account:         account,
		BankName:        bank,
		RefundStatus:    refund,
		DuplicateStatus: dup,
		Today:           today,
	}, nil
}

// --- Checks ---

type checkRequest struct {
	coverLetterRequest
	MatrixEnabled *bool    `json:"matrix_enabled,omitempty"`
	Skip          []string `json:"skip,omitempty"`
}

type checkResponse struct {
	Summary     string             `json:"summary"`
	MaxSeverity analysis.Severity  `json:"max_severity"`
	Findings    []analysis.Finding `json:"findings"`
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	if err := analysis.ValidateSkip(req.Skip); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in, err := s.letterInput(req.coverLetterRequest)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	text := req.Case.CoverLetter
	if text == "" {
		text = letter.Compose(in)
	}
	matrix := s.opts.MatrixEnabled
	if req.MatrixEnabled != nil {
		matrix = *req.MatrixEnabled
	}

	results := analysis.Run(analysis.Input{
		Case:          req.Case,
		Account:       in.Account,
		Letter:        text,
		MatrixEnabled: matrix,
	}, req.Skip)
	writeJSON(w, http.StatusOK, checkResponse{
		Summary:     results.Summary(),
		MaxSeverity: results.MaxSeverity(),
		Findings:    results.Findings,
	})
}
