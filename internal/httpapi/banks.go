package httpapi

// Bank handlers: list, get, create, replace, delete.

import (
	"encoding/json"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/volley/internal/bank"
)

// listBanks handles GET /api/banks
func (s *Server) listBanks(w http.ResponseWriter, r *http.Request) {
	list, err := s.svc.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	out := make([]bankResponse, 0, len(list))
	for _, b := range list {
		out = append(out, toBankResponse(b))
	}
	toJSON(w, http.StatusOK, out)
}

// getBank handles GET /api/banks/{accountNumber}; the number is validated by middleware.
func (s *Server) getBank(w http.ResponseWriter, r *http.Request) {
	n, ok := r.Context().Value(ctxKeyAccountNumber).(string)
	if !ok {
		writeText(w, http.StatusInternalServerError, "validated account number missing")
		return
	}
	b, err := s.svc.Get(r.Context(), n)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toBankResponse(b))
}

// postBank handles POST /api/banks
func (s *Server) postBank(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBank(w, r)
	if !ok {
		return
	}
	b, err := s.svc.Create(r.Context(), in)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	toJSON(w, http.StatusCreated, toBankResponse(b))
}

// patchBank handles PATCH /api/banks. The body is a full record that replaces
// the one with the same account number.
func (s *Server) patchBank(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBank(w, r)
	if !ok {
		return
	}
	b, err := s.svc.Update(r.Context(), in)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	toJSON(w, http.StatusOK, toBankResponse(b))
}

// deleteBank handles DELETE /api/banks/{accountNumber}
func (s *Server) deleteBank(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Delete(r.Context(), chi.URLParam(r, "accountNumber")); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeBank reads a complete bank record from the body, answering 415/400 itself on failure.
func decodeBank(w http.ResponseWriter, r *http.Request) (bank.Bank, bool) {
	if !requireJSON(w, r) {
		return bank.Bank{}, false
	}
	var req bankRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return bank.Bank{}, false
	}
	b, err := req.toDomain()
	if err != nil {
		badRequest(w, "invalid JSON: "+err.Error())
		return bank.Bank{}, false
	}
	return b, true
}
