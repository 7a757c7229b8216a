package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripledger/tripledger/internal/ledger"
	"github.com/tripledger/tripledger/internal/models"
	"github.com/tripledger/tripledger/internal/service"
	"github.com/tripledger/tripledger/internal/storage"
)

type createGroupRequest struct {
	Name     string   `json:"name" validate:"required"`
	Currency string   `json:"currency" validate:"required,len=3,uppercase"`
	Members  []string `json:"members" validate:"required,min=1,dive,required"`
}

type updateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members" validate:"required,min=1,dive,required"`
}

type splitRequest struct {
	MemberID string       `json:"member_id" validate:"required"`
	Amount   ledger.Money `json:"amount"`
}

type addExpenseRequest struct {
	PayerID     string         `json:"payer_id" validate:"required"`
	Description string         `json:"description"`
	Amount      ledger.Money   `json:"amount"`
	Splits      []splitRequest `json:"splits" validate:"required,min=1,dive"`
}

type recordPaymentRequest struct {
	FromID string       `json:"from_id" validate:"required"`
	ToID   string       `json:"to_id" validate:"required"`
	Amount ledger.Money `json:"amount"`
	Note   string       `json:"note"`
}

type groupResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Currency  string   `json:"currency"`
	Members   []string `json:"members"`
	CreatedAt int64    `json:"created_at"`
}

type expenseResponse struct {
	ID          string         `json:"id"`
	GroupID     string         `json:"group_id"`
	PayerID     string         `json:"payer_id"`
	Description string         `json:"description,omitempty"`
	Amount      ledger.Money   `json:"amount"`
	Splits      []splitRequest `json:"splits"`
	CreatedAt   int64          `json:"created_at"`
}

type paymentResponse struct {
	ID        string       `json:"id"`
	GroupID   string       `json:"group_id"`
	FromID    string       `json:"from_id"`
	ToID      string       `json:"to_id"`
	Amount    ledger.Money `json:"amount"`
	Note      string       `json:"note,omitempty"`
	CreatedAt int64        `json:"created_at"`
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if !s.decode(w, r, &req) {
		return
	}

	group, err := s.groups.CreateGroup(r.Context(), req.Name, req.Currency, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]groupResponse, len(groups))
	for i, g := range groups {
		out[i] = toGroupResponse(g)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.GetGroup(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) updateGroup(w http.ResponseWriter, r *http.Request) {
	var req updateGroupRequest
	if !s.decode(w, r, &req) {
		return
	}

	group, err := s.groups.UpdateGroup(r.Context(), chi.URLParam(r, "groupID"), req.Name, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.DeleteGroup(r.Context(), chi.URLParam(r, "groupID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if !s.decode(w, r, &req) {
		return
	}

	expense := &models.Expense{
		GroupID:     chi.URLParam(r, "groupID"),
		PayerID:     req.PayerID,
		Description: req.Description,
		Amount:      req.Amount,
	}
	for _, sp := range req.Splits {
		expense.Splits = append(expense.Splits, models.ExpenseSplit{
			MemberID: sp.MemberID,
			Amount:   sp.Amount,
		})
	}

	created, err := s.groups.AddExpense(r.Context(), expense)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(created))
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.groups.ListExpenses(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.DeleteExpense(r.Context(), chi.URLParam(r, "expenseID")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) recordPayment(w http.ResponseWriter, r *http.Request) {
	var req recordPaymentRequest
	if !s.decode(w, r, &req) {
		return
	}

	payment := &models.Payment{
		GroupID: chi.URLParam(r, "groupID"),
		FromID:  req.FromID,
		ToID:    req.ToID,
		Amount:  req.Amount,
		Note:    req.Note,
	}
	created, err := s.groups.RecordPayment(r.Context(), payment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentResponse(created))
}

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.groups.ListPayments(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]paymentResponse, len(payments))
	for i, p := range payments {
		out[i] = toPaymentResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getSettlement(w http.ResponseWriter, r *http.Request) {
	result, err := s.ledgers.ComputeSettlement(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("member")
	if memberID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "member query parameter required"})
		return
	}

	summary, ok, err := s.ledgers.MemberSummary(r.Context(), chi.URLParam(r, "groupID"), memberID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "member not in group"})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// decode parses and validates a JSON request body. On failure it writes the
// error response and returns false.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false
	}
	return true
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses. Integrity and
// conservation failures are 422: the request was well-formed but the stored
// ledger data needs repair before a settlement can be produced.
func writeError(w http.ResponseWriter, err error) {
	var integrity *ledger.IntegrityError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrEmptyGroup):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &integrity), errors.Is(err, ledger.ErrUnbalancedLedger):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toGroupResponse(g *models.Group) groupResponse {
	return groupResponse{
		ID:        g.ID,
		Name:      g.Name,
		Currency:  g.Currency,
		Members:   g.Members,
		CreatedAt: g.CreatedAt,
	}
}

func toExpenseResponse(e *models.Expense) expenseResponse {
	out := expenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		PayerID:     e.PayerID,
		Description: e.Description,
		Amount:      e.Amount,
		CreatedAt:   e.CreatedAt,
	}
	for _, sp := range e.Splits {
		out.Splits = append(out.Splits, splitRequest{MemberID: sp.MemberID, Amount: sp.Amount})
	}
	return out
}

func toPaymentResponse(p *models.Payment) paymentResponse {
	return paymentResponse{
		ID:        p.ID,
		GroupID:   p.GroupID,
		FromID:    p.FromID,
		ToID:      p.ToID,
		Amount:    p.Amount,
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
	}
}
