package http

import (
	"net/http"
	"time"

	"github.com/vocal-hub/vocal-studio-hub/internal/application/query"
	"github.com/vocal-hub/vocal-studio-hub/internal/domain/finance"
	"github.com/vocal-hub/vocal-studio-hub/pkg/logger"
	"github.com/vocal-hub/vocal-studio-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// FINANCE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func ledgerFilter(r *http.Request) (finance.Filter, error) {
	f := finance.Filter{
		Category: r.URL.Query().Get("category"),
		Offset:   queryInt(r, "offset", 0),
		Limit:    queryInt(r, "limit", 100),
	}

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := timeutil.ParseDateStudio(v)
		if err != nil {
			return f, err
		}
		f.From = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := timeutil.ParseDateStudio(v)
		if err != nil {
			return f, err
		}
		f.To = t
	}
	return f, nil
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	filter, err := ledgerFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	expenses, err := s.deps.ExpenseRepo.List(r.Context(), userIDFrom(r.Context()), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]ledgerResponse, 0, len(expenses))
	for _, e := range expenses {
		resp = append(resp, toExpenseResponse(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createLedgerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := userIDFrom(r.Context())
	expense := &finance.Expense{
		UserID:      userID,
		Date:        req.Date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := expense.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.deps.ExpenseRepo.Create(r.Context(), expense); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateSummary(r, userID, expense.Date)
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := userIDFrom(r.Context())
	expense, err := s.deps.ExpenseRepo.GetByID(r.Context(), userID, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.deps.ExpenseRepo.Delete(r.Context(), userID, id); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateSummary(r, userID, expense.Date)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListIncomes(w http.ResponseWriter, r *http.Request) {
	filter, err := ledgerFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	incomes, err := s.deps.IncomeRepo.List(r.Context(), userIDFrom(r.Context()), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]ledgerResponse, 0, len(incomes))
	for _, i := range incomes {
		resp = append(resp, toIncomeResponse(i))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req createLedgerRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := userIDFrom(r.Context())
	income := &finance.Income{
		UserID:      userID,
		Date:        req.Date,
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
	}
	if err := income.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.deps.IncomeRepo.Create(r.Context(), income); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateSummary(r, userID, income.Date)
	writeJSON(w, http.StatusCreated, toIncomeResponse(income))
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := userIDFrom(r.Context())
	income, err := s.deps.IncomeRepo.GetByID(r.Context(), userID, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.deps.IncomeRepo.Delete(r.Context(), userID, id); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateSummary(r, userID, income.Date)
	w.WriteHeader(http.StatusNoContent)
}

// invalidateSummary drops the cached summary of the month a ledger
// write touched. The next summary query rebuilds it.
func (s *Server) invalidateSummary(r *http.Request, userID int64, date time.Time) {
	if s.deps.FinanceSummary == nil {
		return
	}
	local := timeutil.ToStudio(date)
	if err := s.deps.FinanceSummary.Invalidate(r.Context(), userID, local.Year(), local.Month()); err != nil {
		s.logger.Warn("summary cache invalidation failed", logger.Err(err))
	}
}

// handleFinanceSummary returns the monthly summary. Defaults to the
// current month in the studio timezone.
func (s *Server) handleFinanceSummary(w http.ResponseWriter, r *http.Request) {
	now := timeutil.Now()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be in 1..12")
		return
	}

	summary, err := s.deps.FinanceSummary.Handle(r.Context(), query.FinanceSummaryQuery{
		UserID: userIDFrom(r.Context()),
		Year:   year,
		Month:  time.Month(month),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// ══════════════════════════════════════════════════════════════════════════════
// RENT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleGetRent(w http.ResponseWriter, r *http.Request) {
	settings, err := s.deps.RentRepo.Get(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentResponse{Amount: settings.Amount, PaymentDay: settings.PaymentDay})
}

func (s *Server) handlePutRent(w http.ResponseWriter, r *http.Request) {
	var req putRentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	settings := &finance.RentSettings{
		UserID:     userIDFrom(r.Context()),
		Amount:     req.Amount,
		PaymentDay: req.PaymentDay,
	}
	if err := settings.Validate(); err != nil {
		writeDomainError(w, err)
		return
	}

	if err := s.deps.RentRepo.Upsert(r.Context(), settings); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rentResponse{Amount: settings.Amount, PaymentDay: settings.PaymentDay})
}
