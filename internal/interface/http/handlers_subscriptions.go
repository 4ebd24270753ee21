package http

import (
	"net/http"

	"github.com/vocal-hub/vocal-studio-hub/internal/application/command"
)

// ══════════════════════════════════════════════════════════════════════════════
// SUBSCRIPTION HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.deps.SubscriptionRepo.List(r.Context(), userIDFrom(r.Context()),
		queryInt(r, "offset", 0), queryInt(r, "limit", 100))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]subscriptionResponse, 0, len(subs))
	for _, sub := range subs {
		resp = append(resp, toSubscriptionResponse(sub))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handlePurchaseSubscription records a purchase: the subscription
// itself, the credited lesson balance, and the income record.
func (s *Server) handlePurchaseSubscription(w http.ResponseWriter, r *http.Request) {
	var req purchaseSubscriptionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.deps.PurchaseSubscription.Handle(r.Context(), command.PurchaseSubscriptionCommand{
		UserID:       userIDFrom(r.Context()),
		StudentID:    req.StudentID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		LessonsCount: req.LessonsCount,
		Price:        req.Price,
		Notes:        req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, purchaseSubscriptionResponse{
		Subscription:     toSubscriptionResponse(result.Subscription),
		RemainingLessons: result.RemainingLessons,
	})
}

// handleDeleteSubscription removes the subscription record only. The
// student's lesson balance is not clawed back: lessons already held
// against the package stay counted.
func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.deps.SubscriptionRepo.Delete(r.Context(), userIDFrom(r.Context()), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
