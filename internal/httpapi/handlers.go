package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"topup-admin-go/internal/api"
	"topup-admin-go/internal/models"
	"topup-admin-go/internal/store"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Handler struct {
	console *api.ConsoleService
}

func NewHandler(console *api.ConsoleService) *Handler {
	return &Handler{console: console}
}

type registerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type submitRequest struct {
	UserKey string          `json:"user"`
	Amount  json.RawMessage `json:"amount"`
	Method  string          `json:"method"`
	TxId    string          `json:"txid"`
	Service string          `json:"service"`
	Phone   string          `json:"phone"`
}

type balanceRequest struct {
	Mode   string          `json:"mode"`
	Amount json.RawMessage `json:"amount"`
}

type notificationRequest struct {
	Recipient string `json:"recipient"`
	Title     string `json:"title"`
	Body      string `json:"body"`
}

type paymentSettingsRequest struct {
	Bkash  string `json:"bkash"`
	Nagad  string `json:"nagad"`
	Rocket string `json:"rocket"`
}

func (h *Handler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.console.HealthCheck(r.Context()); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}
	user, err := h.console.RegisterUser(r.Context(), req.Name, req.Email)
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, toUserRecord(user))
}

func (h *Handler) SubmitRequestHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(mux.Vars(r)["kind"])
	if !ok {
		respondWithError(w, http.StatusNotFound, "Unknown request kind")
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	amount, ok := rawAmount(req.Amount)
	if !ok {
		respondWithError(w, http.StatusUnprocessableEntity, "amount must be a number or a string")
		return
	}

	// Filing on behalf of someone else is an admin action
	userKey := req.UserKey
	if userKey == "" || userKey == actorId(r) {
		userKey = actorId(r)
	} else if err := h.console.Gate().Require(r.Context(), actorId(r)); err != nil {
		respondWithStoreError(w, err)
		return
	}
	record, err := h.console.SubmitRequest(r.Context(), api.SubmitRequestParams{
		Kind:      kind,
		UserKey:   userKey,
		RawAmount: amount,
		Method:    req.Method,
		TxId:      req.TxId,
		Service:   req.Service,
		Phone:     req.Phone,
	})
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, record)
}

func (h *Handler) ListPendingHandler(w http.ResponseWriter, r *http.Request) {
	kind, ok := parseKind(mux.Vars(r)["kind"])
	if !ok {
		respondWithError(w, http.StatusNotFound, "Unknown request kind")
		return
	}
	records, err := h.console.ListPending(r.Context(), actorId(r), kind, queryLimit(r))
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	if records == nil {
		records = []models.RequestRecord{}
	}
	respondWithJSON(w, http.StatusOK, records)
}

func (h *Handler) ApproveHandler(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.console.Approve)
}

func (h *Handler) RejectHandler(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.console.Reject)
}

type decideFunc func(ctx context.Context, actorId string, kind models.RequestKind, requestId string) (*models.TransitionResult, error)

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, fn decideFunc) {
	vars := mux.Vars(r)
	kind, ok := parseKind(vars["kind"])
	if !ok {
		respondWithError(w, http.StatusNotFound, "Unknown request kind")
		return
	}
	result, err := fn(r.Context(), actorId(r), kind, vars["id"])
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.console.ListUsers(r.Context(), actorId(r), queryLimit(r))
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	if users == nil {
		users = []models.UserRecord{}
	}
	respondWithJSON(w, http.StatusOK, users)
}

func (h *Handler) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.console.CheckBalance(r.Context(), actorId(r), mux.Vars(r)["user"])
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) AdjustBalanceHandler(w http.ResponseWriter, r *http.Request) {
	var req balanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	amount, ok := rawAmount(req.Amount)
	if !ok {
		respondWithError(w, http.StatusUnprocessableEntity, "amount must be a number or a string")
		return
	}

	userKey := mux.Vars(r)["user"]
	var result *models.BalanceResult
	var err error
	switch strings.ToLower(req.Mode) {
	case "", "add":
		result, err = h.console.AddBalance(r.Context(), actorId(r), userKey, amount)
	case "set":
		result, err = h.console.SetBalance(r.Context(), actorId(r), userKey, amount)
	default:
		respondWithError(w, http.StatusUnprocessableEntity, "mode must be add or set")
		return
	}
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *Handler) SendNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}
	n, err := h.console.SendNotification(r.Context(), actorId(r), req.Recipient, req.Title, req.Body)
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, n)
}

func (h *Handler) GetPaymentSettingsHandler(w http.ResponseWriter, r *http.Request) {
	settings, err := h.console.LoadPaymentSettings(r.Context(), actorId(r))
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, paymentSettingsRequest{
		Bkash:  settings.Bkash,
		Nagad:  settings.Nagad,
		Rocket: settings.Rocket,
	})
}

func (h *Handler) SavePaymentSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var req paymentSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}
	err := h.console.SavePaymentSettings(r.Context(), actorId(r), models.PaymentSettings{
		Bkash:  req.Bkash,
		Nagad:  req.Nagad,
		Rocket: req.Rocket,
	})
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, req)
}

// Helpers

func actorId(r *http.Request) string {
	if actor := models.GetActor(r.Context()); actor != nil {
		return actor.Id
	}
	return ""
}

func parseKind(s string) (models.RequestKind, bool) {
	kind := models.RequestKind(strings.TrimSuffix(strings.ToLower(s), "s"))
	return kind, kind.Valid()
}

func queryLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		return 0
	}
	return limit
}

// rawAmount accepts the amount as a JSON number or a JSON string. Strings keep
// the lenient money cleanup in api.ParseAmount; numbers are taken exactly.
func rawAmount(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	amount, err := decimal.NewFromString(n.String())
	if err != nil {
		return "", false
	}
	return amount.String(), true
}

func toUserRecord(u *models.User) models.UserRecord {
	return models.UserRecord{
		Id:      u.Id,
		Name:    u.Name,
		Email:   u.Email,
		Status:  u.Status,
		Balance: u.Balance,
	}
}

// statusFor maps the console error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidState),
		errors.Is(err, store.ErrDuplicateReference),
		errors.Is(err, store.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondWithStoreError(w http.ResponseWriter, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		zap.L().Error("Console operation failed", zap.Error(err))
	}
	respondWithError(w, code, err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Warn("Failed to encode response", zap.Error(err))
	}
}

func respondWithError(w http.ResponseWriter, code int, msg string) {
	respondWithJSON(w, code, map[string]string{"error": msg})
}
