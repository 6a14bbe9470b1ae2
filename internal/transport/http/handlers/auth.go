package http_handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Ansan-Yabesh/BookAPI/internal/application/account"
	"github.com/Ansan-Yabesh/BookAPI/internal/domain"
	"github.com/Ansan-Yabesh/BookAPI/internal/logger"
	"github.com/Ansan-Yabesh/BookAPI/internal/transport/http/dto"
	"github.com/Ansan-Yabesh/BookAPI/internal/transport/http/middleware"
	"github.com/Ansan-Yabesh/BookAPI/internal/transport/http/response"
)

type AuthHandler struct {
	svc *account.Service
}

func NewAuthHandler(svc *account.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// callerFrom pulls the authenticated caller out of the request context.
// Routes behind Auth middleware always have one; a miss means broken wiring.
func callerFrom(r *http.Request) (account.Caller, error) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		return account.Caller{}, domain.ErrTokenInvalid()
	}
	return caller, nil
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		middleware.RegistrationsTotal.WithLabelValues(registrationStatus(err)).Inc()
		response.WriteError(w, r, err)
		return
	}
	middleware.RegistrationsTotal.WithLabelValues("success").Inc()

	logger.WithCtx(r.Context()).Info().
		Str("account_id", res.ID).
		Str("email", res.Email).
		Msg("user_registered")

	response.Created(w, dto.RegisterData{ID: res.ID, Email: res.Email})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	v, err := h.svc.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("account_id", v.ID).
		Msg("otp_verified")

	response.OK(w, dto.NewAccountView(v))
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.ResendOTPRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	if err := h.svc.ResendOTP(r.Context(), req.Email); err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.StatusData{Status: "otp_sent"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.LoginAttemptsTotal.WithLabelValues(loginStatus(err)).Inc()
		response.WriteError(w, r, err)
		return
	}
	middleware.LoginAttemptsTotal.WithLabelValues("success").Inc()

	logger.WithCtx(r.Context()).Info().
		Str("account_id", res.Account.ID).
		Msg("user_logged_in")

	response.OK(w, dto.AuthData{
		Account: dto.NewAccountView(res.Account),
		Tokens: dto.TokensView{
			AccessToken: res.Token,
			TokenType:   res.TokenType,
			ExpiresIn:   res.ExpiresIn,
		},
	})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	v, err := h.svc.UpdateProfile(r.Context(), caller, account.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("account_id", v.ID).
		Msg("profile_updated")

	response.OK(w, dto.NewAccountView(v))
}

func (h *AuthHandler) Approve(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	id := chi.URLParam(r, "id")
	v, err := h.svc.Approve(r.Context(), caller, id)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("account_id", v.ID).
		Str("actor_id", caller.AccountID).
		Msg("account_approved")

	response.OK(w, dto.NewAccountView(v))
}

func (h *AuthHandler) Reject(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.RejectRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := response.DecodeJSON(r, &req); err != nil {
			response.WriteError(w, r, err)
			return
		}
		if err := req.Validate(); err != nil {
			response.WriteError(w, r, err)
			return
		}
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.Reject(r.Context(), caller, id, req.Reason); err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("account_id", id).
		Str("actor_id", caller.AccountID).
		Msg("account_rejected")

	response.NoContent(w)
}

func (h *AuthHandler) CreateManager(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	var req dto.CreateManagerRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		response.WriteError(w, r, err)
		return
	}

	v, err := h.svc.CreateManager(r.Context(), caller, req.Username, req.Email, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	logger.WithCtx(r.Context()).Info().
		Str("account_id", v.ID).
		Str("actor_id", caller.AccountID).
		Msg("manager_created")

	response.Created(w, dto.NewAccountView(v))
}

func (h *AuthHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	f := account.ListFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}
	if v := r.URL.Query().Get("verified"); v != "" {
		b := v == "true"
		f.Verified = &b
	}

	views, err := h.svc.ListAccounts(r.Context(), caller, f)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewAccountViews(views))
}

func (h *AuthHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	views, err := h.svc.ListPendingAccounts(r.Context(), caller, queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.OK(w, dto.NewAccountViews(views))
}

func queryInt(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func registrationStatus(err error) string {
	switch {
	case domain.Is(err, "email_already_exists"), domain.Is(err, "username_already_exists"):
		return "conflict"
	default:
		return "invalid"
	}
}

func loginStatus(err error) string {
	for _, code := range []string{"invalid_credentials", "email_not_verified", "account_not_approved"} {
		if domain.Is(err, code) {
			return code
		}
	}
	return "error"
}
