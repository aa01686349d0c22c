package http

import (
	"errors"
	"net/http"
	"net/url"

	"spendsmart/internal/core"
)

type forgotPasswordView struct {
	Email string
	Error string
}

type resetPasswordView struct {
	Email    string
	Verified bool
	Notice   string
	Error    string
	Fields   core.FieldErrors
}

func resetPasswordURL(email string) string {
	return "/reset-password?email=" + url.QueryEscape(email)
}

func (s *Server) handleForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "forgot_password", forgotPasswordView{})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	form, err := readBody(w, r)
	if err != nil {
		s.render(w, r, formStatus(r, http.StatusBadRequest), "forgot_password", forgotPasswordView{Error: msgInvalidRequest})
		return
	}

	email := form.Get("email")
	if _, err := s.api.ForgotPassword(r.Context(), email); err != nil {
		s.render(w, r, formStatus(r, http.StatusUnprocessableEntity), "forgot_password",
			forgotPasswordView{Email: email, Error: messageOr(err, msgResetOTPFailed)})
		return
	}

	setFlash(w, flashSuccess, msgResetOTPSent)
	redirect(w, r, resetPasswordURL(email))
}

func (s *Server) handleResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		redirect(w, r, "/forgot-password")
		return
	}
	s.render(w, r, http.StatusOK, "reset_password", resetPasswordView{Email: email})
}

func (s *Server) handleVerifyResetOTP(w http.ResponseWriter, r *http.Request) {
	form, err := readBody(w, r)
	if err != nil || form.Get("email") == "" {
		redirect(w, r, "/forgot-password")
		return
	}

	view := resetPasswordView{Email: form.Get("email")}
	otp := form.Get("otp")
	if err := core.ValidateOTP(otp); err != nil {
		view.Error = err.Error()
		s.render(w, r, formStatus(r, http.StatusUnprocessableEntity), "reset_password", view)
		return
	}

	if _, err := s.api.VerifyResetOTP(r.Context(), view.Email, otp); err != nil {
		view.Error = messageOr(err, msgResetOTPInvalid)
		s.render(w, r, formStatus(r, http.StatusUnprocessableEntity), "reset_password", view)
		return
	}

	view.Verified = true
	view.Notice = msgResetOTPVerified
	s.render(w, r, http.StatusOK, "reset_password", view)
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	form, err := readBody(w, r)
	if err != nil || form.Get("email") == "" {
		redirect(w, r, "/forgot-password")
		return
	}

	req := core.PasswordReset{
		Email:           form.Get("email"),
		NewPassword:     form.Secret("newPassword"),
		ConfirmPassword: form.Secret("confirmPassword"),
	}
	view := resetPasswordView{Email: req.Email, Verified: true}

	if err := req.Validate(); err != nil {
		var fe core.FieldErrors
		if errors.As(err, &fe) {
			view.Fields = fe
		}
		s.render(w, r, formStatus(r, http.StatusUnprocessableEntity), "reset_password", view)
		return
	}

	if _, err := s.api.ResetPassword(r.Context(), req); err != nil {
		view.Error = messageOr(err, msgResetFailed)
		s.render(w, r, formStatus(r, http.StatusUnprocessableEntity), "reset_password", view)
		return
	}

	setFlash(w, flashSuccess, msgResetDone)
	redirect(w, r, "/login")
}

func (s *Server) handleResendResetOTP(w http.ResponseWriter, r *http.Request) {
	form, err := readBody(w, r)
	if err != nil || form.Get("email") == "" {
		redirect(w, r, "/forgot-password")
		return
	}

	email := form.Get("email")
	if _, err := s.api.ResendResetOTP(r.Context(), email); err != nil {
		setFlash(w, flashError, messageOr(err, msgResendFailed))
	} else {
		setFlash(w, flashSuccess, msgOTPResent)
	}
	redirect(w, r, resetPasswordURL(email))
}
