package http

import (
	"errors"
	"net/http"
	"net/url"

	"spendsmart/internal/auth"
	"spendsmart/internal/core"
	"spendsmart/internal/log"
)

type loginView struct {
	Username string
	Error    string
}

type registerView struct {
	Form   core.RegisterRequest
	Fields core.FieldErrors
	Error  string
}

type verifyOTPView struct {
	Email string
	Error string
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "landing", nil)
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login", loginView{})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	form, err := readBody(w, r)
	if err != nil {
		s.render(w, r, formStatus(r, http.StatusBadRequest), "login", loginView{Error: msgInvalidRequest})
		return
	}

	ctx := r.Context()
	username := form.Get("username")
	res := auth.FromContext(ctx).Login(ctx, username, form.Secret("password"))
	if !res.Success {
		s.render(w, r, formStatus(r, http.StatusUnauthorized), "login", loginView{Username: username, Error: res.Error})
		return
	}

	setFlash(w, flashSuccess, msgLoginSuccess)
	redirect(w, r, "/dashboard")
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	auth.FromContext(ctx).Logout(ctx)
	s.pages.Forget(sessionID(ctx))

	setFlash(w, flashSuccess, msgLoggedOut)
	redirect(w, r, "/login")
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "register", registerView{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	form, err := readBody(w, r)
	if err != nil {
		s.render(w, r, formStatus(r, http.StatusBadRequest), "register", registerView{Error: msgInvalidRequest})
		return
	}

	req := core.RegisterRequest{
		Username:        form.Get("username"),
		Firstname:       form.Get("firstname"),
		Middlename:      form.Get("middlename"),
		Lastname:        form.Get("lastname"),
		Email:           form.Get("email"),
		Password:        form.Secret("password"),
		ConfirmPassword: form.Secret("confirmPassword"),
		PhoneNumber:     form.Get("phoneNumber"),
		Street:          form.Get("street"),
		City:            form.Get("city"),
		State:           form.Get("state"),
		Country:         form.Get("country"),
	}
	view := registerView{Form: req}
	view.Form.Password, view.Form.ConfirmPassword = "", ""

	if err := req.Validate(); err != nil {
		var fe core.FieldErrors
		if errors.As(err, &fe) {
			view.Fields = fe
		}
		view.Error = core.MsgFixForm
		s.render(w, r, formStatus(r, http.StatusUnprocessableEntity), "register", view)
		return
	}

	ctx := r.Context()
	res := auth.FromContext(ctx).Register(ctx, req)
	if !res.Success {
		view.Error = res.Error
		s.render(w, r, formStatus(r, http.StatusUnprocessableEntity), "register", view)
		return
	}

	setFlash(w, flashSuccess, msgOTPSent)
	redirect(w, r, verifyOTPURL(req.Email))
}

func verifyOTPURL(email string) string {
	return "/verify-otp?email=" + url.QueryEscape(email)
}

func (s *Server) handleVerifyOTPPage(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		redirect(w, r, "/register")
		return
	}
	s.render(w, r, http.StatusOK, "verify_otp", verifyOTPView{Email: email})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	form, err := readBody(w, r)
	if err != nil || form.Get("email") == "" {
		redirect(w, r, "/register")
		return
	}

	email, otp := form.Get("email"), form.Get("otp")
	if err := core.ValidateOTP(otp); err != nil {
		s.render(w, r, formStatus(r, http.StatusUnprocessableEntity), "verify_otp", verifyOTPView{Email: email, Error: err.Error()})
		return
	}

	ctx := r.Context()
	res := auth.FromContext(ctx).VerifyOTP(ctx, email, otp)
	if !res.Success {
		s.render(w, r, formStatus(r, http.StatusUnprocessableEntity), "verify_otp", verifyOTPView{Email: email, Error: res.Error})
		return
	}

	setFlash(w, flashSuccess, msgRegistrationDone)
	redirect(w, r, "/login")
}

func (s *Server) handleResendOTP(w http.ResponseWriter, r *http.Request) {
	form, err := readBody(w, r)
	if err != nil || form.Get("email") == "" {
		redirect(w, r, "/register")
		return
	}

	ctx := r.Context()
	email := form.Get("email")
	if res := auth.FromContext(ctx).ResendOTP(ctx, email); !res.Success {
		log.FromContext(ctx).WithComponent(log.ComponentAuth).InfoContext(ctx, "OTP resend failed", log.FieldError, res.Error)
		setFlash(w, flashError, res.Error)
	} else {
		setFlash(w, flashSuccess, msgOTPResent)
	}
	redirect(w, r, verifyOTPURL(email))
}
