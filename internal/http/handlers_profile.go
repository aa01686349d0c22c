package http

import (
	"errors"
	"net/http"

	"spendsmart/internal/core"
)

type profileForm struct {
	Firstname   string
	Middlename  string
	Lastname    string
	PhoneNumber string
	Street      string
	City        string
	State       string
	Country     string
}

type profileView struct {
	Profile *core.Profile
	Form    profileForm
	Fields  core.FieldErrors
	Error   string
}

func profileFormOf(p core.Profile) profileForm {
	return profileForm{
		Firstname:   p.Firstname,
		Middlename:  p.Middlename,
		Lastname:    p.Lastname,
		PhoneNumber: p.PhoneNumber,
		Street:      p.Street,
		City:        p.City,
		State:       p.State,
		Country:     p.Country,
	}
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) error {
	p, err := s.api.GetProfile(r.Context())
	if err != nil {
		return err
	}
	s.render(w, r, http.StatusOK, "profile", profileView{Profile: &p, Form: profileFormOf(p)})
	return nil
}

// handleUpdateProfile saves the editable fields. The email always comes
// from the stored profile, never from the form.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) error {
	form, err := readBody(w, r)
	if err != nil {
		return err
	}

	ctx := r.Context()
	current, err := s.api.GetProfile(ctx)
	if err != nil {
		return err
	}

	pf := profileForm{
		Firstname:   form.Get("firstname"),
		Middlename:  form.Get("middlename"),
		Lastname:    form.Get("lastname"),
		PhoneNumber: form.Get("phoneNumber"),
		Street:      form.Get("street"),
		City:        form.Get("city"),
		State:       form.Get("state"),
		Country:     form.Get("country"),
	}
	update := core.ProfileUpdate{
		Firstname:   pf.Firstname,
		Middlename:  optional(pf.Middlename),
		Lastname:    pf.Lastname,
		Email:       current.Email,
		PhoneNumber: optional(pf.PhoneNumber),
		Street:      optional(pf.Street),
		City:        optional(pf.City),
		State:       optional(pf.State),
		Country:     optional(pf.Country),
	}
	view := profileView{Profile: &current, Form: pf}

	if err := update.Validate(); err != nil {
		var fe core.FieldErrors
		if errors.As(err, &fe) {
			view.Fields = fe
		}
		view.Error = core.MsgFixForm
		s.render(w, r, formStatus(r, http.StatusUnprocessableEntity), "profile", view)
		return nil
	}

	if _, err := s.api.UpdateProfile(ctx, update); err != nil {
		if s.sessionExpired(w, r, err) {
			return nil
		}
		view.Error = messageOr(err, msgProfileUpdate)
		s.render(w, r, formStatus(r, http.StatusUnprocessableEntity), "profile", view)
		return nil
	}

	setFlash(w, flashSuccess, msgProfileUpdated)
	redirect(w, r, "/profile")
	return nil
}
