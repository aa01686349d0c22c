package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"spendsmart/internal/core"
)

type categoryForm struct {
	Name        string
	Type        string
	Description string
}

type categoriesView struct {
	Type       core.TransactionType
	Editing    int64
	Form       categoryForm
	Fields     core.FieldErrors
	Error      string
	Categories []core.Category
}

// categoryTab reads the type tab; anything but INCOME shows expenses.
func categoryTab(raw string) core.TransactionType {
	t, err := core.ParseTransactionType(raw)
	if err != nil || t == "" {
		return core.Expense
	}
	return t
}

func categoriesURL(t core.TransactionType) string {
	return "/categories?type=" + url.QueryEscape(t.String())
}

func (s *Server) renderCategories(w http.ResponseWriter, r *http.Request, status int, view categoriesView) error {
	cats, err := s.categories(r.Context(), view.Type)
	if err != nil {
		return err
	}
	view.Categories = cats
	s.render(w, r, status, "categories", view)
	return nil
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) error {
	t := categoryTab(r.URL.Query().Get("type"))
	return s.renderCategories(w, r, http.StatusOK, categoriesView{
		Type: t,
		Form: categoryForm{Type: t.String()},
	})
}

func (s *Server) handleEditCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r)
	if err != nil {
		return err
	}
	c, err := s.api.GetCategory(r.Context(), id)
	if err != nil {
		return err
	}
	return s.renderCategories(w, r, http.StatusOK, categoriesView{
		Type:    categoryTab(c.Type.String()),
		Editing: id,
		Form:    categoryForm{Name: c.Name, Type: c.Type.String(), Description: c.Description},
	})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) error {
	return s.saveCategory(w, r, 0)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r)
	if err != nil {
		return err
	}
	return s.saveCategory(w, r, id)
}

// saveCategory creates (id 0) or updates a category and returns to the tab
// of its type.
func (s *Server) saveCategory(w http.ResponseWriter, r *http.Request, id int64) error {
	form, err := readBody(w, r)
	if err != nil {
		return err
	}
	cf := categoryForm{
		Name:        form.Get("name"),
		Type:        strings.ToUpper(form.Get("type")),
		Description: form.Get("description"),
	}
	in := core.CategoryInput{
		Name:        cf.Name,
		Type:        core.TransactionType(cf.Type),
		Description: cf.Description,
	}
	view := categoriesView{Type: categoryTab(cf.Type), Editing: id, Form: cf}

	if err := in.Validate(); err != nil {
		var fe core.FieldErrors
		if errors.As(err, &fe) {
			view.Fields = fe
		}
		view.Error = core.MsgFixForm
		return s.renderCategories(w, r, formStatus(r, http.StatusUnprocessableEntity), view)
	}

	ctx := r.Context()
	done := msgCategoryCreated
	if id == 0 {
		_, err = s.api.CreateCategory(ctx, in)
	} else {
		_, err = s.api.UpdateCategory(ctx, id, in)
		done = msgCategoryUpdated
	}
	if err != nil {
		if s.sessionExpired(w, r, err) {
			return nil
		}
		view.Error = messageOr(err, msgCategoryAction)
		return s.renderCategories(w, r, formStatus(r, http.StatusUnprocessableEntity), view)
	}

	s.categoriesChanged(ctx)
	setFlash(w, flashSuccess, done)
	redirect(w, r, categoriesURL(in.Type))
	return nil
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) error {
	id, err := parseID(r)
	if err != nil {
		return err
	}
	if err := s.api.DeleteCategory(r.Context(), id); err != nil {
		return err
	}

	s.categoriesChanged(r.Context())
	if isHTMX(r) {
		NewHTMXResponse().TriggerSuccessNotification(msgCategoryDeleted).Write(w)
		return nil
	}
	setFlash(w, flashSuccess, msgCategoryDeleted)
	redirect(w, r, categoriesURL(categoryTab(r.URL.Query().Get("type"))))
	return nil
}
