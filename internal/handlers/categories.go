// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"argeinventory/internal/listview"
	"argeinventory/internal/middleware"
	"argeinventory/internal/models"
	"argeinventory/internal/render"
	"argeinventory/internal/session"
	"argeinventory/internal/store"
)

const categoriesPath = "/admin/categories"

// List interactions posted to /admin/categories/view.
const (
	actionSearch       = "search"
	actionSort         = "sort"
	actionPage         = "page"
	actionNext         = "next"
	actionPrev         = "prev"
	actionDelete       = "delete"
	actionCancelDelete = "cancel-delete"
)

// errBadAction marks a posted interaction the list cannot apply.
var errBadAction = errors.New("bad list action")

func categoryName(c models.Category) string { return c.Name }

// categoryViewConfig describes how the category list is searched, sorted
// and paged. Only the name column sorts.
func categoryViewConfig(locale language.Tag) listview.Config[models.Category] {
	return listview.Config[models.Category]{
		SearchField: categoryName,
		Columns: []listview.Column[models.Category]{
			{Key: "name", Label: "Category Name", Value: categoryName},
		},
		PageSize: listview.DefaultPageSize,
		Locale:   locale,
	}
}

// applyViewAction dispatches one posted interaction to c. records is the
// mounted set, used to reject delete requests for unknown ids.
func applyViewAction(c *listview.Controller[models.Category], records []models.Category, form url.Values) error {
	switch action := form.Get("action"); action {
	case actionSearch:
		c.Search(form.Get("search"))
	case actionSort:
		column := form.Get("column")
		if !c.Sortable(column) {
			return fmt.Errorf("%w: sort %q", errBadAction, column)
		}
		c.ToggleSort(column)
	case actionPage:
		to, err := strconv.Atoi(form.Get("to"))
		if err != nil {
			return fmt.Errorf("%w: page %q", errBadAction, form.Get("to"))
		}
		c.SetPage(to)
	case actionNext:
		c.NextPage()
	case actionPrev:
		c.PreviousPage()
	case actionDelete:
		id, err := uuid.Parse(form.Get("id"))
		if err != nil || findCategory(records, id) == nil {
			return fmt.Errorf("%w: delete %q", errBadAction, form.Get("id"))
		}
		c.RequestDelete(id)
	case actionCancelDelete:
		c.ResolveDelete(nil)
	default:
		return fmt.Errorf("%w: unknown action %q", errBadAction, action)
	}
	return nil
}

func findCategory(records []models.Category, id uuid.UUID) *models.Category {
	for i := range records {
		if records[i].ID == id {
			return &records[i]
		}
	}
	return nil
}

// canDelete reports whether the signed-in user may delete categories.
func canDelete(r *http.Request) bool {
	sess := middleware.SessionFromCtx(r.Context())
	return sess != nil && models.Role(sess.Role) == models.RoleAdmin
}

// listData is the Data map of the categories_list template. The delete
// buttons and dialog render only when deletable is set.
func listData(viewID string, records []models.Category, v listview.View[models.Category], deletable bool) map[string]any {
	data := map[string]any{
		"View":        v,
		"ViewID":      viewID,
		"StateFields": v.State.Values(),
		"CanDelete":   deletable,
	}
	if v.State.HasPendingDelete() {
		data["Pending"] = findCategory(records, v.State.PendingDeleteID)
	}
	return data
}

// mountCategories loads the category set and freezes it in a snapshot.
// A failed snapshot only costs a reload on the next interaction, so the
// view id is left empty rather than failing the request.
func (a *Admin) mountCategories(ctx context.Context) (string, []models.Category, error) {
	items, err := a.categories.List()
	if err != nil {
		return "", nil, err
	}
	viewID, err := a.snapshots.Put(ctx, items)
	if err != nil {
		slog.Error("snapshot categories failed", "error", err)
	}
	return viewID, items, nil
}

// CategoriesList mounts a fresh list view over all categories.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	viewID, items, err := a.mountCategories(r.Context())
	if err != nil {
		slog.Error("list categories failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	c := listview.New(items, categoryViewConfig(a.locale))

	a.renderer.Page(w, r, "categories_list", &render.PageData{
		Title:   "Product Categories",
		Section: "categories",
		Data:    listData(viewID, items, c.View(), canDelete(r)),
		Flashes: a.takeFlashes(r),
	})
}

// CategoriesView applies one list interaction to the posted state and
// responds with the re-rendered table fragment.
func (a *Admin) CategoriesView(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	viewID := r.PostForm.Get("view")
	var items []models.Category
	found, err := a.snapshots.Get(r.Context(), viewID, &items)
	if err != nil {
		slog.Error("load view snapshot failed", "view", viewID, "error", err)
	}
	if !found {
		slog.Warn("view snapshot missing, remounting", "view", viewID)
		viewID, items, err = a.mountCategories(r.Context())
		if err != nil {
			slog.Error("list categories failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	if r.PostForm.Get("action") == actionDelete && !canDelete(r) {
		a.denyDelete(w, r)
		return
	}

	c := listview.New(items, categoryViewConfig(a.locale))
	c.Restore(listview.StateFromValues(r.PostForm))

	if err := applyViewAction(c, items, r.PostForm); err != nil {
		slog.Warn("list action rejected", "view", viewID, "error", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	a.renderer.Fragment(w, r, "categories_list", "category_table", &render.PageData{
		Title:   "Product Categories",
		Section: "categories",
		Data:    listData(viewID, items, c.View(), canDelete(r)),
	})
}

// denyDelete answers a delete attempt by a non-admin. The browser is sent
// back to a freshly mounted list, which closes any open dialog.
func (a *Admin) denyDelete(w http.ResponseWriter, r *http.Request) {
	slog.Warn("category delete denied", "path", r.URL.Path)
	a.flash(r, session.FlashError, "Only administrators can delete categories.")
	redirectTo(w, r, categoriesPath)
}

// CategoryDelete deletes a category confirmed in the list dialog and sends
// the browser back to a freshly mounted list. The snapshot of the view the
// dialog was opened from is dropped.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}
	if !canDelete(r) {
		a.denyDelete(w, r)
		return
	}

	if viewID := r.FormValue("view"); viewID != "" {
		a.snapshots.Drop(r.Context(), viewID)
	}

	item, err := a.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		a.flash(r, session.FlashError, "The category no longer exists.")
		redirectTo(w, r, categoriesPath)
		return
	}

	if err := a.categories.Delete(id); err != nil {
		slog.Error("delete category failed", "id", id, "error", err)
		a.flash(r, session.FlashError, fmt.Sprintf("Could not delete %q.", item.Name))
	} else {
		slog.Info("category deleted", "id", id, "name", item.Name)
		a.flash(r, session.FlashSuccess, fmt.Sprintf("Category %q deleted.", item.Name))
	}

	redirectTo(w, r, categoriesPath)
}

// CategoryNew renders the new category form.
func (a *Admin) CategoryNew(w http.ResponseWriter, r *http.Request) {
	a.renderForm(w, r, &models.Category{Color: models.ColorBlue}, true, "")
}

// CategoryCreate handles the new category form submission.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	c := categoryFromForm(r)
	if errMsg := validateCategory(c.Name, c.Description, c.Color); errMsg != "" {
		a.renderForm(w, r, c, true, errMsg)
		return
	}

	created, err := a.categories.Create(c)
	if errors.Is(err, store.ErrDuplicateName) {
		a.renderForm(w, r, c, true, "A category with this name already exists.")
		return
	}
	if err != nil {
		slog.Error("create category failed", "error", err)
		a.renderForm(w, r, c, true, "Failed to create category.")
		return
	}

	slog.Info("category created", "id", created.ID, "name", created.Name)
	a.flash(r, session.FlashSuccess, fmt.Sprintf("Category %q created.", created.Name))
	http.Redirect(w, r, categoriesPath, http.StatusSeeOther)
}

// CategoryEdit renders the edit form of an existing category.
func (a *Admin) CategoryEdit(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	item, err := a.categories.FindByID(id)
	if err != nil {
		slog.Error("find category failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	a.renderForm(w, r, item, false, "")
}

// CategoryUpdate handles the edit form submission.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	existing, err := a.categories.FindByID(id)
	if err != nil || existing == nil {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	c := categoryFromForm(r)
	c.ID = id
	if errMsg := validateCategory(c.Name, c.Description, c.Color); errMsg != "" {
		a.renderForm(w, r, c, false, errMsg)
		return
	}

	err = a.categories.Update(c)
	if errors.Is(err, store.ErrDuplicateName) {
		a.renderForm(w, r, c, false, "A category with this name already exists.")
		return
	}
	if err != nil {
		slog.Error("update category failed", "id", id, "error", err)
		a.renderForm(w, r, c, false, "Failed to save category.")
		return
	}

	a.flash(r, session.FlashSuccess, fmt.Sprintf("Category %q saved.", c.Name))
	http.Redirect(w, r, categoriesPath, http.StatusSeeOther)
}

func categoryFromForm(r *http.Request) *models.Category {
	return &models.Category{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Color:       models.Color(r.FormValue("color")),
	}
}

func (a *Admin) renderForm(w http.ResponseWriter, r *http.Request, item *models.Category, isNew bool, errMsg string) {
	title := "Edit Category"
	if isNew {
		title = "New Category"
	}
	data := map[string]any{
		"IsNew":  isNew,
		"Item":   item,
		"Colors": models.Colors,
	}
	if errMsg != "" {
		data["Error"] = errMsg
	}

	a.renderer.Page(w, r, "category_form", &render.PageData{
		Title:   title,
		Section: "categories",
		Data:    data,
	})
}
