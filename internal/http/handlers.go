package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"expenses/internal/core"
	"expenses/internal/csvio"
	"expenses/internal/store"
)

type categoryView struct {
	Name    string
	Amount  string
	Percent float64
}

type expenseView struct {
	ID          string
	Date        string
	Category    string
	Description string
	Amount      string
}

func expenseViews(expenses []core.Expense) []expenseView {
	out := make([]expenseView, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, expenseView{
			ID:          e.ID,
			Date:        e.Date.String(),
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount.String(),
		})
	}
	return out
}

func categoryViews(expenses []core.Expense) []categoryView {
	total := core.TotalSpending(expenses)
	rows := core.SortedCategoryTotals(expenses)
	out := make([]categoryView, 0, len(rows))
	for _, row := range rows {
		out = append(out, categoryView{
			Name:    row.Name,
			Amount:  row.Amount.String(),
			Percent: core.PercentOfTotal(row.Amount, total),
		})
	}
	return out
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("Template execution failed", "template", name, "error", err)
	}
}

func (s *Server) renderError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_ = s.templates.ExecuteTemplate(w, "error.html", struct {
		Code    int
		Message string
	}{Code: code, Message: message})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderError(w, http.StatusNotFound, "The page you requested does not exist.")
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.getAllExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load expenses", "error", err)
		s.renderError(w, http.StatusInternalServerError, "Failed to load expense data.")
		return
	}

	notice, errMsg := flashFromQuery(r)
	total := core.TotalSpending(expenses)

	data := struct {
		Notice      string
		Error       string
		NumExpenses int
		Total       string
		Average     string
		MinDate     string
		MaxDate     string
		Categories  []categoryView
		Recent      []expenseView
	}{
		Notice:      notice,
		Error:       errMsg,
		NumExpenses: len(expenses),
		Total:       total.String(),
		Average:     core.AverageExpense(expenses).String(),
		MinDate:     "N/A",
		MaxDate:     "N/A",
		Categories:  categoryViews(expenses),
	}
	if min, max, ok := core.DateRange(expenses); ok {
		data.MinDate = min.String()
		data.MaxDate = max.String()
	}

	recent := make([]core.Expense, len(expenses))
	copy(recent, expenses)
	core.SortByDateDesc(recent)
	if len(recent) > 10 {
		recent = recent[:10]
	}
	data.Recent = expenseViews(recent)

	s.render(w, "dashboard.html", data)
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	selected := sanitizeInput(r.URL.Query().Get("category"))

	var (
		expenses []core.Expense
		err      error
	)
	if selected == "" {
		expenses, err = s.getAllExpenses(ctx)
	} else {
		expenses, err = s.store.ByCategory(ctx, selected)
	}
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load expenses", "category", selected, "error", err)
		s.renderError(w, http.StatusInternalServerError, "Failed to load expense data.")
		return
	}
	core.SortByDateDesc(expenses)

	categories, err := s.store.Categories(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load categories", "error", err)
		s.renderError(w, http.StatusInternalServerError, "Failed to load category data.")
		return
	}

	notice, errMsg := flashFromQuery(r)
	s.render(w, "expenses.html", struct {
		Notice           string
		Error            string
		AllCategories    []string
		SelectedCategory string
		Expenses         []expenseView
		Total            string
	}{
		Notice:           notice,
		Error:            errMsg,
		AllCategories:    categories,
		SelectedCategory: selected,
		Expenses:         expenseViews(expenses),
		Total:            core.TotalSpending(expenses).String(),
	})
}

type addExpenseForm struct {
	Notice        string
	Error         string
	AllCategories []string
	Amount        string
	Category      string
	Description   string
	Date          string
}

func (s *Server) handleAddExpenseForm(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.Categories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load categories", "error", err)
		s.renderError(w, http.StatusInternalServerError, "Failed to load category data.")
		return
	}

	notice, errMsg := flashFromQuery(r)
	s.render(w, "add_expense.html", addExpenseForm{
		Notice:        notice,
		Error:         errMsg,
		AllCategories: categories,
		Date:          core.Today().String(),
	})
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}

	form := addExpenseForm{
		Amount:      sanitizeInput(r.FormValue("amount")),
		Category:    sanitizeInput(r.FormValue("category")),
		Description: sanitizeInput(r.FormValue("description")),
		Date:        sanitizeInput(r.FormValue("date")),
	}
	if newCat := sanitizeInput(r.FormValue("new_category")); newCat != "" {
		form.Category = newCat
	}

	rerender := func(msg string) {
		categories, err := s.store.Categories(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to load categories", "error", err)
		}
		form.AllCategories = categories
		form.Error = msg
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		if err := s.templates.ExecuteTemplate(w, "add_expense.html", form); err != nil {
			slog.ErrorContext(ctx, "Template execution failed", "template", "add_expense.html", "error", err)
		}
	}

	cents, err := core.ParseDecimalToCents(form.Amount)
	if err != nil || cents <= 0 {
		rerender("Amount must be a positive number.")
		return
	}

	var date core.Date
	if form.Date != "" {
		date, err = parseDate(form.Date)
		if err != nil {
			rerender("Date must be in YYYY-MM-DD format.")
			return
		}
	}

	expense, err := s.svc.AddExpense(ctx, core.Money{Cents: cents}, form.Category, form.Description, date)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptyCategory):
			rerender("Category is required.")
		case errors.Is(err, core.ErrEmptyDescription):
			rerender("Description is required and must be at most 200 characters.")
		case errors.Is(err, core.ErrInvalidAmount):
			rerender("Amount must be a positive number.")
		case errors.Is(err, core.ErrInvalidDate):
			rerender("Date must be in YYYY-MM-DD format.")
		default:
			slog.ErrorContext(ctx, "Failed to add expense", "error", err)
			s.renderError(w, http.StatusInternalServerError, "Failed to save the expense.")
		}
		return
	}

	s.invalidateCache()
	slog.InfoContext(ctx, "Expense added via web", "id", expense.ID, "category", expense.Category, "amount_cents", expense.Amount.Cents)
	redirectWith(w, r, "/", "notice", "Expense added: "+expense.Amount.String()+" for "+expense.Description)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("id")

	if err := s.svc.DeleteExpense(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			redirectWith(w, r, "/expenses", "error", "Expense not found.")
			return
		}
		slog.ErrorContext(ctx, "Failed to delete expense", "id", id, "error", err)
		s.renderError(w, http.StatusInternalServerError, "Failed to delete the expense.")
		return
	}

	s.invalidateCache()
	redirectWith(w, r, "/expenses", "notice", "Expense deleted.")
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.getAllExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load expenses", "error", err)
		s.renderError(w, http.StatusInternalServerError, "Failed to load expense data.")
		return
	}

	now := time.Now()
	monthTotal := core.MonthlyTotal(expenses, now.Year(), int(now.Month()))

	notice, errMsg := flashFromQuery(r)
	s.render(w, "analytics.html", struct {
		Notice            string
		Error             string
		Total             string
		CurrentMonth      string
		CurrentMonthTotal string
		Categories        []categoryView
	}{
		Notice:            notice,
		Error:             errMsg,
		Total:             core.TotalSpending(expenses).String(),
		CurrentMonth:      now.Format("January 2006"),
		CurrentMonthTotal: monthTotal.String(),
		Categories:        categoryViews(expenses),
	})
}

func (s *Server) handleExportPage(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.getAllExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load expenses", "error", err)
		s.renderError(w, http.StatusInternalServerError, "Failed to load expense data.")
		return
	}

	notice, errMsg := flashFromQuery(r)
	s.render(w, "export.html", struct {
		Notice      string
		Error       string
		NumExpenses int
	}{Notice: notice, Error: errMsg, NumExpenses: len(expenses)})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.getAllExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load expenses", "error", err)
		s.renderError(w, http.StatusInternalServerError, "Failed to load expense data.")
		return
	}
	core.SortByDateDesc(expenses)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+csvio.DefaultExportFilename()+`"`)
	if err := csvio.Export(w, expenses); err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}
