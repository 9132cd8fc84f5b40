package handlers

import (
	"context"
	"fmt"
	"net/http"

	"transferadmin/models"
	"transferadmin/table"
)

type DashboardHandler struct {
	*Pages
}

type dashboardContent struct {
	Error   string
	Stats   models.Statistics
	Monthly table.Table
	Recent  table.Table
}

func (h *DashboardHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	coll := collection(h.Pages, r, func(ctx context.Context) ([]models.Statistics, error) {
		stats, err := sess.Statistics(ctx)
		if err != nil {
			return nil, err
		}
		return []models.Statistics{*stats}, nil
	})

	st := coll.Load(r.Context())
	if unauthorized(h.Pages, w, r, st) {
		return
	}

	page := h.page(r, "Dashboard", "/")
	page.Crumbs = []Crumb{{Label: "Home"}}
	content := dashboardContent{Error: st.Message()}
	if data := st.Data(); len(data) > 0 {
		content.Stats = data[0]
	}
	content.Monthly = table.New(content.Stats.MonthlyTransactions,
		[]string{"Month", "Transactions", "Amount"},
		func(m models.MonthlyTransactions) table.Row {
			return table.Row{table.Text(m.Month), table.Text(fmt.Sprint(m.Count)), table.Text(fmt.Sprintf("%.2f", m.Amount))}
		},
		"No transactions yet",
	)
	content.Recent = table.New(content.Stats.RecentUsers,
		[]string{"Name", "Email", "Type", "Joined"},
		func(u models.User) table.Row {
			return table.Row{userCell(u), table.Text(u.Email), table.Text(string(u.UserType)), table.Text(formatDate(u.CreatedAt))}
		},
		"No users have joined yet",
	)
	page.Content = content
	h.render(w, r, http.StatusOK, "dashboard", page)
}
