package billing

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// PatientGroup collects one patient's invoices, newest first.
type PatientGroup struct {
	PatientID    uuid.UUID `json:"patient_id"`
	PatientName  string    `json:"patient_name"`
	Invoices     []Invoice `json:"invoices"`
	TotalAmount  float64   `json:"total_amount"`
	UnpaidAmount float64   `json:"unpaid_amount"`
}

type groupKey struct {
	id   uuid.UUID
	name string
}

// GroupByPatient groups invoices by (patient id, patient name). The name is
// part of the key on purpose: an invoice issued before a patient rename
// keeps its snapshot and forms its own group. Groups come back sorted by
// patient name; invoices within a group date-descending. Flattening the
// groups restores the input multiset.
func GroupByPatient(invoices []Invoice) []PatientGroup {
	byKey := make(map[groupKey]*PatientGroup)
	var order []groupKey
	for _, inv := range invoices {
		key := groupKey{id: inv.PatientID, name: inv.PatientName}
		g, ok := byKey[key]
		if !ok {
			g = &PatientGroup{PatientID: inv.PatientID, PatientName: inv.PatientName}
			byKey[key] = g
			order = append(order, key)
		}
		g.Invoices = append(g.Invoices, inv)
		g.TotalAmount = round2(g.TotalAmount + inv.Total)
		if inv.Unpaid() {
			g.UnpaidAmount = round2(g.UnpaidAmount + inv.Total)
		}
	}

	groups := make([]PatientGroup, 0, len(order))
	for _, key := range order {
		g := byKey[key]
		sort.SliceStable(g.Invoices, func(i, j int) bool {
			return g.Invoices[i].Date.After(g.Invoices[j].Date)
		})
		groups = append(groups, *g)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].PatientName < groups[j].PatientName
	})
	return groups
}

// MonthlyStats summarizes billing activity for the calendar month of now.
type MonthlyStats struct {
	PaidThisMonth     float64 `json:"paid_this_month"`
	SentThisMonth     float64 `json:"sent_this_month"`
	OverdueTotal      float64 `json:"overdue_total"`
	DraftTotal        float64 `json:"draft_total"`
	CountThisMonth    int     `json:"count_this_month"`
	PaidChangePercent float64 `json:"paid_change_percent"`
}

func sameMonth(t, ref time.Time) bool {
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}

// ComputeMonthlyStats derives the dashboard figures for the month containing
// now. The paid change percentage compares against the previous calendar
// month and is 0 whenever last month had no paid revenue.
func ComputeMonthlyStats(invoices []Invoice, now time.Time) MonthlyStats {
	// First of the previous month. AddDate on a month-end day would
	// normalize back into the current month (Mar 31 minus one month is
	// Mar 3), which would compare the month against itself.
	lastMonth := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
	var stats MonthlyStats
	var paidLastMonth float64

	for _, inv := range invoices {
		if sameMonth(inv.Date, now) {
			stats.CountThisMonth++
			if inv.Status == StatusPaid {
				stats.PaidThisMonth = round2(stats.PaidThisMonth + inv.Total)
			}
			if inv.Status == StatusSent {
				stats.SentThisMonth = round2(stats.SentThisMonth + inv.Total)
			}
		}
		if sameMonth(inv.Date, lastMonth) && inv.Status == StatusPaid {
			paidLastMonth = round2(paidLastMonth + inv.Total)
		}
		switch inv.Status {
		case StatusOverdue:
			stats.OverdueTotal = round2(stats.OverdueTotal + inv.Total)
		case StatusDraft:
			stats.DraftTotal = round2(stats.DraftTotal + inv.Total)
		}
	}

	if paidLastMonth > 0 {
		stats.PaidChangePercent = round2((stats.PaidThisMonth - paidLastMonth) / paidLastMonth * 100)
	}
	return stats
}
