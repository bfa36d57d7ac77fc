// Package charts exposes the dashboard chart geometry to templates.
package charts

import (
	"html/template"
	"strconv"

	"github.com/Rushil0704/auth-client-1/internal/dashboard"
)

// Funcs returns chart helpers laid out in dashboard.DefaultFrame.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"areaChart": func(days []dashboard.DayPoint) dashboard.AreaChart {
			return dashboard.BuildAreaChart(dashboard.DefaultFrame, days)
		},
		"marginChart": func(months []dashboard.MonthValue) dashboard.BarChart {
			return dashboard.BuildMarginChart(dashboard.DefaultFrame, months)
		},
		"debtEquityChart": func(months []dashboard.DebtEquity) dashboard.BarChart {
			return dashboard.BuildDebtEquityChart(dashboard.DefaultFrame, months)
		},
		"svgNum":      SVGNumber,
		"money":       dashboard.FormatNumber,
		"changeClass": ChangeClass,
	}
}

// SVGNumber prints a coordinate with one decimal place.
func SVGNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// ChangeClass picks the badge class for a metric card's change.
func ChangeClass(c dashboard.MetricCard) string {
	if c.Negative() {
		return "change-down"
	}
	return "change-up"
}
