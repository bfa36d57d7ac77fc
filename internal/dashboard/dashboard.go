// Package dashboard builds the data and chart geometry for the metrics page.
package dashboard

import (
	"math/rand/v2"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Days is the length of the EBITDA series.
const Days = 30

// DayPoint is one day of the EBITDA chart.
type DayPoint struct {
	Day     int
	Revenue float64
	Costs   float64
}

// MonthValue is one bar of the profit margin chart.
type MonthValue struct {
	Month string
	Value float64
}

// DebtEquity is one stacked bar of the debt-to-equity chart.
type DebtEquity struct {
	Month  string
	Equity float64
	Debt   float64
}

// MetricCard is a headline number with its change over a period.
type MetricCard struct {
	Title  string
	Value  string
	Change string
	Period string
}

// Negative reports whether the change is a decrease.
func (c MetricCard) Negative() bool { return strings.Contains(c.Change, "-") }

// Data is everything the dashboard renders.
type Data struct {
	EBITDA       []DayPoint
	ProfitMargin []MonthValue
	DebtEquity   []DebtEquity
	Cards        []MetricCard
}

// Generate returns fresh random EBITDA figures and the static series.
// A nil rng uses the global source.
func Generate(rng *rand.Rand) Data {
	float := rand.Float64
	if rng != nil {
		float = rng.Float64
	}
	ebitda := make([]DayPoint, Days)
	for i := range ebitda {
		ebitda[i] = DayPoint{
			Day:     i + 1,
			Revenue: float()*2000 + 1000,
			Costs:   float()*1500 + 500,
		}
	}
	return Data{
		EBITDA: ebitda,
		ProfitMargin: []MonthValue{
			{"Jan", 4}, {"Feb", 9}, {"Mar", 12}, {"Apr", 9}, {"May", 3}, {"Jun", 4},
		},
		DebtEquity: []DebtEquity{
			{"Jan", 5, 2}, {"Feb", 7, 3}, {"Mar", 4, 2}, {"Apr", 2, 1}, {"May", 4, 2}, {"Jun", 5, 2},
		},
		Cards: []MetricCard{
			{Title: "Revenue", Value: "$24.5M", Change: "+1.3%", Period: "7 days"},
			{Title: "Avg Profit Margin", Value: "9.5%", Change: "+1%", Period: "7 days"},
			{Title: "Return On Investment (ROI)", Value: "19.1%", Change: "+8%", Period: "7 days"},
		},
	}
}

var printer = message.NewPrinter(language.English)

// FormatNumber renders n with thousands separators and no decimals.
func FormatNumber(n float64) string {
	return printer.Sprintf("%.0f", n)
}
