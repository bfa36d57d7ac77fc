package dashboard

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Ranges(t *testing.T) {
	t.Parallel()
	d := Generate(rand.New(rand.NewPCG(1, 2)))

	require.Len(t, d.EBITDA, Days)
	for i, p := range d.EBITDA {
		assert.Equal(t, i+1, p.Day)
		assert.GreaterOrEqual(t, p.Revenue, 1000.0)
		assert.Less(t, p.Revenue, 3000.0)
		assert.GreaterOrEqual(t, p.Costs, 500.0)
		assert.Less(t, p.Costs, 2000.0)
	}
	assert.Equal(t, MonthValue{"Mar", 12}, d.ProfitMargin[2])
	assert.Equal(t, DebtEquity{"Feb", 7, 3}, d.DebtEquity[1])
}

func TestMetricCard_Negative(t *testing.T) {
	t.Parallel()
	assert.False(t, MetricCard{Change: "+1.3%"}.Negative())
	assert.True(t, MetricCard{Change: "-0.4%"}.Negative())
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "2,500", FormatNumber(2500))
	assert.Equal(t, "12", FormatNumber(12))
}

func TestNiceCeil(t *testing.T) {
	t.Parallel()
	tests := map[float64]float64{0: 1, 3: 5, 12: 20, 2999: 5000, 7: 10, 100: 100}
	for in, want := range tests {
		assert.InDelta(t, want, niceCeil(in), 1e-9, "niceCeil(%v)", in)
	}
}

func TestBuildAreaChart(t *testing.T) {
	t.Parallel()
	f := Frame{Width: 100, Height: 100, Pad: 10}
	c := BuildAreaChart(f, []DayPoint{{Day: 1, Revenue: 10, Costs: 5}, {Day: 2, Revenue: 5, Costs: 0}})

	assert.Equal(t, "10.0,10.0 90.0,50.0", c.Revenue.Line)
	assert.True(t, strings.HasSuffix(c.Revenue.Fill, "90.0,90.0 10.0,90.0"))
	assert.Len(t, c.YTicks, 5)
	assert.Equal(t, "10", c.YTicks[4].Label)
	assert.Len(t, c.XTicks, 2)
}

func TestBuildDebtEquityChart_Stacks(t *testing.T) {
	t.Parallel()
	f := Frame{Width: 100, Height: 100, Pad: 10}
	c := BuildDebtEquityChart(f, []DebtEquity{{"Jan", 6, 4}})

	require.Len(t, c.Bars, 2)
	equity, debt := c.Bars[0], c.Bars[1]
	assert.InDelta(t, 48.0, equity.H, 1e-9)
	assert.InDelta(t, 32.0, debt.H, 1e-9)
	assert.InDelta(t, equity.Y, debt.Y+debt.H, 1e-9, "debt sits on top of equity")
}

func TestBuildMarginChart(t *testing.T) {
	t.Parallel()
	c := BuildMarginChart(DefaultFrame, Generate(nil).ProfitMargin)
	assert.Len(t, c.Bars, 6)
	assert.Equal(t, "Jun", c.XTicks[5].Label)
}
