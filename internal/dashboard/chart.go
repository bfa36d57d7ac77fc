package dashboard

import (
	"math"
	"strconv"
	"strings"
)

// Frame is the drawing area of a chart in SVG user units.
type Frame struct {
	Width, Height float64
	Pad           float64
}

// DefaultFrame is used by the templates.
var DefaultFrame = Frame{Width: 720, Height: 260, Pad: 36}

// Tick is an axis label.
type Tick struct {
	X, Y  float64
	Label string
}

// Area is a filled line series.
type Area struct {
	Line string // polyline points
	Fill string // polygon points closed against the baseline
}

// AreaChart is the geometry of the EBITDA chart.
type AreaChart struct {
	Frame   Frame
	Revenue Area
	Costs   Area
	YTicks  []Tick
	XTicks  []Tick
}

// Bar is one rectangle.
type Bar struct {
	X, Y, W, H float64
	Class      string
	Label      string
}

// BarChart is the geometry of a (stacked) bar chart.
type BarChart struct {
	Frame  Frame
	Bars   []Bar
	YTicks []Tick
	XTicks []Tick
}

// Right is the x coordinate of the plot's right edge.
func (f Frame) Right() float64 { return f.Width - f.Pad }

func (f Frame) plotW() float64 { return f.Width - 2*f.Pad }
func (f Frame) plotH() float64 { return f.Height - 2*f.Pad }

func (f Frame) y(v, maxV float64) float64 {
	if maxV <= 0 {
		return f.Height - f.Pad
	}
	return f.Height - f.Pad - v/maxV*f.plotH()
}

// niceCeil rounds up to 1, 2 or 5 times a power of ten.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}

func yTicks(f Frame, maxV float64, n int) []Tick {
	ticks := make([]Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		v := maxV * float64(i) / float64(n)
		ticks = append(ticks, Tick{X: f.Pad - 6, Y: f.y(v, maxV), Label: FormatNumber(v)})
	}
	return ticks
}

func pt(b *strings.Builder, x, y float64) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(strconv.FormatFloat(x, 'f', 1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(y, 'f', 1, 64))
}

func area(f Frame, values []float64, maxV float64) Area {
	if len(values) == 0 {
		return Area{}
	}
	step := 0.0
	if len(values) > 1 {
		step = f.plotW() / float64(len(values)-1)
	}
	var line strings.Builder
	for i, v := range values {
		pt(&line, f.Pad+float64(i)*step, f.y(v, maxV))
	}
	var fill strings.Builder
	fill.WriteString(line.String())
	base := f.Height - f.Pad
	pt(&fill, f.Pad+float64(len(values)-1)*step, base)
	pt(&fill, f.Pad, base)
	return Area{Line: line.String(), Fill: fill.String()}
}

// BuildAreaChart lays out revenue and costs on a shared axis.
func BuildAreaChart(f Frame, days []DayPoint) AreaChart {
	rev := make([]float64, len(days))
	costs := make([]float64, len(days))
	peak := 0.0
	for i, d := range days {
		rev[i], costs[i] = d.Revenue, d.Costs
		peak = max(peak, d.Revenue, d.Costs)
	}
	top := niceCeil(peak)
	c := AreaChart{
		Frame:   f,
		Revenue: area(f, rev, top),
		Costs:   area(f, costs, top),
		YTicks:  yTicks(f, top, 4),
	}
	if len(days) > 1 {
		step := f.plotW() / float64(len(days)-1)
		for i, d := range days {
			if i%5 == 0 || i == len(days)-1 {
				c.XTicks = append(c.XTicks, Tick{X: f.Pad + float64(i)*step, Y: f.Height - f.Pad + 16, Label: strconv.Itoa(d.Day)})
			}
		}
	}
	return c
}

// BuildMarginChart lays out the profit margin bars.
func BuildMarginChart(f Frame, months []MonthValue) BarChart {
	peak := 0.0
	for _, m := range months {
		peak = max(peak, m.Value)
	}
	top := niceCeil(peak)
	c := BarChart{Frame: f, YTicks: yTicks(f, top, 4)}
	slot, width := slots(f, len(months))
	for i, m := range months {
		x := f.Pad + float64(i)*slot + (slot-width)/2
		y := f.y(m.Value, top)
		c.Bars = append(c.Bars, Bar{X: x, Y: y, W: width, H: f.Height - f.Pad - y, Class: "bar-primary", Label: FormatNumber(m.Value)})
		c.XTicks = append(c.XTicks, Tick{X: x + width/2, Y: f.Height - f.Pad + 16, Label: m.Month})
	}
	return c
}

// BuildDebtEquityChart lays out equity with debt stacked on top.
func BuildDebtEquityChart(f Frame, months []DebtEquity) BarChart {
	peak := 0.0
	for _, m := range months {
		peak = max(peak, m.Equity+m.Debt)
	}
	top := niceCeil(peak)
	c := BarChart{Frame: f, YTicks: yTicks(f, top, 4)}
	slot, width := slots(f, len(months))
	for i, m := range months {
		x := f.Pad + float64(i)*slot + (slot-width)/2
		eqY := f.y(m.Equity, top)
		totY := f.y(m.Equity+m.Debt, top)
		c.Bars = append(c.Bars,
			Bar{X: x, Y: eqY, W: width, H: f.Height - f.Pad - eqY, Class: "bar-primary", Label: FormatNumber(m.Equity)},
			Bar{X: x, Y: totY, W: width, H: eqY - totY, Class: "bar-danger", Label: FormatNumber(m.Debt)},
		)
		c.XTicks = append(c.XTicks, Tick{X: x + width/2, Y: f.Height - f.Pad + 16, Label: m.Month})
	}
	return c
}

func slots(f Frame, n int) (slot, width float64) {
	if n == 0 {
		return 0, 0
	}
	slot = f.plotW() / float64(n)
	return slot, slot * 0.6
}
