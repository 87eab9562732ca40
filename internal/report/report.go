// Package report renders the category-by-region aggregate as a clustered bar
// chart on a log scale and exports the table as CSV.
package report

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"smartsales/internal/olap"
)

const (
	Title           = "Product Category Sales by Region (Log Scale)"
	LegendTitle     = "Product Category"
	DefaultFileName = "category_sales_by_region.png"
	DefaultCSVName  = "category_sales_by_region.csv"
)

// ErrNoRows is returned when there is nothing to chart.
var ErrNoRows = errors.New("report: no rows to render")

// Options controls where and how the chart is written.
type Options struct {
	Dir      string
	FileName string    // default DefaultFileName
	Width    vg.Length // default 14in
	Height   vg.Length // default 8in
	Show     bool
}

func (o Options) withDefaults() Options {
	if o.FileName == "" {
		o.FileName = DefaultFileName
	}
	if o.Width <= 0 {
		o.Width = 14 * vg.Inch
	}
	if o.Height <= 0 {
		o.Height = 8 * vg.Inch
	}
	return o
}

// Render draws rows as one cluster per region with one bar per category and
// saves the image under opts.Dir. It returns the written path.
func Render(rows []olap.CategorySales, opts Options) (string, error) {
	if len(rows) == 0 {
		return "", ErrNoRows
	}
	opts = opts.withDefaults()

	p, err := buildPlot(rows)
	if err != nil {
		log.Printf("report: build chart failed err=%v", err)
		return "", fmt.Errorf("report: build chart: %w", err)
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		log.Printf("report: mkdir %s failed err=%v", opts.Dir, err)
		return "", fmt.Errorf("report: mkdir %s: %w", opts.Dir, err)
	}
	path := filepath.Join(opts.Dir, opts.FileName)
	if err := p.Save(opts.Width, opts.Height, path); err != nil {
		log.Printf("report: save %s failed err=%v", path, err)
		return "", fmt.Errorf("report: save %s: %w", path, err)
	}
	log.Printf("report: chart saved path=%s rows=%d", path, len(rows))

	if opts.Show {
		if err := Show(path); err != nil {
			log.Printf("report: show %s failed err=%v", path, err)
		}
	}
	return path, nil
}

// WriteCSV writes rows to path with a region,category,total_sales header.
func WriteCSV(rows []olap.CategorySales, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("report: mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	if err := olap.Frame(rows).WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("report: close %s: %w", path, err)
	}
	return nil
}

// grid lays rows out as regions (x clusters) by categories (bars), keeping
// the first-seen order of both. Missing cells are zero.
type grid struct {
	regions    []string
	categories []string
	totals     [][]float64 // [category][region]
}

func newGrid(rows []olap.CategorySales) grid {
	var g grid
	ri := map[string]int{}
	ci := map[string]int{}
	for _, r := range rows {
		if _, ok := ri[r.RegionLabel()]; !ok {
			ri[r.RegionLabel()] = len(g.regions)
			g.regions = append(g.regions, r.RegionLabel())
		}
		if _, ok := ci[r.Category]; !ok {
			ci[r.Category] = len(g.categories)
			g.categories = append(g.categories, r.Category)
		}
	}
	g.totals = make([][]float64, len(g.categories))
	for i := range g.totals {
		g.totals[i] = make([]float64, len(g.regions))
	}
	for _, r := range rows {
		v, _ := r.TotalSales.Float64()
		g.totals[ci[r.Category]][ri[r.RegionLabel()]] += v
	}
	return g
}

// baseDecade is one below the exponent of the largest power of ten at or
// below the smallest positive total, so every positive bar has a height of at
// least one decade. Bars are drawn as log10(v) - baseDecade.
func (g grid) baseDecade() int {
	lo := math.Inf(1)
	for _, col := range g.totals {
		for _, v := range col {
			if v > 0 && v < lo {
				lo = v
			}
		}
	}
	if math.IsInf(lo, 1) {
		return 0
	}
	return int(math.Floor(math.Log10(lo))) - 1
}

func logHeight(v float64, base int) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log10(v) - float64(base)
}

func buildPlot(rows []olap.CategorySales) (*plot.Plot, error) {
	g := newGrid(rows)
	base := g.baseDecade()

	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = "Region"
	p.Y.Label.Text = "Total Sales"
	p.Add(plotter.NewGrid())

	barWidth := vg.Points(60 / float64(len(g.categories)))
	if barWidth > vg.Points(20) {
		barWidth = vg.Points(20)
	}

	p.Legend.Top = true
	p.Legend.Add(LegendTitle)
	top := 0.0
	for i, cat := range g.categories {
		vals := make(plotter.Values, len(g.regions))
		for j, v := range g.totals[i] {
			vals[j] = logHeight(v, base)
			top = math.Max(top, vals[j])
		}
		bars, err := plotter.NewBarChart(vals, barWidth)
		if err != nil {
			return nil, fmt.Errorf("bars %q: %w", cat, err)
		}
		bars.LineStyle.Width = 0
		bars.Color = plotutil.Color(i)
		bars.Offset = vg.Length(float64(i)-float64(len(g.categories)-1)/2) * barWidth
		p.Add(bars)
		p.Legend.Add(cat, bars)
	}

	p.NominalX(g.regions...)
	p.Y.Min = 0
	p.Y.Max = math.Max(1, math.Ceil(top))
	p.Y.Tick.Marker = decadeTicks{base: base}
	return p, nil
}

// decadeTicks labels a log10-transformed axis: a major tick per power of ten
// and minor ticks at 2..9 times each power.
type decadeTicks struct {
	base int
}

func (d decadeTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for k := math.Floor(min); k <= max; k++ {
		ticks = append(ticks, plot.Tick{Value: k, Label: decadeLabel(int(k) + d.base)})
		for m := 2; m <= 9; m++ {
			v := k + math.Log10(float64(m))
			if v > max {
				break
			}
			if v >= min {
				ticks = append(ticks, plot.Tick{Value: v})
			}
		}
	}
	return ticks
}

func decadeLabel(exp int) string {
	return strconv.FormatFloat(math.Pow10(exp), 'g', -1, 64)
}
