package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
	"pkt.systems/agenda"
)

var (
	// ErrFinalized reports a second Run on a Generator.
	ErrFinalized = errors.New("generator already finalized")
	// ErrNilWriter reports a missing output writer.
	ErrNilWriter = errors.New("writer is nil")
)

const creator = "pkt.systems/agenda"

type state int

const (
	stateInitializing state = iota
	stateRendering
	stateFinalized
)

// Result describes a rendered agenda.
type Result struct {
	Pages int
	Font  Font
	Range agenda.Range
}

// Generator renders one agenda document. It is single use: after Run returns
// the generator is finalized.
type Generator struct {
	cfg       Config
	geom      Geometry
	log       *zap.Logger
	clock     agenda.Clock
	plan      *agenda.Range
	newCanvas func(*fpdf.Fpdf, Font) Canvas
	state     state
}

// NewGenerator validates cfg and returns a generator for it.
func NewGenerator(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pdf render: %w", err)
	}
	geom, err := cfg.Geometry()
	if err != nil {
		return nil, fmt.Errorf("pdf render: %w", err)
	}
	g := &Generator{
		cfg:       cfg,
		geom:      geom,
		log:       zap.NewNop(),
		clock:     agenda.SystemClock,
		newCanvas: newFPDFCanvas,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Geometry returns the page layout the generator draws with.
func (g *Generator) Geometry() Geometry {
	return g.geom
}

// Plan returns the days the document covers. It is computed once so a run
// that crosses midnight keeps a stable range.
func (g *Generator) Plan() agenda.Range {
	if g.plan != nil {
		return *g.plan
	}
	start := g.cfg.Start
	if start.IsZero() {
		today, err := agenda.TodayIn(g.clock, g.cfg.Timezone)
		if err != nil {
			g.log.Debug("timezone unavailable, using local date",
				zap.String("timezone", g.cfg.Timezone),
				zap.Error(err))
		}
		start = today
	}
	r := agenda.YearRange(start)
	g.plan = &r
	return r
}

// Run renders every day of the plan to w and writes the document once. An
// empty plan writes nothing.
func (g *Generator) Run(w io.Writer) (Result, error) {
	if g.state != stateInitializing {
		return Result{}, fmt.Errorf("pdf render: %w", ErrFinalized)
	}
	if w == nil {
		return Result{}, fmt.Errorf("pdf render: %w", ErrNilWriter)
	}
	defer func() { g.state = stateFinalized }()

	plan := g.Plan()
	res := Result{Range: plan}
	if plan.Empty() {
		g.log.Info("empty date range, nothing to render", zap.Stringer("range", plan))
		return res, nil
	}

	doc := fpdf.New("P", "pt", g.cfg.PageSize, "")
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreator(creator, true)
	doc.SetTitle(g.title(plan), true)
	doc.SetCreationDate(g.clock())
	res.Font = ResolveFont(doc, g.cfg.FontCandidates, g.cfg.FallbackFont, g.log)
	if err := doc.Error(); err != nil {
		return res, fmt.Errorf("pdf render: font setup failed: %w", err)
	}

	g.state = stateRendering
	canvas := g.newCanvas(doc, res.Font)
	style := pageStyle{
		font:        res.Font,
		styles:      g.cfg.Theme.Styles(),
		pageNumbers: g.cfg.PageNumbers,
		gridLayer:   g.cfg.GridLayer,
	}
	if g.cfg.GridLayer && g.cfg.OpenLayerPane {
		doc.OpenLayerPane()
	}
	plan.Each(func(i int, day civil.Date) {
		canvas.AddPage()
		drawPage(canvas, g.geom, style, agenda.FormatSpanish(day), i+1)
	})
	if err := doc.Error(); err != nil {
		return res, fmt.Errorf("pdf render: %w", err)
	}
	res.Pages = doc.PageCount()
	if err := doc.Output(w); err != nil {
		return res, fmt.Errorf("pdf render: output: %w", err)
	}
	g.log.Debug("agenda rendered",
		zap.Int("pages", res.Pages),
		zap.String("font", res.Font.Family),
		zap.Stringer("range", plan))
	return res, nil
}

func (g *Generator) title(plan agenda.Range) string {
	if g.cfg.Title != "" {
		return g.cfg.Title
	}
	return "Agenda " + strconv.Itoa(plan.Start.Year)
}

// RenderRequest contains inputs for agenda rendering.
type RenderRequest struct {
	Writer  io.Writer
	Config  Config
	Options []Option
}

// Render writes an agenda PDF to req.Writer.
func Render(req RenderRequest) (Result, error) {
	if req.Writer == nil {
		return Result{}, fmt.Errorf("pdf render: %w", ErrNilWriter)
	}
	g, err := NewGenerator(req.Config, req.Options...)
	if err != nil {
		return Result{}, err
	}
	return g.Run(req.Writer)
}

// RenderFile writes an agenda PDF to path, creating parent directories. The
// file is removed again if rendering fails. req.Writer is ignored.
func RenderFile(path string, req RenderRequest) (Result, error) {
	g, err := NewGenerator(req.Config, req.Options...)
	if err != nil {
		return Result{}, err
	}
	if plan := g.Plan(); plan.Empty() {
		return Result{Range: plan}, nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, fmt.Errorf("pdf render: open output: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("pdf render: open output: %w", err)
	}
	res, err := g.Run(f)
	closeErr := f.Close()
	if err == nil && closeErr != nil {
		err = fmt.Errorf("pdf render: close output: %w", closeErr)
	}
	if err != nil {
		_ = os.Remove(path)
		return res, err
	}
	return res, nil
}
