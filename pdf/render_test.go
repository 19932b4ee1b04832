package pdf

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/image/font/gofont/goregular"
	"pkt.systems/agenda"
)

// coreConfig renders with the fallback font so results do not depend on the
// fonts installed on the host.
func coreConfig(start civil.Date) Config {
	cfg := DefaultConfig()
	cfg.Start = start
	cfg.FontCandidates = nil
	return cfg
}

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestRenderPDFWithCoreFont(t *testing.T) {
	var out bytes.Buffer
	res, err := Render(RenderRequest{
		Writer:  &out,
		Config:  coreConfig(date(2025, time.December, 25)),
		Options: []Option{WithLogger(zaptest.NewLogger(t))},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("%PDF")) {
		t.Fatalf("unexpected pdf header: %q", out.Bytes()[:8])
	}
	if res.Pages != 7 {
		t.Fatalf("pages = %d, want 7", res.Pages)
	}
	if res.Font.Family != FallbackFont || !res.Font.Core {
		t.Fatalf("unexpected font %+v", res.Font)
	}
}

func TestRenderPageCounts(t *testing.T) {
	cases := []struct {
		start civil.Date
		want  int
	}{
		{date(2025, time.December, 31), 1},
		{date(2025, time.January, 1), 365},
		{date(2024, time.January, 1), 366},
	}
	for _, tc := range cases {
		t.Run(tc.start.String(), func(t *testing.T) {
			var out bytes.Buffer
			res, err := Render(RenderRequest{Writer: &out, Config: coreConfig(tc.start)})
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			if res.Pages != tc.want || res.Range.Len() != tc.want {
				t.Fatalf("pages = %d (range %d), want %d", res.Pages, res.Range.Len(), tc.want)
			}
		})
	}
}

func TestRenderWithTrueTypeFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Go-Regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	cfg := coreConfig(date(2025, time.December, 30))
	cfg.FontCandidates = []FontCandidate{
		{Name: "Missing", Path: filepath.Join(t.TempDir(), "missing.ttf")},
		{Name: "GoRegular", Path: path},
	}
	var out bytes.Buffer
	res, err := Render(RenderRequest{Writer: &out, Config: cfg})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Font.Family != "GoRegular" || res.Font.Core {
		t.Fatalf("unexpected font %+v", res.Font)
	}
	if res.Pages != 2 {
		t.Fatalf("pages = %d, want 2", res.Pages)
	}
}

func TestRenderDefaultStartUsesClock(t *testing.T) {
	if _, err := agenda.LoadLocation(agenda.DefaultTimezone); err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}
	clock := func() time.Time {
		return time.Date(2025, time.December, 29, 23, 30, 0, 0, time.UTC)
	}
	var out bytes.Buffer
	res, err := Render(RenderRequest{
		Writer:  &out,
		Config:  coreConfig(civil.Date{}),
		Options: []Option{WithClock(clock)},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// Already Dec 30 in Paris.
	if res.Range.Start != date(2025, time.December, 30) || res.Pages != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRenderDefaultStartLogsUnknownZoneOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := coreConfig(civil.Date{})
	cfg.Timezone = "Nowhere/Atlantis"
	instant := time.Date(2025, time.December, 31, 12, 0, 0, 0, time.UTC)
	var out bytes.Buffer
	res, err := Render(RenderRequest{
		Writer:  &out,
		Config:  cfg,
		Options: []Option{WithLogger(zap.New(core)), WithClock(func() time.Time { return instant })},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if want := civil.DateOf(instant.Local()); res.Range.Start != want {
		t.Fatalf("start = %s, want local %s", res.Range.Start, want)
	}
	if n := logs.FilterMessage("timezone unavailable, using local date").Len(); n != 1 {
		t.Fatalf("expected one timezone log entry, got %d", n)
	}
}

func TestRenderDefaultConfigSurvivesFontParserPanic(t *testing.T) {
	stubValidateFont(t, func([]byte) error {
		panic("gtab.readGpos5_1: index out of range [2] with length 2")
	})
	cfg := DefaultConfig()
	cfg.Start = date(2025, time.December, 31)
	var out bytes.Buffer
	res, err := Render(RenderRequest{Writer: &out, Config: cfg})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if res.Pages != 1 || !res.Font.Core {
		t.Fatalf("unexpected result %+v", res)
	}
	if !bytes.HasPrefix(out.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF")
	}
}

func recordPages(t *testing.T, cfg Config) *recordingCanvas {
	t.Helper()
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	rec := &recordingCanvas{}
	g.newCanvas = func(doc *fpdf.Fpdf, font Font) Canvas {
		rec.inner = newFPDFCanvas(doc, font)
		return rec
	}
	var out bytes.Buffer
	if _, err := g.Run(&out); err != nil {
		t.Fatalf("run: %v", err)
	}
	return rec
}

func TestRenderPageNumbersSequence(t *testing.T) {
	cfg := coreConfig(date(2025, time.December, 20))
	rec := recordPages(t, cfg)
	if rec.pages != 12 {
		t.Fatalf("pages = %d, want 12", rec.pages)
	}
	var labels []string
	headers := map[int]string{}
	for _, op := range rec.texts {
		if op.y == cfg.PageNumberMargin {
			if want := strconv.Itoa(op.page); op.text != want {
				t.Fatalf("page %d labelled %q", op.page, op.text)
			}
			labels = append(labels, op.text)
			continue
		}
		headers[op.page] = op.text
	}
	if len(labels) != 12 {
		t.Fatalf("expected 12 page labels, got %v", labels)
	}
	for i, label := range labels {
		if label != strconv.Itoa(i+1) {
			t.Fatalf("labels out of sequence: %v", labels)
		}
	}
	if headers[1] != "Sábado 20 Diciembre 2025" || headers[12] != "Miércoles 31 Diciembre 2025" {
		t.Fatalf("unexpected headers first=%q last=%q", headers[1], headers[12])
	}
}

func TestRenderWithoutPageNumbers(t *testing.T) {
	cfg := coreConfig(date(2025, time.December, 28))
	cfg.PageNumbers = false
	rec := recordPages(t, cfg)
	if rec.pages != 4 {
		t.Fatalf("pages = %d, want 4", rec.pages)
	}
	if len(rec.texts) != 4 {
		t.Fatalf("expected only headers, got %+v", rec.texts)
	}
	for _, op := range rec.texts {
		if op.size != cfg.HeaderFontSize {
			t.Fatalf("unexpected non-header text %+v", op)
		}
	}
}

func TestGeneratorIsSingleUse(t *testing.T) {
	g, err := NewGenerator(coreConfig(date(2025, time.December, 31)))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	var out bytes.Buffer
	if _, err := g.Run(&out); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := g.Run(&out); !errors.Is(err, ErrFinalized) {
		t.Fatalf("second run err = %v, want ErrFinalized", err)
	}
}

func TestGeneratorEmptyPlanWritesNothing(t *testing.T) {
	g, err := NewGenerator(coreConfig(date(2025, time.December, 31)))
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	g.plan = &agenda.Range{Start: date(2025, time.December, 31), End: date(2025, time.December, 30)}
	var out bytes.Buffer
	res, err := g.Run(&out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Pages != 0 || out.Len() != 0 {
		t.Fatalf("expected no output, got %d pages and %d bytes", res.Pages, out.Len())
	}
}

func TestRenderRejectsNilWriter(t *testing.T) {
	if _, err := Render(RenderRequest{Config: DefaultConfig()}); !errors.Is(err, ErrNilWriter) {
		t.Fatalf("err = %v, want ErrNilWriter", err)
	}
}

func TestRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "Agenda_2025.pdf")
	res, err := RenderFile(path, RenderRequest{Config: coreConfig(date(2025, time.December, 29))})
	if err != nil {
		t.Fatalf("render file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) || res.Pages != 3 {
		t.Fatalf("unexpected output: pages=%d header=%q", res.Pages, data[:4])
	}
}

func TestRenderFileUnwritablePath(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	path := filepath.Join(blocker, "agenda.pdf")
	if _, err := RenderFile(path, RenderRequest{Config: coreConfig(date(2025, time.December, 31))}); err == nil {
		t.Fatalf("expected error for unwritable path")
	}
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("partial output left at %s", path)
	}
}

func TestRenderGridLayer(t *testing.T) {
	cfg := coreConfig(date(2025, time.December, 30))
	cfg.GridLayer = true
	cfg.OpenLayerPane = true
	var out bytes.Buffer
	if _, err := Render(RenderRequest{Writer: &out, Config: cfg}); err != nil {
		t.Fatalf("render: %v", err)
	}
	data := out.Bytes()
	if !bytes.Contains(data, []byte("/OCProperties")) {
		t.Fatalf("expected OCG properties in output")
	}
	if !bytes.Contains(data, []byte("/PageMode /UseOC")) {
		t.Fatalf("expected layer pane to open")
	}

	out.Reset()
	if _, err := Render(RenderRequest{Writer: &out, Config: coreConfig(date(2025, time.December, 30))}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if bytes.Contains(out.Bytes(), []byte("/OCProperties")) {
		t.Fatalf("unexpected OCG properties without grid layer")
	}
}
