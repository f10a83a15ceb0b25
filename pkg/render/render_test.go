package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/carmex/tierMCP/pkg/errors"
	"github.com/carmex/tierMCP/pkg/render/layout"
	"github.com/carmex/tierMCP/pkg/tierlist"
)

// allowAllGuard admits every URL. Tests fetch from httptest servers
// on loopback, which the production guard correctly refuses.
type allowAllGuard struct{}

func (allowAllGuard) Check(context.Context, string) error { return nil }

// recordingFetcher returns fixed bytes and records the order of
// requested URLs.
type recordingFetcher struct {
	data []byte
	urls []string
}

func (f *recordingFetcher) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	f.urls = append(f.urls, rawURL)
	return f.data, nil
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode rendered output: %v", err)
	}
	if format != "png" {
		t.Fatalf("format = %q, want png", format)
	}
	return cfg.Width, cfg.Height
}

func TestRenderTextOnly(t *testing.T) {
	cfg := &tierlist.Config{
		Items: []tierlist.Item{
			{ID: "go", Tier: "S", Text: "Go"},
			{ID: "rust", Tier: "A", Text: "Rust"},
			{ID: "cobol", Tier: "F", Text: "COBOL"},
		},
	}

	data, err := New().Render(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	w, h := decodeSize(t, data)
	if w != 1200 || h != 720 {
		t.Errorf("canvas = %dx%d, want 1200x720", w, h)
	}
}

func TestRenderWithTitle(t *testing.T) {
	cfg := &tierlist.Config{
		Title: "Programming Languages",
		Items: []tierlist.Item{{ID: "go", Tier: "S", Text: "Go"}},
	}

	data, err := New().Render(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	w, h := decodeSize(t, data)
	if w != 1200 || h != 784 {
		t.Errorf("canvas = %dx%d, want 1200x784", w, h)
	}
}

func TestRenderEmptyConfig(t *testing.T) {
	data, err := New().Render(context.Background(), &tierlist.Config{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if w, h := decodeSize(t, data); w != 1200 || h != 720 {
		t.Errorf("canvas = %dx%d, want 1200x720", w, h)
	}
}

func TestRenderPixels(t *testing.T) {
	data, err := New().Render(context.Background(), &tierlist.Config{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	// Inside the first tier's label column.
	if got := color.RGBAModel.Convert(img.At(5, 5)); got != (color.RGBA{R: 255, G: 127, B: 127, A: 255}) {
		t.Errorf("label column pixel = %v, want S tier red", got)
	}
	// Inside the gap after the last row, which stays background.
	if got := color.RGBAModel.Convert(img.At(1190, 718)); got != (color.RGBA{R: 26, G: 26, B: 23, A: 255}) {
		t.Errorf("gap pixel = %v, want default background", got)
	}
}

func TestRenderNilConfig(t *testing.T) {
	_, err := New().Render(context.Background(), nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
}

func TestRenderInvalidConfig(t *testing.T) {
	cfg := &tierlist.Config{
		Tiers: []tierlist.Tier{{ID: "s", Label: "S", Color: "not-a-color"}},
	}
	_, err := New().Render(context.Background(), cfg)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("err = %v, want INVALID_INPUT", err)
	}
}

func TestRenderItemCeiling(t *testing.T) {
	cfg := &tierlist.Config{}
	for i := 0; i < 51; i++ {
		cfg.Items = append(cfg.Items, tierlist.Item{ID: fmt.Sprintf("i%d", i), Tier: "S", Text: "x"})
	}
	_, err := New().Render(context.Background(), cfg)
	if !errors.Is(err, errors.ErrCodeTooManyItems) {
		t.Fatalf("err = %v, want TOO_MANY_ITEMS", err)
	}
}

func TestRenderHeightCeiling(t *testing.T) {
	r := New(WithGeometry(layout.Geometry{MaxCanvasHeight: 100}))
	_, err := r.Render(context.Background(), &tierlist.Config{})
	if !errors.Is(err, errors.ErrCodeCanvasTooTall) {
		t.Fatalf("err = %v, want CANVAS_TOO_TALL", err)
	}
}

func TestRenderUnsafeURLAborts(t *testing.T) {
	cfg := &tierlist.Config{
		Items: []tierlist.Item{
			{ID: "ok", Tier: "S", Text: "fine"},
			{ID: "bad", Tier: "S", ImageURL: "http://127.0.0.1:9/pixel.png", Text: "loopback"},
		},
	}

	// Production guard, literal address: classified without any
	// network traffic.
	_, err := New().Render(context.Background(), cfg)
	if !errors.Is(err, errors.ErrCodeUnsafeResource) {
		t.Fatalf("err = %v, want UNSAFE_RESOURCE", err)
	}
}

func TestRenderFetchesImages(t *testing.T) {
	pngBytes := testPNG(t)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngBytes)
	}))
	defer srv.Close()

	cfg := &tierlist.Config{
		Tiers: []tierlist.Tier{{ID: "s", Label: "S", Color: "#FF7F7F"}},
		Items: []tierlist.Item{
			{ID: "a", Tier: "s", ImageURL: srv.URL + "/a.png"},
			{ID: "b", Tier: "s", ImageURL: srv.URL + "/b.png"},
		},
	}

	r := New(WithGuard(allowAllGuard{}))
	data, err := r.Render(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if w, h := decodeSize(t, data); w != 1200 || h != 120 {
		t.Errorf("canvas = %dx%d, want 1200x120", w, h)
	}
	if got := hits.Load(); got != 2 {
		t.Errorf("server hits = %d, want 2", got)
	}
}

func TestRenderImageFallbacks(t *testing.T) {
	pngBytes := testPNG(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Write(pngBytes)
		case "/garbage.png":
			w.Write([]byte("this is not an image"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	// One fetchable image, one 404, one undecodable body. The broken
	// two degrade to text; the render still succeeds.
	cfg := &tierlist.Config{
		Tiers: []tierlist.Tier{{ID: "s", Label: "S", Color: "#FF7F7F"}},
		Items: []tierlist.Item{
			{ID: "a", Tier: "s", ImageURL: srv.URL + "/ok.png"},
			{ID: "b", Tier: "s", ImageURL: srv.URL + "/missing.png", Text: "gone"},
			{ID: "c", Tier: "s", ImageURL: srv.URL + "/garbage.png"},
		},
	}

	r := New(WithGuard(allowAllGuard{}))
	data, err := r.Render(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if w, h := decodeSize(t, data); w != 1200 || h != 120 {
		t.Errorf("canvas = %dx%d, want 1200x120", w, h)
	}
}

func TestRenderFetchOrder(t *testing.T) {
	f := &recordingFetcher{data: testPNG(t)}
	cfg := &tierlist.Config{
		Tiers: []tierlist.Tier{
			{ID: "s", Label: "S", Color: "#FF7F7F"},
			{ID: "a", Label: "A", Color: "#FFBF7F"},
		},
		Items: []tierlist.Item{
			{ID: "3", Tier: "a", ImageURL: "https://img.test/3.png"},
			{ID: "1", Tier: "s", ImageURL: "https://img.test/1.png"},
			{ID: "2", Tier: "s", ImageURL: "https://img.test/2.png"},
		},
	}

	r := New(WithGuard(allowAllGuard{}), WithFetcher(f))
	if _, err := r.Render(context.Background(), cfg); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Row order first, then declaration order within the row.
	want := []string{"https://img.test/1.png", "https://img.test/2.png", "https://img.test/3.png"}
	if len(f.urls) != len(want) {
		t.Fatalf("fetched %d urls, want %d", len(f.urls), len(want))
	}
	for i, u := range want {
		if f.urls[i] != u {
			t.Errorf("fetch[%d] = %q, want %q", i, f.urls[i], u)
		}
	}
}

func TestRenderDropsUnresolvedItems(t *testing.T) {
	cfg := &tierlist.Config{
		Items: []tierlist.Item{
			{ID: "kept", Tier: "S", Text: "stays"},
			{ID: "lost", Tier: "Z", Text: "no such tier"},
		},
	}

	data, err := New().Render(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if w, h := decodeSize(t, data); w != 1200 || h != 720 {
		t.Errorf("canvas = %dx%d, want 1200x720", w, h)
	}
}
