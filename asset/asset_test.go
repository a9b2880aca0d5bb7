package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rjkroege/richui/anim"
	"github.com/rjkroege/richui/markup"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode failed: %v", err)
	}
	return buf.Bytes()
}

// gifBytes returns an animation of n 4x4 frames, frame i filled with
// palette entry i+1.
func gifBytes(t *testing.T, n, delay int) []byte {
	t.Helper()
	g := &gif.GIF{Config: image.Config{Width: 4, Height: 4, ColorModel: color.Palette(palette.Plan9)}}
	for i := 0; i < n; i++ {
		pm := image.NewPaletted(image.Rect(0, 0, 4, 4), palette.Plan9)
		for j := range pm.Pix {
			pm.Pix[j] = uint8(i + 1)
		}
		g.Image = append(g.Image, pm)
		g.Delay = append(g.Delay, delay)
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		t.Fatalf("gif.EncodeAll failed: %v", err)
	}
	return buf.Bytes()
}

func TestDecodeStatic(t *testing.T) {
	a, err := Decode(pngBytes(t, 3, 2), image.Point{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(a.Frames) != 1 || a.FrameDuration != 0 || a.Placeholder {
		t.Errorf("static image decoded as %+v", a)
	}
	if got := a.Size(); got != image.Pt(3, 2) {
		t.Errorf("Size() = %v, want 3x2", got)
	}
	if a.Frame(time.Hour) != a.Frames[0] {
		t.Errorf("static image did not stay on frame 0")
	}
}

func TestDecodeAnimatedGIF(t *testing.T) {
	a, err := Decode(gifBytes(t, 3, 5), image.Point{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(a.Frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(a.Frames))
	}
	if got, want := a.FrameDuration, 50*time.Millisecond; got != want {
		t.Errorf("FrameDuration = %v, want %v", got, want)
	}

	want := color.RGBAModel.Convert(palette.Plan9[2]).(color.RGBA)
	if got := color.RGBAModel.Convert(a.Frames[1].At(0, 0)).(color.RGBA); got != want {
		t.Errorf("frame 1 pixel = %v, want %v", got, want)
	}

	a.LoadedAt = time.Second
	if a.Frame(time.Second+60*time.Millisecond) != a.Frames[1] {
		t.Errorf("frame selection does not count from LoadedAt")
	}
}

func TestDecodeGIFDefaultDelay(t *testing.T) {
	a, err := Decode(gifBytes(t, 2, 0), image.Point{})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if a.FrameDuration != DefaultFrameDuration {
		t.Errorf("FrameDuration = %v, want %v", a.FrameDuration, DefaultFrameDuration)
	}
}

func TestDecodeFitsBox(t *testing.T) {
	a, err := Decode(pngBytes(t, 40, 20), image.Pt(10, 10))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := a.Size(); got != image.Pt(10, 5) {
		t.Errorf("fitted size = %v, want 10x5", got)
	}

	small, err := Decode(pngBytes(t, 4, 4), image.Pt(10, 10))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got := small.Size(); got != image.Pt(4, 4) {
		t.Errorf("small image resized to %v", got)
	}
}

func TestDecodeNotImage(t *testing.T) {
	_, err := Decode([]byte("hello, this is text"), image.Point{})
	if !errors.Is(err, ErrNotImage) {
		t.Errorf("Decode(text) error = %v, want ErrNotImage", err)
	}
	if _, err := Decode(nil, image.Point{}); err == nil {
		t.Errorf("Decode(nil) succeeded")
	}
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder()
	if !p.Placeholder || len(p.Frames) != 1 {
		t.Fatalf("Placeholder() = %+v", p)
	}
	if got := p.Size(); got != image.Pt(16, 16) {
		t.Errorf("placeholder size = %v, want 16x16", got)
	}
	if Placeholder() != p {
		t.Errorf("Placeholder() is not shared")
	}
}

func TestFetchResolverHTTP(t *testing.T) {
	img := gifBytes(t, 2, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/anim.gif":
			w.Write(img)
		case "/text":
			w.Write([]byte("not an image at all"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	r := NewFetchResolver(WithHTTPClient(srv.Client()))
	a, err := r.Resolve(context.Background(), srv.URL+"/anim.gif")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(a.Frames) != 2 || a.FrameDuration != 100*time.Millisecond {
		t.Errorf("resolved %d frames at %v", len(a.Frames), a.FrameDuration)
	}

	for _, path := range []string{"/missing.png", "/text"} {
		if _, err := r.Resolve(context.Background(), srv.URL+path); err == nil {
			t.Errorf("Resolve(%s) succeeded", path)
		}
	}
}

func TestFetchResolverFiles(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "pic.png")
	if err := os.WriteFile(p, pngBytes(t, 2, 2), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewFetchResolver()
	fileURL := (&url.URL{Scheme: "file", Path: filepath.ToSlash(p)}).String()
	for _, ref := range []string{p, fileURL} {
		a, err := r.Resolve(context.Background(), ref)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", ref, err)
			continue
		}
		if a.Size() != image.Pt(2, 2) {
			t.Errorf("Resolve(%q) size = %v", ref, a.Size())
		}
	}

	if _, err := r.Resolve(context.Background(), "bad-uri"); err == nil {
		t.Errorf("Resolve(bad-uri) succeeded")
	}
	if _, err := r.Resolve(context.Background(), "gopher://x/y"); !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("Resolve(gopher) error = %v, want ErrUnsupportedScheme", err)
	}
}

func refs(uris ...string) []markup.ImageRef {
	var out []markup.ImageRef
	for _, u := range uris {
		ref := markup.ImageRef{Source: u}
		if u != "" {
			ref.URL, _ = url.Parse(u)
		}
		out = append(out, ref)
	}
	return out
}

func TestLoader(t *testing.T) {
	img := &Animated{Frames: []image.Image{image.NewRGBA(image.Rect(0, 0, 5, 5))}}
	resolver := ResolverFunc(func(ctx context.Context, ref string) (*Animated, error) {
		if ref == "http://h/ok.png" {
			return img, nil
		}
		return nil, errors.New("boom")
	})
	clock := &anim.Fake{}
	clock.Set(7 * time.Second)

	notified := make(chan struct{}, 4)
	l := NewLoader(resolver, clock, WithNotify(func() { notified <- struct{}{} }))
	defer l.Close()

	l.Load(refs("http://h/ok.png", "http://h/bad.png", ""))
	l.Wait()

	if !l.TakeArrivals() {
		t.Errorf("TakeArrivals() = false after an image arrived")
	}
	if l.TakeArrivals() {
		t.Errorf("TakeArrivals() did not clear")
	}
	if len(notified) != 1 {
		t.Errorf("notify called %d times, want 1", len(notified))
	}

	got := l.Get(0)
	if got.Placeholder || got.Size() != image.Pt(5, 5) || got.LoadedAt != 7*time.Second {
		t.Errorf("slot 0 = %+v", got)
	}
	if img.LoadedAt != 0 {
		t.Errorf("resolver's asset was modified")
	}
	for _, i := range []int{1, 2, 3, -1} {
		if !l.Get(i).Placeholder {
			t.Errorf("slot %d is not the placeholder", i)
		}
	}
	if l.Len() != 3 {
		t.Errorf("Len() = %d, want 3", l.Len())
	}
}

func TestLoaderDropsStaleGeneration(t *testing.T) {
	release := make(chan struct{})
	var cancelled atomic.Bool
	resolver := ResolverFunc(func(ctx context.Context, ref string) (*Animated, error) {
		<-release
		if ref == "http://h/old.png" {
			cancelled.Store(ctx.Err() != nil)
		}
		return &Animated{Frames: []image.Image{image.NewRGBA(image.Rect(0, 0, 9, 9))}}, nil
	})
	l := NewLoader(resolver, &anim.Fake{})
	defer l.Close()

	first := l.Load(refs("http://h/old.png"))
	second := l.Load(refs("http://h/new.png"))
	if second != first+1 || l.Generation() != second {
		t.Fatalf("generations %d, %d; current %d", first, second, l.Generation())
	}

	// A result for the first generation must not land in the second.
	l.publish(first, 0, &Animated{Frames: []image.Image{image.NewRGBA(image.Rect(0, 0, 1, 1))}}, nil)
	if !l.Get(0).Placeholder || l.TakeArrivals() {
		t.Fatalf("stale result was published: %+v", l.Get(0))
	}

	close(release)
	l.Wait()
	if !cancelled.Load() {
		t.Errorf("first generation's context was not cancelled")
	}
	if got := l.Get(0); got.Placeholder || got.Size() != image.Pt(9, 9) {
		t.Errorf("current generation slot = %+v", got)
	}
}

func TestAnimatedNil(t *testing.T) {
	var a *Animated
	if diff := cmp.Diff(image.Point{}, a.Size()); diff != "" {
		t.Errorf("nil Size mismatch:\n%s", diff)
	}
	if a.Frame(0) != nil {
		t.Errorf("nil Frame is not nil")
	}
}
