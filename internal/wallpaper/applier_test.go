package wallpaper

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type recordingSetter struct {
	paths []string
	err   error
}

func (r *recordingSetter) set(path string) error {
	r.paths = append(r.paths, path)
	return r.err
}

func (r *recordingSetter) desktop() string { return "fake" }

func TestApplyRevalidatesExistence(t *testing.T) {
	rec := &recordingSetter{}
	a := &Applier{setter: rec}

	err := a.Apply(filepath.Join(t.TempDir(), "gone.png"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if len(rec.paths) != 0 {
		t.Fatalf("platform call attempted for missing file: %v", rec.paths)
	}
}

func TestApplyPassesAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "w.png")
	if err := os.WriteFile(img, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	rec := &recordingSetter{}
	a := &Applier{setter: rec}
	if err := a.Apply(img); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(rec.paths) != 1 {
		t.Fatalf("expected one platform call, got %d", len(rec.paths))
	}
	if !filepath.IsAbs(rec.paths[0]) {
		t.Fatalf("platform received relative path %q", rec.paths[0])
	}
}

func TestApplyAttemptsExactlyOnce(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "w.jpg")
	if err := os.WriteFile(img, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	rec := &recordingSetter{err: errors.New("desktop said no")}
	a := &Applier{setter: rec}
	if err := a.Apply(img); err == nil {
		t.Fatalf("expected platform error to propagate")
	}
	if len(rec.paths) != 1 {
		t.Fatalf("expected exactly one attempt, got %d", len(rec.paths))
	}
}

func TestUnsupportedSetterError(t *testing.T) {
	a := &Applier{setter: unsupportedSetterForTest{}}
	dir := t.TempDir()
	img := filepath.Join(dir, "w.bmp")
	if err := os.WriteFile(img, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	err := a.Apply(img)
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("err=%v want ErrUnsupportedPlatform", err)
	}
}

type unsupportedSetterForTest struct{}

func (unsupportedSetterForTest) set(string) error { return ErrUnsupportedPlatform }
func (unsupportedSetterForTest) desktop() string  { return "unsupported (test)" }
