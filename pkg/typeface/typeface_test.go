package typeface_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/chazu/forma/pkg/typeface"
)

func TestDefaultRegistryFaces(t *testing.T) {
	r := typeface.Default()

	want := []string{"Go Bold", "Go Italic", "Go Mono", "Go Regular"}
	if got := r.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	f, err := r.Resolve("Go Regular")
	if err != nil {
		t.Fatal(err)
	}
	if f == nil {
		t.Fatal("nil face")
	}
}

func TestResolveUnknownFont(t *testing.T) {
	r := typeface.Default()

	_, err := r.Resolve("Helvetica")
	if !errors.Is(err, typeface.ErrFontNotFound) {
		t.Fatalf("err = %v, want ErrFontNotFound", err)
	}

	var fnf *typeface.FontNotFoundError
	if !errors.As(err, &fnf) {
		t.Fatal("want *FontNotFoundError")
	}
	if fnf.Name != "Helvetica" {
		t.Errorf("Name = %q, want %q", fnf.Name, "Helvetica")
	}
}

func TestRegisterTTFBadBytes(t *testing.T) {
	r := typeface.NewRegistry()
	if err := r.RegisterTTF("bad", []byte("not a font")); err == nil {
		t.Error("expected parse error")
	}
	if len(r.Names()) != 0 {
		t.Errorf("unparseable face must not be registered, got %v", r.Names())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}

	r := typeface.NewRegistry()
	if err := r.LoadFile("Custom", path); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Resolve("Custom"); err != nil {
		t.Errorf("Resolve(Custom) = %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	r := typeface.NewRegistry()
	if err := r.LoadFile("x", filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("expected read error")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "CustomFace.ttf"), goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	// Non-font entries are skipped.
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := typeface.NewRegistry()
	if err := r.LoadDir(dir); err != nil {
		t.Fatal(err)
	}
	if got := r.Names(); !reflect.DeepEqual(got, []string{"CustomFace"}) {
		t.Errorf("Names() = %v, want [CustomFace]", got)
	}
}

func TestLoadDirMissing(t *testing.T) {
	r := typeface.NewRegistry()
	if err := r.LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestRegisterReplaces(t *testing.T) {
	r := typeface.NewRegistry()
	if err := r.RegisterTTF("Face", goregular.TTF); err != nil {
		t.Fatal(err)
	}
	first, _ := r.Resolve("Face")

	if err := r.RegisterTTF("Face", goregular.TTF); err != nil {
		t.Fatal(err)
	}
	second, _ := r.Resolve("Face")

	if first == nil || second == nil {
		t.Fatal("nil face")
	}
	if len(r.Names()) != 1 {
		t.Errorf("Names() = %v, want a single entry", r.Names())
	}
}
