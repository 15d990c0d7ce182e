package system

import (
	"errors"
	"image"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestImagePoolReuse(t *testing.T) {
	pool := NewImagePool()
	rect := image.Rect(0, 0, 64, 32)

	img := pool.Get(rect)
	if img.Rect != rect {
		t.Fatalf("expected rect %v, got %v", rect, img.Rect)
	}
	img.Pix[0] = 42
	pool.Put(img)

	other := pool.Get(image.Rect(0, 0, 32, 64))
	if other.Rect.Dx() != 32 {
		t.Errorf("pool mixed up sizes: %v", other.Rect)
	}

	// Буфер чужого размера не должен попасть в пул
	pool.Put(image.NewRGBA(image.Rect(0, 0, 3, 3)))
}

func TestGetClearImage(t *testing.T) {
	rect := image.Rect(0, 0, 8, 8)
	dirty := GetImage(rect)
	for i := range dirty.Pix {
		dirty.Pix[i] = 0xff
	}
	PutImage(dirty)

	img := GetClearImage(rect)
	for i, v := range img.Pix {
		if v != 0 {
			t.Fatalf("pixel byte %d not cleared: %d", i, v)
		}
	}
}

func TestCheckMemory(t *testing.T) {
	if err := CheckMemory(1); err != nil {
		t.Errorf("1 byte should always fit: %v", err)
	}
	err := CheckMemory(math.MaxUint64)
	if err != nil && !errors.Is(err, ErrLowMemory) {
		t.Errorf("expected ErrLowMemory, got %v", err)
	}
	t.Logf("huge request: %v", err)
}

func TestFindLatestImage(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.png")
	fresh := filepath.Join(dir, "fresh.jpg")
	for _, p := range []string{old, fresh, filepath.Join(dir, "notes.txt")} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-time.Hour)
	os.Chtimes(old, past, past)

	got, err := FindLatestImage(dir)
	if err != nil {
		t.Fatalf("FindLatestImage failed: %v", err)
	}
	if got != fresh {
		t.Errorf("expected %s, got %s", fresh, got)
	}

	if _, err := FindLatestImage(t.TempDir()); err == nil {
		t.Error("expected error for empty dir")
	}
}
