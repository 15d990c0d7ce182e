package system

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

// ErrLowMemory возвращается, когда буферизация кадров не поместится в RAM.
var ErrLowMemory = errors.New("not enough free memory")

// memoryHeadroom: доля свободной памяти, которую разрешено занять кадрами.
const memoryHeadroom = 0.5

var (
	ffmpegOnce sync.Once
	ffmpegPath string

	encoderOnce sync.Once
	encoderList string
)

// HasFFmpeg сообщает, доступен ли ffmpeg в PATH. Результат кэшируется.
func HasFFmpeg() bool {
	ffmpegOnce.Do(func() {
		ffmpegPath, _ = exec.LookPath("ffmpeg")
	})
	return ffmpegPath != ""
}

// FFmpegEncoders возвращает вывод `ffmpeg -encoders` (один раз за процесс).
func FFmpegEncoders() string {
	encoderOnce.Do(func() {
		if !HasFFmpeg() {
			return
		}
		out, err := exec.Command("ffmpeg", "-hide_banner", "-encoders").CombinedOutput()
		if err == nil {
			encoderList = string(out)
		}
	})
	return encoderList
}

// HasEncoder проверяет, собран ли ffmpeg с указанным энкодером.
func HasEncoder(name string) bool {
	return strings.Contains(FFmpegEncoders(), " "+name+" ")
}

func GetBestH264Encoder() string {
	// Приоритеты:
	// 1. MacOS (VideoToolbox)
	// 2. NVIDIA (NVENC)
	// 3. Software (libx264)
	for _, name := range []string{"h264_videotoolbox", "h264_nvenc"} {
		if HasEncoder(name) {
			return name
		}
	}
	return "libx264"
}

// DefaultQuality подбирает значение качества под энкодер.
func DefaultQuality(encoderName string) int {
	switch encoderName {
	case "h264_videotoolbox":
		return 75 // битрейт = Q*100 кбит/с
	case "h264_nvenc":
		return 28 // эквивалент CRF для NVENC
	default:
		return 23 // стандартный CRF для x264
	}
}

// CheckMemory проверяет, что need байт помещаются в свободную память
// с запасом. Если gopsutil не смог прочитать статистику, проверка
// пропускается.
func CheckMemory(need uint64) error {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil
	}
	budget := uint64(float64(vm.Available) * memoryHeadroom)
	if need > budget {
		return fmt.Errorf("%w: need %d MiB, available budget %d MiB", ErrLowMemory, need>>20, budget>>20)
	}
	return nil
}

// FindLatestImage ищет самое свежее изображение в папке (или в папке файла).
func FindLatestImage(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	searchDir := path
	if !fi.IsDir() {
		searchDir = filepath.Dir(path)
	}

	files, err := os.ReadDir(searchDir)
	if err != nil {
		return "", err
	}

	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() || !IsImageFile(f.Name()) {
			continue
		}
		info, err := f.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(latestTime) {
			latestTime = info.ModTime()
			latestFile = filepath.Join(searchDir, f.Name())
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено изображений", searchDir)
	}

	return latestFile, nil
}

// IsImageFile сообщает, похоже ли имя файла на поддерживаемый источник.
func IsImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".tif", ".tiff", ".pdf":
		return true
	}
	return false
}
