package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/ivlev/frameit/internal/config"
	"github.com/ivlev/frameit/internal/engine"
	"github.com/ivlev/frameit/internal/renderer"
	"github.com/ivlev/frameit/internal/source"
	"github.com/ivlev/frameit/internal/system"
)

func main() {
	scenePtr := flag.String("scene", "", "YAML-файл сцены (по умолчанию: встроенные настройки)")
	imagesPtr := flag.String("images", "", "Изображения или папки через запятую (также принимаются аргументы). По умолчанию: самый свежий файл в input/")
	presetPtr := flag.String("preset", "", "Формат: story, portrait, square, landscape")
	layoutPtr := flag.String("layout", "", "Раскладка: auto, single, row, col, row-3, grid")
	outPtr := flag.String("out", "", "Папка для результата (по умолчанию: output/)")
	formatPtr := flag.String("format", "", "Формат экспорта: png, jpeg, webp, mp4, webm, avi, gif")
	animatePtr := flag.String("animate", "", "Стиль анимации: float, pulse, bounce, fade, slide, spin, swing, zoom, pop, shake, wobble, heartbeat, glitch")
	durationPtr := flag.Int("duration", 0, "Длительность анимации в мс (0 - из сцены)")
	fpsPtr := flag.Int("fps", 0, "FPS анимации (0 - из сцены)")
	seedPtr := flag.Uint64("seed", 1, "Seed для glitch-анимации")
	qualityPtr := flag.Int("quality", 0, "Качество (0 - авто: JPEG 90, x264 CRF 23, VP9 CRF 32)")
	textPtr := flag.String("text", "", "Заголовок поверх изображений")
	watermarkPtr := flag.String("watermark", "", "Текст водяного знака (пусто - из сцены)")
	saveScenePtr := flag.String("save-scene", "", "Сохранить итоговую сцену в YAML")
	statsPtr := flag.Bool("stats", false, "Показать статистику экспорта")

	flag.Parse()

	scene := config.DefaultScene()
	if *scenePtr != "" {
		loaded, err := config.Load(*scenePtr)
		if err != nil {
			log.Fatalf("[-] Ошибка сцены: %v", err)
		}
		scene = *loaded
		fmt.Printf("[*] Сцена: %s\n", *scenePtr)
	}

	if *presetPtr != "" {
		scene.Resolution = *presetPtr
		scene.Width, scene.Height = 0, 0
	}
	if *layoutPtr != "" {
		scene.Layout = *layoutPtr
	}
	if *outPtr != "" {
		scene.Export.Dir = *outPtr
	} else if scene.Export.Dir == "" {
		scene.Export.Dir = "output"
	}
	if *formatPtr != "" {
		scene.Export.Format = *formatPtr
	}
	if *animatePtr != "" {
		scene.Animation.Enabled = true
		scene.Animation.Style = *animatePtr
		if !config.IsMotionFormat(scene.Export.Format) {
			fmt.Printf("[!] Формат %s не поддерживает анимацию, используется mp4\n", scene.Export.Format)
			scene.Export.Format = config.FormatMP4
		}
	}
	if *durationPtr > 0 {
		scene.Export.DurationMs = *durationPtr
	}
	if *fpsPtr > 0 {
		scene.Animation.FPS = *fpsPtr
	}
	if *qualityPtr > 0 {
		scene.Export.Quality = *qualityPtr
	}
	if *textPtr != "" {
		if len(scene.Text) >= config.MaxTextLayers {
			log.Printf("[!] Уже %d текстовых слоёв, заголовок пропущен", len(scene.Text))
		} else {
			scene.Text = append(scene.Text, config.NewTextLayer(*textPtr))
		}
	}
	if *watermarkPtr != "" {
		scene.Watermark.Enabled = true
		scene.Watermark.Text = *watermarkPtr
	}

	args := flag.Args()
	if *imagesPtr != "" {
		args = append(strings.Split(*imagesPtr, ","), args...)
	}
	paths := source.Expand(args)
	if len(paths) == 0 && len(scene.Images) == 0 {
		os.MkdirAll("input", 0755)
		latest, err := system.FindLatestImage("input")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите изображения в input/ или передайте -images", err)
		}
		paths = []string{latest}
		fmt.Printf("[*] Выбран файл: %s\n", latest)
	}
	if len(paths) > 0 {
		slots := make([]config.ImageSlot, len(paths))
		for i, p := range paths {
			if i < len(scene.Images) {
				slots[i] = scene.Images[i]
			}
			slots[i].Path = p
		}
		scene.Images = slots
	}

	scene.Normalize()

	if *saveScenePtr != "" {
		if err := config.Save(&scene, *saveScenePtr); err != nil {
			log.Fatalf("[-] Ошибка сохранения сцены: %v", err)
		}
		fmt.Printf("[*] Сцена сохранена: %s\n", *saveScenePtr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	assets, err := source.LoadAssets(ctx, &scene)
	if err != nil {
		log.Fatalf("[-] Загрузка прервана: %v", err)
	}

	res := scene.Resolve()
	fmt.Println("--- [FRAMEIT] ---")
	fmt.Printf("[*] Изображений: %d/%d | Раскладка: %s\n", assets.Present(), len(scene.Images), scene.Layout)
	fmt.Printf("[*] Разрешение: %s %dx%d | Формат: %s\n", res.ID, res.Width, res.Height, scene.Export.Format)
	if scene.Animation.Enabled {
		fmt.Printf("[*] Анимация: %s, %d мс @ %d FPS\n", scene.Animation.Style, scene.Export.DurationMs, scene.Animation.FPS)
	}
	if config.IsMotionFormat(scene.Export.Format) {
		if encoderName := system.GetBestH264Encoder(); encoderName != "libx264" && system.HasFFmpeg() {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
		}
	}
	fmt.Println("-----------------")

	exporter := engine.NewExporter(renderer.New())
	exporter.Seed = *seedPtr
	exporter.ShowStats = *statsPtr

	out, err := exporter.Export(ctx, &scene, assets)
	if err != nil {
		log.Fatalf("[-] Ошибка экспорта: %v", err)
	}
	fmt.Printf("[+++] Успех! Результат: %s\n", out.Path)
}
