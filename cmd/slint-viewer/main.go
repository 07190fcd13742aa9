// Command slint-viewer displays a demonstration scene in a native
// window, or renders it to a PNG when run with -snapshot. An optional
// TOML file configures the window.
package main

import (
	"flag"
	"image/png"
	"log"
	"math"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/host/glfwhost"
	"github.com/slint-ui/slint-sub001/itemtree"
	"github.com/slint-ui/slint-sub001/painter"
	"github.com/slint-ui/slint-sub001/renderer"
	"github.com/slint-ui/slint-sub001/textlayout"
	"github.com/slint-ui/slint-sub001/window"
)

type config struct {
	Title      string  `toml:"title"`
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Fullscreen bool    `toml:"fullscreen"`
}

func defaultConfig() config {
	return config{Title: "slint-viewer", Width: 800, Height: 600}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML window configuration")
		snapshot   = flag.String("snapshot", "", "render one frame to a PNG instead of opening a window")
		fontPath   = flag.String("font", "", "font file for text items")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	fonts := textlayout.NewRegistry()
	if *fontPath != "" {
		if err := fonts.RegisterFromFile(*fontPath); err != nil {
			log.Fatalf("font: %v", err)
		}
	}

	tree := buildScene(cfg.Width, cfg.Height, fonts.Len() > 0)

	if *snapshot != "" {
		if err := renderSnapshot(*snapshot, cfg, tree, fonts); err != nil {
			log.Fatalf("snapshot: %v", err)
		}
		log.Printf("Scene saved to %s (%gx%g)", *snapshot, cfg.Width, cfg.Height)
		return
	}

	if err := runWindowed(cfg, tree, fonts); err != nil {
		log.Fatalf("viewer: %v", err)
	}
}

func renderSnapshot(path string, cfg config, tree *itemtree.Tree, fonts *textlayout.Registry) error {
	target := graphics.NewPixmap(int(cfg.Width), int(cfg.Height))
	p := painter.NewSoftwarePainter(target, 1)
	p.FillRect(graphics.NewRect(0, 0, cfg.Width, cfg.Height),
		graphics.SolidPaint(graphics.RGB(0.12, 0.12, 0.14)))

	r := renderer.New(p,
		renderer.WithTextEngine(textlayout.NewEngine(textlayout.NewHarfbuzzTextShaper())),
		renderer.WithFonts(fonts),
	)
	r.RenderTree(tree)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, target.ToImage())
}

func runWindowed(cfg config, tree *itemtree.Tree, fonts *textlayout.Registry) error {
	app, err := glfwhost.NewApp()
	if err != nil {
		return err
	}
	defer app.Terminate()

	surface, err := app.CreateSurface(glfwhost.SurfaceConfig{
		Title:  cfg.Title,
		Width:  int(cfg.Width),
		Height: int(cfg.Height),
	})
	if err != nil {
		return err
	}

	registry := window.NewRegistry()
	running := true
	registry.OnLastWindowHidden = func() { running = false }

	adapter, err := window.New(surface, glfwhost.NewGraphics(), registry,
		window.WithFonts(fonts),
		window.WithTextEngine(textlayout.NewEngine(textlayout.NewHarfbuzzTextShaper())),
		window.WithMetricsOverlay(),
	)
	if err != nil {
		return err
	}
	adapter.SetTree(tree)
	adapter.UpdateWindowProperties(window.Properties{
		Title:      cfg.Title,
		Background: graphics.Solid(graphics.RGB(0.12, 0.12, 0.14)),
		Fullscreen: cfg.Fullscreen,
		Size:       graphics.Size{Width: cfg.Width, Height: cfg.Height},
	})
	if err := adapter.SetVisible(true); err != nil {
		return err
	}

	for running {
		if wait, ok := registry.Timer().NextWait(time.Now()); ok {
			app.WaitEventsTimeout(wait.Seconds())
			registry.Timer().Fire(time.Now())
		} else {
			app.WaitEvents()
		}
	}
	return nil
}

// buildScene assembles a static tree exercising every item kind.
func buildScene(width, height float64, withText bool) *itemtree.Tree {
	tree := itemtree.NewTree()
	root := tree.Add(-1, graphics.NewRect(0, 0, width, height), itemtree.Rectangle{})

	tree.Add(root, graphics.NewRect(40, 60, 220, 140), itemtree.BoxShadow{
		Color:   graphics.Color{A: 0.5},
		OffsetX: 8,
		OffsetY: 8,
		Blur:    16,
		Radius:  12,
	})
	card := tree.Add(root, graphics.NewRect(40, 60, 220, 140), itemtree.BorderRectangle{
		Fill:        graphics.Solid(graphics.RGB(0.95, 0.95, 0.97)),
		Border:      graphics.Solid(graphics.RGB(0.2, 0.45, 0.85)),
		BorderWidth: 3,
		Radii:       graphics.UniformRadii(12),
		Clip:        true,
	})
	tree.Add(card, graphics.NewRect(-20, 100, 260, 60), itemtree.Rectangle{
		Fill: graphics.Solid(graphics.RGB(0.2, 0.45, 0.85)),
	})

	gradient := graphics.LinearGradientBrush{
		Angle: 135,
		Stops: []graphics.GradientStop{
			{Position: 0, Color: graphics.RGB(0.95, 0.35, 0.25)},
			{Position: 1, Color: graphics.RGB(0.95, 0.75, 0.2)},
		},
	}
	tree.Add(root, graphics.NewRect(320, 60, 180, 140), itemtree.Rectangle{Fill: gradient})

	group := tree.Add(root, graphics.NewRect(540, 60, 200, 140), itemtree.Opacity{Opacity: 0.6})
	tree.Add(group, graphics.NewRect(0, 0, 120, 120), itemtree.Rectangle{
		Fill: graphics.Solid(graphics.RGB(0.3, 0.8, 0.4)),
	})
	tree.Add(group, graphics.NewRect(60, 20, 120, 120), itemtree.Rectangle{
		Fill: graphics.Solid(graphics.RGB(0.85, 0.3, 0.6)),
	})

	tree.Add(root, graphics.NewRect(40, 260, 200, 160), itemtree.Path{
		Geometry:    starPath(100, 80, 70, 32),
		Fill:        graphics.Solid(graphics.RGB(0.95, 0.8, 0.2)),
		Stroke:      graphics.Solid(graphics.RGB(0.4, 0.3, 0.05)),
		StrokeWidth: 3,
		AntiAlias:   true,
	})

	tree.Add(root, graphics.NewRect(320, 260, 300, 200), itemtree.Image{
		Source:  checkerboard(32, 32),
		Fit:     itemtree.ImageFitFill,
		TilingH: itemtree.TilingRepeat,
		TilingV: itemtree.TilingRepeat,
	})

	if withText {
		tree.Add(root, graphics.NewRect(40, 460, 600, 60), itemtree.Text{
			Text:     "Hello from the scene renderer",
			Font:     textlayout.FontRequest{PixelSize: 28},
			Color:    graphics.Solid(graphics.White),
			Overflow: textlayout.OverflowElide,
		})
	}
	return tree
}

func starPath(cx, cy, outer, inner float64) *painter.Path {
	p := painter.NewPath()
	const points = 5
	for i := 0; i < points*2; i++ {
		angle := float64(i)*math.Pi/points - math.Pi/2
		r := outer
		if i%2 == 1 {
			r = inner
		}
		x := cx + r*math.Cos(angle)
		y := cy + r*math.Sin(angle)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
	return p
}

func checkerboard(w, h int) *graphics.Pixmap {
	pm := graphics.NewPixmap(w, h)
	light := graphics.RGB(0.85, 0.85, 0.85)
	dark := graphics.RGB(0.35, 0.35, 0.35)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := light
			if (x/8+y/8)%2 == 1 {
				c = dark
			}
			pm.SetPixel(x, y, c)
		}
	}
	return pm
}
