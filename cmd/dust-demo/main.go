package main

import (
	"flag"
	"math/rand"
	"os"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/dust2d/dust"
)

func main() {
	configPath := flag.String("config", "dust.yaml", "demo config file (YAML, optional)")
	flag.Parse()

	cfg, err := dust.LoadDemoConfig(*configPath)
	if err != nil {
		dust.NewDefaultLogger("dust-demo", false).Errorf("config: %v", err)
		os.Exit(1)
	}
	logger := dust.NewDefaultLogger("dust-demo", cfg.Debug)

	window := dust.CreateWindowState(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	gpu := dust.CreateGpuState(window)

	backend, err := dust.BackendByName(cfg.Backend)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	renderer, err := dust.NewRenderer(gpu.Device(), gpu.Queue(), gpu.SurfaceFormat(), backend, cfg.Constants(), logger)
	if err != nil {
		logger.Errorf("renderer: %v", err)
		os.Exit(1)
	}
	defer renderer.Release()

	palette, err := dust.PaletteByName(cfg.Palette)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	scatter := func(width, height float32) {
		particles := dust.ScatterParticles(cfg.Particles.Count, width, height, palette, rng)
		if err := renderer.UploadInstances(dust.BuildInstances(particles)); err != nil {
			logger.Errorf("upload instances: %v", err)
		}
	}
	scatter(float32(cfg.Window.Width), float32(cfg.Window.Height))

	win := window.Window()
	var resizeW, resizeH int
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		resizeW, resizeH = width, height
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	for !win.ShouldClose() {
		glfw.PollEvents()

		if resizeW > 0 && resizeH > 0 {
			gpu.ResizeSurface(resizeW, resizeH)
			if err := renderer.SetViewport(float32(resizeW), float32(resizeH)); err != nil {
				logger.Errorf("resize: %v", err)
			} else {
				scatter(float32(resizeW), float32(resizeH))
			}
			resizeW, resizeH = 0, 0
		}

		if err := renderFrame(gpu, renderer); err != nil {
			logger.Warnf("frame skipped: %v", err)
		}
	}
}

func renderFrame(gpu *dust.GpuState, renderer *dust.Renderer) error {
	nextTexture, err := gpu.Surface().GetCurrentTexture()
	if err != nil {
		return err
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := gpu.Device().CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
			},
		},
	})
	defer pass.Release()

	renderer.Draw(pass)
	if err := pass.End(); err != nil {
		return err
	}

	cmdBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()

	gpu.Queue().Submit(cmdBuffer)
	gpu.Surface().Present()
	return nil
}
