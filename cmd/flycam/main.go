// Command flycam flies a first-person camera over a ground grid.
//
// By default it opens a GLFW window: click to capture the pointer, then WASD/QE/Space/F to
// move, the mouse to look, the wheel to dolly and Left Shift to boost. With -remote it
// instead serves a WebSocket endpoint and flies the camera from a browser's forwarded input,
// logging the pose.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-fly/engine"
	"github.com/Carmen-Shannon/oxy-fly/engine/camera"
	"github.com/Carmen-Shannon/oxy-fly/engine/config"
	"github.com/Carmen-Shannon/oxy-fly/engine/gpu"
	"github.com/Carmen-Shannon/oxy-fly/engine/input"
	"github.com/Carmen-Shannon/oxy-fly/engine/remote"
	"github.com/Carmen-Shannon/oxy-fly/engine/window"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file; OXY_FLY_* environment variables override it")
	remoteMode := flag.Bool("remote", false, "serve browser input over WebSocket instead of opening a window")
	watch := flag.Bool("watch", true, "reload the settings file when it changes")
	verbose := flag.Bool("v", false, "log engagement, gesture and connection transitions")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	var transitions *log.Logger
	if *verbose {
		transitions = logger
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("[Flycam] %v", err)
	}

	bus := input.NewBus()
	var (
		host     engine.Host
		source   input.Source
		capture  input.PointerCapture
		win      window.Window
		renderer *gpu.GridRenderer
	)

	if *remoteMode {
		server := remote.NewServer(
			remote.WithBus(bus),
			remote.WithPath(settings.Remote.Path),
			remote.WithOrigins(settings.Remote.Origins...),
			remote.WithLogger(logger),
		)
		if _, err := server.Start(settings.Remote.Addr); err != nil {
			logger.Fatalf("[Flycam] %v", err)
		}
		host, source, capture = server, server, server
		if settings.Window.FrameLimit == 0 {
			settings.Window.FrameLimit = 60
		}
	} else {
		win = window.NewWindow(
			window.WithBus(bus),
			window.WithTitle(settings.Window.Title),
			window.WithWidth(settings.Window.Width),
			window.WithHeight(settings.Window.Height),
			window.WithLogger(transitions),
		)
		renderer, err = gpu.NewGridRenderer(win.SurfaceDescriptor(), win.Width(), win.Height())
		if err != nil {
			logger.Fatalf("[Flycam] %v", err)
		}
		defer renderer.Release()
		host, source, capture = win, win, win
	}

	cam := camera.NewCamera(
		camera.WithPosition(0, 2, 10),
		camera.WithAspect(float32(settings.Window.Width)/float32(settings.Window.Height)),
		camera.WithNear(0.1),
		camera.WithFar(1000),
	)

	pose := camera.NewPoseCapture(cam, append(settings.PoseCaptureOptions(),
		settings.InitialLook(),
		camera.WithPointerCapture(capture),
		camera.WithPoseCaptureLogger(transitions),
	)...)
	motion := camera.NewMotionController(cam, pose, append(settings.MotionOptions(),
		camera.WithMotionLogger(transitions),
	)...)
	controls := camera.NewFlyControls(source, pose, motion, append(settings.FlyControlsOptions(),
		camera.WithFlyControlsLogger(transitions),
	)...)
	defer controls.Close()

	if win != nil {
		win.SetResizeCallback(func(width, height int) {
			if height > 0 {
				cam.SetAspect(float32(width) / float32(height))
			}
			renderer.Resize(width, height)
		})
	}

	var watcher *config.Watcher
	if *watch && *configPath != "" {
		watcher, err = config.NewWatcher(*configPath, config.WithWatchLogger(logger))
		if err != nil {
			logger.Printf("[Flycam] settings reload disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	eng := engine.NewEngine(
		engine.WithHost(host),
		engine.WithBus(bus),
		engine.WithProfiling(settings.Profiling),
		engine.WithRenderFrameLimit(float64(settings.Window.FrameLimit)),
		engine.WithLogger(logger),
	)

	lastReport := time.Now()
	eng.SetTickCallback(func(dt float32) {
		if watcher != nil {
			select {
			case s := <-watcher.Updates:
				config.Apply(s, controls)
				logger.Printf("[Flycam] settings applied")
			case err := <-watcher.Errors:
				logger.Printf("[Flycam] settings rejected: %v", err)
			default:
			}
		}

		controls.Update(dt)

		if time.Since(lastReport) >= time.Second {
			lastReport = time.Now()
			p := cam.Position()
			v := motion.Velocity()
			logger.Printf("[Flycam] pos=(%.2f, %.2f, %.2f) yaw=%.2f pitch=%.2f speed=(%.2f, %.2f, %.2f) engaged=%t",
				p[0], p[1], p[2], pose.Yaw(), pose.Pitch(), v.Forward, v.Strafe, v.Vertical, pose.Engaged())
		}
	})

	if renderer != nil {
		eng.SetRenderCallback(func(float32) {
			if err := renderer.Draw(cam); err != nil {
				logger.Printf("[Flycam] draw: %v", err)
			}
		})
	}

	eng.Run()
}
