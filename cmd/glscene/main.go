package main

import (
	"os"
	"runtime"

	"GLScene/internal/config"
	"GLScene/internal/engine"
	"GLScene/internal/gpu"
	"GLScene/internal/logger"

	"go.uber.org/zap"
)

func init() {
	// GLFW and the GL context must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		logger.Init()
		logger.Log.Error("Could not load configuration", zap.Error(err))
		return 1
	}
	logger.InitWithLevel(cfg.Log.Level, cfg.Log.Development)
	defer logger.Sync()

	win, err := engine.NewGLFWWindow(cfg.Window)
	if err != nil {
		logger.Log.Error("Startup failed", zap.Error(err))
		return 1
	}
	defer win.Destroy()

	engine.NewApp(cfg).Run(win, gpu.NewGLDevice())
	return 0
}
