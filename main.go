package main

import (
	"errors"
	"fmt"
	"net/http"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ytget/transfer-panel/internal/config"
	"github.com/ytget/transfer-panel/internal/logging"
	"github.com/ytget/transfer-panel/internal/panel"
	"github.com/ytget/transfer-panel/internal/platform"
	"github.com/ytget/transfer-panel/internal/tracker"
	"github.com/ytget/transfer-panel/internal/transfer"
	"github.com/ytget/transfer-panel/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.transfer-panel"
	AppName = "Transfer Panel"

	WindowWidth  = 720
	WindowHeight = 480
)

func main() {
	env := config.LoadEnvOrDefault()
	logger := logging.NewOrNop(logging.Config{
		Level:       env.Log.Level,
		Development: env.Log.Development,
	})
	defer logger.Sync() //nolint:errcheck

	logger.Info("starting", zap.String("app", AppName), zap.String("version", version))

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	transferDir := settings.GetTransferDirectory()
	if err := platform.CreateDirectoryIfNotExists(transferDir); err != nil {
		logger.Error("failed to ensure transfer directory", zap.String("dir", transferDir), zap.Error(err))
	}

	localization := ui.NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	progressPanel := panel.New(
		panel.WithLogger(logger.Named("panel")),
		panel.WithAnimationDuration(settings.GetAnimationDuration()),
		panel.WithCollapsed(settings.GetStartCollapsed()),
	)

	var (
		metrics       *transfer.Metrics
		metricsServer *http.Server
	)
	if env.MetricsAddr != "" {
		registry := prometheus.NewRegistry()
		metrics = transfer.NewMetrics(registry)
		metricsServer = serveMetrics(env.MetricsAddr, registry, logger.Named("metrics"))
	}

	transferSvc := transfer.NewService(transferDir, settings.GetMaxParallelTransfers(),
		transfer.WithLogger(logger.Named("transfer")),
		transfer.WithMetrics(metrics),
		transfer.WithHTTPClient(transfer.NewHTTPClient(env.HTTP, logger.Named("http"))),
		transfer.WithProgressInterval(env.ProgressInterval),
	)

	transferTracker := tracker.New(progressPanel, transferSvc,
		tracker.WithLogger(logger.Named("tracker")),
		tracker.WithLinger(settings.GetCompletedLinger()),
		tracker.WithStatusLabel(localization.StatusLabel),
		tracker.WithRevealer(platform.OpenFileInManager),
		tracker.WithRevealOnComplete(settings.GetRevealOnComplete()),
	)

	rootUI := ui.NewRootUI(myWindow, settings, localization, progressPanel, transferTracker, transferSvc, logger.Named("ui"))

	myWindow.SetOnClosed(func() {
		rootUI.Close()
		transferTracker.Close()
		transferSvc.Close()
		progressPanel.Close()
		if metricsServer != nil {
			_ = metricsServer.Close()
		}
		logger.Info("stopped")
	})

	myWindow.ShowAndRun()
}

// serveMetrics exposes registry on addr/metrics until the server is closed.
func serveMetrics(addr string, registry *prometheus.Registry, logger *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Info("serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
