package bootstrap

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	hclog "github.com/hashicorp/go-hclog"

	addoninadapter "github.com/addielponce/anki-progress-circle/internal/modules/addon/adapter/in"
	addonoutadapter "github.com/addielponce/anki-progress-circle/internal/modules/addon/adapter/out"
	addonout "github.com/addielponce/anki-progress-circle/internal/modules/addon/port/out"
	addonservice "github.com/addielponce/anki-progress-circle/internal/modules/addon/service"
	addonusecase "github.com/addielponce/anki-progress-circle/internal/modules/addon/usecase"
	collectioninadapter "github.com/addielponce/anki-progress-circle/internal/modules/collection/adapter/in"
	collectionoutadapter "github.com/addielponce/anki-progress-circle/internal/modules/collection/adapter/out"
	collectionservice "github.com/addielponce/anki-progress-circle/internal/modules/collection/service"
	collectionusecase "github.com/addielponce/anki-progress-circle/internal/modules/collection/usecase"
	hookinadapter "github.com/addielponce/anki-progress-circle/internal/modules/hook/adapter/in"
	hookoutadapter "github.com/addielponce/anki-progress-circle/internal/modules/hook/adapter/out"
	hookin "github.com/addielponce/anki-progress-circle/internal/modules/hook/port/in"
	hookservice "github.com/addielponce/anki-progress-circle/internal/modules/hook/service"
	hookusecase "github.com/addielponce/anki-progress-circle/internal/modules/hook/usecase"
	overlayinadapter "github.com/addielponce/anki-progress-circle/internal/modules/overlay/adapter/in"
	overlayoutadapter "github.com/addielponce/anki-progress-circle/internal/modules/overlay/adapter/out"
	overlayservice "github.com/addielponce/anki-progress-circle/internal/modules/overlay/service"
	overlayusecase "github.com/addielponce/anki-progress-circle/internal/modules/overlay/usecase"
	progressinadapter "github.com/addielponce/anki-progress-circle/internal/modules/progress/adapter/in"
	progressoutadapter "github.com/addielponce/anki-progress-circle/internal/modules/progress/adapter/out"
	progressservice "github.com/addielponce/anki-progress-circle/internal/modules/progress/service"
	progressusecase "github.com/addielponce/anki-progress-circle/internal/modules/progress/usecase"
	settingsinadapter "github.com/addielponce/anki-progress-circle/internal/modules/settings/adapter/in"
	settingsoutadapter "github.com/addielponce/anki-progress-circle/internal/modules/settings/adapter/out"
	settingsservice "github.com/addielponce/anki-progress-circle/internal/modules/settings/service"
	settingsusecase "github.com/addielponce/anki-progress-circle/internal/modules/settings/usecase"
	"github.com/addielponce/anki-progress-circle/internal/platform/addonrpc"
	"github.com/addielponce/anki-progress-circle/internal/platform/clock"
	"github.com/addielponce/anki-progress-circle/internal/platform/config"
	"github.com/addielponce/anki-progress-circle/internal/platform/id"
	uiapp "github.com/addielponce/anki-progress-circle/internal/ui/app"
)

type App struct {
	Config config.Config
	Log    hclog.Logger

	ProgressCLI   progressinadapter.CLIHandler
	OverlayCLI    overlayinadapter.CLIHandler
	SettingsCLI   settingsinadapter.CLIHandler
	CollectionCLI collectioninadapter.CLIHandler
	HookCLI       hookinadapter.CLIHandler
	AddonCLI      addoninadapter.CLIHandler

	hookUC  hookin.Usecase
	host    addonout.Host
	closers []io.Closer
}

func New(cfg config.Config, log hclog.Logger) (*App, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}
	runID := ids.New()

	journal, err := progressoutadapter.NewSQLiteJournal(cfg.DBPath, runID)
	if err != nil {
		return nil, fmt.Errorf("new progress journal: %w", err)
	}
	app := &App{Config: cfg, Log: log}
	if closer, ok := journal.(io.Closer); ok {
		app.closers = append(app.closers, closer)
	}
	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(clk, ids, journal, log))

	overlayUC := overlayusecase.NewInteractor(overlayservice.NewOverlayService(
		overlayoutadapter.NewFileSurface(cfg.SurfacePath),
		log,
	))

	settingsUC := settingsusecase.NewInteractor(settingsservice.NewSettingsService(
		settingsoutadapter.NewFileStore(cfg.AddonsDir),
	))

	deckStore, err := collectionoutadapter.LoadDeckFixture(cfg.DecksPath)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("load decks: %w", err)
	}
	collectionUC := collectionusecase.NewInteractor(collectionservice.NewCollectionService(deckStore, log))

	hookUC := hookusecase.NewInteractor(
		hookservice.NewHookService(hookoutadapter.NewCollectionScheduler(collectionUC), log),
		progressUC,
		overlayUC,
		settingsUC,
		cfg.PackageName,
	)

	host := addonoutadapter.NewGRPCHost(log)
	addonUC := addonusecase.NewInteractor(addonservice.NewAddonService(
		addonoutadapter.NewFileManifestStore(cfg.DataDir),
		host,
		log,
	))

	app.ProgressCLI = progressinadapter.NewCLIHandler(progressUC)
	app.OverlayCLI = overlayinadapter.NewCLIHandler(overlayUC)
	app.SettingsCLI = settingsinadapter.NewCLIHandler(settingsUC, cfg.PackageName)
	app.CollectionCLI = collectioninadapter.NewCLIHandler(collectionUC)
	app.HookCLI = hookinadapter.NewCLIHandler(hookUC)
	app.AddonCLI = addoninadapter.NewCLIHandler(addonUC)
	app.hookUC = hookUC
	app.host = host
	log.Debug("app ready", "data", cfg.DataDir, "package", cfg.PackageName, "run", runID)
	return app, nil
}

// AddonServer exposes the hook usecase over the add-on contract.
func (a *App) AddonServer() addonrpc.AddonServer {
	return hookinadapter.NewGRPCServer(a.hookUC)
}

// Close stops add-on processes and releases the journal.
func (a *App) Close() error {
	if a.host != nil {
		a.host.Close()
	}
	var firstErr error
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// RunTUI starts the host simulator. With addonName set, events go to that
// add-on process instead of the in-process hook handler.
func RunTUI(app *App, addonName string) error {
	var driver uiapp.Driver = inProcessDriver{hook: app.HookCLI}
	if addonName != "" {
		driver = addonDriver{addon: app.AddonCLI, queue: app.AddonQueue, name: addonName}
	}
	model := uiapp.NewModel(driver, app.CollectionCLI, app.SettingsCLI, addonName)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
