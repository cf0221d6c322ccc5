package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/peakfindr/peakfindr/internal/config"
	"github.com/peakfindr/peakfindr/internal/discovery"
	"github.com/peakfindr/peakfindr/internal/feed"
	"github.com/peakfindr/peakfindr/internal/model"
	"github.com/peakfindr/peakfindr/internal/platform"
)

// LoadTimeout bounds one feed load started from the UI
const LoadTimeout = 30 * time.Second

// DiscoveryScreen is the main window content: category bar, card stack and
// swipe actions, with loading, empty and error states in place of the stack.
type DiscoveryScreen struct {
	window       fyne.Window
	app          fyne.App
	session      *discovery.Session
	cfg          *config.Config
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI
	logger       *zap.Logger

	// UI components
	titleLabel      *widget.Label
	stack           *CardStack
	categoryButtons map[model.Category]*widget.Button
	skipBtn         *widget.Button
	saveBtn         *widget.Button
	reloadBtn       *widget.Button
	loadingBox      *fyne.Container
	emptyBox        *fyne.Container
	emptyLabel      *widget.Label
	errorBox        *fyne.Container
	errorLabel      *widget.Label
	errorReloadBtn  *widget.Button
}

// NewDiscoveryScreen builds the screen into window and subscribes it to
// session. cfg is the effective configuration the session was built from.
func NewDiscoveryScreen(window fyne.Window, app fyne.App, session *discovery.Session, cfg *config.Config, logger *zap.Logger) *DiscoveryScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ds := &DiscoveryScreen{
		window:       window,
		app:          app,
		session:      session,
		cfg:          cfg,
		settings:     settings,
		localization: localization,
		mobile:       NewMobileUI(app),
		logger:       logger.Named("ui"),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ds.setupUI()

	session.OnChange(func() { fyne.Do(ds.refresh) })
	session.OnOpenDetail(func(item model.FeedItem) { fyne.Do(func() { ds.showDetail(item) }) })
	session.OnPersistenceFailure(func(out model.Outcome, err error) {
		fyne.Do(func() { ds.onPersistenceFailure(out, err) })
	})

	ds.logger.Debug("Discovery screen initialized")
	return ds
}

// setupUI creates and arranges all UI components
func (ds *DiscoveryScreen) setupUI() {
	ds.createMenu()

	ds.titleLabel = widget.NewLabelWithStyle(ds.localization.GetText(KeyDiscoverTitle), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})

	settingsBtn := widget.NewButton(IconSettings, ds.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	var header *fyne.Container
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewBorder(nil, nil, logoImage, settingsBtn, ds.titleLabel)
	} else {
		header = container.NewBorder(nil, nil, nil, settingsBtn, ds.titleLabel)
	}

	ds.stack = NewCardStack(ds.session, ds.localization, ds.mobile, ds.logger, ds.onGestureError)

	ds.loadingBox = container.NewCenter(container.NewVBox(
		widget.NewProgressBarInfinite(),
		widget.NewLabelWithStyle(ds.localization.GetText(KeyLoading), fyne.TextAlignCenter, fyne.TextStyle{}),
	))

	ds.emptyLabel = widget.NewLabelWithStyle(ds.localization.GetText(KeyAllCaughtUp), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ds.reloadBtn = widget.NewButton(IconReload+" "+ds.localization.GetText(KeyReload), ds.Reload)
	ds.emptyBox = container.NewCenter(container.NewVBox(ds.emptyLabel, ds.reloadBtn))

	ds.errorLabel = widget.NewLabel("")
	ds.errorLabel.Wrapping = fyne.TextWrapWord
	ds.errorLabel.Alignment = fyne.TextAlignCenter
	ds.errorReloadBtn = widget.NewButton(IconReload+" "+ds.localization.GetText(KeyReload), ds.Reload)
	ds.errorReloadBtn.Importance = widget.HighImportance
	ds.errorBox = container.NewCenter(container.NewVBox(ds.errorLabel, ds.errorReloadBtn))

	center := container.NewStack(ds.stack, ds.loadingBox, ds.emptyBox, ds.errorBox)

	ds.skipBtn = ds.mobile.CreateActionButton(IconSkip+" "+ds.localization.GetText(KeySkip), func() {
		ds.onAction(model.OutcomeSkip)
	})
	ds.saveBtn = ds.mobile.CreateActionButton(IconSave+" "+ds.localization.GetText(KeySave), func() {
		ds.onAction(model.OutcomeSave)
	})
	ds.saveBtn.Importance = widget.HighImportance

	top := container.NewVBox(header, ds.createCategoryBar())
	var content *fyne.Container
	if ds.mobile.IsLandscape() {
		actions := container.NewVBox(layout.NewSpacer(), ds.saveBtn, ds.skipBtn, layout.NewSpacer())
		content = container.NewBorder(top, nil, nil, actions, center)
	} else {
		actions := container.NewHBox(layout.NewSpacer(), ds.skipBtn, ds.saveBtn, layout.NewSpacer())
		content = container.NewBorder(top, actions, nil, nil, center)
	}

	ds.window.SetContent(content)
	ds.refresh()
}

// createCategoryBar creates one button per category
func (ds *DiscoveryScreen) createCategoryBar() fyne.CanvasObject {
	ds.categoryButtons = make(map[model.Category]*widget.Button)
	bar := container.NewHBox()
	for _, c := range model.Categories() {
		category := c // Capture for closure
		btn := widget.NewButton(ds.categoryLabel(category), func() {
			ds.onCategoryChange(category)
		})
		ds.categoryButtons[category] = btn
		bar.Add(btn)
	}
	ds.updateCategoryButtons()
	return container.NewHScroll(bar)
}

func (ds *DiscoveryScreen) categoryLabel(c model.Category) string {
	return categoryGlyph(c) + " " + ds.localization.CategoryText(string(c))
}

// updateCategoryButtons highlights the active category
func (ds *DiscoveryScreen) updateCategoryButtons() {
	active := ds.session.Category()
	for c, btn := range ds.categoryButtons {
		if c == active {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

// createMenu creates the application menu
func (ds *DiscoveryScreen) createMenu() {
	settingsItem := fyne.NewMenuItem(ds.localization.GetText(KeySettings), ds.onShowSettings)
	reloadItem := fyne.NewMenuItem(ds.localization.GetText(KeyReload), ds.Reload)

	// Language submenu
	languageMenu := fyne.NewMenu(ds.localization.GetText(KeyLanguage))
	for code, name := range ds.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ds.onLanguageChange(langCode)
		})
		langItem.Checked = ds.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ds.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ds.localization.GetText(KeyFile), reloadItem, settingsItem),
		languageMenu,
	))
}

// Reload starts a feed load in the background
func (ds *DiscoveryScreen) Reload() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), LoadTimeout)
		defer cancel()
		if err := ds.session.Load(ctx); err != nil {
			ds.logger.Warn("Reload failed", zap.Error(err))
		}
	}()
}

// refresh shows the part of the screen matching the session state. Must run
// on the UI goroutine.
func (ds *DiscoveryScreen) refresh() {
	state, err := ds.session.State()
	ds.stack.Sync()
	hasCards := ds.stack.Len() > 0

	ds.loadingBox.Hide()
	ds.emptyBox.Hide()
	ds.errorBox.Hide()

	switch {
	case state == discovery.StateLoadFailed:
		ds.errorLabel.SetText(ds.loadErrorText(err))
		ds.errorBox.Show()
	case state == discovery.StateLoading && !hasCards:
		ds.loadingBox.Show()
	case !hasCards:
		ds.emptyBox.Show()
	}

	if hasCards {
		ds.skipBtn.Enable()
		ds.saveBtn.Enable()
	} else {
		ds.skipBtn.Disable()
		ds.saveBtn.Disable()
	}
}

// loadErrorText renders a load failure for the error state
func (ds *DiscoveryScreen) loadErrorText(err error) string {
	text := ds.localization.GetText(KeyLoadFailed)
	var lerr *discovery.LoadError
	if errors.As(err, &lerr) && lerr.Err != nil {
		text += "\n" + lerr.Err.Error()
	}
	return text
}

// onAction plays a full swipe on the top card
func (ds *DiscoveryScreen) onAction(kind model.OutcomeKind) {
	if _, err := ds.session.Swipe(context.Background(), kind); err != nil {
		if errors.Is(err, feed.ErrEmptyFeed) || errors.Is(err, discovery.ErrGestureActive) {
			return
		}
		ds.onGestureError(err)
	}
}

// onGestureError logs dispatch errors raised by pointer input
func (ds *DiscoveryScreen) onGestureError(err error) {
	ds.logger.Warn("Gesture dispatch failed", zap.Error(err))
}

// onCategoryChange switches the category filter
func (ds *DiscoveryScreen) onCategoryChange(c model.Category) {
	ds.session.SetCategory(c)
	ds.settings.SetCategory(c)
	ds.updateCategoryButtons()
}

// onLanguageChange handles language change
func (ds *DiscoveryScreen) onLanguageChange(langCode string) {
	ds.localization.SetLanguage(langCode)
	ds.settings.SetLanguage(langCode)
	ds.refreshUITexts()
	ds.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ds *DiscoveryScreen) refreshUITexts() {
	ds.window.SetTitle(ds.localization.GetText(KeyAppTitle))
	ds.titleLabel.SetText(ds.localization.GetText(KeyDiscoverTitle))
	ds.emptyLabel.SetText(ds.localization.GetText(KeyAllCaughtUp))
	ds.reloadBtn.SetText(IconReload + " " + ds.localization.GetText(KeyReload))
	ds.errorReloadBtn.SetText(IconReload + " " + ds.localization.GetText(KeyReload))
	ds.skipBtn.SetText(IconSkip + " " + ds.localization.GetText(KeySkip))
	ds.saveBtn.SetText(IconSave + " " + ds.localization.GetText(KeySave))
	for c, btn := range ds.categoryButtons {
		btn.SetText(ds.categoryLabel(c))
	}
	ds.refresh()
}

// onShowSettings shows the settings dialog
func (ds *DiscoveryScreen) onShowSettings() {
	NewSettingsDialog(ds.settings, ds.localization, ds.window, ds.onSettingsSaved).Show()
}

// onSettingsSaved applies stored preferences to the running session
func (ds *DiscoveryScreen) onSettingsSaved() {
	cfg := *ds.cfg
	ds.settings.Apply(&cfg)
	ds.ApplyConfig(&cfg)
	ds.localization.SetLanguage(ds.settings.GetLanguage())
	ds.refreshUITexts()
	ds.createMenu()
}

// ApplyConfig pushes a new configuration into the session. Backend address
// and user changes take effect on the next start.
func (ds *DiscoveryScreen) ApplyConfig(cfg *config.Config) {
	if err := ds.session.Reconfigure(cfg.SwipeConfig(), cfg.StackConfig(), cfg.Category()); err != nil {
		ds.logger.Warn("Rejected configuration", zap.Error(err))
	}
	ds.cfg = cfg
	ds.updateCategoryButtons()
}

// onPersistenceFailure tells the user a save did not reach the backend
func (ds *DiscoveryScreen) onPersistenceFailure(out model.Outcome, err error) {
	if out.Kind != model.OutcomeSave {
		return
	}
	ds.logger.Debug("Showing save failure", zap.Stringer("outcome", out), zap.Error(err))
	ds.showToast(IconError + " " + ds.localization.GetText(KeySaveFailed))
}

// showDetail shows a tapped place
func (ds *DiscoveryScreen) showDetail(item model.FeedItem) {
	name := widget.NewLabelWithStyle(item.GetDisplayName(), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	meta := widget.NewLabel(formatMeta(item, ds.localization))
	desc := widget.NewLabel(item.Description)
	desc.Wrapping = fyne.TextWrapWord

	body := container.NewVBox(name, meta, desc)
	if tags := item.TagNames(); len(tags) > 0 {
		tagsLabel := widget.NewLabel(TagPrefix + strings.Join(tags, " "+TagPrefix))
		tagsLabel.Wrapping = fyne.TextWrapWord
		body.Add(tagsLabel)
	}
	if item.MapsURL != "" {
		body.Add(widget.NewButton(IconMap+" "+ds.localization.GetText(KeyOpenMap), func() {
			ds.openLink(item.MapsURL)
		}))
	}

	d := dialog.NewCustom(item.GetDisplayName(), ds.localization.GetText(KeyClose), container.NewVScroll(body), ds.window)
	d.Resize(fyne.NewSize(DetailDialogWidth, DetailDialogHeight))
	d.Show()
}

// openLink hands a maps link to the platform
func (ds *DiscoveryScreen) openLink(raw string) {
	u, err := platform.ValidateExternalURL(raw)
	if err == nil {
		err = ds.app.OpenURL(u)
	}
	if err != nil {
		ds.logger.Warn("Failed to open link", zap.String("url", raw), zap.Error(err))
		dialog.ShowError(fmt.Errorf("%s: %w", ds.localization.GetText(KeyErrorOpeningLink), err), ds.window)
	}
}

// showToast shows a short-lived message in the top-right corner
func (ds *DiscoveryScreen) showToast(message string) {
	label := widget.NewLabel(message)
	label.Truncation = fyne.TextTruncateEllipsis

	var toast *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() {
		if toast != nil {
			toast.Hide()
		}
	})
	closeBtn.Importance = widget.LowImportance

	toast = widget.NewPopUp(container.NewBorder(nil, nil, nil, closeBtn, label), ds.window.Canvas())
	canvasSize := ds.window.Canvas().Size()
	toast.Resize(fyne.NewSize(ToastWidth, ToastHeight))
	toast.ShowAtPosition(fyne.NewPos(canvasSize.Width-ToastWidth-ToastMargin, ToastMargin))

	// Auto-hide after configured time
	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toast.Hide)
	})
}
