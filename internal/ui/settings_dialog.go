package ui

import (
	"fmt"
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/peakfindr/peakfindr/internal/api"
	"github.com/peakfindr/peakfindr/internal/config"
	"github.com/peakfindr/peakfindr/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	baseURLEntry     *widget.Entry
	userIDEntry      *widget.Entry
	thresholdSlider  *widget.Slider
	thresholdLabel   *widget.Label
	visibleSelect    *widget.Select
	categorySelect   *widget.Select
	languageSelect   *widget.Select
	languageCodes    map[string]string // display name -> code
	categoryByOption map[string]model.Category
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// preferences were written.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.baseURLEntry = widget.NewEntry()
	sd.baseURLEntry.SetPlaceHolder(api.DefaultBaseURL)

	sd.userIDEntry = widget.NewEntry()
	sd.userIDEntry.SetPlaceHolder("00000000-0000-0000-0000-000000000000")

	sd.thresholdLabel = widget.NewLabel("")
	sd.thresholdSlider = widget.NewSlider(config.MinSwipeThreshold, config.MaxSwipeThreshold)
	sd.thresholdSlider.Step = 10
	sd.thresholdSlider.OnChanged = func(v float64) {
		sd.thresholdLabel.SetText(fmt.Sprintf("%.0f px", v))
	}

	visibleOptions := []string{}
	for n := config.MinVisibleCards; n <= config.MaxVisibleCards; n++ {
		visibleOptions = append(visibleOptions, strconv.Itoa(n))
	}
	sd.visibleSelect = widget.NewSelect(visibleOptions, nil)

	categoryOptions := []string{}
	sd.categoryByOption = make(map[string]model.Category)
	for _, c := range model.Categories() {
		option := sd.localization.CategoryText(string(c))
		categoryOptions = append(categoryOptions, option)
		sd.categoryByOption[option] = c
	}
	sd.categorySelect = widget.NewSelect(categoryOptions, nil)

	// Language selection, shown by display name
	languageOptions := []string{}
	sd.languageCodes = make(map[string]string)
	for code, name := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, name)
		sd.languageCodes[name] = code
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabel(t(KeyBackendURL)+":"),
		sd.baseURLEntry,

		widget.NewLabel(t(KeyUserID)+":"),
		sd.userIDEntry,

		widget.NewSeparator(),

		widget.NewLabel(t(KeySwipeThreshold)+":"),
		container.NewBorder(nil, nil, nil, sd.thresholdLabel, sd.thresholdSlider),

		widget.NewLabel(t(KeyVisibleCards)+":"),
		sd.visibleSelect,

		widget.NewLabel(t(KeyCategory)+":"),
		sd.categorySelect,

		widget.NewSeparator(),

		widget.NewLabel(t(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.baseURLEntry.SetText(sd.settings.GetBaseURL())
	sd.userIDEntry.SetText(sd.settings.GetUserID())
	sd.thresholdSlider.SetValue(sd.settings.GetSwipeThreshold())
	sd.visibleSelect.SetSelected(strconv.Itoa(sd.settings.GetVisibleCards()))
	sd.categorySelect.SetSelected(sd.localization.CategoryText(string(sd.settings.GetCategory())))

	lang := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == lang {
			sd.languageSelect.SetSelected(name)
		}
	}
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// save writes the form into the preferences
func (sd *SettingsDialog) save() {
	sd.settings.SetBaseURL(sd.baseURLEntry.Text)
	sd.settings.SetUserID(sd.userIDEntry.Text)
	sd.settings.SetSwipeThreshold(sd.thresholdSlider.Value)

	if n, err := strconv.Atoi(sd.visibleSelect.Selected); err == nil {
		sd.settings.SetVisibleCards(n)
	}
	if c, ok := sd.categoryByOption[sd.categorySelect.Selected]; ok {
		sd.settings.SetCategory(c)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
}
