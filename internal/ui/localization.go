package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyDiscoverTitle    = "discover_title"
	KeySettings         = "settings"
	KeyFile             = "file"
	KeyLanguage         = "language"
	KeyReload           = "reload"
	KeySkip             = "skip"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeyClose            = "close"
	KeyOpenMap          = "open_map"
	KeyAllCaughtUp      = "all_caught_up"
	KeyLoading          = "loading"
	KeyLoadFailed       = "load_failed"
	KeySaveFailed       = "save_failed"
	KeySettingsSaved    = "settings_saved"
	KeySwipeThreshold   = "swipe_threshold"
	KeyVisibleCards     = "visible_cards"
	KeyCategory         = "category"
	KeyBackendURL       = "backend_url"
	KeyUserID           = "user_id"
	KeyPriceLevel       = "price_level"
	KeyCategoryAll      = "category_all"
	KeyCategoryFood     = "category_food"
	KeyCategorySights   = "category_sights"
	KeyCategoryHiking   = "category_hiking"
	KeyErrorOpeningLink = "error_opening_link"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"zh": "繁體中文",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "Peakfindr",
		KeyDiscoverTitle:    "Today's Discovery",
		KeySettings:         "Settings",
		KeyFile:             "File",
		KeyLanguage:         "Language",
		KeyReload:           "Reload",
		KeySkip:             "Skip",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeyClose:            "Close",
		KeyOpenMap:          "Open in Maps",
		KeyAllCaughtUp:      "You're all caught up!",
		KeyLoading:          "Finding places...",
		KeyLoadFailed:       "Couldn't load places",
		KeySaveFailed:       "Couldn't save",
		KeySettingsSaved:    "Settings saved successfully!",
		KeySwipeThreshold:   "Swipe distance",
		KeyVisibleCards:     "Cards in stack",
		KeyCategory:         "Category",
		KeyBackendURL:       "Backend URL",
		KeyUserID:           "User ID",
		KeyPriceLevel:       "Price",
		KeyCategoryAll:      "All",
		KeyCategoryFood:     "Food",
		KeyCategorySights:   "Sights",
		KeyCategoryHiking:   "Hiking",
		KeyErrorOpeningLink: "Error opening link",
	}

	// Traditional Chinese texts
	l.texts["zh"] = map[string]string{
		KeyAppTitle:         "Peakfindr",
		KeyDiscoverTitle:    "今日發現",
		KeySettings:         "設定",
		KeyFile:             "檔案",
		KeyLanguage:         "語言",
		KeyReload:           "重新載入",
		KeySkip:             "略過",
		KeySave:             "收藏",
		KeyCancel:           "取消",
		KeyClose:            "關閉",
		KeyOpenMap:          "在地圖中開啟",
		KeyAllCaughtUp:      "已經全部看完了！",
		KeyLoading:          "正在尋找地點...",
		KeyLoadFailed:       "無法載入地點",
		KeySaveFailed:       "無法收藏",
		KeySettingsSaved:    "設定已儲存！",
		KeySwipeThreshold:   "滑動距離",
		KeyVisibleCards:     "堆疊卡片數",
		KeyCategory:         "類別",
		KeyBackendURL:       "伺服器網址",
		KeyUserID:           "使用者 ID",
		KeyPriceLevel:       "價位",
		KeyCategoryAll:      "全部",
		KeyCategoryFood:     "美食",
		KeyCategorySights:   "景點",
		KeyCategoryHiking:   "行山",
		KeyErrorOpeningLink: "無法開啟連結",
	}
}

// CategoryText returns the localized title for a category
func (l *Localization) CategoryText(category string) string {
	switch category {
	case "food":
		return l.GetText(KeyCategoryFood)
	case "sights":
		return l.GetText(KeyCategorySights)
	case "hiking":
		return l.GetText(KeyCategoryHiking)
	default:
		return l.GetText(KeyCategoryAll)
	}
}
