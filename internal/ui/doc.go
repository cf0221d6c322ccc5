package ui

// Package ui contains the Fyne-based user interface. It renders the discovery
// card stack, maps mouse and touch input onto the discovery session, and
// hosts settings and detail dialogs. All UI strings are localized via
// Localization.
