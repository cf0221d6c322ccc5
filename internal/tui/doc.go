package tui

// Package tui is the terminal front-end. It drives the same discovery
// session as the desktop app, turning key presses into synthetic swipes
// and taps, and redraws on every session change.
