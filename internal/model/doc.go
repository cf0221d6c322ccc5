package model

// Package model defines the domain data shared across the discovery screen:
// feed items and their categories, gesture state, classified outcomes and the
// derived per-card transforms. Types are plain values so they can be copied
// freely between the UI goroutine and background persistence calls.
