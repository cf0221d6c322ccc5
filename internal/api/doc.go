package api

// Package api is the HTTP client for the Peakfindr backend. It loads the
// discovery feed and records save/like interactions for one user.
