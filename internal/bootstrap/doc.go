package bootstrap

// Package bootstrap assembles the configuration, logger, backend client and
// discovery session behind each front-end, and runs the desktop and
// terminal apps on top of them.
