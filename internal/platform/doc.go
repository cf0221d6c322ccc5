package platform

// Package platform contains OS integration glue: config file locations,
// directory creation, and handing URLs to the system browser.
