package platform

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
	OSAndroid = "android"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand    = "open"
	XDGOpenCommand = "xdg-open"
	CmdCommand     = "cmd"
	StartCommand   = "start"
	WindowsCmdFlag = "/c"
)

// Config file location
const (
	AppDirName     = "peakfindr"
	ConfigFileName = "config.yaml"
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// IsAndroid reports whether the process runs inside an Android app
func IsAndroid() bool {
	return runtime.GOOS == OSAndroid ||
		os.Getenv("ANDROID_DATA") != "" ||
		os.Getenv("ANDROID_ROOT") != "" ||
		filepath.Base(os.Args[0]) == "libdist.so" // Fyne Android apps run as libdist.so
}

// DefaultConfigPath returns the per-user config file path
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, AppDirName, ConfigFileName), nil
}

// EnsureConfigDir creates the directory holding path
func EnsureConfigDir(path string) error {
	return CreateDirectoryIfNotExists(filepath.Dir(path))
}

// ValidateExternalURL accepts only absolute http(s) URLs
func ValidateExternalURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme: %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("url has no host: %s", raw)
	}
	return u, nil
}

// OpenURL hands an http(s) URL to the system browser
func OpenURL(raw string) error {
	u, err := ValidateExternalURL(raw)
	if err != nil {
		return err
	}

	var cmd *exec.Cmd
	switch {
	case IsAndroid():
		cmd = exec.Command("am", "start", "-a", "android.intent.action.VIEW", "-d", u.String())
	case runtime.GOOS == OSDarwin:
		cmd = exec.Command(OpenCommand, u.String())
	case runtime.GOOS == OSWindows:
		cmd = exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", u.String())
	case runtime.GOOS == OSLinux:
		cmd = exec.Command(XDGOpenCommand, u.String())
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
	return cmd.Start()
}
