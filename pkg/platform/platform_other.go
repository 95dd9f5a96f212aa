//go:build !darwin

package platform

// HideDockIcon is a no-op outside macOS
func HideDockIcon() {}

// Window managers elsewhere keep a full screen window in front
func appIsActive() bool { return true }

func activateApp() {}
