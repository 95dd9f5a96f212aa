package platform

// BringToFront activates the app if another app has focus.
// It reports whether the app had lost focus.
func BringToFront() bool {
	if appIsActive() {
		return false
	}
	activateApp()
	return true
}
