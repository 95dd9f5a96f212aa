//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa -framework AppKit
#import <Cocoa/Cocoa.h>
#import <AppKit/AppKit.h>

void hideDockIcon(void) {
    [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
}

int appIsActive(void) {
    return [NSApp isActive] ? 1 : 0;
}

void activateApp(void) {
    [NSApp activateIgnoringOtherApps:YES];
}
*/
import "C"
import "log"

// HideDockIcon turns the app into a menu bar only accessory
func HideDockIcon() {
	log.Println("[PLATFORM] Hiding dock icon")
	C.hideDockIcon()
}

func appIsActive() bool {
	return C.appIsActive() == 1
}

func activateApp() {
	C.activateApp()
}
