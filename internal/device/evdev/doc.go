// Package evdev captures key transitions from a Linux input device.
//
// The device is normally grabbed so the kernel stops delivering its events
// to anything else; the remapper re-emits them through uinput. Auto-repeat
// events are dropped since the virtual keyboard generates its own.
package evdev
