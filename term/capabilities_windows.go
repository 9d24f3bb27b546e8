//go:build windows

package term

func platformDefaultVendor() string { return "windows-console" }
