//go:build !windows

package util

func registeredApp(string) (string, bool) { return "", false }
