package cmd

import "github.com/fatih/color"

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	titleColor   = color.New(color.FgCyan, color.Bold)
)

func printSuccess(format string, args ...interface{}) {
	successColor.Printf("✅ "+format+"\n", args...)
}

func printError(format string, args ...interface{}) {
	errorColor.Printf("❌ "+format+"\n", args...)
}

func printTitle(format string, args ...interface{}) {
	titleColor.Printf("🎯 "+format+"\n", args...)
}
