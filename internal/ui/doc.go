// Package ui renders gamm console output.
//
// Formatters colour semantic fragments with fatih/color and fall back to plain
// decorations when NO_COLOR is set. Console writes banners, key/value detail
// lines and status marks. ConsoleCommandEventLogger reports external command
// lifecycle events through zap.
package ui
