// Package colors models terminal colors and text styles and renders them as
// SGR escape sequences.
//
// It also provides the static reference chart and the interactive
// [Picker] used by the colors command.
package colors
