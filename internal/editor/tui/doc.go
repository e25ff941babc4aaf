// Package tui implements the interactive parameter editor for a device
// channel.
//
// The editor renders the parameter catalogue exposed by the channel's
// configuration handlers: one row per descriptor with its label,
// description, and current value. Boolean parameters are toggled with
// space/enter; applying the edits funnels them through the handler's
// update protocol, so only real changes are reported back to the caller.
//
// The model is a standard bubbletea Model; run it with tea.NewProgram and
// inspect Result() afterwards to find out whether anything changed.
package tui
