// Package ui contains the Bubble Tea program that hosts the targeting overlay.
// The terminal is the drawing surface and the key source; the targeting rules
// live in internal/engine.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Every key press runs one engine frame in which that key is both pressed
//     and released. A periodic frameMsg runs key-less frames at the configured
//     rate so that visibility changes made by the hotkey listener reach the
//     screen without user input.
//   - The last engine.Plan is kept on the model and painted by View. A hidden
//     overlay renders nothing.
//
// State ownership:
//   - Visibility, the initiated latch and the focus state belong to the
//     visibility.Controller shared with the hotkey listener. The model only
//     holds what it needs to paint: the last plan and a status line.
package ui
