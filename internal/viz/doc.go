// Package viz provides the terminal host for watching an arena live.
//
// The package implements an interactive TUI using the Bubble Tea
// framework:
//
//   - [Model]: 60 fps frame driver around one world
//   - [Canvas]: braille dot canvas with line and circle primitives
//   - [Theme]: five built-in color schemes, cycled at runtime
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset to the initial placement
//	N     - New arena (fresh seed)
//	T     - Cycle color themes
//	G     - Toggle GIF recording (writes capture.gif)
//	Y     - Copy a stats report to the system clipboard
//	Q     - Quit
//
// Mouse motion over the arena highlights the body under the cursor.
package viz
