package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the game window.
type Window struct {
	Title         string
	Width, Height int32
	FPS           int32
	// OnClose runs while the GL context still exists, to free GPU resources.
	OnClose func()
}

// DefaultWindow is a 1280x720 window capped at 60 FPS.
func DefaultWindow(title string) Window {
	return Window{Title: title, Width: 1280, Height: 720, FPS: 60}
}

// Run opens the window and runs the main loop until it is closed. Each frame it calls update
// with the frame time in seconds, then clears the screen and calls draw.
// ESC toggles the console, so the window closes only via its close button or when update
// returns true.
func Run(win Window, update func(dt float32) (quit bool), draw func()) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(win.Width, win.Height, win.Title)
	defer rl.CloseWindow()
	if win.OnClose != nil {
		defer win.OnClose()
	}

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(win.FPS)

	for !rl.WindowShouldClose() {
		if update(rl.GetFrameTime()) {
			return
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(30, 32, 38, 255))
		draw()
		rl.EndDrawing()
	}
}
