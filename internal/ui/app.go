package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

// RunApp opens the board window and blocks until it is closed.
func RunApp(title string, width, height float32, board *BoardWidget) {
	myApp := app.NewWithID("io.lessonboard")
	myWindow := myApp.NewWindow(title)
	myWindow.Resize(fyne.NewSize(width, height))

	toolbar := NewToolbar(board)
	content := container.NewBorder(toolbar, board.StatusBar(), nil, nil, board)

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
}
