package ui

import (
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LessonBoard/internal/state"
)

var palette = []color.Color{
	color.Black,
	color.NRGBA{R: 255, A: 255},         // Red
	color.NRGBA{G: 255, A: 255},         // Green
	color.NRGBA{B: 255, A: 255},         // Blue
	color.NRGBA{R: 255, G: 255, A: 255}, // Yellow
}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

const (
	toolBrushLabel  = "Brush"
	toolEraserLabel = "Eraser"
)

func toolForLabel(label string) (state.Tool, error) {
	return state.ParseTool(strings.ToLower(label))
}

func labelForTool(t state.Tool) string {
	if t == state.ToolEraser {
		return toolEraserLabel
	}
	return toolBrushLabel
}

// NewToolbar builds the tool, colour and size controls for board.
func NewToolbar(board *BoardWidget) fyne.CanvasObject {
	ctrl := board.Controller()

	tools := widget.NewRadioGroup([]string{toolBrushLabel, toolEraserLabel}, func(choice string) {
		tool, err := toolForLabel(choice)
		if err != nil {
			return
		}
		ctrl.SetTool(tool)
	})
	tools.Horizontal = true
	tools.Required = true
	tools.SetSelected(labelForTool(ctrl.Tool()))

	hex := widget.NewEntry()
	hex.SetText(ctrl.Color())
	hex.OnSubmitted = func(text string) {
		if err := ctrl.SetColor(text); err != nil {
			board.SetStatus("Unknown color " + text)
			return
		}
		hex.SetText(ctrl.Color())
	}

	onColorTapped := func(c color.Color) {
		ctrl.SetColor(state.FormatColor(c))
		hex.SetText(ctrl.Color())
	}
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, onColorTapped))
	}

	brush := widget.NewSlider(1.0, 50.0)
	brush.SetValue(ctrl.BrushSize())
	brush.OnChanged = func(v float64) { ctrl.SetBrushSize(v) }

	eraser := widget.NewSlider(2.0, 80.0)
	eraser.SetValue(ctrl.EraserRadius())
	eraser.OnChanged = func(v float64) { ctrl.SetEraserRadius(v) }

	clearButton := widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), func() {
		ctrl.Clear()
		board.SetStatus("Cleared")
	})

	sized := func(o fyne.CanvasObject) fyne.CanvasObject {
		return container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), o)
	}
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tools,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		sized(hex),
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sized(brush),
		widget.NewLabel("Eraser:"),
		sized(eraser),
		layout.NewSpacer(),
		clearButton,
	)
}
