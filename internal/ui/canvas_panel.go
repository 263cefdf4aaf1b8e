package ui

// RenderCanvasPanel wraps the gesture canvas with a border. The canvas is
// drawn by the canvas package so the border stays a pure layout concern.
func RenderCanvasPanel(width, height int, content string, dragging bool) string {
	style := StylePanelBorder
	if dragging {
		style = StylePanelActive
	}
	return style.Width(width - 2).Height(height - 2).Render(content)
}
