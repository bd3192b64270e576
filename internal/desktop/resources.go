package desktop

import (
	_ "embed"

	"fyne.io/fyne/v2"
)

//go:embed assets/icon.png
var iconData []byte

// Icon returns the application icon
func Icon() fyne.Resource {
	return fyne.NewStaticResource("icon.png", iconData)
}

// IconBytes returns the PNG bytes of the application icon
func IconBytes() []byte {
	return iconData
}
