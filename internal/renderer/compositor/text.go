package compositor

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Метрики берутся из basicfont 7x13 и масштабируются к нужному кеглю.
const baseFontHeight = 13

// TextWidth оценивает ширину строки в пикселях для кегля size.
func TextWidth(s string, size int) int {
	if s == "" || size <= 0 {
		return 0
	}
	w := font.MeasureString(basicfont.Face7x13, s).Ceil()
	return (w*size + baseFontHeight - 1) / baseFontHeight
}
