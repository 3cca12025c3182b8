// Package draw lays out text on raster images.
//
// A Drawer fits text into a rectangular field: it picks the largest font
// size that fits, optionally word-wraps it, and pins it to the field with a
// two or three character anchor code. The first character places the text
// horizontally (l, m, r), the second vertically (a for the ascender line,
// m for the middle, d for the descender line). Multi-line text takes an
// optional third character placing the whole block of lines in the field.
//
//	img := image.NewRGBA(image.Rect(0, 0, 500, 500))
//	d := draw.NewDrawer(img, draw.NewFontSet("assets/fonts"))
//	err := d.Text(draw.XYXY(25, 25, 475, 75), "Admit one", "mm", "goregular",
//	    draw.Style{Fill: color.Black}, draw.WithMaxFontSize(30))
//
// Fields are given either in corner form (XYXY) or as an anchor point with
// a width and height (XYWH). Inverted text is drawn upside down together
// with the space around it, for labels read from the other side of a
// printed ticket.
package draw
