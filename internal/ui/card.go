package ui

import (
	"fmt"
	"image/color"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/peakfindr/peakfindr/internal/model"
)

var (
	_ fyne.Widget       = (*SwipeCard)(nil)
	_ fyne.Draggable    = (*SwipeCard)(nil)
	_ desktop.Mouseable = (*SwipeCard)(nil)
	_ mobile.Touchable  = (*SwipeCard)(nil)
)

// SwipeCard renders one feed item and forwards pointer input for it
type SwipeCard struct {
	widget.BaseWidget

	item      model.FeedItem
	transform model.VisibleTransform
	gestures  *GestureHandler
	loc       *Localization

	// UI components
	background *canvas.Rectangle
	image      *canvas.Image
	glyph      *canvas.Text
	name       *canvas.Text
	meta       *widget.Label
	desc       *widget.Label
	tags       *widget.Label
	badge      *canvas.Text
}

// NewSwipeCard creates a card for item
func NewSwipeCard(item model.FeedItem, gestures *GestureHandler, loc *Localization) *SwipeCard {
	c := &SwipeCard{
		item:      item,
		gestures:  gestures,
		loc:       loc,
		transform: model.VisibleTransform{Key: item.Key, Scale: 1},
	}
	c.createUI()
	c.ExtendBaseWidget(c)
	return c
}

// createUI creates the card components
func (c *SwipeCard) createUI() {
	c.background = canvas.NewRectangle(CardColor)
	c.background.CornerRadius = CardCorner
	c.background.StrokeColor = CardShadow
	c.background.StrokeWidth = 1

	c.image = canvas.NewImageFromResource(nil)
	c.image.FillMode = canvas.ImageFillContain
	c.image.SetMinSize(fyne.NewSize(0, CardImageHeight))
	c.image.Hide()

	c.glyph = canvas.NewText("", BrandColor)
	c.glyph.TextSize = 64
	c.glyph.Alignment = fyne.TextAlignCenter

	c.name = canvas.NewText("", color.Black)
	c.name.TextStyle = fyne.TextStyle{Bold: true}
	c.name.TextSize = theme.TextHeadingSize()

	c.meta = widget.NewLabel("")
	c.meta.Importance = widget.LowImportance

	c.desc = widget.NewLabel("")
	c.desc.Wrapping = fyne.TextWrapWord
	c.desc.Truncation = fyne.TextTruncateEllipsis

	c.tags = widget.NewLabel("")
	c.tags.Wrapping = fyne.TextWrapWord
	c.tags.Importance = widget.LowImportance

	c.badge = canvas.NewText("", SaveColor)
	c.badge.TextStyle = fyne.TextStyle{Bold: true}
	c.badge.TextSize = 28
	c.badge.Hide()

	c.fill()
}

// fill copies the item into the components
func (c *SwipeCard) fill() {
	c.glyph.Text = categoryGlyph(c.item.Category)
	c.name.Text = c.item.GetDisplayName()
	c.meta.SetText(formatMeta(c.item, c.loc))
	c.desc.SetText(c.item.Description)

	tags := c.item.TagNames()
	for i, t := range tags {
		tags[i] = TagPrefix + t
	}
	c.tags.SetText(strings.Join(tags, " "))
}

// categoryGlyph returns the emoji for c. System icons have no Fyne
// equivalent, so they fall back to a map pin.
func categoryGlyph(c model.Category) string {
	if emoji, ok := c.Icon().(model.EmojiIcon); ok {
		return emoji.String()
	}
	return IconMap
}

// formatMeta joins area, price and category
func formatMeta(item model.FeedItem, loc *Localization) string {
	var parts []string
	if item.Area != "" {
		parts = append(parts, item.Area)
	}
	if item.PriceLevel > 0 {
		parts = append(parts, strings.Repeat(PriceSymbol, item.PriceLevel))
	}
	if item.Category != model.CategoryAll && item.Category != "" {
		parts = append(parts, loc.CategoryText(string(item.Category)))
	}
	if len(parts) == 0 {
		return DashPlaceholder
	}
	return strings.Join(parts, MiddleDotSeparator)
}

// CreateRenderer implements fyne.Widget
func (c *SwipeCard) CreateRenderer() fyne.WidgetRenderer {
	header := container.NewStack(c.image, container.NewCenter(c.glyph))
	body := container.NewVBox(c.name, c.meta, c.desc, c.tags)
	content := container.NewBorder(header, nil, nil, nil, body)
	overlay := container.NewVBox(container.NewHBox(c.badge))

	return widget.NewSimpleRenderer(container.NewStack(
		c.background,
		container.NewPadded(content),
		container.NewPadded(overlay),
	))
}

// Item returns the feed item shown on the card
func (c *SwipeCard) Item() model.FeedItem {
	return c.item
}

// Transform returns the last transform applied to the card
func (c *SwipeCard) Transform() model.VisibleTransform {
	return c.transform
}

// SetTransform records the layout transform and the pending outcome hint.
// hint is OutcomeSave or OutcomeSkip to show a badge, anything else hides it.
func (c *SwipeCard) SetTransform(t model.VisibleTransform, hint model.OutcomeKind) {
	c.transform = t

	switch hint {
	case model.OutcomeSave:
		c.badge.Text = fmt.Sprintf("%s %s", IconSave, c.loc.GetText(KeySave))
		c.badge.Color = SaveColor
		c.badge.Show()
	case model.OutcomeSkip:
		c.badge.Text = fmt.Sprintf("%s %s", IconSkip, c.loc.GetText(KeySkip))
		c.badge.Color = SkipColor
		c.badge.Show()
	default:
		c.badge.Hide()
	}
	c.badge.Refresh()
}

// SetImage shows res in place of the category glyph
func (c *SwipeCard) SetImage(res fyne.Resource) {
	if res == nil {
		return
	}
	c.image.Resource = res
	c.image.Show()
	c.glyph.Hide()
	c.image.Refresh()
}

// HasImage reports whether a picture has been set
func (c *SwipeCard) HasImage() bool {
	return c.image.Resource != nil
}

// MouseDown handles desktop press
func (c *SwipeCard) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	c.gestures.Press(c.item.Key, ev.AbsolutePosition)
}

// MouseUp handles desktop release
func (c *SwipeCard) MouseUp(ev *desktop.MouseEvent) {
	c.gestures.Release(ev.AbsolutePosition)
}

// Dragged handles drag steps on every platform
func (c *SwipeCard) Dragged(ev *fyne.DragEvent) {
	c.gestures.Drag(c.item.Key, ev)
}

// DragEnd handles the end of a drag
func (c *SwipeCard) DragEnd() {
	c.gestures.DragEnd()
}

// TouchDown handles touch down events
func (c *SwipeCard) TouchDown(ev *mobile.TouchEvent) {
	c.gestures.Press(c.item.Key, ev.AbsolutePosition)
}

// TouchUp handles touch up events
func (c *SwipeCard) TouchUp(ev *mobile.TouchEvent) {
	c.gestures.Release(ev.AbsolutePosition)
}

// TouchCancel handles touch cancel events
func (c *SwipeCard) TouchCancel(*mobile.TouchEvent) {
	c.gestures.Cancel()
}
