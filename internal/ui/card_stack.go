package ui

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/peakfindr/peakfindr/internal/model"
	"github.com/peakfindr/peakfindr/internal/swipe"
)

// StackSource is the discovery state a CardStack renders
type StackSource interface {
	PointerSink
	Visible() []model.FeedItem
	Transforms() []model.VisibleTransform
	Gesture() model.GestureState
	SwipeConfig() swipe.Config
}

// CardStack draws the visible prefix of the feed as overlapping cards
type CardStack struct {
	widget.BaseWidget

	source   StackSource
	gestures *GestureHandler
	loc      *Localization
	mobile   *MobileUI
	logger   *zap.Logger

	cards   map[model.Key]*SwipeCard
	content *fyne.Container
	images  *imageCache
}

// NewCardStack creates an empty stack; call Sync to populate it
func NewCardStack(source StackSource, loc *Localization, mobile *MobileUI, logger *zap.Logger, onError func(error)) *CardStack {
	if logger == nil {
		logger = zap.NewNop()
	}
	cs := &CardStack{
		source:   source,
		gestures: NewGestureHandler(source, onError),
		loc:      loc,
		mobile:   mobile,
		logger:   logger,
		cards:    make(map[model.Key]*SwipeCard),
		images:   newImageCache(),
	}
	cs.content = container.New(&stackLayout{mobile: mobile})
	cs.ExtendBaseWidget(cs)
	return cs
}

// CreateRenderer implements fyne.Widget
func (cs *CardStack) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(cs.content)
}

// Sync rebuilds the card set from the source. Must run on the UI goroutine.
func (cs *CardStack) Sync() {
	items := cs.source.Visible()
	byKey := make(map[model.Key]model.FeedItem, len(items))
	for _, item := range items {
		byKey[item.Key] = item
	}

	g := cs.source.Gesture()
	threshold := cs.source.SwipeConfig().Threshold

	objects := make([]fyne.CanvasObject, 0, len(items))
	keep := make(map[model.Key]*SwipeCard, len(items))
	for _, t := range cs.source.Transforms() {
		item, ok := byKey[t.Key]
		if !ok {
			continue
		}
		card := cs.cards[t.Key]
		if card == nil {
			card = NewSwipeCard(item, cs.gestures, cs.loc)
			cs.loadImage(card)
		}

		hint := model.OutcomeCancelled
		if !g.IsNeutral() && g.Key == t.Key {
			hint = swipe.Classify(g.Translation.X, threshold)
		}
		card.SetTransform(t, hint)

		keep[t.Key] = card
		objects = append(objects, card)
	}

	// A card that left mid-press must not keep the handler busy.
	if top, ok := cs.topKey(items); cs.gestures.Active() && (!ok || g.IsNeutral() || g.Key != top) {
		cs.gestures.reset()
	}

	cs.cards = keep
	cs.content.Objects = objects
	cs.content.Refresh()
}

// Len returns the number of cards on screen
func (cs *CardStack) Len() int {
	return len(cs.content.Objects)
}

// Card returns the card for key, if it is on screen
func (cs *CardStack) Card(key model.Key) (*SwipeCard, bool) {
	card, ok := cs.cards[key]
	return card, ok
}

func (cs *CardStack) topKey(items []model.FeedItem) (model.Key, bool) {
	if len(items) == 0 {
		return model.NilKey, false
	}
	return items[0].Key, true
}

// loadImage fetches the card picture in the background
func (cs *CardStack) loadImage(card *SwipeCard) {
	ref := card.Item().ImageRef
	if ref == "" {
		return
	}
	if res, ok := cs.images.get(ref); ok {
		card.SetImage(res)
		return
	}
	go func() {
		res, err := cs.images.load(ref)
		if err != nil {
			cs.logger.Debug("Image load failed", zap.String("ref", ref), zap.Error(err))
			return
		}
		fyne.Do(func() { card.SetImage(res) })
	}()
}

// stackLayout positions cards from their VisibleTransform. Objects are
// expected back to front, which is also the paint order. Rotation has no
// Fyne equivalent and is not drawn.
type stackLayout struct {
	mobile *MobileUI
}

// Layout implements fyne.Layout
func (l *stackLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	base := l.cardSize(size)
	for _, o := range objects {
		card, ok := o.(*SwipeCard)
		if !ok {
			o.Resize(size)
			o.Move(fyne.NewPos(0, 0))
			continue
		}
		t := card.Transform()
		scale := float32(t.Scale)
		w, h := base.Width*scale, base.Height*scale
		x := (size.Width-w)/2 + float32(t.HorizontalOffset)
		y := (size.Height-h)/2 + float32(t.VerticalOffset)
		card.Resize(fyne.NewSize(w, h))
		card.Move(fyne.NewPos(x, y))
	}
}

// MinSize implements fyne.Layout
func (l *stackLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(CardMaxWidth/2, CardMaxHeight/2)
}

// cardSize fits the full-size card into area
func (l *stackLayout) cardSize(area fyne.Size) fyne.Size {
	margin := CardMargin
	if l.mobile != nil {
		margin = l.mobile.GetMobilePadding()
	}
	w := min(CardMaxWidth, area.Width-2*margin)
	h := min(CardMaxHeight, area.Height-2*margin)
	return fyne.NewSize(max(w, 0), max(h, 0))
}

// imageCache keeps fetched card pictures by reference
type imageCache struct {
	mu    sync.Mutex
	items map[string]fyne.Resource
}

func newImageCache() *imageCache {
	return &imageCache{items: make(map[string]fyne.Resource)}
}

func (c *imageCache) get(ref string) (fyne.Resource, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.items[ref]
	return res, ok
}

func (c *imageCache) load(ref string) (fyne.Resource, error) {
	if res, ok := c.get(ref); ok {
		return res, nil
	}
	res, err := fyne.LoadResourceFromURLString(ref)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.items[ref] = res
	c.mu.Unlock()
	return res, nil
}
