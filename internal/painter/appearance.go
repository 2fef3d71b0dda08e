package painter

import (
	"crypto/sha256"
	"encoding/binary"
)

// MenuAppearance is a menu's visual styling (colors/fonts/borders are left
// to the platform draw layer; this struct holds only what participates in
// the content hash and cache key).
type MenuAppearance struct {
	BackgroundColor uint32
	BorderColor     uint32
	FontID          int
	Opacity         float32
}

// MenuItemAppearance is one item's per-state styling.
type MenuItemAppearance struct {
	TextColor     uint32
	SelectedColor uint32
	FlashingColor uint32
	IconBitmapID  int
}

// MenuLayout captures the parameters Layout needs, so two menus that
// render identically share one cache entry.
type MenuLayout struct {
	Style       int
	Stride      int
	ColumnMajor bool
	ItemW       int
	ItemH       int
	GapX        int
	GapY        int
	TitleHeight int
}

// WindowAlphaInfo is the fade timing a menu's overlay uses (§4.H).
type WindowAlphaInfo struct {
	FadeInDelayMS, FadeInRateMS   int
	FadeOutDelayMS, FadeOutRateMS int
	MaxAlpha, InactiveAlpha       float32
	InactiveTimeoutMS             int
}

// cacheKey is a fixed-size content hash, cheap to use as a map key.
type cacheKey [32]byte

// Cache deduplicates appearance/layout/position/alpha structs by content
// hash (§4.G "Appearance cache"): two menus with identical values share one
// stored index, and a root menu property change invalidates every
// descendant that inherited its cached index.
type Cache struct {
	appearances map[cacheKey]MenuAppearance
	itemApps    map[cacheKey]MenuItemAppearance
	layouts     map[cacheKey]MenuLayout
	positions   map[cacheKey]MenuPosition
	alphas      map[cacheKey]WindowAlphaInfo

	// menuIndex tracks, per menu ID, the cache keys it currently resolves
	// to; Invalidate clears a menu's entries (the structs themselves stay
	// in the maps, shared by whoever else still references that key).
	menuIndex map[int]menuCacheEntry
}

type menuCacheEntry struct {
	appearance cacheKey
	layout     cacheKey
	position   cacheKey
	alpha      cacheKey
	hasEntry   bool
}

// NewCache creates an empty appearance cache.
func NewCache() *Cache {
	return &Cache{
		appearances: map[cacheKey]MenuAppearance{},
		itemApps:    map[cacheKey]MenuItemAppearance{},
		layouts:     map[cacheKey]MenuLayout{},
		positions:   map[cacheKey]MenuPosition{},
		alphas:      map[cacheKey]WindowAlphaInfo{},
		menuIndex:   map[int]menuCacheEntry{},
	}
}

func hashInts(vals ...int64) cacheKey {
	h := sha256.New()
	buf := make([]byte, 8)
	for _, v := range vals {
		binary.BigEndian.PutUint64(buf, uint64(v))
		h.Write(buf)
	}
	var out cacheKey
	copy(out[:], h.Sum(nil))
	return out
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func float32Bits(f float32) int64 {
	return int64(int32(f * 1000))
}

// InternAppearance stores (or reuses) a, returning its stable cache key.
func (c *Cache) InternAppearance(a MenuAppearance) cacheKey {
	k := hashInts(int64(a.BackgroundColor), int64(a.BorderColor), int64(a.FontID), float32Bits(a.Opacity))
	c.appearances[k] = a
	return k
}

// InternItemAppearance stores (or reuses) a, returning its stable cache key.
func (c *Cache) InternItemAppearance(a MenuItemAppearance) cacheKey {
	k := hashInts(int64(a.TextColor), int64(a.SelectedColor), int64(a.FlashingColor), int64(a.IconBitmapID))
	c.itemApps[k] = a
	return k
}

// InternLayout stores (or reuses) l, returning its stable cache key.
func (c *Cache) InternLayout(l MenuLayout) cacheKey {
	k := hashInts(int64(l.Style), int64(l.Stride), boolInt(l.ColumnMajor), int64(l.ItemW), int64(l.ItemH), int64(l.GapX), int64(l.GapY), int64(l.TitleHeight))
	c.layouts[k] = l
	return k
}

// InternPosition stores (or reuses) p, returning its stable cache key.
func (c *Cache) InternPosition(p MenuPosition) cacheKey {
	k := hashInts(int64(p.BaseX), int64(p.BaseY), int64(p.ScaleX), int64(p.ScaleY), int64(p.AlignX), int64(p.AlignY), int64(p.W), int64(p.H))
	c.positions[k] = p
	return k
}

// InternAlpha stores (or reuses) a, returning its stable cache key.
func (c *Cache) InternAlpha(a WindowAlphaInfo) cacheKey {
	k := hashInts(int64(a.FadeInDelayMS), int64(a.FadeInRateMS), int64(a.FadeOutDelayMS), int64(a.FadeOutRateMS),
		float32Bits(a.MaxAlpha), float32Bits(a.InactiveAlpha), int64(a.InactiveTimeoutMS))
	c.alphas[k] = a
	return k
}

// SetMenuEntry records the resolved keys a menu currently uses.
func (c *Cache) SetMenuEntry(menuID int, appearance, layout, position, alpha cacheKey) {
	c.menuIndex[menuID] = menuCacheEntry{appearance: appearance, layout: layout, position: position, alpha: alpha, hasEntry: true}
}

// MenuEntry returns a menu's cached keys, if present.
func (c *Cache) MenuEntry(menuID int) (appearance, layout, position, alpha cacheKey, ok bool) {
	e, found := c.menuIndex[menuID]
	return e.appearance, e.layout, e.position, e.alpha, found && e.hasEntry
}

// Invalidate drops a menu's cached entry (its re-derivation happens the
// next time the painter lays it out), per §4.G: "When a root menu's
// property changes, all descendants that inherit lose their cached
// indices."
func (c *Cache) Invalidate(menuID int) {
	delete(c.menuIndex, menuID)
}

// InvalidateDescendants drops cached entries for every menu ID in ids — the
// caller (the engine) supplies the inheriting descendants of a changed root
// menu, since only inputmap knows the parent/child relationships.
func (c *Cache) InvalidateDescendants(ids []int) {
	for _, id := range ids {
		c.Invalidate(id)
	}
}
