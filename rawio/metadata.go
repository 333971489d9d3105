package rawio

// Pass-through metadata accessors: color_table, color_interpretation,
// category_names and nodata_value are opaque values owned by the band,
// not part of the core algorithmic path. Scale/offset/unit type follow
// the same opaque-storage-only contract, and the exported types are
// named after other_examples/GrainArc-Gogeo__RasterBand.go's
// BandInfo/ColorInterpretation/PaletteInfo.

// ColorInterp mirrors GDAL's color-interpretation enumeration (see
// GrainArc-Gogeo__RasterBand.go's ColorInterpretation) — the core never
// interprets this value, it only stores and returns it.
type ColorInterp int

const (
	ColorUndefined ColorInterp = iota
	ColorGray
	ColorPalette
	ColorRed
	ColorGreen
	ColorBlue
	ColorAlpha
	ColorHue
	ColorSaturation
	ColorLightness
	ColorCyan
	ColorMagenta
	ColorYellow
	ColorBlack
)

// PaletteInterp identifies how PaletteEntry components are interpreted.
type PaletteInterp int

const (
	PaletteGray PaletteInterp = iota
	PaletteRGB
	PaletteCMYK
	PaletteHLS
)

// PaletteEntry is one opaque color-table row.
type PaletteEntry struct {
	C1, C2, C3, C4 int16
}

// ColorTable is an opaque, ordered list of palette entries.
type ColorTable struct {
	Interp  PaletteInterp
	Entries []PaletteEntry
}

// ColorTable returns the band's color table, or nil if none was set.
func (b *Band) ColorTable() *ColorTable { return b.colorTable }

// SetColorTable sets the band's color table.
func (b *Band) SetColorTable(ct *ColorTable) { b.colorTable = ct }

// ColorInterpretation returns the band's declared color interpretation.
func (b *Band) ColorInterpretation() ColorInterp { return b.colorInterp }

// SetColorInterpretation sets the band's color interpretation.
func (b *Band) SetColorInterpretation(ci ColorInterp) { b.colorInterp = ci }

// CategoryNames returns the band's category (class) names.
func (b *Band) CategoryNames() []string { return b.categoryNames }

// SetCategoryNames sets the band's category names.
func (b *Band) SetCategoryNames(names []string) { b.categoryNames = names }

// NoDataValue returns the band's nodata sentinel value and whether one
// was set.
func (b *Band) NoDataValue() (value float64, ok bool) { return b.noDataValue, b.hasNoData }

// SetNoDataValue sets the band's nodata sentinel value.
func (b *Band) SetNoDataValue(v float64) {
	b.noDataValue = v
	b.hasNoData = true
}

// ClearNoDataValue removes any nodata sentinel.
func (b *Band) ClearNoDataValue() { b.hasNoData = false }

// Scale and Offset return the band's linear sample-to-physical-value
// transform: physical = raw*Scale + Offset. Defaults are 1 and 0.
func (b *Band) Scale() float64  { return b.scale }
func (b *Band) Offset() float64 { return b.offset }

// SetScale and SetOffset set the linear transform coefficients.
func (b *Band) SetScale(s float64)  { b.scale = s }
func (b *Band) SetOffset(o float64) { b.offset = o }

// UnitType returns the band's physical unit string (e.g. "m", "dB").
func (b *Band) UnitType() string { return b.unitType }

// SetUnitType sets the band's physical unit string.
func (b *Band) SetUnitType(u string) { b.unitType = u }
