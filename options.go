package sketch

// ExportOptions holds configuration for document output.
type ExportOptions struct {
	// Graphic narrowing (0-indexed front to back, nil means all)
	graphics []int

	// Raster output
	scale       float64
	gridSpacing float64
	selection   []int
}

// defaultOptions returns the default export options.
func defaultOptions() ExportOptions {
	return ExportOptions{
		graphics:    nil, // nil means all graphics
		scale:       1,
		gridSpacing: 0,
		selection:   nil,
	}
}

// clone creates a deep copy of ExportOptions.
func (o ExportOptions) clone() ExportOptions {
	newOpts := ExportOptions{
		scale:       o.scale,
		gridSpacing: o.gridSpacing,
	}

	// Deep copy index slices
	if o.graphics != nil {
		newOpts.graphics = make([]int, len(o.graphics))
		copy(newOpts.graphics, o.graphics)
	}
	if o.selection != nil {
		newOpts.selection = make([]int, len(o.selection))
		copy(newOpts.selection, o.selection)
	}

	return newOpts
}
