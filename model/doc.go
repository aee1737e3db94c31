// Package model defines the graphic-object and document model: the
// graphic kinds, their persisted records, the factory registry, and
// the document that owns a z-ordered graphic list with undo history.
//
// # Graphics
//
// Every shape on a canvas implements [Graphic]: an identity, bounds,
// a fill/stroke [Style], handle hit testing, handle-drag resizing,
// content hit testing, and conversion to and from a persisted
// [Record]. The built-in kinds are [Rectangle], [Circle], [Line],
// [Text] and [Image].
//
// Bounds are the single geometric source of truth. A [Line] derives
// its endpoints from bounds plus two orientation flags; an [Image]
// keeps mirror flags that toggle when a handle drag flips its bounds.
// Bounds returned by any graphic always have non-negative size.
//
// # Records and the registry
//
// A [Record] is a flat JSON-compatible property map. Restoring is
// best-effort: unknown keys are ignored, malformed fields fall back
// to defaults, and records that cannot identify their kind are
// dropped. Problems surface as [Warning] values, never as errors.
//
// Kinds map to factories through a [Registry]; [GraphicFromRecord]
// consults the global one. Additional kinds can be added with
// [RegisterKind]:
//
//	model.RegisterKind("star", func() model.Graphic { return NewStar() })
//
// # Documents and undo
//
// A [Document] owns graphics front to back and records a reversible
// [Edit] for every mutation. [Document.Undo] and [Document.Redo]
// replay them:
//
//	d := model.NewDocument()
//	d.AddGraphic(model.NewRectangle())
//	d.MoveGraphicBy(0, 10, 0)
//	d.Undo() // the move
//	d.Undo() // the insert
//
// Graphics never point back at their document; external references
// hold an index or an ID and resolve through [Document.IndexOf].
package model
