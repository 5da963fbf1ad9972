package auditlog

import "context"

// Metadata describes the teacher and room a command acted on.
type Metadata struct {
	TeacherID   string
	TeacherName string
	Room        string
}

type metadataKey struct{}

// WithMetadata attaches audit metadata to a context. Fields left blank keep
// the values already attached.
func WithMetadata(ctx context.Context, meta Metadata) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(metadataKey{}).(Metadata)
	merged := Metadata{
		TeacherID:   pick(meta.TeacherID, existing.TeacherID),
		TeacherName: pick(meta.TeacherName, existing.TeacherName),
		Room:        pick(meta.Room, existing.Room),
	}
	return context.WithValue(ctx, metadataKey{}, merged)
}

// MetadataFromContext returns audit metadata stored in the context.
func MetadataFromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return Metadata{}
	}
	meta, _ := ctx.Value(metadataKey{}).(Metadata)
	return meta
}

func pick(next, fallback string) string {
	if next != "" {
		return next
	}
	return fallback
}

type runIDKey struct{}

// WithRunID tags a context with the ID shared by every entry one process
// invocation records.
func WithRunID(ctx context.Context, runID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunIDFromContext returns the run ID stored in the context, or "".
func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
