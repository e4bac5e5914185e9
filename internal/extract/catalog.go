package extract

import "path/filepath"

// Options are the file-scoped policy options recognized by the extractor.
type Options struct {
	// MessagesDir enables catalog-file emission when non-empty. Output
	// paths mirror the source layout relative to the working directory.
	MessagesDir string
	// ExtractSourceLocation attaches file path and start/end positions to
	// every descriptor.
	ExtractSourceLocation bool
	// EnforceDescriptions rejects declarations whose description is absent
	// or an empty structured value.
	EnforceDescriptions bool
	// WorkDir is the directory descriptor file paths and output paths are
	// computed relative to. Defaults to the process working directory.
	WorkDir string
}

// Catalog accumulates the message descriptors of one source file. It is
// created at file start, owned by the extractor for the file's lifetime,
// and snapshotted at file end. Insertion order is preserved.
type Catalog struct {
	opts  Options
	order []string
	byID  map[string]*entry
}

type entry struct {
	desc *Descriptor
	ref  SourceRef
}

// NewCatalog creates an empty catalog with the given policy options.
func NewCatalog(opts Options) *Catalog {
	return &Catalog{
		opts: opts,
		byID: make(map[string]*entry),
	}
}

// Put records a descriptor. Re-declaring an id with identical description
// and defaultMessage is a silent no-op; re-declaring it with differing
// content fails with DuplicateIDError. When the enforce-descriptions
// policy is active, descriptors without a usable description are rejected.
func (c *Catalog) Put(desc *Descriptor, ref SourceRef) error {
	if c.opts.EnforceDescriptions && emptyDescription(desc.Description) {
		return &MissingDescriptionError{ID: desc.ID, Ref: ref}
	}

	if existing, ok := c.byID[desc.ID]; ok {
		if existing.desc.sameContent(desc) {
			return nil
		}
		prev := existing.ref
		return &DuplicateIDError{ID: desc.ID, Ref: ref, Previous: &prev}
	}

	if c.opts.ExtractSourceLocation {
		c.stampLocation(desc, ref)
	}

	c.byID[desc.ID] = &entry{desc: desc, ref: ref}
	c.order = append(c.order, desc.ID)
	return nil
}

// stampLocation attaches the source location to a descriptor, with the
// file path made relative to the working directory.
func (c *Catalog) stampLocation(desc *Descriptor, ref SourceRef) {
	file := ref.File
	if c.opts.WorkDir != "" {
		if rel, err := filepath.Rel(c.opts.WorkDir, ref.File); err == nil {
			file = filepath.ToSlash(rel)
		}
	}
	desc.File = file
	desc.Start = &Position{Line: ref.Start.Line, Column: ref.Start.Column}
	desc.End = &Position{Line: ref.End.Line, Column: ref.End.Column}
}

// Len returns the number of distinct message ids recorded.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Descriptors snapshots the catalog as an ordered descriptor list.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, *c.byID[id].desc)
	}
	return out
}

// emptyDescription reports whether a description value fails the
// enforce-descriptions policy: absent, empty string, or an empty
// structured value.
func emptyDescription(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case map[string]interface{}:
		return len(val) == 0
	default:
		return false
	}
}
