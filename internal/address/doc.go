// internal/address/doc.go

/*
Package address provides the structured, type-safe representation for
entity addresses, based on the canonical format `file:path`.

The path is a dot-separated sequence of segments, each an entity or
enclosing-block name with an optional occurrence index, e.g.
`weapons.scr:Item[2].Damage`. The occurrence index counts same-name
siblings in document order; index zero is implied when absent. Segment
names that are not plain identifiers are double-quoted.

This package enforces the address schema and centralizes all formatting
and parsing logic so every layer (edits, diffs, search, project files)
agrees on one canonical form.
*/
package address
