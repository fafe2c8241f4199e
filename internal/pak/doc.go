// internal/pak/doc.go

/*
Package pak reads and writes the game's data archives.

The container is a standard ZIP file. Losslessness is the contract that
matters: an entry that was never modified is carried as its original
compressed bytes and original header, so it re-encodes bit for bit, and
an archive with no modifications at all packs back to the exact bytes it
was opened from. Only modified entries are recompressed, using the
entry's original method.

The package performs no I/O of its own; callers hand container bytes in
and take container bytes out.
*/
package pak
