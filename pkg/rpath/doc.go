// Package rpath computes origin-relative library search paths (RPATH strings).
//
// Each dependency directory is made relative to the directory that will
// contain a binary, prefixed with a dynamic-linker token such as `$ORIGIN`,
// and joined into a single `:`-separated list. All path handling is lexical:
// the filesystem is never consulted and symbolic links are not resolved.
package rpath
