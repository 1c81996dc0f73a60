// Package media discovers the photographs that make up a project.
//
// Key types:
//   - Image: file name plus pixel dimensions read from the image header
//   - Orientation: portrait or landscape, used by homepage tiles
//
// Primary entry point:
//   - Scan: lists recognised images in a folder in lexicographic order
//
// Only image headers are decoded. JPEG, PNG, and GIF use the standard
// library decoders; WebP is registered from golang.org/x/image.
package media
