// Package probe reads pixel dimensions from image headers without decoding
// pixel data, and defines the image reference type the rest of the pipeline
// passes around.
//
// Decoders for JPEG, PNG and GIF come from the standard library; TIFF, BMP
// and WebP are registered from golang.org/x/image. Scanned archives are
// mostly TIFF and JPEG.
package probe
