// Package imaging implements driven.ImageProcessor on the standard image
// decoders plus golang.org/x/image for WebP decoding and high quality
// downscaling.
package imaging
