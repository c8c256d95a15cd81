// Package photodir implements driven.PhotoSource on the local filesystem.
//
// Only files with an image extension (jpg, jpeg, png, gif, webp) are
// reported. Hidden files and hidden directories are skipped, both when
// scanning and when watching with fsnotify.
package photodir
