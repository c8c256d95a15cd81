// Package file provides the TOML-backed configuration store.
//
// Settings are written as nested TOML tables ([page], [grid], [image],
// [export]) and read back as flat dot-notation keys such as "page.margin".
package file
