// Package pdf renders laid-out reports with github.com/go-pdf/fpdf.
//
// The first page is a cover page. Every following page corresponds to one
// PageLayout: group header bars, photos fitted inside their boxes and a
// caption under each box. Footers are added in a second pass once the
// total page count is known.
package pdf
