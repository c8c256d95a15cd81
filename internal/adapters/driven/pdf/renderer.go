package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/custodia-labs/photoreport-cli/internal/core/domain"
	"github.com/custodia-labs/photoreport-cli/internal/core/ports/driven"
	"github.com/custodia-labs/photoreport-cli/internal/logger"
)

// Ensure Renderer implements the interface.
var _ driven.ReportRenderer = (*Renderer)(nil)

const (
	fontFamily = "Helvetica"

	// ptPerMM converts millimetres to points for font sizing.
	ptPerMM = 72.0 / 25.4

	maxCaptionHeight = 6.0
	minCaptionHeight = 2.5
)

// Renderer draws reports as PDF documents.
type Renderer struct {
	// images re-encodes photos fpdf cannot embed (WebP) as JPEG.
	// When nil such photos are drawn as placeholders.
	images driven.ImageProcessor

	// Creator is written to the document metadata.
	Creator string
}

// NewRenderer creates a new PDF renderer.
func NewRenderer(images driven.ImageProcessor) *Renderer {
	return &Renderer{images: images, Creator: "photoreport"}
}

// document holds the state of one render.
type document struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	page   domain.PageConfig
	report *domain.Report
	plan   *domain.ExportPlan
	photos map[string]*domain.Photo
	images driven.ImageProcessor
}

// Render writes the cover page and one page per plan page to w.
func (r *Renderer) Render(
	ctx context.Context,
	w io.Writer,
	report *domain.Report,
	plan *domain.ExportPlan,
) error {
	page := plan.Page
	if err := page.Validate(); err != nil {
		return err
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(page.Margin, page.Margin, page.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(report.Title, true)
	pdf.SetAuthor(report.Author, true)
	pdf.SetCreator(r.Creator, true)
	if !report.UpdatedAt.IsZero() {
		pdf.SetCreationDate(report.UpdatedAt)
		pdf.SetModificationDate(report.UpdatedAt)
	}

	doc := &document{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		page:   page,
		report: report,
		plan:   plan,
		photos: report.PhotoIndex(),
		images: r.images,
	}

	doc.cover()
	for i := range plan.Pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc.photoPage(&plan.Pages[i])
	}
	doc.footers()

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	logger.Debug("Rendered %d page(s) plus cover", len(plan.Pages))
	return nil
}

func (d *document) cover() {
	pdf := d.pdf
	pdf.AddPage()

	left := d.page.Margin
	width := d.page.ContentWidth()

	pdf.SetY(d.page.Height * 0.25)
	pdf.SetFont(fontFamily, "B", 24)
	pdf.MultiCell(width, 11, d.tr(d.report.Title), "", "C", false)
	pdf.Ln(8)

	pdf.SetDrawColor(160, 160, 160)
	pdf.Line(left+width*0.2, pdf.GetY(), left+width*0.8, pdf.GetY())
	pdf.Ln(8)

	rows := [][2]string{
		{"Project", d.report.Project},
		{"Location", d.report.Location},
		{"Author", d.report.Author},
	}
	if !d.report.ReportDate.IsZero() {
		rows = append(rows, [2]string{"Date", d.report.ReportDate.Format("2 January 2006")})
	}
	rows = append(rows,
		[2]string{"Photos", fmt.Sprintf("%d", len(d.report.Photos))},
		[2]string{"Groups", fmt.Sprintf("%d", len(d.plan.Groups))},
	)

	labelW := width * 0.35
	for _, row := range rows {
		if row[1] == "" {
			continue
		}
		pdf.SetX(left)
		pdf.SetFont(fontFamily, "B", 12)
		pdf.CellFormat(labelW, 8, d.tr(row[0]+":"), "", 0, "R", false, 0, "")
		pdf.SetFont(fontFamily, "", 12)
		pdf.CellFormat(width-labelW, 8, "  "+d.tr(row[1]), "", 1, "L", false, 0, "")
	}

	if notes := strings.TrimSpace(d.report.Notes); notes != "" {
		pdf.Ln(10)
		pdf.SetX(left)
		pdf.SetFont(fontFamily, "I", 11)
		pdf.MultiCell(width, 6, d.tr(notes), "", "L", false)
	}
}

func (d *document) photoPage(layout *domain.PageLayout) {
	d.pdf.AddPage()
	for _, h := range layout.Headers {
		d.header(h)
	}
	for _, p := range layout.Placements {
		d.photo(p)
	}
}

func (d *document) header(h domain.HeaderPlacement) {
	pdf := d.pdf
	pdf.SetFillColor(230, 233, 238)
	pdf.Rect(h.X, h.Y, h.Width, h.Height, "F")

	label := h.GroupKey
	if label == "" {
		label = "(ungrouped)"
	}
	noun := "photos"
	if h.ItemCount == 1 {
		noun = "photo"
	}

	pdf.SetFont(fontFamily, "B", fontSizeFor(h.Height, 12))
	pdf.SetTextColor(30, 30, 30)
	pdf.SetXY(h.X+2, h.Y)
	pdf.CellFormat(h.Width-4, h.Height, d.tr(fmt.Sprintf("%s  (%d %s)", label, h.ItemCount, noun)),
		"", 0, "LM", false, 0, "")
}

func (d *document) photo(p domain.Placement) {
	photo, ok := d.photos[p.ItemID]
	if !ok {
		d.placeholder(p, "missing")
		return
	}

	name := d.register(photo)
	if name == "" {
		d.placeholder(p, "no image")
	} else {
		x, y, w, h := fitBox(p, photo.AspectRatio)
		d.pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{}, 0, "")
	}

	d.caption(p, captionText(photo.DisplayName))
}

// register adds the photo's bytes to the document and returns the image
// name, or "" if the photo has no usable image.
func (d *document) register(photo *domain.Photo) string {
	if len(photo.Data) == 0 {
		return ""
	}

	data := photo.Data
	imageType := imageTypeFor(photo.MIMEType)
	if imageType == "" {
		if d.images == nil {
			logger.Warn("Cannot embed %s (%s)", photo.DisplayName, photo.MIMEType)
			return ""
		}
		converted, _, err := d.images.Compress(bytes.NewReader(data), domain.CompressOptions{Quality: 90})
		if err != nil {
			logger.Warn("Cannot convert %s: %v", photo.DisplayName, err)
			return ""
		}
		data, imageType = converted, "JPG"
	}

	name := "photo-" + photo.ID
	d.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(data))
	if d.pdf.Err() {
		logger.Warn("Cannot embed %s: %v", photo.DisplayName, d.pdf.Error())
		d.pdf.ClearError()
		return ""
	}
	return name
}

func (d *document) placeholder(p domain.Placement, label string) {
	pdf := d.pdf
	pdf.SetDrawColor(150, 150, 150)
	pdf.SetLineWidth(0.3)
	pdf.Rect(p.X, p.Y, p.Width, p.Height, "D")
	pdf.Line(p.X, p.Y, p.X+p.Width, p.Y+p.Height)
	pdf.Line(p.X+p.Width, p.Y, p.X, p.Y+p.Height)

	pdf.SetFont(fontFamily, "", 9)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(p.X, p.Y)
	pdf.CellFormat(p.Width, p.Height, label, "", 0, "CM", false, 0, "")
}

// caption is drawn in the row gap under the box. Gaps too small for
// legible text get no caption.
func (d *document) caption(p domain.Placement, text string) {
	h := min(maxCaptionHeight, d.plan.Grid.RowGap)
	if h < minCaptionHeight || text == "" {
		return
	}

	pdf := d.pdf
	pdf.SetFont(fontFamily, "", fontSizeFor(h, 9))
	pdf.SetTextColor(60, 60, 60)
	pdf.SetXY(p.X, p.Y+p.Height)
	pdf.CellFormat(p.Width, h, d.fitText(d.tr(text), p.Width), "", 0, "CM", false, 0, "")
}

// footers revisits every photo page now that the page total is known.
func (d *document) footers() {
	pdf := d.pdf
	total := len(d.plan.Pages)
	top := d.page.ContentBottom()
	width := d.page.ContentWidth()
	height := d.page.FooterHeight
	if height <= 0 {
		height = d.page.Margin
		top = d.page.Height - d.page.Margin
	}
	if height <= 0 {
		return
	}

	title := d.fitText(d.tr(d.report.Title), width/2)
	for i := 1; i <= total; i++ {
		// Page 1 is the cover.
		pdf.SetPage(i + 1)
		pdf.SetFont(fontFamily, "", fontSizeFor(height, 9))
		pdf.SetTextColor(100, 100, 100)

		pdf.SetXY(d.page.Margin, top)
		pdf.CellFormat(width/2, height, title, "", 0, "LM", false, 0, "")
		pdf.SetXY(d.page.Margin+width/2, top)
		pdf.CellFormat(width/2, height, FooterText(i, total), "", 0, "RM", false, 0, "")
	}
}

// fitText shortens s with "..." until it fits in width at the current font.
func (d *document) fitText(s string, width float64) string {
	if d.pdf.GetStringWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if d.pdf.GetStringWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}

// FooterText returns the footer label of a photo page.
func FooterText(pageIndex, total int) string {
	return fmt.Sprintf("Page %d of %d", pageIndex, total)
}

// fitBox centres an image of the given aspect ratio inside the placement.
func fitBox(p domain.Placement, aspect float64) (x, y, w, h float64) {
	if aspect <= 0 {
		aspect = domain.DefaultAspectRatio
	}
	w, h = p.Width, p.Width/aspect
	if h > p.Height {
		h = p.Height
		w = h * aspect
	}
	return p.X + (p.Width-w)/2, p.Y + (p.Height-h)/2, w, h
}

// fontSizeFor returns a font size in points that fits a line of the given
// height in millimetres, capped at maxPt.
func fontSizeFor(heightMM, maxPt float64) float64 {
	return min(maxPt, heightMM*ptPerMM*0.7)
}

func captionText(displayName string) string {
	return strings.TrimSuffix(displayName, filepath.Ext(displayName))
}

func imageTypeFor(mime string) string {
	switch strings.ToLower(mime) {
	case "image/jpeg", "image/jpg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	default:
		return ""
	}
}
