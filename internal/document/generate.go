package document

import (
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"user-directory/internal/domain"
)

// US Letter in points, with the y axis growing downward from the top edge.
const (
	pageWidth  = 612.0
	inch       = 72.0
	photoSize  = 3.5 * inch
	lineHeight = 20.0
)

const (
	imageMissingText  = ".......Image not uploaded......."
	resumeMissingText = ".......Resume not uploaded......."
)

var profileLabels = [...]string{"Name", "Email", "Age", "City", "Gender", "Skills"}

// Generator renders single-page profile documents with a fixed layout.
// LogoPath and PlaceholderImage point at static assets and may be absent.
type Generator struct {
	LogoPath         string
	PlaceholderImage string
}

// Generate writes the profile page for person to outPath. Missing optional
// assets (logo, photo, resume) degrade to placeholders or warning text; only
// filesystem failures or an unreadable image file produce an error.
func (g Generator) Generate(person domain.Person, resumeMissing bool, outPath string) error {
	pdf := gofpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	drawCentered(pdf, "User Profile", 50)

	if logo, state := ResolveAsset(g.LogoPath, ""); state == AssetPresent {
		pdf.ImageOptions(logo, pageWidth-2*inch, 0.5*inch, 1.5*inch, 0.5*inch, false, gofpdf.ImageOptions{}, 0, "")
	}

	photoX := (pageWidth - photoSize) / 2
	photoY := 1.0 * inch
	if image, state := ResolveAsset(person.ImagePath, g.PlaceholderImage); state != AssetAbsent {
		pdf.ImageOptions(image, photoX, photoY, photoSize, photoSize, false, gofpdf.ImageOptions{}, 0, "")
	} else {
		drawWarning(pdf, func(p *gofpdf.Fpdf) {
			drawCentered(p, imageMissingText, photoY+photoSize/2)
		})
	}

	values := [...]string{
		person.Name,
		person.Email,
		strconv.Itoa(person.Age),
		person.City,
		person.Gender,
		person.Skills,
	}

	tableTop := photoY + photoSize + 0.75*inch
	pdf.SetFont("Helvetica", "", 12)
	y := tableTop
	for i := range profileLabels {
		y = tableTop + float64(i)*lineHeight
		pdf.SetTextColor(128, 128, 128)
		pdf.Text(80, y, profileLabels[i]+":")
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(150, y, values[i])
	}

	if resumeMissing {
		warnY := y + lineHeight
		drawWarning(pdf, func(p *gofpdf.Fpdf) {
			p.Text(220, warnY, resumeMissingText)
		})
	}

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write profile document: %w", err)
	}
	return nil
}

func drawCentered(pdf *gofpdf.Fpdf, text string, y float64) {
	pdf.Text((pageWidth-pdf.GetStringWidth(text))/2, y, text)
}

// drawWarning renders text in the shared missing-asset style: 12pt italic red.
func drawWarning(pdf *gofpdf.Fpdf, draw func(*gofpdf.Fpdf)) {
	pdf.SetFont("Helvetica", "I", 12)
	pdf.SetTextColor(255, 0, 0)
	draw(pdf)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
}
