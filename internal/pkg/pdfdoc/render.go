package pdfdoc

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/yigit/sempozyum/internal/app/models"
)

// Core fonts only cover cp1252; map the Turkish letters it lacks to their base letters
var turkishFold = strings.NewReplacer("ğ", "g", "Ğ", "G", "ş", "s", "Ş", "S", "ı", "i", "İ", "I")

var trDays = [...]string{"Pazar", "Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi"}

var trMonths = [...]string{"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran", "Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık"}

// FormatDateTR renders a date like "12 Mayıs 2026"
func FormatDateTR(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), trMonths[t.Month()-1], t.Year())
}

type document struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newDocument(title string) *document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("sempozyum", true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	base := pdf.UnicodeTranslatorFromDescriptor("")
	d := &document{pdf: pdf}
	d.tr = func(s string) string { return base(turkishFold.Replace(s)) }
	return d
}

func (d *document) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// ProgramBooklet renders the program grouped by day. Items must already be
// ordered by day and start time.
func ProgramBooklet(s *models.Symposium, items []*models.ProgramItem) ([]byte, error) {
	d := newDocument(s.Title + " - Program")
	pdf := d.pdf

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, d.tr(s.Title), "", "C", false)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, d.tr(fmt.Sprintf("%s - %s, %s", FormatDateTR(s.StartDate), FormatDateTR(s.EndDate), s.Location)), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	if len(items) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, d.tr("Program henüz yayımlanmadı."), "", 1, "C", false, 0, "")
		return d.bytes()
	}

	var currentDay time.Time
	for _, it := range items {
		if !it.Day.Equal(currentDay) {
			currentDay = it.Day
			pdf.Ln(3)
			pdf.SetFont("Helvetica", "B", 13)
			pdf.SetFillColor(230, 236, 245)
			pdf.CellFormat(0, 9, d.tr(fmt.Sprintf("%s, %s", FormatDateTR(it.Day), trDays[it.Day.Weekday()])), "", 1, "L", true, 0, "")
			pdf.Ln(1)
		}

		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(28, 6, it.StartTime+" - "+it.EndTime, "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 6, d.tr(it.Title), "", "L", false)

		var meta []string
		if it.Location != "" {
			meta = append(meta, "Salon: "+it.Location)
		}
		if it.SessionChair != "" {
			meta = append(meta, "Oturum Başkanı: "+it.SessionChair)
		}
		if len(meta) > 0 {
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetX(48)
			pdf.MultiCell(0, 5, d.tr(strings.Join(meta, "  |  ")), "", "L", false)
		}
		if it.Description != "" {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetX(48)
			pdf.MultiCell(0, 5, d.tr(it.Description), "", "L", false)
		}
		pdf.Ln(1)
	}

	return d.bytes()
}

// AcceptanceLetter renders the letter sent to the author of an accepted paper
func AcceptanceLetter(s *models.Symposium, p *models.Paper, authorName string, issued time.Time) ([]byte, error) {
	d := newDocument("Kabul Mektubu")
	pdf := d.pdf

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, d.tr(s.Title), "", "C", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, d.tr(fmt.Sprintf("%s - %s, %s", FormatDateTR(s.StartDate), FormatDateTR(s.EndDate), s.Location)), "", 1, "C", false, 0, "")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, d.tr(FormatDateTR(issued)), "", 1, "R", false, 0, "")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, d.tr("KABUL MEKTUBU"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, d.tr(fmt.Sprintf("Sayın %s,", authorName)), "", "L", false)
	pdf.Ln(3)
	body := fmt.Sprintf(
		"%q başlıklı ve %d numaralı bildiriniz, hakem değerlendirmesi sonucunda %s kapsamında sunulmak üzere kabul edilmiştir.",
		p.Title, p.ID, s.Title,
	)
	pdf.MultiCell(0, 6, d.tr(body), "", "J", false)
	if p.CoAuthors != "" {
		pdf.Ln(2)
		pdf.MultiCell(0, 6, d.tr("Ortak yazarlar: "+p.CoAuthors), "", "L", false)
	}
	pdf.Ln(4)
	pdf.MultiCell(0, 6, d.tr("Sempozyumumuza katkılarınız için teşekkür eder, çalışmalarınızda başarılar dileriz."), "", "L", false)
	pdf.Ln(16)
	pdf.CellFormat(0, 6, d.tr("Düzenleme Kurulu adına"), "", 1, "R", false, 0, "")

	return d.bytes()
}
