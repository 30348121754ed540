package services

import (
	"bytes"
	"fmt"
	"strings"

	"busbook/internal/domain/models"
	"busbook/internal/repositories"
	"busbook/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable tickets for committed bookings.
type DocsService struct {
	Bookings  *repositories.BookingRepository
	RequestID string
}

// GenerateTicket renders the e-ticket PDF for one booking reference.
func (s DocsService) GenerateTicket(reference string) ([]byte, string, error) {
	b, err := s.Bookings.Get(reference)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_ticket", "reference="+reference)
	return buildTicketPDF(b)
}

func buildTicketPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Bus Ticket", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BUS TICKET")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Booking Reference: "+safe(b.Reference, "-"))
	pdf.Ln(10)

	duration := utils.CalculateDuration(b.DepartureTime, b.ArrivalTime)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Journey")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	journeyLines := []string{
		fmt.Sprintf("Route      : %s -> %s", safe(b.From, "-"), safe(b.To, "-")),
		fmt.Sprintf("Operator   : %s (%s)", safe(b.BusOperator, "-"), safe(b.BusType, "-")),
		fmt.Sprintf("Date       : %s", safe(b.Date, "-")),
		fmt.Sprintf("Departure  : %s", safe(b.DepartureTime, "-")),
		fmt.Sprintf("Arrival    : %s", safe(b.ArrivalTime, "-")),
		fmt.Sprintf("Duration   : %s", safe(duration, "-")),
		fmt.Sprintf("Seats      : %s", safe(strings.Join(b.SeatNumbers, ", "), "-")),
	}
	for _, line := range journeyLines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Passengers")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 6, "Name", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 6, "Gender", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 6, "Age", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "Seat", "1", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, p := range b.Passengers {
		pdf.CellFormat(70, 6, safe(p.Name, "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, safe(string(p.Gender), "-"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", p.Age), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, safe(p.SeatNumber, "-"), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	igst := b.Tax / 2
	sgst := b.Tax - igst
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Fare Breakdown")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	fareLines := []string{
		"Base Fare    : " + utils.FormatINR(b.BaseFare),
		"Service Fee  : " + utils.FormatINR(b.ServiceFee),
		"IGST         : " + utils.FormatINR(igst),
		"SGST         : " + utils.FormatINR(sgst),
	}
	for _, line := range fareLines {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, "Total        : "+utils.FormatINR(b.TotalAmount))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Contact: "+safe(b.Contact.Email, "-")+" / "+safe(b.Contact.Phone, "-"))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Verification Code: BUSBOOK-"+safe(b.Reference, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Please carry a valid ID proof matching the passenger details. Report at the boarding point 15 minutes before departure.", "", "", false)

	if b.Status == models.StatusCancelled {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "STATUS: CANCELLED")
		if reason := strings.TrimSpace(b.CancelReason); reason != "" {
			pdf.Ln(7)
			pdf.SetFont("Helvetica", "", 10)
			pdf.Cell(0, 6, "Reason: "+reason)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TICKET_%s.pdf", safeFilenamePart(b.Reference))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
