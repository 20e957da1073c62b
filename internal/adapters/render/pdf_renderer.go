package render

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"

	"trip-planner-service/internal/domain"
)

// Grid layout constants, in millimeters on an A4 landscape page.
const (
	gridLeft   = 15.0
	gridTop    = 60.0
	gridWidth  = 264.0
	rowHeight  = 8.0
	hoursInDay = 24.0
)

// Duty-status rows of the standard driver's log grid, top to bottom.
var statusRows = []string{"Off Duty", "Sleeper", "Driving", "On Duty"}

// PDFRenderer renders a computed schedule as a paginated driver's log:
// one page per daily log with a 24-hour duty-status grid, a segment table,
// and per-day totals. It performs no scheduling logic.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer { return &PDFRenderer{} }

func (r *PDFRenderer) Render(trip *domain.Trip, route *domain.Route, logs []domain.DailyLog) ([]byte, error) {
	if trip == nil {
		return nil, errors.New("render logs: trip is nil")
	}
	if len(logs) == 0 {
		return nil, errors.New("render logs: no daily logs to render")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 10)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6,
			fmt.Sprintf("Trip %s - page %d of %d", trip.ID, pdf.PageNo(), len(logs)),
			"", 0, "C", false, 0, "")
	})

	for _, dayLog := range logs {
		pdf.AddPage()
		r.renderHeader(pdf, trip, route, dayLog)
		r.renderGrid(pdf, dayLog)
		r.renderSegmentTable(pdf, dayLog)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render logs: write pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func (r *PDFRenderer) renderHeader(pdf *fpdf.Fpdf, trip *domain.Trip, route *domain.Route, dayLog domain.DailyLog) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Driver's Daily Log - Day %d", dayLog.Day), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6,
		fmt.Sprintf("From %s via %s to %s", trip.CurrentLocation, trip.PickupLocation, trip.DropoffLocation),
		"", 1, "C", false, 0, "")

	if route != nil {
		pdf.CellFormat(0, 6,
			fmt.Sprintf("Route: %.1f miles, %.1f driving hours. Cycle hours used at start: %.1f",
				route.DistanceMiles, route.DurationHours, trip.CycleHoursUsed),
			"", 1, "C", false, 0, "")
	}

	if len(dayLog.Segments) > 0 {
		pdf.CellFormat(0, 6,
			fmt.Sprintf("Date: %s", dayLog.Segments[0].Start.Format("Mon, 02 Jan 2006")),
			"", 1, "C", false, 0, "")
	}
}

// renderGrid draws the 24-hour duty-status grid with a horizontal trace per
// segment on the row of its duty status.
func (r *PDFRenderer) renderGrid(pdf *fpdf.Fpdf, dayLog domain.DailyLog) {
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetFont("Helvetica", "", 7)

	// Row labels and horizontal rules.
	for i, label := range statusRows {
		y := gridTop + float64(i)*rowHeight
		pdf.Line(gridLeft, y, gridLeft+gridWidth, y)
		pdf.Text(gridLeft-13, y+rowHeight-2.5, label)
	}
	bottom := gridTop + float64(len(statusRows))*rowHeight
	pdf.Line(gridLeft, bottom, gridLeft+gridWidth, bottom)

	// Hour ticks.
	for h := 0; h <= int(hoursInDay); h++ {
		x := gridLeft + gridWidth*float64(h)/hoursInDay
		pdf.Line(x, gridTop, x, bottom)
		if h < int(hoursInDay) {
			pdf.Text(x-1, gridTop-1.5, fmt.Sprintf("%d", h))
		}
	}

	if len(dayLog.Segments) == 0 {
		return
	}

	dayStart := dayLog.Segments[0].Start
	pdf.SetDrawColor(10, 10, 160)
	pdf.SetLineWidth(1.0)

	var prevX, prevY float64
	for i, seg := range dayLog.Segments {
		startH := seg.Start.Sub(dayStart).Hours()
		endH := startH + seg.DurationHours

		x1 := gridLeft + gridWidth*clampHours(startH)/hoursInDay
		x2 := gridLeft + gridWidth*clampHours(endH)/hoursInDay
		y := gridTop + (float64(statusRow(seg.Type))+0.5)*rowHeight

		// Vertical connector between consecutive duty statuses.
		if i > 0 && prevY != y {
			pdf.Line(prevX, prevY, prevX, y)
		}
		pdf.Line(x1, y, x2, y)

		prevX, prevY = x2, y
	}

	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(0, 0, 0)
}

func (r *PDFRenderer) renderSegmentTable(pdf *fpdf.Fpdf, dayLog domain.DailyLog) {
	pdf.SetY(gridTop + float64(len(statusRows))*rowHeight + 10)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 7, "Activity", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Start", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "End", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Hours", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, seg := range dayLog.Segments {
		pdf.CellFormat(70, 6, segmentLabel(seg.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, seg.Start.Format("15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, seg.End.Format("15:04"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", seg.DurationHours), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, 7,
		fmt.Sprintf("Totals - driving %.2f h, on duty %.2f h, off duty %.2f h",
			dayLog.DrivingHours, dayLog.OnDutyHours, dayLog.OffDutyHours),
		"", 1, "L", false, 0, "")
}

func statusRow(t domain.SegmentType) int {
	switch {
	case t == domain.SegmentRest:
		return 1 // sleeper berth
	case t.Driving():
		return 2
	case t.OnDuty():
		return 3
	default:
		return 0 // off duty
	}
}

func segmentLabel(t domain.SegmentType) string {
	switch t {
	case domain.SegmentPickup:
		return "On duty - pickup"
	case domain.SegmentDriving:
		return "Driving"
	case domain.SegmentBreak:
		return "Off duty - break"
	case domain.SegmentFuelStop:
		return "On duty - fuel stop"
	case domain.SegmentDropoff:
		return "On duty - dropoff"
	case domain.SegmentRest:
		return "Off duty - rest"
	default:
		return string(t)
	}
}

func clampHours(h float64) float64 {
	if h < 0 {
		return 0
	}
	if h > hoursInDay {
		return hoursInDay
	}
	return h
}
