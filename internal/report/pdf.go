package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type column struct {
	title string
	width float64
	align string
}

func tableHeader(pdf *gofpdf.Fpdf, cols []column) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
}

func tableRow(pdf *gofpdf.Fpdf, cols []column, values ...string) {
	for i, c := range cols {
		pdf.CellFormat(c.width, 6, values[i], "1", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(9)
}

// RenderAttendancePDF writes an A4 attendance report to w.
func RenderAttendancePDF(w io.Writer, rep AttendanceReport, generatedAt time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Attendance Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Attendance Report")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s to %s", rep.StartDate, rep.EndDate))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Generated: "+generatedAt.Format("2006-01-02 15:04"))
	pdf.Ln(6)

	s := rep.Summary
	section(pdf, "Summary")
	pdf.SetFont("Helvetica", "", 11)
	for _, line := range []string{
		fmt.Sprintf("Records: %d    Employees: %d", s.TotalRecords, s.UniqueEmployees),
		fmt.Sprintf("Present: %d    Late: %d    Early leave: %d    Absent: %d", s.Present, s.Late, s.EarlyLeave, s.Absent),
		fmt.Sprintf("Attendance rate: %d%%    Average hours: %.2f", s.AttendanceRate, s.AverageHours),
	} {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}

	if len(rep.ByDepartment) > 0 {
		section(pdf, "By department")
		cols := []column{
			{"Department", 60, "L"},
			{"Employees", 25, "R"},
			{"Present", 25, "R"},
			{"Late", 20, "R"},
			{"Absent", 20, "R"},
			{"Rate", 20, "R"},
		}
		tableHeader(pdf, cols)
		for _, d := range rep.ByDepartment {
			tableRow(pdf, cols,
				d.Department,
				strconv.Itoa(d.Employees),
				strconv.Itoa(d.Present),
				strconv.Itoa(d.Late),
				strconv.Itoa(d.Absent),
				strconv.Itoa(d.AttendanceRate)+"%",
			)
		}
	}

	if len(rep.TopPerformers) > 0 {
		section(pdf, "Top performers")
		cols := []column{
			{"#", 10, "R"},
			{"Employee", 60, "L"},
			{"Department", 50, "L"},
			{"Days", 20, "R"},
			{"Hours", 30, "R"},
		}
		tableHeader(pdf, cols)
		for i, p := range rep.TopPerformers {
			tableRow(pdf, cols,
				strconv.Itoa(i+1),
				p.Name,
				p.Department,
				strconv.Itoa(p.PresentDays),
				strconv.FormatFloat(p.TotalHours, 'f', 2, 64),
			)
		}
	}

	return pdf.Output(w)
}
