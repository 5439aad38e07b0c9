package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/vitafit/backend/internal/sessions"
)

// UserDetails are optional personal details the client may attach to a
// report request. They are rendered into the PDF only, never stored.
type UserDetails struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

func (d *UserDetails) empty() bool {
	return d == nil || (d.FirstName == "" && d.LastName == "" && d.Email == "" && d.Phone == "")
}

// Generate renders the session record into a PDF report. Sections: title,
// optional personal details, the submitted input, the exercise plan, and
// the diet plan or a note that it was not generated yet.
func Generate(record *sessions.Record, details *UserDetails) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 12, "Fitness and Diet Plan Report", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	if !details.empty() {
		writeSectionHeader(pdf, "User Personal Details")
		writeRowIfSet(pdf, "First Name", details.FirstName)
		writeRowIfSet(pdf, "Last Name", details.LastName)
		writeRowIfSet(pdf, "Email", details.Email)
		writeRowIfSet(pdf, "Phone", details.Phone)
		pdf.Ln(5)
	}

	writeSectionHeader(pdf, "Submitted Input Data")
	writeRow(pdf, "Session Id", record.SessionID)
	writeRow(pdf, "Age", fmt.Sprintf("%d", record.RawInput.Age))
	writeRow(pdf, "Gender", record.RawInput.Gender)
	writeRow(pdf, "Height", fmt.Sprintf("%g %s", record.RawInput.HeightValue, record.RawInput.HeightUnit))
	writeRow(pdf, "Weight", fmt.Sprintf("%g %s", record.RawInput.WeightValue, record.RawInput.WeightUnit))
	writeRow(pdf, "Calories Intake", fmt.Sprintf("%d", record.RawInput.CaloriesIntake))
	pdf.Ln(5)

	writeSectionHeader(pdf, "Generated Exercise Plan")
	writeRow(pdf, "Exercise Type", record.ExercisePlan.ExerciseType)
	writeRow(pdf, "Intensity Level", record.ExercisePlan.IntensityLevel)
	writeRow(pdf, "Frequency Per Week", fmt.Sprintf("%d", record.ExercisePlan.FrequencyPerWeek))
	writeRow(pdf, "Duration Minutes", fmt.Sprintf("%.2f", record.ExercisePlan.DurationMinutes))
	writeRow(pdf, "Estimated Calorie Burn", fmt.Sprintf("%.2f", record.ExercisePlan.EstimatedCalorieBurn))
	pdf.Ln(5)

	if record.DietPlan != nil {
		writeSectionHeader(pdf, "Generated Diet Plan")
		writeRow(pdf, "Recommended Calories", fmt.Sprintf("%.2f", record.DietPlan.RecommendedCalories))
		writeRow(pdf, "Protein Grams Per Day", fmt.Sprintf("%.2f", record.DietPlan.ProteinGramsPerDay))
		writeRow(pdf, "Carbs Grams Per Day", fmt.Sprintf("%.2f", record.DietPlan.CarbsGramsPerDay))
		writeRow(pdf, "Fats Grams Per Day", fmt.Sprintf("%.2f", record.DietPlan.FatsGramsPerDay))
	} else {
		writeSectionHeader(pdf, "Diet Plan Status")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, "Diet plan has not yet been generated for this session.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func writeRow(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(55, 7, label+":", "1", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(105, 7, value, "1", 1, "L", false, 0, "")
}

func writeRowIfSet(pdf *gofpdf.Fpdf, label, value string) {
	if value == "" {
		return
	}
	writeRow(pdf, label, value)
}
