package report

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"grid-scout/internal/domain"
	"grid-scout/internal/service"

	"github.com/go-pdf/fpdf"
)

var (
	primaryBlue = [3]int{0, 71, 171}
	nonLatin1   = regexp.MustCompile(`[^\x00-\xff]`)
)

// cleanForPDF strips characters the built-in latin-1 fonts cannot render,
// plus markdown emphasis markers.
func cleanForPDF(text string) string {
	text = nonLatin1.ReplaceAllString(text, "")
	text = strings.NewReplacer("**", "", "#", "", "__", "").Replace(text)
	return strings.TrimSpace(text)
}

// BuildDossierPDF renders the single-team dossier as a PDF document.
func BuildDossierPDF(teamName string, bundle *domain.TeamStatsBundle, narrative *domain.Narrative) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetLeftMargin(20)
	pdf.SetRightMargin(20)
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetHeaderFunc(func() {
		pdf.SetFillColor(primaryBlue[0], primaryBlue[1], primaryBlue[2])
		pdf.Rect(0, 0, 210, 30, "F")
		pdf.SetFont("Arial", "B", 18)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetY(10)
		pdf.CellFormat(0, 10, "STRATEGIC INTELLIGENCE DOSSIER", "", 1, "C", false, 0, "")
		pdf.Ln(8)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("SCOUTING DOSSIER - PAGE %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(50, 50, 50)
	pdf.CellFormat(0, 10, cleanForPDF("ANALYSIS TARGET: "+strings.ToUpper(teamName)), "", 1, "C", false, 0, "")

	brief := service.BriefStats(bundle)
	wins := bundle.SeriesWins()
	starImpact := 0.0
	if len(bundle.TopPlayers) > 0 {
		starImpact = bundle.TopPlayers[0].ImpactScore
	}

	sectionTitle(pdf, "Operational Summary")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(55, 7, fmt.Sprintf("WIN RATE: %s", brief.WinRate), "", 0, "", false, 0, "")
	pdf.CellFormat(60, 7, fmt.Sprintf("RECORD: %dW - %dL", wins, bundle.TotalSeries-wins), "", 0, "", false, 0, "")
	pdf.CellFormat(55, 7, fmt.Sprintf("MAP WIN: %v%%", bundle.MapWinRate), "", 1, "", false, 0, "")
	pdf.CellFormat(55, 7, fmt.Sprintf("STAR IMPACT: %v", starImpact), "", 0, "", false, 0, "")
	pdf.CellFormat(60, 7, fmt.Sprintf("DATA SAMPLES: %d SERIES", bundle.TotalSeries), "", 1, "", false, 0, "")
	pdf.Ln(6)

	if narrative != nil {
		labeledText(pdf, "WINNING PLAYSTYLE:", narrative.WinningTrends)
		labeledText(pdf, "COUNTER STRATEGY:", narrative.CounterStrategy)
	}

	sectionTitle(pdf, "Recent Series")
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(40, 40, 40)
	for _, s := range bundle.Series {
		result := "LOSS"
		if s.SeriesWin {
			result = "WIN"
		}
		line := fmt.Sprintf("%s  |  %s  vs %s  -  %s (key: %s)", s.Date, s.Tournament, s.Opponent, result, s.KeyPlayer)
		pdf.MultiCell(170, 5, cleanForPDF(line), "", "", false)
	}
	pdf.Ln(4)

	sectionTitle(pdf, "Roster Intelligence")
	for _, p := range bundle.TopPlayers {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(primaryBlue[0], primaryBlue[1], primaryBlue[2])
		pdf.CellFormat(0, 6, cleanForPDF(p.Name), "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(40, 40, 40)
		line := fmt.Sprintf("KDA %v  |  K %v / D %v per game  |  Net worth %d  |  Impact %v  |  %d games",
			p.AvgKDA, p.AvgKills, p.AvgDeaths, p.AvgNetWorth, p.ImpactScore, p.GamesPlayed)
		pdf.MultiCell(170, 5, line, "", "", false)
		pdf.Ln(1)
	}

	if narrative != nil {
		sectionTitle(pdf, "Strategic Playbook")
		labeledText(pdf, "VULNERABILITY REPORT", narrative.Playbook.Vulnerability)
		labeledText(pdf, "KILLER STRATEGY", narrative.Playbook.KillerStrategy)
		labeledText(pdf, "THREAT ASSESSMENT", narrative.Playbook.RosterThreats)
		labeledText(pdf, "OPERATION TIMELINE", narrative.Playbook.ExecutionPlan)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sectionTitle(pdf *fpdf.Fpdf, label string) {
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(primaryBlue[0], primaryBlue[1], primaryBlue[2])
	pdf.CellFormat(0, 10, strings.ToUpper(label), "", 1, "", false, 0, "")
	pdf.SetDrawColor(primaryBlue[0], primaryBlue[1], primaryBlue[2])
	pdf.SetLineWidth(0.5)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(3)
}

func labeledText(pdf *fpdf.Fpdf, label, text string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(primaryBlue[0], primaryBlue[1], primaryBlue[2])
	pdf.CellFormat(0, 8, label, "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(40, 40, 40)
	pdf.MultiCell(170, 6, cleanForPDF(text), "", "", false)
	pdf.Ln(4)
}
