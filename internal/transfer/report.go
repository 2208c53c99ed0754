package transfer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/dukerupert/seedstudio/internal/catalog"
	"github.com/dukerupert/seedstudio/internal/garden"
	"github.com/dukerupert/seedstudio/internal/model"
	"github.com/dukerupert/seedstudio/internal/schedule"
)

const (
	SheetInventory = "Inventory"
	SheetLogs      = "Logs"
	SheetSchedule  = "Schedule"
)

// ReportName is the download name for a spreadsheet taken at now.
func ReportName(now time.Time) string {
	return "seed-studio-report-" + now.UTC().Format("2006-01-02") + ".xlsx"
}

// WriteReport renders doc as a workbook with one sheet per list.
func WriteReport(w io.Writer, doc Document, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetInventory); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetLogs, SheetSchedule} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	cat := catalog.New(doc.SeedDatabase)
	sheets := []struct {
		name string
		rows [][]any
	}{
		{SheetInventory, inventoryRows(doc, cat)},
		{SheetLogs, logRows(doc, cat)},
		{SheetSchedule, scheduleRows(doc, now)},
	}
	for _, sh := range sheets {
		for i, row := range sh.rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", sh.name, i+1, err)
			}
		}
		if err := f.SetRowStyle(sh.name, 1, 1, header); err != nil {
			return fmt.Errorf("style %s header: %w", sh.name, err)
		}
		if err := f.SetColWidth(sh.name, "A", "J", 18); err != nil {
			return fmt.Errorf("size %s columns: %w", sh.name, err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func inventoryRows(doc Document, cat *catalog.Catalog) [][]any {
	rows := [][]any{{"Name", "Variety", "Source", "Packets", "Seeds/Packet", "Low Stock", "Wishlist", "Purchase Year", "Tags", "Notes"}}
	for _, d := range cat.DetailsAll(doc.Seeds) {
		rows = append(rows, []any{
			d.Name, d.Variety, d.Source, d.PacketCount, optInt(d.SeedsPerPacket),
			yesNo(d.LowStock), yesNo(d.IsWishlist), optInt(d.PurchaseYear),
			strings.Join(d.Tags, ", "), d.UserNotes,
		})
	}
	return rows
}

func logRows(doc Document, cat *catalog.Catalog) [][]any {
	rows := [][]any{{"Date", "Activity", "Seed", "Quantity", "Weight", "Location", "Substrate", "Germinated", "Notes"}}
	for _, r := range garden.LogRows(doc.Logs, doc.Seeds, doc.CustomTasks, cat) {
		var weight any = ""
		if r.Weight != nil {
			weight = *r.Weight
		}
		rows = append(rows, []any{
			r.Date.Format("2006-01-02"), r.TaskName, r.SeedName, optInt(r.Quantity), weight,
			r.Location, r.Substrate, optInt(r.QuantityGerminated), r.Notes,
		})
	}
	return rows
}

func scheduleRows(doc Document, now time.Time) [][]any {
	rows := [][]any{{"Activity", "Recurrence", "Start", "Last Done", "Next Due", "Overdue", "Notes"}}
	for _, t := range schedule.EvaluateAll(doc.ScheduledTasks, doc.Logs, now) {
		name := t.TaskID
		if tt, ok := model.FindTask(doc.CustomTasks, t.TaskID); ok {
			name = tt.Name
		}
		rows = append(rows, []any{
			name, string(t.Recurrence), optDate(t.StartDate), optDate(t.LastDone), optDate(t.NextDue),
			yesNo(t.Overdue), t.Notes,
		})
	}
	return rows
}

func optInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func optDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
