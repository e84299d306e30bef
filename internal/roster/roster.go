// Package roster reads and writes student lists as Excel workbooks.
package roster

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stemsi/academia-backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet Export writes to.
const SheetName = "Students"

// ContentType is the MIME type of an xlsx workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []any{"ID", "Name", "Std", "Roll Number", "Subjects"}

// Export writes one row per student, subjects joined by ", ".
func Export(w io.Writer, students []model.StudentWithSubjects) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, s := range students {
		names := make([]string, 0, len(s.Subjects))
		for _, sub := range s.Subjects {
			names = append(names, sub.Name)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{s.ID, s.Name, s.Std, s.RollNumber, strings.Join(names, ", ")}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Entry is one data row of an imported sheet. Err is set when the row could
// not be parsed; Line is the 1-based spreadsheet row.
type Entry struct {
	Line    int
	Student model.CreateStudentRequest
	Err     error
}

// ErrMissingColumns is returned when the header lacks Name, Std or Roll Number.
var ErrMissingColumns = errors.New("sheet header must contain Name, Std and Roll Number columns")

// Import reads students from the first sheet of an xlsx workbook. The first
// row is a header; columns are located by name so Export output can be fed
// back in. Blank rows are skipped.
func Import(r io.Reader) ([]Entry, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("workbook does not contain any sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingColumns
	}

	nameCol, stdCol, rollCol := -1, -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			nameCol = i
		case "std":
			stdCol = i
		case "roll number", "roll_number":
			rollCol = i
		}
	}
	if nameCol < 0 || stdCol < 0 || rollCol < 0 {
		return nil, ErrMissingColumns
	}

	var entries []Entry
	for i, row := range rows[1:] {
		name, std, roll := cellAt(row, nameCol), cellAt(row, stdCol), cellAt(row, rollCol)
		if name == "" && std == "" && roll == "" {
			continue
		}

		e := Entry{Line: i + 2}
		e.Student.Name = name
		e.Student.Std, err = strconv.Atoi(std)
		if err != nil {
			e.Err = fmt.Errorf("std %q is not a number", std)
			entries = append(entries, e)
			continue
		}
		rn, err := strconv.Atoi(roll)
		if err != nil {
			e.Err = fmt.Errorf("roll number %q is not a number", roll)
			entries = append(entries, e)
			continue
		}
		e.Student.RollNumber = &rn
		entries = append(entries, e)
	}
	return entries, nil
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
