package table

import (
	"strconv"

	"github.com/spigell/resume-analyzer/internal/resume"
)

// Columns is the fixed report header. Every row has exactly one cell per column.
var Columns = []string{
	"Sl No",
	"Name of Applicant",
	"Years of Experience",
	"Email ID",
	"Phone Number",
	"Education Details",
	"Discipline",
	"Passing Year",
	"Key Skills",
	"CGPA/Percentile",
	"Sporting/Certifications/Internships",
	"Gen AI Keyword Score",
	"AI/ML Keyword Score",
	"Gen AI Matching Keywords",
	"AI/ML Matching Keywords",
}

// Row is a record with its 1-based sequence number.
type Row struct {
	Seq    int
	Record resume.Record
}

// Cells renders the row in Columns order.
func (r Row) Cells() []string {
	rec := r.Record
	return []string{
		strconv.Itoa(r.Seq),
		rec.Name,
		rec.Experience,
		rec.Email,
		rec.Phone,
		rec.Education,
		rec.Discipline,
		rec.PassingYear,
		rec.Skills,
		rec.CGPA,
		rec.Extracurricular,
		strconv.Itoa(rec.GenAI.Score),
		strconv.Itoa(rec.AIML.Score),
		rec.GenAI.Joined(),
		rec.AIML.Joined(),
	}
}

// Table accumulates rows in the order records are appended and owns the
// sequence counter. It is not safe for concurrent use.
type Table struct {
	rows []Row
}

func New() *Table {
	return &Table{}
}

// Append stores rec as the next row and returns its sequence number.
func (t *Table) Append(rec resume.Record) int {
	seq := len(t.rows) + 1
	t.rows = append(t.rows, Row{Seq: seq, Record: rec})
	return seq
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the accumulated rows.
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.rows))
	copy(rows, t.rows)
	return rows
}

// Result is a finalized table ready to be written out.
type Result struct {
	Header []string
	Rows   [][]string
}

// Finalize pairs the header with the rendered rows.
func (t *Table) Finalize() Result {
	header := make([]string, len(Columns))
	copy(header, Columns)

	rows := make([][]string, 0, len(t.rows))
	for _, row := range t.rows {
		rows = append(rows, row.Cells())
	}

	return Result{Header: header, Rows: rows}
}
