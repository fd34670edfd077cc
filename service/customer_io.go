package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/repository"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
)

const (
	ExportCSV   = "csv"
	ExportExcel = "excel"

	csvContentType  = "text/csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportSheet     = "Customers"
)

var exportHeader = []string{
	"ID", "Email", "First Name", "Last Name", "Company", "Job Title", "Phone",
	"Status", "Score", "Lifetime Value", "Assigned User", "Tags", "Created At",
}

// ExportFile is a rendered export ready to stream to the client.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Export renders the active customers matching f as CSV or an Excel workbook.
func (s *CustomerService) Export(ctx context.Context, format string, f models.CustomerFilter) (*ExportFile, error) {
	format = strings.ToLower(format)
	if format == "xlsx" {
		format = ExportExcel
	}
	if format != ExportCSV && format != ExportExcel {
		return nil, utils.CreateBadRequestError("Unsupported export format, use csv or excel")
	}

	f.IncludeAll = false
	customers, err := s.customers.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, customers, false)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, exportRow(v))
	}

	day := now().UTC().Format("2006-01-02")
	if format == ExportCSV {
		data, err := writeCSV(rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{Name: "customers_" + day + ".csv", ContentType: csvContentType, Data: data}, nil
	}

	data, err := writeWorkbook(rows)
	if err != nil {
		return nil, err
	}
	return &ExportFile{Name: "customers_" + day + ".xlsx", ContentType: xlsxContentType, Data: data}, nil
}

func exportRow(v models.CustomerView) []string {
	assigned := ""
	if v.AssignedUser != nil {
		assigned = v.AssignedUser.FullName()
	}
	tags := make([]string, len(v.Tags))
	for i, t := range v.Tags {
		tags[i] = t.Name
	}
	return []string{
		v.ID,
		v.Email,
		v.FirstName,
		v.LastName,
		v.Company,
		v.JobTitle,
		v.Phone,
		string(v.Status),
		strconv.Itoa(v.Score),
		strconv.FormatFloat(v.LifetimeValue, 'f', -1, 64),
		assigned,
		strings.Join(tags, ", "),
		v.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func writeWorkbook(rows [][]string) ([]byte, error) {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), exportSheet); err != nil {
		return nil, err
	}
	write := func(r int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, r)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return book.SetSheetRow(exportSheet, cell, &row)
	}

	if err := write(1, exportHeader); err != nil {
		return nil, err
	}
	for i, values := range rows {
		if err := write(i+2, values); err != nil {
			return nil, err
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// importRow is one parsed spreadsheet line, validated before insert.
type importRow struct {
	Email         string                `validate:"required,email,max=255"`
	FirstName     string                `validate:"required,max=50"`
	LastName      string                `validate:"required,max=50"`
	Company       string                `validate:"max=100"`
	JobTitle      string                `validate:"max=100"`
	Phone         string                `validate:"max=20"`
	Status        models.CustomerStatus `validate:"oneof=LEAD PROSPECT CUSTOMER INACTIVE"`
	Score         int                   `validate:"min=0,max=100"`
	LifetimeValue float64               `validate:"min=0"`
}

var importValidator = validator.New()

// Import creates customers from a CSV or XLSX upload. Rows that fail are
// reported in the result and do not stop the rest of the file.
func (s *CustomerService) Import(ctx context.Context, filename string, content io.Reader, importedBy string) (*models.ImportResult, error) {
	records, err := readRecords(filename, content)
	if err != nil {
		return nil, utils.CreateBadRequestError("Import failed: " + err.Error())
	}
	if len(records) == 0 {
		return nil, utils.CreateBadRequestError("Import failed: file is empty")
	}

	columns := headerIndex(records[0])
	result := &models.ImportResult{Errors: make([]models.ImportError, 0)}
	seen := map[string]bool{}

	for i, record := range records[1:] {
		if blank(record) {
			continue
		}
		line := i + 2
		result.Total++

		row, err := parseImportRow(columns, record)
		if err == nil {
			err = s.importOne(ctx, row, importedBy, seen)
		}
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, models.ImportError{Row: line, Email: row.Email, Error: err.Error()})
			continue
		}
		result.Successful++
	}

	if result.Successful > 0 {
		s.local.Delete(overviewCacheKey)
	}
	utils.Logger.Info().
		Str("file", filename).
		Int("total", result.Total).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("customer import finished")
	return result, nil
}

func (s *CustomerService) importOne(ctx context.Context, row importRow, importedBy string, seen map[string]bool) error {
	if row.Email == "" || row.FirstName == "" || row.LastName == "" {
		return errors.New("missing required fields: email, first name and last name")
	}
	if err := importValidator.Struct(row); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid %s", strings.ToLower(verrs[0].Field()))
		}
		return err
	}
	if seen[row.Email] {
		return fmt.Errorf("customer with email %s appears twice in the file", row.Email)
	}

	_, err := s.customers.FindByEmail(ctx, row.Email)
	if err == nil {
		return fmt.Errorf("customer with email %s already exists", row.Email)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	customer := &models.Customer{
		ID:             models.NewID(),
		FirstName:      row.FirstName,
		LastName:       row.LastName,
		Email:          row.Email,
		Phone:          row.Phone,
		Company:        row.Company,
		JobTitle:       row.JobTitle,
		Status:         row.Status,
		Score:          row.Score,
		LifetimeValue:  row.LifetimeValue,
		AssignedUserID: importedBy,
		IsActive:       true,
	}
	customer.Touch(now())
	if err := s.customers.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("customer with email %s already exists", row.Email)
		}
		return err
	}
	seen[row.Email] = true
	return nil
}

func readRecords(filename string, content io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		r := csv.NewReader(content)
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		return r.ReadAll()
	case ".xlsx", ".xlsm":
		book, err := excelize.OpenReader(content)
		if err != nil {
			return nil, err
		}
		defer book.Close()
		sheets := book.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		return book.GetRows(sheets[0])
	}
	return nil, fmt.Errorf("unsupported file type %q, upload .csv or .xlsx", filepath.Ext(filename))
}

// importAliases maps both the export headers and camelCase field names.
var importAliases = map[string]string{
	"email":          "email",
	"first name":     "firstName",
	"firstname":      "firstName",
	"last name":      "lastName",
	"lastname":       "lastName",
	"company":        "company",
	"job title":      "jobTitle",
	"jobtitle":       "jobTitle",
	"phone":          "phone",
	"status":         "status",
	"score":          "score",
	"lifetime value": "lifetimeValue",
	"lifetimevalue":  "lifetimeValue",
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if field, ok := importAliases[key]; ok {
			if _, dup := idx[field]; !dup {
				idx[field] = i
			}
		}
	}
	return idx
}

// parseImportRow maps a record onto the known columns. Empty numeric cells
// mean zero; anything else that does not parse fails the row.
func parseImportRow(columns map[string]int, record []string) (importRow, error) {
	get := func(field string) string {
		i, ok := columns[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	row := importRow{
		Email:     normalizeEmail(get("email")),
		FirstName: get("firstName"),
		LastName:  get("lastName"),
		Company:   get("company"),
		JobTitle:  get("jobTitle"),
		Phone:     get("phone"),
		Status:    models.CustomerStatus(strings.ToUpper(get("status"))),
	}
	if row.Status == "" {
		row.Status = models.CustomerStatusLEAD
	}
	if raw := get("score"); raw != "" {
		score, err := strconv.Atoi(raw)
		if err != nil {
			return row, fmt.Errorf("invalid score %q", raw)
		}
		row.Score = score
	}
	if raw := get("lifetimeValue"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return row, fmt.Errorf("invalid lifetimeValue %q", raw)
		}
		row.LifetimeValue = value
	}
	return row, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
