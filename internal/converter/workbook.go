package converter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/unicode/norm"

	"formvalidator/internal/parser"
)

var (
	// ErrUnsupportedFormat 不支持的文件格式
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoSheets 工作簿中没有可读的 sheet
	ErrNoSheets = errors.New("workbook has no sheets")
)

// Sheet 单个工作表的原始内容
type Sheet struct {
	Name    string
	Headers []string   // 第一个非空行
	Rows    [][]string // 表头之后的非空行
}

// Workbook 上传的工作簿
type Workbook struct {
	Filename string
	Sheets   []Sheet
}

// OpenFile 按扩展名读取 .xlsx / .csv 文件
func OpenFile(path string) (*Workbook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return Read(filepath.Base(path), f)
}

// Read 按文件名扩展名读取
func Read(filename string, r io.Reader) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ReadWorkbook(filename, r)
	case ".csv":
		return ReadCSV(filename, r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
}

// ReadWorkbook 读取 Excel 工作簿的全部 sheet（保持标签页顺序）
func ReadWorkbook(filename string, r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer func() { _ = f.Close() }()
	return readExcel(filename, f)
}

func readExcel(filename string, f *excelize.File) (*Workbook, error) {
	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, ErrNoSheets
	}

	wb := &Workbook{Filename: filename}
	for _, name := range sheetList {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, newSheet(name, rows))
	}
	return wb, nil
}

// ReadCSV 读取 CSV，作为单个 sheet，sheet 名取文件名（不含扩展名）
func ReadCSV(filename string, r io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	// 去掉 UTF-8 BOM
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	base := filepath.Base(filename)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return &Workbook{
		Filename: filename,
		Sheets:   []Sheet{newSheet(name, rows)},
	}, nil
}

// newSheet 定位表头行并清理单元格
func newSheet(name string, rows [][]string) Sheet {
	sheet := Sheet{Name: name}

	headerIdx := -1
	for i, row := range rows {
		if !blankRow(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return sheet
	}

	headers := make([]string, len(rows[headerIdx]))
	for i, h := range rows[headerIdx] {
		headers[i] = parser.NormalizeColumnName(norm.NFC.String(h))
	}
	sheet.Headers = headers

	for _, row := range rows[headerIdx+1:] {
		if blankRow(row) {
			continue
		}
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = norm.NFC.String(v)
		}
		sheet.Rows = append(sheet.Rows, cells)
	}
	return sheet
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
