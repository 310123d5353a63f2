package parser

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/models"
)

// saiposWorkbook writes a workbook shaped like a Saipos "itens vendidos"
// export: three report rows, then item rows.
func saiposWorkbook(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Itens"
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet))
	rows := [][]interface{}{
		{"Relatório de itens vendidos"},
		{"Loja Centro"},
		{"Item", "Quantidade", "Total"},
		{"Diversos - Pizza (Grande)", 2, 10.5},
		{"Refrigerante - Lata", 3, 9.0},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "C4", "C5", style))

	_, err = f.NewSheet("Resumo")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Resumo", "A1", "total"))

	path := filepath.Join(dir, "itens.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := saiposWorkbook(t, t.TempDir())

	sheet, err := ReadXLSX(path, "")
	require.NoError(t, err)
	assert.Equal(t, "Itens", sheet.Name)
	assert.Equal(t, path, sheet.Path)
	require.Len(t, sheet.Rows, 5)
	assert.Equal(t, 3, sheet.Width())
	assert.Equal(t, models.Text("Diversos - Pizza (Grande)"), sheet.Rows[3][0])
	assert.Equal(t, models.Number(int64(2)), sheet.Rows[3][1])
	assert.Equal(t, models.Number(10.5), sheet.Rows[3][2])

	other, err := ReadXLSX(path, "Resumo")
	require.NoError(t, err)
	assert.Equal(t, models.Text("total"), other.Rows[0][0])
}

func TestReadXLSXErrors(t *testing.T) {
	dir := t.TempDir()
	path := saiposWorkbook(t, dir)

	_, err := ReadXLSX(path, "Missing")
	assert.True(t, errors.Is(err, ErrSheetNotFound), "got %v", err)

	corrupt := filepath.Join(dir, "corrupt.xlsx")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a zip"), 0644))
	_, err = ReadXLSX(corrupt, "")
	assert.True(t, errors.Is(err, ErrInvalidFormat), "got %v", err)
}

func TestRewriteXLSX(t *testing.T) {
	dir := t.TempDir()
	path := saiposWorkbook(t, dir)

	src, err := ReadXLSX(path, "")
	require.NoError(t, err)

	grid := models.Grid{
		{models.Text("Grande"), models.Text("Pizza"), src.Rows[3][1], src.Rows[3][2]},
		{models.Text(""), models.Text("Refrigerante Lata"), src.Rows[4][1], src.Rows[4][2]},
	}
	dst := filepath.Join(dir, "itens_tratado.xlsx")
	require.NoError(t, RewriteXLSX(src, grid, dst, WriteOptions{DropRows: 3}))

	f, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Itens"}, f.GetSheetList())

	rows, err := f.GetRows("Itens")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Grande", "Pizza", "2", "10.50"}, rows[0])
	assert.Equal(t, []string{"", "Refrigerante Lata", "3", "9.00"}, rows[1])

	// Non-text cells keep their style after the column shift.
	styleID, err := f.GetCellStyle("Itens", "D1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	assert.Equal(t, 2, style.NumFmt)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}

func TestRewriteXLSXHeader(t *testing.T) {
	dir := t.TempDir()
	path := saiposWorkbook(t, dir)

	src, err := ReadXLSX(path, "")
	require.NoError(t, err)

	grid := models.Grid{
		{models.Text("Grande"), models.Text("Pizza"), src.Rows[3][1], src.Rows[3][2]},
		{models.Text(""), models.Text("Refrigerante Lata"), src.Rows[4][1], src.Rows[4][2]},
	}
	header := []interface{}{"extraido_parenteses", 0, 1, 2}
	dst := filepath.Join(dir, "itens_tratado.xlsx")
	require.NoError(t, RewriteXLSX(src, grid, dst, WriteOptions{DropRows: 3, Header: header}))

	f, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Itens")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"extraido_parenteses", "0", "1", "2"}, rows[0])
	assert.Equal(t, "Pizza", rows[1][1])
}

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "legado_tratado.xlsx")
	when := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	grid := models.Grid{
		{models.Text("Grande"), models.Text("Pizza"), models.Number(10.5), models.Date(when)},
		{models.Text(""), models.Text("Suco"), models.Empty(), models.Bool(true)},
	}
	require.NoError(t, WriteWorkbook("Planilha1", grid, dst, WriteOptions{}))

	f, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Planilha1"}, f.GetSheetList())
	rows, err := f.GetRows("Planilha1", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Pizza", rows[0][1])
	assert.Equal(t, "10.5", rows[0][2])
	assert.Equal(t, "", rows[1][0])
	assert.Equal(t, "Suco", rows[1][1])

	boolType, err := f.GetCellType("Planilha1", "D2")
	require.NoError(t, err)
	assert.Equal(t, excelize.CellTypeBool, boolType)
}

func TestWriteAtomicFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.xlsx")

	err := writeAtomic(dst, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return errors.New("boom")
	})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestResolveSheet(t *testing.T) {
	names := []string{"Itens", "Resumo"}

	idx, name, err := resolveSheet(names, "")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "Itens", name)

	idx, name, err = resolveSheet(names, "Resumo")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "Resumo", name)

	_, _, err = resolveSheet(names, "Outro")
	assert.ErrorIs(t, err, ErrSheetNotFound)

	_, _, err = resolveSheet(nil, "")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}
