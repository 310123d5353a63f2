package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yamitzky/xlrd-go/xlrd"
)

func TestReadXLSRejectsNonBIFF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.xls")
	if err := os.WriteFile(path, []byte("Item;Total\nPizza;10\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	_, err := ReadXLS(path, "")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("ReadXLS() error = %v, expected ErrInvalidFormat", err)
	}
}

func TestIsDateCell(t *testing.T) {
	book := &xlrd.Book{
		XFList: []*xlrd.XF{
			{FormatKey: 0},
			{FormatKey: 14},
			{FormatKey: 2},
		},
	}

	tests := []struct {
		xfIndex  int
		expected bool
	}{
		{-1, false},
		{0, false},
		{1, true},
		{2, false},
		{3, false},
	}

	for _, tt := range tests {
		if result := isDateCell(book, tt.xfIndex); result != tt.expected {
			t.Errorf("isDateCell(%d) = %v, expected %v", tt.xfIndex, result, tt.expected)
		}
	}
}

func TestErrorText(t *testing.T) {
	if got := errorText("weird"); got != "#ERROR" {
		t.Errorf("errorText(unknown) = %q, expected #ERROR", got)
	}
	if got := errorText(byte(0x07)); got != "#DIV/0!" {
		t.Errorf("errorText(0x07) = %q, expected #DIV/0!", got)
	}
}
