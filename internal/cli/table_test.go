package cli

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewTable(t *testing.T) {
	table := NewTable("Hex", "Name", "Count")

	if len(table.headers) != 3 {
		t.Errorf("Expected 3 headers, got %d", len(table.headers))
	}
	if table.padding != 2 {
		t.Errorf("Expected padding of 2, got %d", table.padding)
	}
}

func TestTableAddRow(t *testing.T) {
	table := NewTable("Hex", "Name")

	table.AddRow("#000000", "đen")
	if len(table.rows) != 1 {
		t.Errorf("Expected 1 row, got %d", len(table.rows))
	}

	// Short rows are padded.
	table.AddRow("#FFFFFF")
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("Expected row to be padded to 2 columns, got %q", table.rows[1])
	}

	// Long rows are truncated.
	table.AddRow("#FF0000", "đỏ", "extra")
	if len(table.rows[2]) != 2 {
		t.Errorf("Expected row to be truncated to 2 columns, got %d", len(table.rows[2]))
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable("Hex", "Name", "%")
	table.AddRow("#000000", "đen", "62.50")
	table.AddRow("#FFD700", "vàng gold", "7.00")

	output := table.Render()
	for _, want := range []string{"Hex", "Name", "đen", "vàng gold", "62.50"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output should contain %q", want)
		}
	}

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[1], "-------") {
		t.Errorf("Expected separator line with dashes, got: %q", lines[1])
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if output := NewTable().Render(); output != "" {
		t.Errorf("Expected empty string for empty table, got: %q", output)
	}
}

func TestTableRenderNoRows(t *testing.T) {
	output := NewTable("Column1", "Column2").Render()
	if output != "Column1  Column2\n-------  -------\n" {
		t.Errorf("Unexpected output %q", output)
	}
}

func TestTableUnicodeAlignment(t *testing.T) {
	table := NewTable("Name", "Hex")
	table.AddRow("đỏ đô", "#800000")
	table.AddRow("xanh lá mạ", "#7CFC00")
	table.AddRow("\x1b[48;2;0;0;0m  \x1b[0m", "#000000")

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	col := -1
	for i, line := range lines {
		if i == 1 {
			continue
		}
		idx := strings.Index(line, "#")
		if idx < 0 {
			idx = strings.Index(line, "Hex")
		}
		pos := visibleWidth(line[:idx])
		if col == -1 {
			col = pos
		} else if pos != col {
			t.Errorf("Line %d: hex column at %d, want %d (%q)", i, pos, col, line)
		}
	}
}

func TestTableAlignRight(t *testing.T) {
	table := NewTable("Name", "Count")
	table.AlignRight(1)
	table.AddRow("a", "5")
	table.AddRow("b", "1200")

	lines := strings.Split(table.Render(), "\n")
	if !strings.HasSuffix(lines[2], "    5") {
		t.Errorf("Expected right-aligned count, got %q", lines[2])
	}
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"test", 4},
		{"", 0},
		{"đen", 3},
		{"vàng nghệ", 9},
		{"\x1b[38;2;255;255;255m\x1b[48;2;0;0;0m đen \x1b[0m", 5},
	}

	for _, tt := range tests {
		if got := visibleWidth(tt.input); got != tt.want {
			t.Errorf("visibleWidth(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
		{"đỏ", 4, "đỏ  "},
	}

	for _, tt := range tests {
		result := padRight(tt.input, tt.width)
		if result != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
		}
		if tt.width >= utf8.RuneCountInString(tt.input) && visibleWidth(result) != tt.width {
			t.Errorf("padRight(%q, %d) has width %d", tt.input, tt.width, visibleWidth(result))
		}
	}
}
