package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellRef, &r))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadEmployees(t *testing.T) {
	buf := workbook(t,
		[]any{"Name", "Email", "Contact No", "Gender", "Address"},
		[]any{"Asha", "ASHA@Example.com", 9876543210, "F", "Pune"},
		[]any{"", "", "", "", ""},
		[]any{"NoPhone", "np@example.com"},
	)

	rows, err := ReadEmployees(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Asha", rows[0].Name)
	assert.Equal(t, "asha@example.com", rows[0].Email)
	assert.Equal(t, "9876543210", rows[0].ContactNo)
	assert.Equal(t, 2, rows[0].Line)
	assert.True(t, rows[0].Complete())

	assert.Equal(t, 4, rows[1].Line)
	assert.False(t, rows[1].Complete())
}

func TestReadEmployeesPhoneHeader(t *testing.T) {
	buf := workbook(t,
		[]any{"name", "email", "phone"},
		[]any{"Ravi", "ravi@example.com", "9000000001"},
	)
	rows, err := ReadEmployees(buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "9000000001", rows[0].ContactNo)
}

func TestReadEmployeesRejectsGarbage(t *testing.T) {
	_, err := ReadEmployees(strings.NewReader("plain text"))
	require.Error(t, err)
}
