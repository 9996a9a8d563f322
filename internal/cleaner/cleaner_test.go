package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bulk-renamer/go/internal/types"
)

func TestCleanRemovesAccents(t *testing.T) {
	result := Clean("résumé.txt", Options{RemoveAccents: true})
	assert.Equal(t, "resume.txt", result)
}

func TestCleanRemovesSpecialChars(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"report(final)!.pdf", "reportfinal.pdf"},
		{"a@b#c.txt", "abc.txt"},
		{"keep-this_name.txt", "keep-this_name.txt"},
		{"spaces stay here.txt", "spaces stay here.txt"},
	}

	for _, tc := range testCases {
		result := Clean(tc.input, Options{RemoveSpecialChars: true})
		assert.Equal(t, tc.expected, result, "Input: %s", tc.input)
	}
}

func TestCleanReplacesSpaces(t *testing.T) {
	result := Clean("my holiday photos.jpg", Options{ReplaceSpaces: true})
	assert.Equal(t, "my_holiday_photos.jpg", result)
}

func TestCleanCollapsesUnderscoreRuns(t *testing.T) {
	result := Clean("a  b   c.txt", Options{ReplaceSpaces: true})
	assert.Equal(t, "a_b_c.txt", result)
}

func TestCleanStripsEdgeUnderscores(t *testing.T) {
	result := Clean(" padded .txt", Options{ReplaceSpaces: true})
	assert.Equal(t, "padded.txt", result)
}

func TestCleanConvertsCase(t *testing.T) {
	testCases := []struct {
		caseType types.CaseType
		input    string
		expected string
	}{
		{types.CaseLower, "LOUD Name.TXT", "loud name.TXT"},
		{types.CaseUpper, "quiet name.txt", "QUIET NAME.txt"},
		{types.CaseTitle, "my great file.txt", "My Great File.txt"},
	}

	for _, tc := range testCases {
		result := Clean(tc.input, Options{ConvertCase: true, CaseType: tc.caseType})
		assert.Equal(t, tc.expected, result, "Case type: %s", tc.caseType)
	}
}

func TestCleanPreservesExtension(t *testing.T) {
	// Only the last dot separates the extension; earlier dots belong to
	// the base and cleanup applies to them.
	result := Clean("archive.v1.tar", Options{ReplaceSpaces: true})
	assert.Equal(t, "archive.v1.tar", result)
}

func TestCleanCollapsesDotRuns(t *testing.T) {
	result := Clean("file...name.txt", Options{RemoveSpecialChars: true})
	assert.Equal(t, "file.name.txt", result)
}

func TestCleanStripsTrailingDotsAndSpaces(t *testing.T) {
	result := Clean("trailing. .txt", Options{RemoveSpecialChars: true})
	assert.Equal(t, "trailing.txt", result)
}

func TestCleanEmptyInputUnchanged(t *testing.T) {
	result := Clean("", Options{RemoveAccents: true, ReplaceSpaces: true})
	assert.Equal(t, "", result)
}

func TestCleanNoExtension(t *testing.T) {
	result := Clean("My Readme File", Options{ReplaceSpaces: true})
	assert.Equal(t, "My_Readme_File", result)
}

func TestCleanCombinedTransforms(t *testing.T) {
	opts := Options{
		RemoveAccents:      true,
		RemoveSpecialChars: true,
		ReplaceSpaces:      true,
		ConvertCase:        true,
		CaseType:           types.CaseLower,
	}
	result := Clean("Café Menü (2024)!.PDF", opts)
	assert.Equal(t, "cafe_menu_2024.PDF", result)
}

func TestCleanNoOptionsIsIdentity(t *testing.T) {
	result := Clean("Weird  Name!!.txt", Options{})
	assert.Equal(t, "Weird  Name!!.txt", result)
}
