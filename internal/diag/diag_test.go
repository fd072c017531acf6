package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolkfmt/internal/source"
)

func TestCodeID(t *testing.T) {
	assert.Equal(t, "LEX1002", LexUnterminatedString.ID())
	assert.Equal(t, "SYN2001", SynUnexpectedToken.ID())
	assert.Equal(t, "IO4001", IOLoadFileError.ID())
	assert.Equal(t, "FMT5001", FmtInvalidRange.ID())
	assert.Equal(t, "E0000", UnknownCode.ID())
	assert.Equal(t, "Unknown error", Code(9999).Title())
}

func TestBagLimitAndSort(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	ReportError(r, SynUnexpectedToken, source.Span{Start: 10, End: 11}, "b").Emit()
	ReportError(r, SynExpectSemicolon, source.Span{Start: 1, End: 2}, "a").Emit()
	ReportError(r, SynExpectType, source.Span{Start: 0, End: 1}, "dropped").Emit()

	require.Equal(t, 2, bag.Len())
	bag.Sort()
	assert.Equal(t, "a", bag.Items()[0].Message)
	assert.True(t, bag.HasErrors())
}

func TestBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	b := ReportError(BagReporter{Bag: bag}, LexBadNumber, source.Span{}, "bad").
		WithNote(source.Span{Start: 3}, "here")
	b.Emit()
	b.Emit()
	require.Equal(t, 1, bag.Len())
	assert.Len(t, bag.Items()[0].Notes, 1)
}

func TestBagErr(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("a.tolk", []byte("fun\nmain"))
	bag := NewBag(10)
	assert.NoError(t, bag.Err(fs))

	ReportError(BagReporter{Bag: bag}, SynExpectIdentifier, source.Span{File: id, Start: 4, End: 8}, "expected (").Emit()
	ReportError(BagReporter{Bag: bag}, SynExpectBody, source.Span{File: id, Start: 8, End: 8}, "expected body").Emit()

	err := bag.Err(fs)
	var derr *Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "a.tolk:2:1: ERROR SYN2004: expected ( (and 1 more)", err.Error())
}
