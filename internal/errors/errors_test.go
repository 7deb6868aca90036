package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewValidationError("usage must be non-negative"),
			want: "[VALIDATION] usage must be non-negative",
		},
		{
			name: "with cause",
			err:  NewParsingError("bad date", fmt.Errorf("cannot parse %q", "not-a-date")),
			want: `[PARSING] bad date: cannot parse "not-a-date"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewStorageError("write failed", cause)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewParsingError("row failed", nil).WithContext("row", 12)
	assert.Equal(t, 12, err.Context["row"])
}

func TestEmptyErrorsAreDistinct(t *testing.T) {
	src := NewEmptySourceError("data.csv")
	ds := NewEmptyDatasetError("data.csv", 40)

	assert.True(t, IsEmptySource(src))
	assert.False(t, IsEmptyDataset(src))

	assert.True(t, IsEmptyDataset(ds))
	assert.False(t, IsEmptySource(ds))

	assert.Equal(t, 40, ds.Context["rows"])
}

func TestIsType_NonAppError(t *testing.T) {
	assert.False(t, IsType(errors.New("plain"), ErrTypeParsing))
	assert.False(t, IsType(nil, ErrTypeParsing))
}
