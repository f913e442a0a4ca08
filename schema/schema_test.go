package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsOrder(t *testing.T) {
	fields, err := Fields(FormJobPosting)
	require.NoError(t, err)

	want := []string{
		"department", "headcount", "mainDuties", "workHours",
		"location", "salary", "deadline", "contactEmail",
	}
	assert.Equal(t, want, Keys(fields))
}

func TestFieldsUnknownForm(t *testing.T) {
	_, err := Fields(FormType("expense_report"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSchema))
}

func TestFieldsReturnsCopy(t *testing.T) {
	first, err := Fields(FormJobPosting)
	require.NoError(t, err)
	first[0].Key = "mutated"

	second, err := Fields(FormJobPosting)
	require.NoError(t, err)
	assert.Equal(t, "department", second[0].Key)
}

func TestFieldByKey(t *testing.T) {
	fields, err := Fields(FormJobPosting)
	require.NoError(t, err)

	field, ok := FieldByKey(fields, "headcount")
	require.True(t, ok)
	assert.Equal(t, ModeNumeric, field.Extractor.Mode)
	assert.Equal(t, "명", field.Extractor.Unit)

	_, ok = FieldByKey(fields, "nonexistent")
	assert.False(t, ok)
}

func TestValidDefaultsToTrue(t *testing.T) {
	f := FieldSpec{Key: "salary"}
	assert.True(t, f.Valid("anything"))

	f.Validator = func(v string) bool { return v != "" }
	assert.False(t, f.Valid(""))
	assert.True(t, f.Valid("협의"))
}
