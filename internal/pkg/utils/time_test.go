package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateBR(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		parsed, err := ParseDateBR("05/03/2024")
		require.NoError(t, err)
		require.NotNil(t, parsed)
		assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), *parsed)
	})

	t.Run("Blank", func(t *testing.T) {
		parsed, err := ParseDateBR("   ")
		assert.NoError(t, err)
		assert.Nil(t, parsed)
	})

	t.Run("Rejects Loose Formats", func(t *testing.T) {
		for _, value := range []string{"5/3/2024", "2024-03-05", "31/02/2024", "amanhã"} {
			_, err := ParseDateBR(value)
			assert.Error(t, err, value)
		}
	})
}

func TestFormatDateBR(t *testing.T) {
	assert.Equal(t, "05/03/2024", FormatDateBR("2024-03-05"))
	assert.Equal(t, "05/03/2024", FormatDateBR("2024-03-05T00:00:00Z"))
	assert.Equal(t, "", FormatDateBR(""))
	assert.Equal(t, "texto", FormatDateBR("texto"))
}

func TestValidateStructDateBR(t *testing.T) {
	type payload struct {
		Date string `json:"DATA" validate:"date_br"`
		Prot string `json:"PROT" validate:"not_blank"`
	}

	assert.NoError(t, ValidateStruct(payload{Date: "", Prot: "1"}))
	assert.NoError(t, ValidateStruct(payload{Date: "01/12/2023", Prot: "1"}))
	assert.Error(t, ValidateStruct(payload{Date: "2023-12-01", Prot: "1"}))
	assert.Error(t, ValidateStruct(payload{Date: "", Prot: "  "}))
}
