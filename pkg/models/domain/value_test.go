package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Text(t *testing.T) {
	assert.Equal(t, "", Missing().Text())
	assert.Equal(t, "BOGO", StringValue("BOGO").Text())
	assert.Equal(t, "125.5", NumberValue(125.5).Text())
	assert.Equal(t, "400", NumberValue(400).Text())
	assert.Equal(t, "2024-06-15",
		DateValue(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)).Text())
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, Missing().Equal(Missing()))
	assert.True(t, NumberValue(1).Equal(NumberValue(1)))
	assert.False(t, NumberValue(1).Equal(NumberValue(2)))
	assert.False(t, NumberValue(1).Equal(StringValue("1")))
	assert.False(t, StringValue("").Equal(Missing()))
}

func TestValue_MarshalJSON(t *testing.T) {
	row := ViewRow{
		"name":  StringValue("Cookies"),
		"units": NumberValue(42),
		"since": DateValue(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)),
		"note":  Missing(),
	}

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"name":"Cookies","units":42,"since":"2023-01-02","note":null}`,
		string(data))
}
