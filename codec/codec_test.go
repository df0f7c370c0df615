package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	}

	in := payload{Name: "Zelda", Score: 9.5}
	data := MustMarshal(JSON{}, in)

	var out payload
	require.NoError(t, JSON{}.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
