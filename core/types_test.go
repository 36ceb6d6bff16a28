package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abovethehill/churchadmin/core"
)

func TestFlexInt_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "number", in: `{"n": 12}`, want: 12},
		{name: "numeric string", in: `{"n": "12"}`, want: 12},
		{name: "zero string", in: `{"n": "0"}`, want: 0},
		{name: "float string truncates", in: `{"n": "12.7"}`, want: 12},
		{name: "negative number clamps", in: `{"n": -5}`, want: 0},
		{name: "negative string clamps", in: `{"n": "-5"}`, want: 0},
		{name: "garbage becomes zero", in: `{"n": "abc"}`, want: 0},
		{name: "empty string becomes zero", in: `{"n": ""}`, want: 0},
		{name: "null becomes zero", in: `{"n": null}`, want: 0},
		{name: "missing field stays zero", in: `{}`, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data struct {
				N core.FlexInt `json:"n"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.in), &data))
			assert.Equal(t, tt.want, data.N.Int())
		})
	}
}
