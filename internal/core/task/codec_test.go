package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTasks_Nil(t *testing.T) {
	data, err := EncodeTasks(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecodeTasks(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Task
		wantErr bool
	}{
		{name: "empty array", input: `[]`, want: []Task{}},
		{
			name:  "tasks",
			input: ` [{"id":1700000000000,"text":"Buy milk","completed":true}] `,
			want:  []Task{{ID: 1700000000000, Text: "Buy milk", Completed: true}},
		},
		{
			name:  "extra fields ignored",
			input: `[{"id":1,"text":"a","completed":false,"color":"red"}]`,
			want:  []Task{{ID: 1, Text: "a"}},
		},
		{name: "object", input: `{"tasks":[]}`, wantErr: true},
		{name: "null", input: `null`, wantErr: true},
		{name: "string", input: `"[]"`, wantErr: true},
		{name: "null element", input: `[null]`, wantErr: true},
		{name: "missing completed", input: `[{"id":1,"text":"a"}]`, wantErr: true},
		{name: "string id", input: `[{"id":"1","text":"a","completed":false}]`, wantErr: true},
		{name: "fractional id", input: `[{"id":1.5,"text":"a","completed":false}]`, wantErr: true},
		{name: "numeric text", input: `[{"id":1,"text":5,"completed":false}]`, wantErr: true},
		{name: "truncated", input: `[{"id":1`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeTasks([]byte(tt.input))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrCorrupt)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
