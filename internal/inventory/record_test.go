package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord_CoercesSerial(t *testing.T) {
	tests := []struct {
		name string
		sn   string
		want int
	}{
		{"plain", "12", 12},
		{"leading space", " 7", 7},
		{"trailing newline", "3\n", 3},
		{"signed", "+4", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRecord(tt.sn, "box", "10")
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Serial)
			assert.Equal(t, "box", r.Description)
			assert.Equal(t, "10", r.Weight)
		})
	}
}

func TestNewRecord_InvalidSerial(t *testing.T) {
	for _, sn := range []string{"", "abc", "1.5", "0x10"} {
		_, err := NewRecord(sn, "box", "10")
		require.Error(t, err, "serial %q", sn)
		assert.True(t, IsInvalidSerial(err))
	}
}

func TestNewRecord_WeightStoredAsGiven(t *testing.T) {
	r, err := NewRecord("1", "lamp", "heavy-ish")
	require.NoError(t, err)
	assert.Equal(t, "heavy-ish", r.Weight)

	_, err = r.WeightValue()
	assert.Error(t, err)

	r.Weight = "12.5"
	w, err := r.WeightValue()
	require.NoError(t, err)
	assert.InDelta(t, 12.5, w, 1e-9)
}

func TestRecord_Fields(t *testing.T) {
	r := Record{Serial: 9, Description: "books", Weight: "40"}
	sn, desc, wgt := r.Fields()
	assert.Equal(t, 9, sn)
	assert.Equal(t, "books", desc)
	assert.Equal(t, "40", wgt)
}

func TestEncodeLine(t *testing.T) {
	assert.Equal(t, "1, A, 10\n", EncodeLine(1, "A", "10"))
	assert.Equal(t, "2, kitchen stuff, 12.5\n", Record{Serial: 2, Description: "kitchen stuff", Weight: "12.5"}.Line())
	// no quoting
	assert.Equal(t, "3, a, b, 1\n", EncodeLine(3, "a, b", "1"))
}

func TestDecodeLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		sn      string
		desc    string
		wgt     string
		wantErr bool
	}{
		{"canonical", "1, A, 10\n", "1", "A", "10", false},
		{"no spaces", "1,A,10", "1", "A", "10", false},
		{"crlf", "1, A, 10\r\n", "1", "A", "10", false},
		{"inner spaces kept", "1,  two  spaces , 10", "1", " two  spaces ", "10", false},
		{"extra fields ignored", "1, A, 10, extra", "1", "A", "10", false},
		{"trailing weight space dropped", "1, A, 10 \n", "1", "A", "10", false},
		{"trailing tab dropped", "1, A, 10\t", "1", "A", "10", false},
		{"two fields", "1, A\n", "", "", "", true},
		{"empty", "\n", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sn, desc, wgt, err := DecodeLine(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrShortLine)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.sn, sn)
			assert.Equal(t, tt.desc, desc)
			assert.Equal(t, tt.wgt, wgt)
		})
	}
}

func TestDecodeRecord_RoundTrip(t *testing.T) {
	for _, r := range []Record{
		{Serial: 1, Description: "A", Weight: "10"},
		{Serial: 22, Description: " leading space", Weight: "7"},
		{Serial: 300, Description: "tabs\tinside", Weight: "0.25"},
		{Serial: 4, Description: "", Weight: ""},
		{Serial: -5, Description: "négligé", Weight: "lbs"},
	} {
		got, err := DecodeRecord(r.Line())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
}

func TestStatus(t *testing.T) {
	assert.Equal(t, 0, Status(nil))
	assert.Equal(t, -1, Status(indexError(ErrCodeOutOfRange, 5, 2)))
}
