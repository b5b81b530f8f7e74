package orderedmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchers(t *testing.T) {
	tests := []struct {
		name           string
		ctrl           uint64
		h2             uint8
		wantH2         bitset
		wantEmpty      bitset
		wantEmptyOrDel bitset
	}{
		{
			name:           "All empty",
			ctrl:           0x8080808080808080,
			h2:             0x00,
			wantH2:         0,
			wantEmpty:      0x8080808080808080,
			wantEmptyOrDel: 0x8080808080808080,
		},
		{
			name:           "All deleted",
			ctrl:           0xFEFEFEFEFEFEFEFE,
			h2:             0x7E,
			wantH2:         0,
			wantEmpty:      0,
			wantEmptyOrDel: 0x8080808080808080,
		},
		{
			name:           "Mixed: full, empty, deleted",
			ctrl:           0x00_80_FE_42_80_FE_7F_42,
			h2:             0x42,
			wantH2:         0x00_00_00_80_00_00_00_80,
			wantEmpty:      0x00_80_00_00_80_00_00_00,
			wantEmptyOrDel: 0x00_80_80_00_80_80_00_00,
		},
		{
			name:           "All full (H2=0x7F)",
			ctrl:           0x7F7F7F7F7F7F7F7F,
			h2:             0x7F,
			wantH2:         0x8080808080808080,
			wantEmpty:      0,
			wantEmptyOrDel: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantH2, matchH2(tt.ctrl, tt.h2), "matchH2(0x%016X, 0x%02X)", tt.ctrl, tt.h2)
			require.Equal(t, tt.wantEmpty, matchEmpty(tt.ctrl), "matchEmpty(0x%016X)", tt.ctrl)
			require.Equal(t, tt.wantEmptyOrDel, matchEmptyOrDeleted(tt.ctrl), "matchEmptyOrDeleted(0x%016X)", tt.ctrl)
		})
	}
}

func TestBitset(t *testing.T) {
	b := bitset(0x00_80_00_00_80_00_80_00)

	require.Equal(t, uintptr(1), b.first())

	b = b.removeFirst()
	require.Equal(t, uintptr(4), b.first())

	b = b.removeFirst().removeFirst()
	require.Equal(t, bitset(0), b)
	require.Equal(t, uintptr(groupSize), b.first())
}

func TestLoadCtrls(t *testing.T) {
	ctrls := emptyCtrls
	ctrls[2] = 0x11
	ctrls[5] = slotDeleted

	word := loadCtrls(&ctrls)
	require.Equal(t, uintptr(2), matchH2(word, 0x11).first())
	require.Equal(t, uintptr(5), (matchEmptyOrDeleted(word) &^ matchEmpty(word)).first())
}
