package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
		{"another string", "another test string", 0x212a22f593810bec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestChecksumMatchesID(t *testing.T) {
	for _, s := range []string{"", "vinegar_ml", "electrode_area_cm2"} {
		assert.Equal(t, ID(s), Checksum([]byte(s)))
	}
}

func BenchmarkID(b *testing.B) {
	name := "electrolyte_conc_M"
	for b.Loop() {
		ID(name)
	}
}
