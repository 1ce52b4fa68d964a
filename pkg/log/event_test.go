package log

import (
	"bytes"
	"testing"
)

func TestDirectionString(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{DirectionIn, "IN"},
		{DirectionOut, "OUT"},
		{Direction(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		c    Category
		want string
	}{
		{CategoryRequest, "REQUEST"},
		{CategoryResponse, "RESPONSE"},
		{CategoryError, "ERROR"},
		{Category(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestTruncateBody(t *testing.T) {
	small := []byte("hello")
	out, truncated := TruncateBody(small)
	if truncated || !bytes.Equal(out, small) {
		t.Errorf("small body: got %q truncated=%v", out, truncated)
	}

	// The copy must not alias the input.
	out[0] = 'j'
	if small[0] != 'h' {
		t.Error("TruncateBody returned an alias of its input")
	}

	large := bytes.Repeat([]byte("x"), MaxBodySize+10)
	out, truncated = TruncateBody(large)
	if !truncated {
		t.Error("large body should be truncated")
	}
	if len(out) != MaxBodySize {
		t.Errorf("len = %d, want %d", len(out), MaxBodySize)
	}

	out, truncated = TruncateBody(nil)
	if truncated || len(out) != 0 {
		t.Errorf("nil body: got %q truncated=%v", out, truncated)
	}
}
