package utils

import "testing"

func TestTruncate(t *testing.T) {
	if got := Truncate("hola", 10); got != "hola" {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("descripción larga", 8); got != "descr..." {
		t.Errorf("Truncate() = %q", got)
	}
	if got := Truncate("abc", 2); got != "ab" {
		t.Errorf("Truncate() = %q", got)
	}
}
