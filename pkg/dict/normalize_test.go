package dict

import "testing"

func TestFoldText(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Café", "cafe"},
		{"NAÏVE", "naive"},
		{"to love", "to love"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := foldText(tt.input); got != tt.want {
			t.Errorf("foldText(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSearchKey(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"lu:4", "lv4"},
		{"Lü4", "lv4"},
		{"Zhong1 guo2", "zhong1 guo2"},
		{"nv3", "nv3"},
		{"ai4hao4", "ai4 hao4"},
		{"Zhong1guo2  ren2", "zhong1 guo2 ren2"},
		{"lu:4shi1", "lv4 shi1"},
	}
	for _, tt := range tests {
		if got := searchKey(tt.input); got != tt.want {
			t.Errorf("searchKey(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStripDigits(t *testing.T) {
	if got := stripDigits("ni3 hao3"); got != "ni hao" {
		t.Errorf("stripDigits = %q, want %q", got, "ni hao")
	}
}
